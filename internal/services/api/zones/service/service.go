// Package service answers zone API queries from the registry and history ports
package service

import (
	"context"
	"sort"
	"time"

	"zonewatch/internal/services/api/zones/domain"
	eventsdomain "zonewatch/internal/services/events/domain"
	perr "zonewatch/internal/platform/errors"
	zonedomain "zonewatch/internal/services/zones/domain"
)

// Service defines the zones API surface
type Service interface {
	List(ctx context.Context) []domain.ZoneSummary
	Membership(ctx context.Context, camera, zone string) (domain.Membership, error)
	History(ctx context.Context, camera, zone string, q domain.HistoryQuery) (domain.HistoryPage, error)
}

type svc struct {
	registry zonedomain.RegistryPort
	query    eventsdomain.QueryPort
}

// New constructs the zones API service
func New(registry zonedomain.RegistryPort, query eventsdomain.QueryPort) Service {
	if registry == nil {
		panic("zones api: nil registry")
	}
	return &svc{registry: registry, query: query}
}

// List implements Service, sorted by camera then construction order
func (s *svc) List(_ context.Context) []domain.ZoneSummary {
	cams := s.registry.CameraIdentifiers()
	sort.Strings(cams)

	var out []domain.ZoneSummary
	for _, cam := range cams {
		for _, z := range s.registry.ZonesFor(cam) {
			sum := domain.ZoneSummary{
				CameraIdentifier: cam,
				Name:             z.Name(),
				Polygon:          z.Polygon(),
			}
			for _, f := range z.Filters() {
				sum.Labels = append(sum.Labels, domain.LabelSummary{
					Label:           f.Label(),
					TriggerRecorder: f.TriggersRecorder(),
				})
			}
			sort.Slice(sum.Labels, func(i, j int) bool { return sum.Labels[i].Label < sum.Labels[j].Label })
			out = append(out, sum)
		}
	}
	return out
}

// Membership implements Service
func (s *svc) Membership(_ context.Context, camera, zone string) (domain.Membership, error) {
	for _, z := range s.registry.ZonesFor(camera) {
		if z.Name() != zone {
			continue
		}
		return domain.Membership{
			CameraIdentifier: camera,
			Zone:             zone,
			Objects:          z.ObjectsInZone(),
		}, nil
	}
	return domain.Membership{}, perr.NotFoundf("zone %q of camera %q", zone, camera)
}

// History implements Service
func (s *svc) History(ctx context.Context, camera, zone string, q domain.HistoryQuery) (domain.HistoryPage, error) {
	if s.query == nil {
		return domain.HistoryPage{}, perr.Unavailablef("history storage is not configured")
	}

	var after eventsdomain.AfterKey
	if q.AfterID != "" {
		ts, err := time.Parse(time.RFC3339Nano, q.AfterTS)
		if err != nil {
			return domain.HistoryPage{}, perr.InvalidArgf("after_ts must be RFC3339: %v", err)
		}
		after = eventsdomain.AfterKey{CreatedAt: ts, ID: q.AfterID}
	}

	items, next, err := s.query.List(ctx, eventsdomain.Filters{
		CameraIdentifier: camera,
		ZoneName:         zone,
	}, after, q.Limit)
	if err != nil {
		return domain.HistoryPage{}, err
	}
	return domain.HistoryPage{Items: items, After: next}, nil
}
