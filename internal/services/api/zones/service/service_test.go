package service

import (
	"context"
	"testing"
	"time"

	"zonewatch/internal/core/detection"
	"zonewatch/internal/core/geometry"
	"zonewatch/internal/core/objectfilter"
	perr "zonewatch/internal/platform/errors"
	"zonewatch/internal/services/api/zones/domain"
	camdomain "zonewatch/internal/services/cameras/domain"
	eventsdomain "zonewatch/internal/services/events/domain"
	zonedomain "zonewatch/internal/services/zones/domain"
)

type stubZone struct {
	name    string
	objects []*detection.Object
	filters map[string]*objectfilter.Filter
}

func (z stubZone) Name() string { return z.name }
func (z stubZone) Evaluate(_ camdomain.SharedFrame, _ []*detection.Object) []*detection.Object {
	return nil
}
func (z stubZone) ObjectsInZone() []*detection.Object       { return z.objects }
func (z stubZone) Polygon() geometry.Polygon                { return geometry.Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}} }
func (z stubZone) Filters() map[string]*objectfilter.Filter { return z.filters }

type stubRegistry struct{ zones map[string][]zonedomain.EvaluatorPort }

func (r stubRegistry) ZonesFor(cam string) []zonedomain.EvaluatorPort { return r.zones[cam] }

func (r stubRegistry) CameraIdentifiers() []string {
	out := make([]string, 0, len(r.zones))
	for k := range r.zones {
		out = append(out, k)
	}
	return out
}

type stubQuery struct {
	gotFilters eventsdomain.Filters
	gotAfter   eventsdomain.AfterKey
}

func (q *stubQuery) List(_ context.Context, f eventsdomain.Filters, after eventsdomain.AfterKey, _ int) ([]eventsdomain.StoredEvent, eventsdomain.AfterKey, error) {
	q.gotFilters = f
	q.gotAfter = after
	return []eventsdomain.StoredEvent{{ID: "e1"}}, eventsdomain.AfterKey{ID: "e1"}, nil
}

func TestMembershipFound(t *testing.T) {
	t.Parallel()

	z := stubZone{name: "porch", objects: []*detection.Object{{Label: "person", Relevant: true}}}
	s := New(stubRegistry{zones: map[string][]zonedomain.EvaluatorPort{"cam": {z}}}, nil)

	got, err := s.Membership(context.Background(), "cam", "porch")
	if err != nil {
		t.Fatalf("Membership: %v", err)
	}
	if got.Zone != "porch" || len(got.Objects) != 1 || got.Objects[0].Label != "person" {
		t.Fatalf("unexpected membership: %+v", got)
	}
}

func TestMembershipNotFound(t *testing.T) {
	t.Parallel()

	s := New(stubRegistry{zones: map[string][]zonedomain.EvaluatorPort{}}, nil)
	_, err := s.Membership(context.Background(), "cam", "missing")
	if err == nil {
		t.Fatalf("expected not found")
	}
	if perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("code = %v, want not found", perr.CodeOf(err))
	}
}

func TestHistoryPassesFiltersAndCursor(t *testing.T) {
	t.Parallel()

	q := &stubQuery{}
	s := New(stubRegistry{zones: map[string][]zonedomain.EvaluatorPort{}}, q)

	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	page, err := s.History(context.Background(), "front", "porch", domain.HistoryQuery{
		AfterID: "e0",
		AfterTS: ts.Format(time.RFC3339Nano),
		Limit:   5,
	})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if q.gotFilters.CameraIdentifier != "front" || q.gotFilters.ZoneName != "porch" {
		t.Fatalf("filters not forwarded: %+v", q.gotFilters)
	}
	if q.gotAfter.ID != "e0" || !q.gotAfter.CreatedAt.Equal(ts) {
		t.Fatalf("cursor not forwarded: %+v", q.gotAfter)
	}
	if len(page.Items) != 1 || page.After.ID != "e1" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestHistoryRejectsBadCursorTimestamp(t *testing.T) {
	t.Parallel()

	s := New(stubRegistry{zones: map[string][]zonedomain.EvaluatorPort{}}, &stubQuery{})
	_, err := s.History(context.Background(), "front", "porch", domain.HistoryQuery{AfterID: "e0", AfterTS: "yesterday"})
	if err == nil {
		t.Fatalf("expected invalid argument for bad after_ts")
	}
	if perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
		t.Fatalf("code = %v, want invalid argument", perr.CodeOf(err))
	}
}

func TestHistoryWithoutStorage(t *testing.T) {
	t.Parallel()

	s := New(stubRegistry{zones: map[string][]zonedomain.EvaluatorPort{}}, nil)
	_, err := s.History(context.Background(), "front", "porch", domain.HistoryQuery{})
	if err == nil {
		t.Fatalf("expected unavailable when history storage is off")
	}
}
