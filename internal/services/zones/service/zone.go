// Package service implements zone membership evaluation
package service

import (
	"sync"

	"zonewatch/internal/core/detection"
	"zonewatch/internal/core/geometry"
	"zonewatch/internal/core/objectfilter"
	"zonewatch/internal/platform/bus"
	"zonewatch/internal/platform/logger"
	"zonewatch/internal/platform/metrics"
	camdomain "zonewatch/internal/services/cameras/domain"
	"zonewatch/internal/services/zones/domain"
)

// Zone limits object significance to a polygonal sub-region of a camera's view
// polygon and filters are immutable after construction; the stored membership
// list is replaced wholesale on change, never partially mutated
type Zone struct {
	log *logger.Logger
	bus *bus.Bus

	cameraID string
	name     string
	res      geometry.Resolution
	polygon  geometry.Polygon
	filters  map[string]*objectfilter.Filter

	// guards objectsInZone for readers outside the camera's frame loop
	mu            sync.RWMutex
	objectsInZone []*detection.Object
}

// NewZone builds one zone from its camera and zone configuration
func NewZone(b *bus.Bus, cam camdomain.Camera, cfg camdomain.ZoneConfig) *Zone {
	mask := cam.MaskPolygons()
	filters := make(map[string]*objectfilter.Filter, len(cfg.Labels))
	for _, lc := range cfg.Labels {
		filters[lc.Label] = objectfilter.New(cam.Resolution, lc, mask)
	}
	zl := logger.Named("zone").With().
		Str("camera_id", cam.Identifier).
		Str("zone", cfg.Name).
		Logger()
	return &Zone{
		log:      &zl,
		bus:      b,
		cameraID: cam.Identifier,
		name:     cfg.Name,
		res:      cam.Resolution,
		polygon:  geometry.FromNormalized(cfg.Coordinates, cam.Resolution),
		filters:  filters,
	}
}

// Evaluate runs one detection cycle against this zone
// detections are checked in input order: label filter first (cheap), then
// containment; accepted objects get their Relevant flag set in place and,
// when the matching filter asks for it, TriggerRecorder as well
// rejected objects are left untouched
func (z *Zone) Evaluate(frame camdomain.SharedFrame, objects []*detection.Object) []*detection.Object {
	var accepted []*detection.Object
	for _, obj := range objects {
		f := z.filters[detection.NormalizeLabel(obj.Label)]
		if f == nil {
			continue
		}
		if !f.Passes(obj) {
			continue
		}
		if !geometry.ContainsObject(z.res, obj, z.polygon) {
			continue
		}
		obj.Relevant = true
		if f.TriggersRecorder() {
			obj.TriggerRecorder = true
		}
		accepted = append(accepted, obj)
	}
	metrics.ObjectsAccepted.WithLabelValues(z.cameraID, z.name).Add(float64(len(accepted)))

	z.setObjectsInZone(frame, accepted)
	return accepted
}

// setObjectsInZone stores the new membership and publishes on change
// value equality against the stored list suppresses duplicate events
// on a static scene
func (z *Zone) setObjectsInZone(frame camdomain.SharedFrame, objects []*detection.Object) {
	z.mu.Lock()
	if detection.EqualObjects(objects, z.objectsInZone) {
		z.mu.Unlock()
		return
	}
	z.objectsInZone = objects
	z.mu.Unlock()

	metrics.MembershipEvents.WithLabelValues(z.cameraID, z.name).Inc()
	z.log.Debug().
		Str("frame_id", frame.FrameID).
		Int("objects", len(objects)).
		Msg("zone membership changed")

	// fire and forget; subscriber-side failures are invisible here
	z.bus.Publish(domain.Topic(z.cameraID, z.name), domain.MembershipEvent{
		CameraIdentifier: z.cameraID,
		Frame:            frame,
		Zone:             domain.ZoneRef{CameraIdentifier: z.cameraID, Name: z.name},
		Objects:          objects,
	})
}

// Name returns the zone name
func (z *Zone) Name() string { return z.name }

// Polygon returns the zone polygon in pixel coordinates
func (z *Zone) Polygon() geometry.Polygon { return z.polygon }

// Filters returns the per-label filter registry
func (z *Zone) Filters() map[string]*objectfilter.Filter { return z.filters }

// ObjectsInZone returns the membership from the most recent completed evaluation
func (z *Zone) ObjectsInZone() []*detection.Object {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.objectsInZone
}
