package domain

import (
	"zonewatch/internal/core/detection"
	"zonewatch/internal/core/geometry"
	"zonewatch/internal/core/objectfilter"
	camdomain "zonewatch/internal/services/cameras/domain"
)

// EvaluatorPort is one zone's per-cycle evaluation surface
// Evaluate must only be driven by the owning camera's sequential frame loop
type EvaluatorPort interface {
	Name() string
	Evaluate(frame camdomain.SharedFrame, objects []*detection.Object) []*detection.Object
	ObjectsInZone() []*detection.Object
	Polygon() geometry.Polygon
	Filters() map[string]*objectfilter.Filter
}

// RegistryPort exposes the constructed zones for cross-module wiring
type RegistryPort interface {
	ZonesFor(cameraIdentifier string) []EvaluatorPort
	CameraIdentifiers() []string
}
