// Package domain defines the pipeline driver contracts
package domain

import (
	"context"

	"zonewatch/internal/core/detection"
	camdomain "zonewatch/internal/services/cameras/domain"
	zonedomain "zonewatch/internal/services/zones/domain"
)

// Snapshot is one detector cycle routed through the pipeline
type Snapshot struct {
	Frame   camdomain.SharedFrame
	Objects []*detection.Object
}

// SourcePort delivers detector snapshots
// the returned channel closes when the source is exhausted or ctx ends
type SourcePort interface {
	Snapshots(ctx context.Context) (<-chan Snapshot, error)
}

// TelemetryPort receives every raw detection batch for columnar storage
// implementations must not block the frame loop
type TelemetryPort interface {
	RecordDetections(ctx context.Context, frame camdomain.SharedFrame, objects []*detection.Object)
}

// RunnerPort drives the pipeline until the source closes or ctx ends
type RunnerPort interface {
	Run(ctx context.Context) error
}

// Ports are the collaborators the nvr module needs injected
// Telemetry is optional and may be nil
type Ports struct {
	Registry  zonedomain.RegistryPort
	Source    SourcePort
	Telemetry TelemetryPort
}
