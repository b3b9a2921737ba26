// Package module wires the events service into the process
package module

import (
	"zonewatch/internal/modkit"
	"zonewatch/internal/modkit/httpkit"
	"zonewatch/internal/services/events/domain"
	"zonewatch/internal/services/events/service"
)

// Ports exposed by the events module
// Telemetry is nil when clickhouse is not configured
type Ports struct {
	Query     domain.QueryPort
	Recorder  domain.RecorderPort
	Telemetry *service.Telemetry
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the events module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	_ = modkit.Build(append([]modkit.Option{
		modkit.WithName("events"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	svc := service.New(deps.PG, deps.Bus, service.Config{
		SubscribeBuffer: cfg.SubscribeBuffer,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Query: svc, Recorder: svc}

	if deps.CH != nil {
		m.ports.Telemetry = service.NewTelemetry(deps.CH, service.TelemetryConfig{
			Table:         cfg.TelemetryTable,
			BatchSize:     cfg.TelemetryBatchSize,
			FlushInterval: cfg.TelemetryFlushInterval,
		})
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "events" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; history is served by the api module
func (m *Module) MountRoutes(_ httpkit.Router) {}
