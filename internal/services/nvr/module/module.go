// Package module wires the pipeline driver from injected ports
package module

import (
	"zonewatch/internal/modkit"
	"zonewatch/internal/modkit/httpkit"
	"zonewatch/internal/services/nvr/domain"
	"zonewatch/internal/services/nvr/service"
)

// Ports exposed by the nvr module
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the nvr module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("nvr"),
	}, opts...)...)

	injected, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("nvr module: expected WithPorts(nvr/domain.Ports)")
	}
	if injected.Registry == nil || injected.Source == nil {
		panic("nvr module: Ports missing Registry or Source")
	}

	cfg := FromConfig(deps.Cfg)
	runner := service.New(injected.Registry, injected.Source, injected.Telemetry, service.Config{
		QueueDepth: cfg.QueueDepth,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Runner: runner}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "nvr" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
