// Package module builds every configured zone and exposes the registry port
package module

import (
	"sort"

	"zonewatch/internal/modkit"
	"zonewatch/internal/modkit/httpkit"
	camdomain "zonewatch/internal/services/cameras/domain"
	"zonewatch/internal/services/zones/domain"
	"zonewatch/internal/services/zones/service"
)

// Ports exposed by the zones module
type Ports struct {
	Registry domain.RegistryPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	zones map[string][]domain.EvaluatorPort
}

// New constructs all zones for all cameras in cfg
// one Zone instance per configured zone, owned by its camera for the process lifetime
func New(deps modkit.Deps, cfg camdomain.Config, opts ...modkit.Option) *Module {
	_ = modkit.Build(append([]modkit.Option{
		modkit.WithName("zones"),
	}, opts...)...)

	if deps.Bus == nil {
		panic("zones module requires a bus")
	}

	m := &Module{deps: deps, zones: make(map[string][]domain.EvaluatorPort, len(cfg.Cameras))}
	for _, cam := range cfg.Cameras {
		built := make([]domain.EvaluatorPort, 0, len(cam.Zones))
		for _, zc := range cam.Zones {
			built = append(built, service.NewZone(deps.Bus, cam, zc))
		}
		m.zones[cam.Identifier] = built
	}
	return m
}

// ZonesFor returns the zones of one camera, construction order preserved
func (m *Module) ZonesFor(cameraIdentifier string) []domain.EvaluatorPort {
	return m.zones[cameraIdentifier]
}

// CameraIdentifiers returns all camera identifiers with at least one zone, sorted
func (m *Module) CameraIdentifiers() []string {
	out := make([]string, 0, len(m.zones))
	for id := range m.zones {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "zones" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return Ports{Registry: m} }

// MountRoutes satisfies modkit.Module; zones has no HTTP surface of its own
func (m *Module) MountRoutes(_ httpkit.Router) {}
