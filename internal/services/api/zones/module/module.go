// Package module wires the zones API using modkit
package module

import (
	"net/http"

	"zonewatch/internal/modkit"
	"zonewatch/internal/modkit/httpkit"
	zhttp "zonewatch/internal/services/api/zones/http"
	zsvc "zonewatch/internal/services/api/zones/service"
	eventsdomain "zonewatch/internal/services/events/domain"
	zonedomain "zonewatch/internal/services/zones/domain"
)

// Ports declares the injected ports for this API module
// Query may be nil when history storage is disabled
type Ports struct {
	Registry zonedomain.RegistryPort
	Query    eventsdomain.QueryPort
}

// Module implements the zones API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc zsvc.Service
}

// New constructs the zones API module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("zones"),
		modkit.WithPrefix("/zones"),
	}, opts...)...)

	injected, ok := b.Ports.(Ports)
	if !ok {
		panic("zones API module: expected WithPorts(module.Ports)")
	}
	if injected.Registry == nil {
		panic("zones API module requires the zone registry port")
	}

	svc := zsvc.New(injected.Registry, injected.Query)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		zhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Ports returns the service for cross-module lookups
func (m *Module) Ports() any { return m.svc }
