// Package module wires the live stream endpoint using modkit
package module

import (
	"net/http"

	"zonewatch/internal/modkit"
	"zonewatch/internal/modkit/httpkit"
	shttp "zonewatch/internal/services/api/stream/http"
)

// Module implements the stream API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)
}

// New constructs the stream module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("stream"),
		modkit.WithPrefix("/stream"),
	}, opts...)...)

	if deps.Bus == nil {
		panic("stream module requires a bus")
	}

	m := &Module{deps: deps, name: b.Name, prefix: b.Prefix, mws: b.Mw}

	external := b.Register
	m.register = func(r httpkit.Router) {
		shttp.Register(r, deps.Bus)
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
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return nil }
