// Package api provides the HTTP API for the zone pipeline
package api

import (
	"zonewatch/internal/platform/bus"
	"zonewatch/internal/platform/config"
	"zonewatch/internal/platform/metrics"
	phttp "zonewatch/internal/platform/net/http"

	"zonewatch/internal/modkit"
	"zonewatch/internal/modkit/httpkit"
	"zonewatch/internal/modkit/module"

	streammod "zonewatch/internal/services/api/stream/module"
	apizones "zonewatch/internal/services/api/zones/module"
	eventsdomain "zonewatch/internal/services/events/domain"
	zonedomain "zonewatch/internal/services/zones/domain"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Bus            *bus.Bus
	Registry       zonedomain.RegistryPort
	Query          eventsdomain.QueryPort
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		Bus: opt.Bus,
	}

	zonesAPI := apizones.New(deps, modkit.WithPorts(apizones.Ports{
		Registry: opt.Registry,
		Query:    opt.Query,
	}))
	streamAPI := streammod.New(deps)

	mods := []module.Module{
		zonesAPI,
		streamAPI,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		phttp.MountSwagger(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
		r.Handle("/metrics", metrics.Handler())

		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
