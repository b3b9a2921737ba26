// @title         Zonewatch API
// @version       0.1.0
// @description   Zone membership state, history and live stream

package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"zonewatch/internal/modkit"
	"zonewatch/internal/modkit/module"
	"zonewatch/internal/modkit/repokit"
	"zonewatch/internal/platform/bus"
	"zonewatch/internal/platform/config"
	"zonewatch/internal/platform/logger"
	phttp "zonewatch/internal/platform/net/http"
	"zonewatch/internal/platform/store"

	"zonewatch/internal/adapters/source/replay"
	"zonewatch/internal/services/api"
	camcfg "zonewatch/internal/services/cameras/config"
	eventsdom "zonewatch/internal/services/events/domain"
	eventsmod "zonewatch/internal/services/events/module"
	nvrdom "zonewatch/internal/services/nvr/domain"
	nvrmod "zonewatch/internal/services/nvr/module"
	zonesmod "zonewatch/internal/services/zones/module"
)

func main() {
	_ = godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	l := logger.Get()

	var (
		fConfig     = flag.String("config", "cameras.yaml", "camera and zone configuration file")
		fDetections = flag.String("detections", "detections.jsonl", "detection log to consume")
		fRate       = flag.Float64("rate", 0, "playback rate in snapshots/sec (0 = unthrottled)")
	)
	flag.Parse()

	camConfig, err := camcfg.Load(*fConfig)
	if err != nil {
		l.Panic().Err(err).Msg("camera config rejected")
	}

	// history and telemetry are optional; a backend is opened only when its
	// DBURL is present (or explicitly forced on)
	pgURL := pgCfg.MayString("DBURL", "")
	chURL := chCfg.MayString("DBURL", "")
	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     pgCfg.MayBool("ENABLED", pgURL != ""),
			URL:         pgURL,
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled:    chCfg.MayBool("ENABLED", chURL != ""),
			URL:        chURL,
			ClientName: "zonewatch",
			ClientTag:  "nvr",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(context.Background(), st)

	b := bus.New(*l)
	defer b.Close()

	deps := modkit.Deps{
		Log: *l,
		Cfg: root,
		Bus: b,
		PG:  st.PG,
		CH:  st.CH,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// zone construction happens once; the registry is immutable afterwards
	zones := zonesmod.New(deps, camConfig)
	module.Register(zones.Name(), zones.Ports())
	registry := module.MustPortsOf[zonesmod.Ports](zones).Registry

	// history + telemetry only when storage is configured
	var ev *eventsmod.Module
	var telemetry nvrdom.TelemetryPort
	if st.PG != nil {
		ev = eventsmod.New(deps)
		module.Register(ev.Name(), ev.Ports())
		ports := module.MustPortsOf[eventsmod.Ports](ev)

		go func() {
			if err := ports.Recorder.Run(ctx); err != nil && ctx.Err() == nil {
				l.Error().Err(err).Msg("event recorder stopped")
			}
		}()
		if ports.Telemetry != nil {
			telemetry = ports.Telemetry
			go func() {
				if err := ports.Telemetry.Run(ctx); err != nil && ctx.Err() == nil {
					l.Error().Err(err).Msg("telemetry writer stopped")
				}
			}()
		}
	}

	source := replay.New(replay.Options{Path: *fDetections, Rate: *fRate})
	nvr := nvrmod.New(deps, modkit.WithPorts(nvrdom.Ports{
		Registry:  registry,
		Source:    source,
		Telemetry: telemetry,
	}))
	module.Register(nvr.Name(), nvr.Ports())
	runner := module.MustPortsOf[nvrmod.Ports](nvr).Runner

	go func() {
		if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
			l.Error().Err(err).Msg("pipeline stopped")
		}
	}()

	srv := phttp.NewServer(apiCfg)
	var query eventsdom.QueryPort
	if ev != nil {
		query = module.MustPortsOf[eventsmod.Ports](ev).Query
	}
	api.Mount(srv.Router(), api.Options{
		Config:         apiCfg,
		Bus:            b,
		Registry:       registry,
		Query:          query,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
