// zonewatch-replay runs the zone pipeline over a recorded detection log
// and prints every membership change, with no storage or HTTP surface.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"zonewatch/internal/modkit"
	"zonewatch/internal/modkit/module"
	"zonewatch/internal/platform/bus"
	"zonewatch/internal/platform/config"
	"zonewatch/internal/platform/logger"

	"zonewatch/internal/adapters/source/replay"
	camcfg "zonewatch/internal/services/cameras/config"
	nvrdom "zonewatch/internal/services/nvr/domain"
	nvrmod "zonewatch/internal/services/nvr/module"
	zonedom "zonewatch/internal/services/zones/domain"
	zonesmod "zonewatch/internal/services/zones/module"
)

func main() {
	_ = godotenv.Load()

	var (
		fConfig     = flag.String("config", "cameras.yaml", "camera and zone configuration file")
		fDetections = flag.String("detections", "detections.jsonl", "detection log to consume")
		fCamera     = flag.String("camera", "", "override the camera identifier on every snapshot")
		fRate       = flag.Float64("rate", 0, "playback rate in snapshots/sec (0 = unthrottled)")
	)
	flag.Parse()

	root := config.New()
	l := logger.Get()

	camConfig, err := camcfg.Load(*fConfig)
	if err != nil {
		l.Panic().Err(err).Msg("camera config rejected")
	}

	b := bus.New(*l)
	defer b.Close()

	deps := modkit.Deps{Log: *l, Cfg: root, Bus: b}

	zones := zonesmod.New(deps, camConfig)
	module.Register(zones.Name(), zones.Ports())
	registry := module.MustPortsOf[zonesmod.Ports](zones).Registry

	source := replay.New(replay.Options{
		Path:   *fDetections,
		Camera: *fCamera,
		Rate:   *fRate,
	})
	nvr := nvrmod.New(deps, modkit.WithPorts(nvrdom.Ports{
		Registry: registry,
		Source:   source,
	}))
	runner := module.MustPortsOf[nvrmod.Ports](nvr).Runner

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events, cancel := b.Subscribe(zonedom.TopicPattern, 256)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	enc := json.NewEncoder(os.Stdout)
	for {
		select {
		case ev := <-events:
			if err := enc.Encode(ev.Payload); err != nil {
				l.Error().Err(err).Msg("encode membership event")
			}
		case err := <-done:
			// drain whatever the pipeline published before the source closed
			for {
				select {
				case ev := <-events:
					if e := enc.Encode(ev.Payload); e != nil {
						l.Error().Err(e).Msg("encode membership event")
					}
				default:
					if err != nil && ctx.Err() == nil {
						fmt.Fprintln(os.Stderr, err)
						os.Exit(1)
					}
					return
				}
			}
		}
	}
}
