// Package service drives per-camera zone evaluation off a detection source
package service

import (
	"context"
	"sync"
	"time"

	"zonewatch/internal/platform/logger"
	"zonewatch/internal/platform/metrics"
	"zonewatch/internal/services/nvr/domain"
	zonedomain "zonewatch/internal/services/zones/domain"
)

// Config carries runtime knobs for the pipeline driver
type Config struct {
	// QueueDepth is the per-camera snapshot buffer; overflow drops the frame
	QueueDepth int
}

func (c Config) withDefaults() Config {
	if c.QueueDepth <= 0 {
		c.QueueDepth = 8
	}
	return c
}

// Runner fans detector snapshots out to one sequential loop per camera
// every Zone is only ever driven by its camera's loop, so zone evaluation
// needs no locking of its own
type Runner struct {
	log       *logger.Logger
	registry  zonedomain.RegistryPort
	source    domain.SourcePort
	telemetry domain.TelemetryPort
	cfg       Config
}

// New constructs the pipeline driver; telemetry may be nil
func New(registry zonedomain.RegistryPort, source domain.SourcePort, telemetry domain.TelemetryPort, cfg Config) *Runner {
	if registry == nil || source == nil {
		panic("nvr.Runner requires a zone registry and a source")
	}
	return &Runner{
		log:       logger.Named("nvr"),
		registry:  registry,
		source:    source,
		telemetry: telemetry,
		cfg:       cfg.withDefaults(),
	}
}

// Run consumes the source until it closes or ctx is cancelled
// per-camera lanes are created on first sight of a camera identifier
func (r *Runner) Run(ctx context.Context) error {
	snaps, err := r.source.Snapshots(ctx)
	if err != nil {
		return err
	}

	lanes := make(map[string]chan domain.Snapshot)
	var wg sync.WaitGroup

	stop := func() {
		for _, lane := range lanes {
			close(lane)
		}
		wg.Wait()
	}

	for {
		select {
		case <-ctx.Done():
			stop()
			return ctx.Err()
		case snap, ok := <-snaps:
			if !ok {
				stop()
				return nil
			}
			cam := snap.Frame.CameraIdentifier
			lane := lanes[cam]
			if lane == nil {
				lane = make(chan domain.Snapshot, r.cfg.QueueDepth)
				lanes[cam] = lane
				wg.Add(1)
				go func() {
					defer wg.Done()
					r.evalLoop(ctx, cam, lane)
				}()
			}
			select {
			case lane <- snap:
			default:
				// the camera loop is behind; shedding beats queueing stale frames
				r.log.Warn().Str("camera_id", cam).Str("frame_id", snap.Frame.FrameID).Msg("frame dropped")
			}
		}
	}
}

// evalLoop is the single writer for every zone of one camera
func (r *Runner) evalLoop(ctx context.Context, cameraID string, lane <-chan domain.Snapshot) {
	ctx = logger.WithCamera(ctx, cameraID)
	log := logger.C(ctx)
	zones := r.registry.ZonesFor(cameraID)
	if len(zones) == 0 {
		log.Warn().Msg("no zones configured for camera, evaluating nothing")
	}

	for snap := range lane {
		start := time.Now()
		for _, z := range zones {
			z.Evaluate(snap.Frame, snap.Objects)
		}
		metrics.FramesEvaluated.WithLabelValues(cameraID).Inc()
		metrics.EvalDuration.WithLabelValues(cameraID).Observe(time.Since(start).Seconds())

		if r.telemetry != nil {
			r.telemetry.RecordDetections(ctx, snap.Frame, snap.Objects)
		}
	}
}
