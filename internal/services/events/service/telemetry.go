package service

import (
	"context"
	"time"

	"zonewatch/internal/core/detection"
	"zonewatch/internal/platform/logger"
	"zonewatch/internal/platform/store"
	camdomain "zonewatch/internal/services/cameras/domain"
)

// TelemetryConfig tunes the clickhouse batcher
type TelemetryConfig struct {
	Table         string
	BatchSize     int
	FlushInterval time.Duration
	QueueDepth    int
}

func (c TelemetryConfig) withDefaults() TelemetryConfig {
	if c.Table == "" {
		c.Table = "detection_telemetry"
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 500
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = 2 * time.Second
	}
	if c.QueueDepth <= 0 {
		c.QueueDepth = 4096
	}
	return c
}

var telemetryCols = []string{
	"camera_identifier", "frame_id", "captured_at",
	"label", "confidence", "rel_x1", "rel_y1", "rel_x2", "rel_y2",
}

// Telemetry batches raw per-frame detections into clickhouse
// RecordDetections never blocks the frame loop; overflow is shed
type Telemetry struct {
	log *logger.Logger
	ch  store.Clickhouse
	cfg TelemetryConfig
	in  chan []any
}

// NewTelemetry constructs the batcher; Run must be started for writes to flow
func NewTelemetry(ch store.Clickhouse, cfg TelemetryConfig) *Telemetry {
	if ch == nil {
		panic("events.Telemetry requires a clickhouse seam")
	}
	cfg = cfg.withDefaults()
	return &Telemetry{
		log: logger.Named("telemetry"),
		ch:  ch,
		cfg: cfg,
		in:  make(chan []any, cfg.QueueDepth),
	}
}

// RecordDetections implements the nvr telemetry port
func (t *Telemetry) RecordDetections(_ context.Context, frame camdomain.SharedFrame, objects []*detection.Object) {
	for _, obj := range objects {
		row := []any{
			frame.CameraIdentifier, frame.FrameID, frame.CapturedAt,
			obj.Label, obj.Confidence, obj.RelX1, obj.RelY1, obj.RelX2, obj.RelY2,
		}
		select {
		case t.in <- row:
		default:
			t.log.Warn().Str("camera_id", frame.CameraIdentifier).Msg("telemetry queue full, row dropped")
			return
		}
	}
}

// Run drains the queue into clickhouse until ctx ends, then flushes
func (t *Telemetry) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([][]any, 0, t.cfg.BatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		// detached context so a shutdown flush still lands
		fctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := t.ch.Insert(fctx, t.cfg.Table, telemetryCols, batch); err != nil {
			t.log.Error().Err(err).Int("rows", len(batch)).Msg("telemetry insert failed")
		}
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return ctx.Err()
		case row := <-t.in:
			batch = append(batch, row)
			if len(batch) >= t.cfg.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
