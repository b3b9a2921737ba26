package module

import (
	"time"

	"zonewatch/internal/platform/config"
)

// Config is the env-driven tuning for the events service
type Config struct {
	SubscribeBuffer        int
	TelemetryTable         string
	TelemetryBatchSize     int
	TelemetryFlushInterval time.Duration
}

// FromConfig reads the CORE_EVENTS_* namespace
func FromConfig(cfg config.Conf) Config {
	c := cfg.Prefix("CORE_EVENTS_")
	return Config{
		SubscribeBuffer:        c.MayInt("SUBSCRIBE_BUFFER", 256),
		TelemetryTable:         c.MayString("TELEMETRY_TABLE", "detection_telemetry"),
		TelemetryBatchSize:     c.MayInt("TELEMETRY_BATCH_SIZE", 500),
		TelemetryFlushInterval: c.MayDuration("TELEMETRY_FLUSH_INTERVAL", 2*time.Second),
	}
}
