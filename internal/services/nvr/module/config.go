package module

import "zonewatch/internal/platform/config"

// Config is the env-driven tuning for the pipeline driver
type Config struct {
	QueueDepth int
}

// FromConfig reads the CORE_NVR_* namespace
func FromConfig(cfg config.Conf) Config {
	c := cfg.Prefix("CORE_NVR_")
	return Config{
		QueueDepth: c.MayInt("QUEUE_DEPTH", 8),
	}
}
