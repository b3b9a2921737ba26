// Package modkit provides module wiring and core deps
package modkit

import (
	"zonewatch/internal/modkit/repokit"
	"zonewatch/internal/platform/bus"
	"zonewatch/internal/platform/config"
	"zonewatch/internal/platform/logger"
	"zonewatch/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	Bus *bus.Bus
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional stores
func (d Deps) ZeroOK() bool { return true }
