// Package modkit provides module wiring and core deps
package modkit

import (
	"parliametrics/internal/modkit/repokit"
	"parliametrics/internal/platform/config"
	"parliametrics/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// PG is nil when the process runs without a database
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}
