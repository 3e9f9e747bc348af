// Package module holds the contract every API module implements
// it is a leaf so modules can export ports without import cycles
package module

import (
	phttp "parliametrics/internal/platform/net/http"
)

// Module is one mountable slice of the API
type Module interface {
	MountRoutes(r phttp.Router)
	// Ports is the value other modules or binaries pull ports from, nil when none
	Ports() any
	Name() string
}
