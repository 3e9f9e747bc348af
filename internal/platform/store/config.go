package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	// AppName is reported to postgres as application_name
	AppName string

	PG PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot knobs
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}
