package module

import (
	"time"

	"parliametrics/internal/platform/config"
)

// Options holds configuration options for the seed module
type Options struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RetryBase  time.Duration
	Delay      time.Duration

	// MembersFrom is the first month a full members pass reads
	MembersFrom time.Time
	// SpeechesSince bounds the first speech pass on an empty archive
	SpeechesSince time.Time
}

// FromConfig reads the seed options from config with CORE_SEED_ prefix
func FromConfig(cfg config.Conf) Options {
	sd := cfg.Prefix("CORE_SEED_")
	return Options{
		BaseURL:       sd.MayURL("BASE_URL", "https://www.parliament.bg/api/v1"),
		UserAgent:     sd.MayString("USER_AGENT", "Parliametrics/0.1"),
		Timeout:       sd.MayDuration("TIMEOUT", 30*time.Second),
		MaxRetries:    sd.MayInt("RETRIES", 3),
		RetryBase:     sd.MayDuration("RETRY_BASE", 500*time.Millisecond),
		Delay:         sd.MayDuration("DELAY", 0),
		MembersFrom:   sd.MayDate("MEMBERS_FROM", "2006-01", time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)),
		SpeechesSince: sd.MayDate("SPEECHES_SINCE", "2006-01-02", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
}

