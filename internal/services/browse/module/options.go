package module

import (
	"time"

	"parliametrics/internal/platform/config"
	"parliametrics/internal/platform/i18n"
)

// Options controls the browse client. Values may also be read from env
type Options struct {
	APIURL    string
	UserAgent string
	Timeout   time.Duration
	PageSize  int
	Lang      i18n.Lang
}

// FromConfig reads options using BROWSE_ prefix
func FromConfig(cfg config.Conf) Options {
	b := cfg.Prefix("BROWSE_")
	lang, _ := i18n.ParseLang(b.MayString("LANG", string(i18n.Default)))
	return Options{
		APIURL:    b.MayURL("API_URL", "http://localhost:8000/api/v1"),
		UserAgent: b.MayString("USER_AGENT", "parliametrics-browse"),
		Timeout:   b.MayDuration("TIMEOUT", 15*time.Second),
		PageSize:  b.MayInt("PAGE_SIZE", 20),
		Lang:      lang,
	}
}
