package config

import (
	"bytes"
	"testing"
	"time"

	"parliametrics/internal/platform/logger"
	kit "parliametrics/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func quiet(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	t.Cleanup(logger.Replace(zerolog.New(&buf)))
	return &buf
}

func TestPrefixNests(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("API_")
	if got := c.key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("key = %q", got)
	}
}

func TestMustString(t *testing.T) {
	quiet(t)
	c := New().Prefix("SERVICE_PGSQL_")
	t.Setenv("SERVICE_PGSQL_DBURL", "  postgres://archive ")
	if got := c.MustString("DBURL"); got != "postgres://archive" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { c.MustString("MISSING") })
}

func TestMayScalars(t *testing.T) {
	buf := quiet(t)
	c := New().Prefix("BROWSE_")
	t.Setenv("BROWSE_PAGE_SIZE", "50")
	t.Setenv("BROWSE_BAD_INT", "fifty")
	t.Setenv("BROWSE_FULL", "true")
	t.Setenv("BROWSE_BAD_BOOL", "sometimes")
	t.Setenv("BROWSE_TIMEOUT", "250ms")
	t.Setenv("BROWSE_NEG", "-1s")
	t.Setenv("BROWSE_LANG", " en ")

	if c.MayInt("PAGE_SIZE", 20) != 50 || c.MayInt("BAD_INT", 20) != 20 || c.MayInt("UNSET", 7) != 7 {
		t.Fatalf("MayInt mismatch")
	}
	if !c.MayBool("FULL", false) || !c.MayBool("BAD_BOOL", true) || c.MayBool("UNSET", false) {
		t.Fatalf("MayBool mismatch")
	}
	if c.MayDuration("TIMEOUT", time.Second) != 250*time.Millisecond ||
		c.MayDuration("NEG", time.Second) != time.Second {
		t.Fatalf("MayDuration mismatch")
	}
	if c.MayString("LANG", "bg") != "en" || c.MayString("UNSET", "bg") != "bg" {
		t.Fatalf("MayString mismatch")
	}

	kit.MustContain(t, buf.String(), "BROWSE_BAD_INT")
	kit.MustContain(t, buf.String(), "invalid bool; using default")
}

func TestMayURL(t *testing.T) {
	quiet(t)
	c := New()
	def := "http://localhost:8000/api/v1"
	cases := map[string]string{
		"":                                def,
		"https://archive.example/api/v1/": "https://archive.example/api/v1",
		"http://10.0.0.2:8000/api/v1":     "http://10.0.0.2:8000/api/v1",
		"archive.example/api/v1":          def,
		"ftp://archive.example/api/v1":    def,
		"http:///api/v1":                  def,
	}
	for in, want := range cases {
		t.Setenv("API_URL", in)
		if got := c.MayURL("API_URL", def); got != want {
			t.Errorf("MayURL(%q) = %q want %q", in, got, want)
		}
	}
}

func TestMayCSV(t *testing.T) {
	quiet(t)
	c := New().Prefix("CORE_API_")
	t.Setenv("CORE_API_CORS_ORIGINS", " https://a.example , ,https://b.example,")
	got := c.MayCSV("CORS_ORIGINS", nil)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("MayCSV = %#v", got)
	}
	t.Setenv("CORE_API_CORS_ORIGINS", " , ")
	if got := c.MayCSV("CORS_ORIGINS", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("separators only should fall back, got %#v", got)
	}
}

func TestMayDate(t *testing.T) {
	buf := quiet(t)
	c := New().Prefix("CORE_SEED_")
	def := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t.Setenv("CORE_SEED_MEMBERS_FROM", "2024-11")
	t.Setenv("CORE_SEED_SPEECHES_SINCE", "01.02.2025")

	if got := c.MayDate("MEMBERS_FROM", "2006-01", def); !got.Equal(time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("MayDate = %v", got)
	}
	if got := c.MayDate("SPEECHES_SINCE", "2006-01-02", def); !got.Equal(def) {
		t.Fatalf("malformed date should fall back, got %v", got)
	}
	if got := c.MayDate("UNSET", "2006-01-02", def); !got.Equal(def) {
		t.Fatalf("unset date should fall back, got %v", got)
	}
	kit.MustContain(t, buf.String(), "invalid date; using default")
}
