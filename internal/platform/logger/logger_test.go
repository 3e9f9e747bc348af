package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	kit "parliametrics/internal/platform/testkit"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestParseLevel_AllBranches(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"panic", "panic"},
		{"", "debug"},
		{"   nonsense   ", "debug"},
	}
	for _, c := range cases {
		lvl := parseLevel(c.in)
		if strings.ToLower(lvl.String()) != c.want {
			t.Fatalf("parseLevel(%q) = %q, want %q", c.in, lvl, c.want)
		}
	}
}

func decodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		var m map[string]any
		if err := json.Unmarshal([]byte(l), &m); err != nil {
			t.Fatalf("not json: %q", l)
		}
		lines = append(lines, m)
	}
	return lines
}

func TestInit_RootNamedAndRequestScoped(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "info",
		Format:       "json",
		Service:      "parliametrics-browse",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})

	Get().Debug().Msg("below level")
	Get().Info().Msg("root")
	Named("archive").Info().Msg("named")
	C(WithRequest(context.Background(), "req-123")).Info().Msg("scoped")
	C(context.Background()).Info().Msg("unscoped")

	lines := decodeLines(t, buf.String())
	if len(lines) != 4 {
		t.Fatalf("want 4 lines, got %d: %s", len(lines), buf.String())
	}
	for _, l := range lines {
		if l["service"] != "parliametrics-browse" || l["build"] != "test" {
			t.Fatalf("static fields missing: %v", l)
		}
	}
	if lines[1]["component"] != "archive" {
		t.Fatalf("named = %v", lines[1])
	}
	if lines[2]["request_id"] != "req-123" {
		t.Fatalf("scoped = %v", lines[2])
	}
	if _, ok := lines[3]["request_id"]; ok {
		t.Fatalf("unscoped carries a request id: %v", lines[3])
	}
	if Named("") != Get() {
		t.Fatalf("empty component should return the root")
	}
}

func TestFromEnv_Independently(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_COMPONENT", "comp-b")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if strings.ToLower(opt.Level) != "warn" {
		t.Fatalf("FromEnv Level = %q, want warn", opt.Level)
	}
	if opt.Format != "json" || opt.Service != "svc-b" || opt.Component != "comp-b" {
		t.Fatalf("FromEnv fields mismatch: %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv caller/sample mismatch: %+v", opt)
	}
	if opt.File != "" || opt.MaxSizeMB != 20 || opt.MaxBackups != 3 {
		t.Fatalf("FromEnv file defaults mismatch: %+v", opt)
	}
}

func TestOutput_FileAndWriter(t *testing.T) {
	dir := t.TempDir()

	w := output(Options{File: dir + "/browse.log", Format: "json", MaxSizeMB: 1})
	lj, ok := w.(*lumberjack.Logger)
	if !ok {
		t.Fatalf("expected a rotating file writer, got %T", w)
	}
	if _, err := lj.Write([]byte("{}\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = lj.Close()
	if _, err := os.Stat(dir + "/browse.log"); err != nil {
		t.Fatalf("log file not created: %v", err)
	}

	if _, ok := output(Options{File: dir + "/x.log", Format: "console"}).(zerolog.ConsoleWriter); !ok {
		t.Fatalf("console format should wrap the file writer")
	}

	var buf bytes.Buffer
	if got := output(Options{Writer: &buf, File: dir + "/y.log"}); got != &buf {
		t.Fatalf("explicit writer should win over file")
	}
}

func TestWithRequest_EmptyIDKeepsContext(t *testing.T) {
	ctx := context.Background()
	if WithRequest(ctx, "") != ctx {
		t.Fatalf("empty id should not wrap the context")
	}
}

func TestReplace_Restores(t *testing.T) {
	var buf bytes.Buffer
	restore := Replace(zerolog.New(&buf))
	Named("swap").Info().Msg("to-buffer")
	restore()

	kit.MustContain(t, buf.String(), "to-buffer")
	kit.MustContain(t, buf.String(), `"component":"swap"`)

	buf.Reset()
	Get().Info().Msg("after-restore")
	kit.MustNotContain(t, buf.String(), "after-restore")
}
