package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	kit "parliametrics/internal/platform/testkit"
)

type archiveStub struct {
	mu      sync.Mutex
	queries []string
	failAll bool
}

func (a *archiveStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/speeches/filters", func(w http.ResponseWriter, _ *http.Request) {
		if a.failAll {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"speakers":[{"id":5,"name":"Иван Петров","middle_name":null},{"id":6,"name":"Мария Иванова","middle_name":"Г."}],
			"parties":[{"id":7,"name":"Партия на реда","abbr":"ПР"}],
			"from_tribune_options":[true,false],
			"dates":["2021-01-13","2023-12-20"]}`))
	})
	mux.HandleFunc("/api/v1/speeches", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.queries = append(a.queries, r.URL.RawQuery)
		a.mu.Unlock()
		if a.failAll {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"speech_id":1,"speech_content":"Уважаеми колеги","datestamp":"2023-03-15",
			"from_tribune":true,"speaker_name":"Иван Петров","party_abbreviation":"ПР","party_name":"Партия на реда"}]`))
	})
	return mux
}

func (a *archiveStub) lastQuery() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.queries) == 0 {
		return ""
	}
	return a.queries[len(a.queries)-1]
}

func start(t *testing.T, a *archiveStub) string {
	t.Helper()
	srv := httptest.NewServer(a.handler())
	t.Cleanup(srv.Close)
	return srv.URL + "/api/v1"
}

func TestRun_FetchesAndRendersPage(t *testing.T) {
	a := &archiveStub{}
	api := start(t, a)

	var out, errOut bytes.Buffer
	err := run(context.Background(), []string{
		"--api", api, "--lang", "en",
		"--speaker-name", "петров", "--party", "7",
		"--tribune", "yes", "--page", "2", "--page-size", "10",
	}, &out, &errOut)
	if err != nil {
		t.Fatalf("run: %v stderr=%s", err, errOut.String())
	}

	want := "skip=10&limit=10&speaker_ids=5&party_ids=7&from_tribune=true&date_from=2021-01-13&date_to=2023-12-20"
	if got := a.lastQuery(); got != want {
		t.Fatalf("query = %q\nwant    %q", got, want)
	}
	kit.MustContain(t, out.String(), "Speeches")
	kit.MustContain(t, out.String(), "Иван Петров (ПР)")
	kit.MustContain(t, out.String(), "Уважаеми колеги")
}

func TestRun_UserDatesWinOverCatalog(t *testing.T) {
	a := &archiveStub{}
	api := start(t, a)

	var out, errOut bytes.Buffer
	if err := run(context.Background(), []string{"--api", api, "--from", "2022-05-01"}, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := a.lastQuery(); !strings.Contains(got, "date_from=2022-05-01&date_to=2023-12-20") {
		t.Fatalf("query = %q", got)
	}
}

func TestRun_Filters(t *testing.T) {
	a := &archiveStub{}
	api := start(t, a)

	var out, errOut bytes.Buffer
	if err := run(context.Background(), []string{"--api", api, "--filters", "--lang", "bg"}, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	kit.MustContain(t, out.String(), "Мария Иванова Г.")
	kit.MustContain(t, out.String(), "Партия на реда (ПР)")
	kit.MustContain(t, out.String(), "2021-01-13 .. 2023-12-20 (2)")
	if a.lastQuery() != "" {
		t.Fatalf("--filters must not fetch speeches")
	}
}

func TestRun_ArchiveDown(t *testing.T) {
	a := &archiveStub{failAll: true}
	api := start(t, a)

	var out, errOut bytes.Buffer
	err := run(context.Background(), []string{"--api", api, "--lang", "en"}, &out, &errOut)
	if err == nil {
		t.Fatalf("expected fetch failure")
	}
	kit.MustContain(t, errOut.String(), "Could not load filters")
	kit.MustContain(t, errOut.String(), "Could not load speeches")
	kit.MustNotContain(t, out.String(), "Could not load")
}

func TestRun_UnknownName(t *testing.T) {
	api := start(t, &archiveStub{})

	var out, errOut bytes.Buffer
	if err := run(context.Background(), []string{"--api", api, "--party-name", "нищо"}, &out, &errOut); err == nil {
		t.Fatalf("expected an error for an unmatched party name")
	}
	kit.MustContain(t, errOut.String(), "no party matches")
}

func TestRun_UsageErrors(t *testing.T) {
	cases := [][]string{
		{"--page", "0"},
		{"--tribune", "balcony"},
		{"--lang", "xx-invalid-tag-"},
		{"stray"},
		{"--no-such-flag"},
		{"--speaker-name", ""},
		{"--party-name", "   "},
		{"--speaker-name", "Иван", "--speaker-name", ""},
	}
	for _, args := range cases {
		var out, errOut bytes.Buffer
		err := run(context.Background(), args, &out, &errOut)
		if !errors.Is(err, errUsage) {
			t.Errorf("%v: err = %v, want usage error", args, err)
		}
	}
}

func TestRun_HelpAndVersion(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run(context.Background(), []string{"--help"}, &out, &errOut); err != nil {
		t.Fatalf("help: %v", err)
	}
	kit.MustContain(t, errOut.String(), "--speaker-name")

	out.Reset()
	if err := run(context.Background(), []string{"--version"}, &out, &errOut); err != nil {
		t.Fatalf("version: %v", err)
	}
	kit.MustContain(t, out.String(), "parliametrics-browse dev")
}
