package archive

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"parliametrics/internal/services/browse/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient(Options{BaseURL: srv.URL + "/", Timeout: 2 * time.Second})
	c.newID = func() string { return "req-fixed" }
	return c, srv
}

func TestNewClientDefaults(t *testing.T) {
	t.Parallel()
	c := NewClient(Options{})
	if c.BaseURL() != baseURLDefault {
		t.Fatalf("base url = %q, want %q", c.BaseURL(), baseURLDefault)
	}
	if c.opts.UserAgent != defaultUA {
		t.Fatalf("user agent = %q", c.opts.UserAgent)
	}
	if c.http.Timeout != defaultTimeout {
		t.Fatalf("timeout = %v", c.http.Timeout)
	}
}

func TestFilters_DecodesCatalog(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/speeches/filters" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("X-Request-ID"); got != "req-fixed" {
			t.Errorf("X-Request-ID = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		_, _ = w.Write([]byte(`{
			"speakers":[{"id":1,"name":"Ivan Petrov","middle_name":"Georgiev"},{"id":2,"name":"Maria Ivanova","middle_name":null}],
			"parties":[{"id":7,"name":"Party Seven","abbr":"P7"}],
			"from_tribune_options":[true,false],
			"dates":["2022-01-01","2022-06-01","2023-01-01"]}`))
	})

	cat, err := c.Filters(context.Background())
	if err != nil {
		t.Fatalf("Filters err: %v", err)
	}
	if len(cat.Speakers) != 2 || cat.Speakers[0].MiddleName == nil || *cat.Speakers[0].MiddleName != "Georgiev" {
		t.Fatalf("speakers = %+v", cat.Speakers)
	}
	if cat.Speakers[1].MiddleName != nil {
		t.Fatalf("null middle name should decode to nil")
	}
	if len(cat.Parties) != 1 || cat.Parties[0].Abbr != "P7" {
		t.Fatalf("parties = %+v", cat.Parties)
	}
	if first, _ := cat.FirstDate(); first != "2022-01-01" {
		t.Fatalf("first date = %q", first)
	}
	if last, _ := cat.LastDate(); last != "2023-01-01" {
		t.Fatalf("last date = %q", last)
	}
}

func TestSpeeches_SendsOrderedQueryAndKeepsOrder(t *testing.T) {
	t.Parallel()
	var rawQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[
			{"speech_id":9,"speech_content":"b","datestamp":"2023-02-01","from_tribune":true,"speaker_name":"X","party_abbreviation":"P7","party_name":"Party Seven"},
			{"speech_id":3,"speech_content":"a","datestamp":"2023-01-01","from_tribune":false,"speaker_name":"Y","party_abbreviation":"P7","party_name":"Party Seven"}]`))
	})

	q := domain.Params{}.
		Add("skip", "20").
		Add("limit", "20").
		Add("party_ids", "7").
		Add("from_tribune", "true")
	got, err := c.Speeches(context.Background(), q)
	if err != nil {
		t.Fatalf("Speeches err: %v", err)
	}
	if rawQuery != "skip=20&limit=20&party_ids=7&from_tribune=true" {
		t.Fatalf("raw query = %q", rawQuery)
	}
	if len(got) != 2 || got[0].ID != 9 || got[1].ID != 3 {
		t.Fatalf("order not preserved: %+v", got)
	}
	if got[1].FromTribune {
		t.Fatalf("from_tribune decode wrong")
	}
}

func TestSpeeches_EmptyArrayIsNotNil(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})
	got, err := c.Speeches(context.Background(), nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non nil slice, got %#v", got)
	}
}

func TestGet_NonOKIsFetchError(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := c.Speeches(context.Background(), nil)
	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("want FetchError, got %T %v", err, err)
	}
	if fe.Status != http.StatusBadGateway || fe.Body != "upstream down" {
		t.Fatalf("fetch error = %+v", fe)
	}
	if domain.IsNetworkError(err) {
		t.Fatalf("status failure must not classify as network error")
	}
}

func TestGet_MalformedBodyIsFetchError(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"speakers": [`))
	})
	_, err := c.Filters(context.Background())
	if !domain.IsFetchError(err) {
		t.Fatalf("want FetchError, got %v", err)
	}
}

func TestGet_TransportFailureIsNetworkError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient(Options{BaseURL: base, Timeout: time.Second})
	_, err := c.Filters(context.Background())
	var ne *domain.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("want NetworkError, got %T %v", err, err)
	}
	if !strings.HasSuffix(ne.URL, "/speeches/filters") || ne.Op != "archive.filters" {
		t.Fatalf("network error = %+v", ne)
	}
}

func TestGet_CanceledContextIsNetworkError(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Speeches(ctx, nil)
	if !domain.IsNetworkError(err) {
		t.Fatalf("want NetworkError, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want wrapped context.Canceled, got %v", err)
	}
}

func TestGet_OversizedBodyIsFetchError(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("["))
		_, _ = w.Write([]byte(strings.Repeat(" ", maxBody)))
		_, _ = w.Write([]byte("]"))
	})

	_, err := c.Speeches(context.Background(), nil)
	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("want FetchError, got %T %v", err, err)
	}
	if !errors.Is(err, errTooLarge) {
		t.Fatalf("want too large cause, got %v", err)
	}
	if len(fe.Body) != diagTail {
		t.Fatalf("diagnostic body len = %d", len(fe.Body))
	}
}

func TestGet_BodyAtLimitDecodes(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[" + strings.Repeat(" ", maxBody-2) + "]"))
	})
	out, err := c.Speeches(context.Background(), nil)
	if err != nil || len(out) != 0 {
		t.Fatalf("Speeches = %v, %v", out, err)
	}
}

func TestTail_KeepsLastBytes(t *testing.T) {
	t.Parallel()
	b := []byte(strings.Repeat("a", diagTail) + "zz")
	got := tail(b)
	if len(got) != diagTail || !strings.HasSuffix(got, "zz") || got[0] != 'a' {
		t.Fatalf("tail kept the wrong end: len=%d suffix=%q", len(got), got[len(got)-2:])
	}
	if tail([]byte("short")) != "short" {
		t.Fatalf("short bodies are kept whole")
	}
}
