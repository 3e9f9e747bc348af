package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "parliametrics/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func debugMux(enabled bool) *chi.Mux {
	mux := chi.NewRouter()
	phttp.MountDebug(phttp.AdaptChi(mux), "/debug", enabled)
	return mux
}

func TestMountDebug_ServesProfiles(t *testing.T) {
	mux := debugMux(true)

	for _, path := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
		if rec.Header().Get("Cache-Control") == "" {
			t.Fatalf("%s: expected no-cache headers", path)
		}
	}
}

func TestMountDebug_Disabled(t *testing.T) {
	rec := httptest.NewRecorder()
	debugMux(false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when disabled, got %d", rec.Code)
	}
}
