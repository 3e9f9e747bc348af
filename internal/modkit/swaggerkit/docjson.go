package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"

	"parliametrics/internal/platform/config"
)

//go:embed openapi.json
var openapiDoc []byte

// docReader is a seam so tests can inject invalid JSON
var docReader = func() []byte { return openapiDoc }

// serveDocJSON serves the embedded OpenAPI document with deploy time tweaks applied
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal(docReader(), &spec); err != nil {
			http.Error(w, "openapi document parse error", http.StatusInternalServerError)
			return
		}

		cfg := config.New().Prefix("CORE_API_")
		ensureServers(spec, cfg.MayString("DOCS_SERVER_URL", "/api/v1"))
		if v := cfg.MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = strings.TrimSpace(title + " " + v)
				}
			}
		}
		addDefaultError(spec)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers sets a servers entry when the document has none
func ensureServers(spec map[string]any, url string) {
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// addDefaultError points every operation without a 500 at the shared error envelope
func addDefaultError(spec map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	errResp := map[string]any{
		"description": "Internal Server Error",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			if _, exists := responses["500"]; !exists {
				responses["500"] = errResp
			}
		}
	}
}
