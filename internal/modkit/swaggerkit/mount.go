// Package swaggerkit mounts Swagger UI over the embedded OpenAPI document
package swaggerkit

import (
	"net/http"

	phttp "parliametrics/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsPath is where the UI and doc.json are served
const DocsPath = "/api/docs"

// Mount serves the UI at DocsPath/ and the document at DocsPath/doc.json
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	ui := httpSwagger.Handler(httpSwagger.URL(DocsPath + "/doc.json"))
	r.Route(DocsPath, func(d phttp.Router) {
		d.Get("/", func(w http.ResponseWriter, req *http.Request) {
			if req.URL.Path == DocsPath {
				http.Redirect(w, req, DocsPath+"/", http.StatusPermanentRedirect)
				return
			}
			ui.ServeHTTP(w, req)
		})
		d.Get("/doc.json", serveDocJSON())
		d.Handle("/*", ui)
	})
}
