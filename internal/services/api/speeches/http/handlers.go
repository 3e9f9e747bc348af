// Package http provides http transport for speeches
package http

import (
	stdhttp "net/http"

	"parliametrics/internal/modkit/httpkit"
	phttp "parliametrics/internal/platform/net/http"
	"parliametrics/internal/platform/net/http/bind"
	"parliametrics/internal/services/api/speeches/domain"
	svc "parliametrics/internal/services/api/speeches/service"
)

// Register mounts speeches endpoints on the given router
// bodies are bare JSON (array or object) so existing archive clients can read
// them; failures still use the error envelope
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	r.Get("/", h.list)
	r.Get("/filters", h.filters)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /speeches Speeches speechesList
// @Summary List speeches newest first
// @Tags Speeches
// @Produce json
// @Param speaker_ids query []int false "Speaker ids (repeatable)" collectionFormat(multi)
// @Param party_ids query []int false "Party ids (repeatable)" collectionFormat(multi)
// @Param from_tribune query bool false "true for tribune, false for seat"
// @Param date_from query string false "Inclusive lower bound YYYY-MM-DD"
// @Param date_to query string false "Inclusive upper bound YYYY-MM-DD"
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} domain.Speech "ok"
// @Router /speeches [get]
func (h *handlers) list(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseQuery(r, domain.DefaultListInput())
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	out, err := h.svc.List(r.Context(), in)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	phttp.JSON(w, stdhttp.StatusOK, out)
}

// swagger:route GET /speeches/filters Speeches speechesFilters
// @Summary Filter catalog: speakers, parties, tribune options and dates
// @Tags Speeches
// @Produce json
// @Success 200 {object} domain.Filters "ok"
// @Router /speeches/filters [get]
func (h *handlers) filters(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	out, err := h.svc.Filters(r.Context())
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	phttp.JSON(w, stdhttp.StatusOK, out)
}
