// Package http provides http transport for the zones API
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"zonewatch/internal/modkit/httpkit"
	"zonewatch/internal/services/api/zones/domain"
	svc "zonewatch/internal/services/api/zones/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{camera}/{zone}", h.membership)
	httpkit.Get(r, "/{camera}/{zone}/events", h.history)
}

type handlers struct{ svc svc.Service }

// @Summary List configured zones
// @Tags zones
// @Produce json
// @Success 200 {array} domain.ZoneSummary "ok"
// @Router /zones [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context()), nil
}

// @Summary Current membership of one zone
// @Tags zones
// @Produce json
// @Param camera path string true "Camera identifier"
// @Param zone path string true "Zone name"
// @Success 200 {object} domain.Membership "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /zones/{camera}/{zone} [get]
func (h *handlers) membership(r *stdhttp.Request) (any, error) {
	return h.svc.Membership(r.Context(), chi.URLParam(r, "camera"), chi.URLParam(r, "zone"))
}

// @Summary Membership change history of one zone
// @Tags zones
// @Produce json
// @Param camera path string true "Camera identifier"
// @Param zone path string true "Zone name"
// @Param limit query int false "Page size"
// @Param after_id query string false "Keyset cursor id"
// @Param after_ts query string false "Keyset cursor timestamp (RFC3339)"
// @Success 200 {object} domain.HistoryPage "ok"
// @Router /zones/{camera}/{zone}/events [get]
func (h *handlers) history(r *stdhttp.Request) (any, error) {
	qp := r.URL.Query()
	limit, _ := strconv.Atoi(qp.Get("limit"))
	q := domain.HistoryQuery{
		AfterID: qp.Get("after_id"),
		AfterTS: qp.Get("after_ts"),
		Limit:   limit,
	}
	return h.svc.History(r.Context(), chi.URLParam(r, "camera"), chi.URLParam(r, "zone"), q)
}
