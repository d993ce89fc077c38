// Package analytics exposes the board analytics over HTTP.
package analytics

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/bi-tools/board-pulse/pkg/models/api"
	"github.com/bi-tools/board-pulse/pkg/models/domain"
	"github.com/bi-tools/board-pulse/pkg/services/boards"
	"github.com/bi-tools/board-pulse/pkg/services/pivot"
	"github.com/bi-tools/board-pulse/pkg/services/report"
	"github.com/rs/zerolog"
)

type Handler struct {
	boards boards.Explorer
	clock  func() time.Time
}

func NewHandler(explorer boards.Explorer) *Handler {
	return &Handler{
		boards: explorer,
		clock:  time.Now,
	}
}

// AdhocRequest names the dimension and metric of one pivot run.
type AdhocRequest struct {
	Dimension string `json:"dimension"`
	Metric    string `json:"metric"`
}

// ContextRequest carries one assistant question.
type ContextRequest struct {
	Message string `json:"message"`
}

// ContextResponse is everything the assistant needs to answer: the context
// block, matching charts and data provenance.
type ContextResponse struct {
	BoardsQueried   []string             `json:"boards_queried"`
	Context         api.QueryContext     `json:"context"`
	Charts          []api.DashboardChart `json:"charts"`
	DataCounts      map[string]int       `json:"data_counts"`
	CacheAgeMinutes map[string]float64   `json:"cache_age_minutes"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r, w, map[string]interface{}{
		"status": "ok",
		"cache":  h.boards.CacheAgeMinutes(),
	})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deals, err := h.boards.GetDeals(ctx, false)
	if err != nil {
		writeError(r, w, http.StatusBadGateway, "data fetch failed")
		return
	}
	wos, err := h.boards.GetWorkOrders(ctx, false)
	if err != nil {
		writeError(r, w, http.StatusBadGateway, "data fetch failed")
		return
	}

	data := report.DashboardMetrics(deals, wos, h.clock())
	data.CacheAge = h.boards.CacheAgeMinutes()
	writeJSON(r, w, data)
}

func (h *Handler) Adhoc(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AdhocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(r, w, http.StatusBadRequest, "invalid request body")
		return
	}

	metric, err := domain.ParseMetric(req.Metric)
	if err != nil {
		writeError(r, w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := domain.ParseDimension(req.Dimension); err != nil {
		writeError(r, w, http.StatusBadRequest, err.Error())
		return
	}

	// Only fetch the board the metric actually reads.
	var deals []domain.DealRecord
	var wos []domain.WorkOrderRecord
	if metric.NeedsWorkOrders() {
		wos, err = h.boards.GetWorkOrders(ctx, false)
	} else {
		deals, err = h.boards.GetDeals(ctx, false)
	}
	if err != nil {
		writeError(r, w, http.StatusBadGateway, "data fetch failed")
		return
	}

	result, err := pivot.Analyze(deals, wos, req.Dimension, req.Metric)
	if err != nil {
		writeError(r, w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(r, w, result)
}

func (h *Handler) Briefing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deals, err := h.boards.GetDeals(ctx, false)
	if err != nil {
		writeError(r, w, http.StatusBadGateway, "data fetch failed")
		return
	}
	wos, err := h.boards.GetWorkOrders(ctx, false)
	if err != nil {
		writeError(r, w, http.StatusBadGateway, "data fetch failed")
		return
	}

	writeJSON(r, w, report.LeadershipUpdate(deals, wos, h.clock()))
}

func (h *Handler) Context(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(r, w, http.StatusBadRequest, "invalid request body")
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(r, w, http.StatusBadRequest, "message cannot be empty")
		return
	}

	queried := report.ClassifyBoards(message)
	var deals []domain.DealRecord
	var wos []domain.WorkOrderRecord
	var err error
	for _, board := range queried {
		switch board {
		case report.BoardDeals:
			deals, err = h.boards.GetDeals(ctx, false)
		case report.BoardWorkOrders:
			wos, err = h.boards.GetWorkOrders(ctx, false)
		}
		if err != nil {
			writeError(r, w, http.StatusBadGateway, "data fetch failed")
			return
		}
	}

	queryCtx := report.BuildContext(message, deals, wos, h.clock())
	writeJSON(r, w, ContextResponse{
		BoardsQueried:   queried,
		Context:         queryCtx,
		Charts:          report.ChartsFor(message, queryCtx),
		DataCounts:      map[string]int{"deals": len(deals), "work_orders": len(wos)},
		CacheAgeMinutes: h.boards.CacheAgeMinutes(),
	})
}

func (h *Handler) RefreshCache(w http.ResponseWriter, r *http.Request) {
	h.boards.InvalidateCache()
	zerolog.Ctx(r.Context()).Info().Msg("cache invalidated")
	writeJSON(r, w, map[string]string{"status": "Cache cleared"})
}

func writeJSON(r *http.Request, w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(r *http.Request, w http.ResponseWriter, status int, detail string) {
	zerolog.Ctx(r.Context()).Warn().Int("status", status).Str("detail", detail).Msg("request failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
