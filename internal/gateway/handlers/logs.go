package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/automarketing/content-gateway/internal/gateway/httperr"
	"github.com/automarketing/content-gateway/internal/gateway/logstore"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100

	defaultStatsDays = 1
	maxStatsDays     = 90
)

// LogsHandler serves the request-log query endpoints.
type LogsHandler struct {
	store       logstore.Store
	development bool
}

func NewLogsHandler(store logstore.Store, development bool) *LogsHandler {
	return &LogsHandler{store: store, development: development}
}

// HandleRecent handles GET /api/openrouter/logs/recent?limit=N.
func (h *LogsHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultRecentLimit)
	if limit < 1 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	entries, err := h.store.Recent(r.Context(), limit)
	if err != nil {
		respondError(w, r, h.development, httperr.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"logs":  entries,
		"count": len(entries),
		"limit": limit,
	})
}

// HandleStats handles GET /api/openrouter/logs/stats?days=N.
func (h *LogsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", defaultStatsDays)
	if days < 1 {
		days = defaultStatsDays
	}
	if days > maxStatsDays {
		days = maxStatsDays
	}

	stats, err := h.store.Statistics(r.Context(), days)
	if err != nil {
		respondError(w, r, h.development, httperr.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// HandleGetByID handles GET /api/openrouter/logs/{id}.
func (h *LogsHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.store.GetByID(r.Context(), id)
	if errors.Is(err, logstore.ErrNotFound) {
		respondError(w, r, h.development, httperr.NotFound("log entry "+id+" not found"))
		return
	}
	if err != nil {
		respondError(w, r, h.development, httperr.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// queryInt reads an integer query parameter, falling back to def when
// absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
