package handlers

import (
	"net/http"
	"time"

	"github.com/automarketing/content-gateway/internal/gateway/openrouter"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// StatusHandler serves health and provider status endpoints.
type StatusHandler struct {
	client      *openrouter.Client
	environment string
}

func NewStatusHandler(client *openrouter.Client, environment string) *StatusHandler {
	return &StatusHandler{client: client, environment: environment}
}

// HandleHealth handles GET /health. It never touches the provider or any
// backing store, so it stays green while dependencies are degraded.
func (h *StatusHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.environment,
		"version":     Version,
	})
}

// HandleStatus handles GET /api/openrouter/status.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	defaultModel := h.client.DefaultModel()
	payload := map[string]interface{}{
		"configured":   h.client.IsConfigured(),
		"defaultModel": defaultModel,
	}
	if info, ok := openrouter.ModelInfo(defaultModel); ok {
		payload["modelInfo"] = info
	}
	writeJSON(w, http.StatusOK, payload)
}

// HandleModels handles GET /api/openrouter/models.
func (h *StatusHandler) HandleModels(w http.ResponseWriter, r *http.Request) {
	models := openrouter.Models()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"models":      models,
		"recommended": openrouter.Recommended(),
		"total":       len(models),
	})
}
