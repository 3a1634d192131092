package handlers

import (
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/automarketing/content-gateway/internal/gateway/httperr"
	"github.com/automarketing/content-gateway/internal/gateway/logstore"
	"github.com/automarketing/content-gateway/internal/gateway/openrouter"
	"github.com/automarketing/content-gateway/internal/gateway/ratelimit"
)

// ChatHandler serves the chat and marketing generation endpoints.
type ChatHandler struct {
	client      *openrouter.Client
	logger      *logstore.Logger
	development bool
}

func NewChatHandler(client *openrouter.Client, logger *logstore.Logger, development bool) *ChatHandler {
	return &ChatHandler{
		client:      client,
		logger:      logger,
		development: development,
	}
}

type chatRequest struct {
	Message     string   `json:"message"`
	Model       string   `json:"model,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
}

// HandleChat handles POST /api/openrouter/chat, a thin passthrough to
// the provider without marketing prompt scaffolding.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.development, err)
		return
	}
	if req.Message == "" {
		respondError(w, r, h.development,
			httperr.Validation("missing_field", "message is required"))
		return
	}

	result, err := h.client.Chat(r.Context(), []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: req.Message},
	}, openrouter.ChatOptions{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		respondError(w, r, h.development, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"response": result.Text,
		"model":    result.Model,
		"id":       result.ID,
		"usage": map[string]int{
			"promptTokens":     result.Usage.PromptTokens,
			"completionTokens": result.Usage.CompletionTokens,
			"totalTokens":      result.Usage.TotalTokens,
		},
	})
}

type generateRequest struct {
	Prompt      string   `json:"prompt"`
	ContentType string   `json:"contentType,omitempty"`
	Model       string   `json:"model,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
}

// HandleGenerate handles POST /api/openrouter/marketing/generate.
func (h *ChatHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.development, err)
		return
	}
	if req.Prompt == "" {
		respondError(w, r, h.development,
			httperr.Validation("missing_field", "prompt is required"))
		return
	}

	contentType, err := openrouter.ParseContentType(req.ContentType)
	if err != nil {
		respondError(w, r, h.development, err)
		return
	}

	result, err := h.client.GenerateMarketingContent(r.Context(), req.Prompt, contentType, openrouter.ChatOptions{
		Model:       req.Model,
		Temperature: req.Temperature,
	})
	if err != nil {
		respondError(w, r, h.development, err)
		return
	}

	logID := h.logger.LogGeneration(req.Prompt, string(contentType),
		result.Text, result.Model, ratelimit.ClientKey(r), time.Since(start))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"content":     result.Text,
		"prompt":      req.Prompt,
		"contentType": contentType,
		"model":       result.Model,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"logId":       logID,
	})
}

type optimizeRequest struct {
	Content  string   `json:"content"`
	Platform string   `json:"platform,omitempty"`
	Goals    []string `json:"goals,omitempty"`
}

// HandleOptimize handles POST /api/openrouter/marketing/optimize.
func (h *ChatHandler) HandleOptimize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req optimizeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.development, err)
		return
	}
	if req.Content == "" {
		respondError(w, r, h.development,
			httperr.Validation("missing_field", "content is required"))
		return
	}

	platform := req.Platform
	if platform == "" {
		platform = "general"
	}
	goals := openrouter.NormalizeGoals(req.Goals)

	result, err := h.client.OptimizeContent(r.Context(), req.Content, platform, goals)
	if err != nil {
		respondError(w, r, h.development, err)
		return
	}

	goalNames := make([]string, len(goals))
	for i, g := range goals {
		goalNames[i] = string(g)
	}
	logID := h.logger.LogOptimization(req.Content, platform, goalNames,
		result.Optimization.Content, result.Model, ratelimit.ClientKey(r), time.Since(start))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"original":     req.Content,
		"optimization": result.Optimization,
		"platform":     platform,
		"goals":        goalNames,
		"model":        result.Model,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"logId":        logID,
	})
}

type variationsRequest struct {
	Prompt      string `json:"prompt"`
	Count       int    `json:"count,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

// HandleVariations handles POST /api/openrouter/marketing/variations.
func (h *ChatHandler) HandleVariations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req variationsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.development, err)
		return
	}
	if req.Prompt == "" {
		respondError(w, r, h.development,
			httperr.Validation("missing_field", "prompt is required"))
		return
	}

	contentType, err := openrouter.ParseContentType(req.ContentType)
	if err != nil {
		respondError(w, r, h.development, err)
		return
	}

	result, err := h.client.GenerateVariations(r.Context(), req.Prompt, req.Count, contentType)
	if err != nil {
		respondError(w, r, h.development, err)
		return
	}

	logID := h.logger.LogVariations(req.Prompt, string(contentType),
		result.Variations, result.Model, ratelimit.ClientKey(r), time.Since(start))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"prompt":      req.Prompt,
		"variations":  result.Variations,
		"count":       len(result.Variations),
		"contentType": contentType,
		"model":       result.Model,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"logId":       logID,
	})
}
