// Package openrouter encapsulates all outbound traffic to the OpenRouter
// API. OpenRouter speaks the OpenAI chat-completions wire format, so the
// client is built on go-openai with the base URL swapped out.
package openrouter

import (
	"context"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/automarketing/content-gateway/internal/gateway/httperr"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Config holds client construction parameters.
type Config struct {
	APIKey       string
	BaseURL      string // defaults to the public OpenRouter endpoint
	DefaultModel string // used when a request omits the model
	SiteURL      string // sent as HTTP-Referer for OpenRouter attribution
	SiteName     string // sent as X-Title for OpenRouter attribution
	Timeout      time.Duration
}

// Client is the gateway's single point of contact with the upstream
// provider. Every Chat call issues exactly one outbound request; callers
// needing retries must layer them on top.
type Client struct {
	api          *openai.Client
	apiKey       string
	defaultModel string
}

// New creates a Client. An empty API key is allowed so the service can
// boot unconfigured; calls will fail with a configuration error until a
// key is supplied.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = cfg.BaseURL
	apiCfg.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &attributionTransport{
			referer: cfg.SiteURL,
			title:   cfg.SiteName,
			base:    http.DefaultTransport,
		},
	}

	return &Client{
		api:          openai.NewClientWithConfig(apiCfg),
		apiKey:       cfg.APIKey,
		defaultModel: cfg.DefaultModel,
	}
}

// attributionTransport adds the OpenRouter attribution headers to every
// outbound request.
type attributionTransport struct {
	referer string
	title   string
	base    http.RoundTripper
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	return t.base.RoundTrip(req)
}

// IsConfigured reports whether a provider credential is present.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// DefaultModel returns the model used when requests omit one.
func (c *Client) DefaultModel() string {
	return c.defaultModel
}

// ChatOptions tune a single completion request.
type ChatOptions struct {
	Model       string
	Temperature *float32
	MaxTokens   *int
}

// ChatResult is the normalized provider response.
type ChatResult struct {
	Text  string       `json:"text"`
	Model string       `json:"model"`
	ID    string       `json:"id"`
	Usage openai.Usage `json:"usage"`
}

// Chat sends an ordered message sequence to OpenRouter and returns the
// completion text, token usage, model used, and response id.
func (c *Client) Chat(ctx context.Context, messages []openai.ChatCompletionMessage, opts ChatOptions) (*ChatResult, error) {
	if !c.IsConfigured() {
		return nil, httperr.Configuration("OpenRouter API key not configured. Set OPENROUTER_API_KEY.")
	}

	model := opts.Model
	if model == "" {
		model = c.defaultModel
	}

	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	}
	if opts.Temperature != nil {
		req.Temperature = *opts.Temperature
	}
	if opts.MaxTokens != nil {
		req.MaxTokens = *opts.MaxTokens
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, httperr.Upstream("OpenRouter request failed", err)
	}

	if len(resp.Choices) == 0 {
		return nil, httperr.Upstream("OpenRouter returned an empty completion", nil)
	}

	return &ChatResult{
		Text:  resp.Choices[0].Message.Content,
		Model: resp.Model,
		ID:    resp.ID,
		Usage: resp.Usage,
	}, nil
}
