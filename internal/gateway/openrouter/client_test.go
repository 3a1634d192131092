package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automarketing/content-gateway/internal/gateway/httperr"
)

// fakeUpstream serves a canned OpenAI-shaped chat completion and records
// the requests it receives.
type fakeUpstream struct {
	srv      *httptest.Server
	requests []openai.ChatCompletionRequest
	reply    func(w http.ResponseWriter, req openai.ChatCompletionRequest)
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{}
	f.reply = func(w http.ResponseWriter, req openai.ChatCompletionRequest) {
		replyWithText(w, req.Model, "generated text")
	}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.requests = append(f.requests, req)
		f.reply(w, req)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func replyWithText(w http.ResponseWriter, model, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
		ID:    "gen-123",
		Model: model,
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: "assistant", Content: text}},
		},
		Usage: openai.Usage{PromptTokens: 12, CompletionTokens: 34, TotalTokens: 46},
	})
}

func (f *fakeUpstream) client() *Client {
	return New(Config{
		APIKey:  "sk-or-test",
		BaseURL: f.srv.URL + "/v1",
	})
}

func TestChat_Success(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := upstream.client()

	result, err := client.Chat(context.Background(), []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: "hi"},
	}, ChatOptions{Model: "openai/gpt-3.5-turbo"})
	require.NoError(t, err)

	assert.Equal(t, "generated text", result.Text)
	assert.Equal(t, "openai/gpt-3.5-turbo", result.Model)
	assert.Equal(t, "gen-123", result.ID)
	assert.Equal(t, 46, result.Usage.TotalTokens)

	require.Len(t, upstream.requests, 1)
	assert.Equal(t, "hi", upstream.requests[0].Messages[0].Content)
}

func TestChat_DefaultModel(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := upstream.client()

	_, err := client.Chat(context.Background(), []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: "hi"},
	}, ChatOptions{})
	require.NoError(t, err)

	require.Len(t, upstream.requests, 1)
	assert.Equal(t, DefaultModel, upstream.requests[0].Model)
}

func TestChat_NotConfigured(t *testing.T) {
	client := New(Config{APIKey: ""})

	_, err := client.Chat(context.Background(), []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: "hi"},
	}, ChatOptions{})
	require.Error(t, err)
	assert.Equal(t, httperr.KindConfiguration, httperr.KindOf(err))
}

func TestChat_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "boom"}}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(Config{APIKey: "sk-or-test", BaseURL: srv.URL + "/v1"})
	_, err := client.Chat(context.Background(), []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: "hi"},
	}, ChatOptions{})
	require.Error(t, err)
	assert.Equal(t, httperr.KindUpstream, httperr.KindOf(err))
}

func TestChat_AttributionHeaders(t *testing.T) {
	var referer, title string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		referer = r.Header.Get("HTTP-Referer")
		title = r.Header.Get("X-Title")
		replyWithText(w, "m", "ok")
	}))
	defer srv.Close()

	client := New(Config{
		APIKey:   "sk-or-test",
		BaseURL:  srv.URL + "/v1",
		SiteURL:  "https://auto-marketing.ai",
		SiteName: "Auto Marketing Workflow",
	})
	_, err := client.Chat(context.Background(), []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: "hi"},
	}, ChatOptions{})
	require.NoError(t, err)

	assert.Equal(t, "https://auto-marketing.ai", referer)
	assert.Equal(t, "Auto Marketing Workflow", title)
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, New(Config{APIKey: "sk-or-test"}).IsConfigured())
	assert.False(t, New(Config{}).IsConfigured())
}
