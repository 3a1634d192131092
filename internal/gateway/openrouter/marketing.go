package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/automarketing/content-gateway/internal/gateway/httperr"
)

// ContentType guides system-prompt construction for marketing generation.
type ContentType string

const (
	ContentSocialPost ContentType = "social_post"
	ContentEmail      ContentType = "email"
	ContentBlog       ContentType = "blog"
	ContentAdCopy     ContentType = "ad_copy"
	ContentGeneral    ContentType = "general"
)

// ParseContentType validates a caller-supplied content type. Empty input
// defaults to general.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case "":
		return ContentGeneral, nil
	case ContentSocialPost, ContentEmail, ContentBlog, ContentAdCopy, ContentGeneral:
		return ContentType(s), nil
	}
	return "", httperr.Validation("invalid_content_type",
		fmt.Sprintf("contentType must be one of social_post, email, blog, ad_copy, general; got %q", s))
}

var systemPrompts = map[ContentType]string{
	ContentSocialPost: "You are a social media content expert. Create engaging, platform-appropriate posts with strong hooks. Keep the copy tight and conversational, and end with a clear call to action.",
	ContentEmail:      "You are an email marketing specialist. Write a compelling subject line followed by persuasive body copy that drives the reader toward a single call to action.",
	ContentBlog:       "You are a content marketing writer. Produce a well-structured blog article with a compelling headline, clear sections, and SEO-friendly language.",
	ContentAdCopy:     "You are an advertising copywriter. Write concise, high-converting ad copy with an attention-grabbing headline and a direct call to action.",
	ContentGeneral:    "You are a marketing content expert generating compelling marketing content. Create engaging narratives and messaging that resonate with target audiences.",
}

// GenerateMarketingContent wraps Chat with a content-type-specific system
// instruction and returns the generated text.
func (c *Client) GenerateMarketingContent(ctx context.Context, prompt string, contentType ContentType, opts ChatOptions) (*ChatResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, httperr.Validation("missing_field", "prompt is required")
	}

	system, ok := systemPrompts[contentType]
	if !ok {
		system = systemPrompts[ContentGeneral]
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}

	return c.Chat(ctx, messages, opts)
}

// OptimizationGoal is a named objective for content optimization.
type OptimizationGoal string

const (
	GoalEngagement  OptimizationGoal = "engagement"
	GoalConversions OptimizationGoal = "conversions"
	GoalReach       OptimizationGoal = "reach"
	GoalClarity     OptimizationGoal = "clarity"
)

// NormalizeGoals filters a caller-supplied goal list down to the known
// set, defaulting to engagement when nothing valid remains.
func NormalizeGoals(goals []string) []OptimizationGoal {
	known := map[OptimizationGoal]bool{
		GoalEngagement: true, GoalConversions: true, GoalReach: true, GoalClarity: true,
	}
	var out []OptimizationGoal
	for _, g := range goals {
		goal := OptimizationGoal(strings.ToLower(strings.TrimSpace(g)))
		if known[goal] {
			out = append(out, goal)
		}
	}
	if len(out) == 0 {
		out = []OptimizationGoal{GoalEngagement}
	}
	return out
}

// Optimization is the structured result of an optimize call.
type Optimization struct {
	Content   string   `json:"content"`
	Changes   []string `json:"changes"`
	Rationale string   `json:"rationale"`
}

// OptimizationResult pairs the optimization with the model that produced it.
type OptimizationResult struct {
	Optimization Optimization `json:"optimization"`
	Model        string       `json:"model"`
}

// OptimizeContent revises existing content for a platform against the
// given goals and returns the revised content with changes and rationale.
func (c *Client) OptimizeContent(ctx context.Context, content, platform string, goals []OptimizationGoal) (*OptimizationResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, httperr.Validation("missing_field", "content is required")
	}
	if platform == "" {
		platform = "general"
	}
	if len(goals) == 0 {
		goals = []OptimizationGoal{GoalEngagement}
	}

	goalNames := make([]string, len(goals))
	for i, g := range goals {
		goalNames[i] = string(g)
	}

	system := fmt.Sprintf(`You are a content optimization expert for %s. Revise the content the user provides to maximize %s.
Respond with JSON only, in this exact shape:
{"content": "<revised content>", "changes": ["<change 1>", "<change 2>"], "rationale": "<why the revision works>"}`,
		platform, strings.Join(goalNames, " and "))

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: content},
	}

	result, err := c.Chat(ctx, messages, ChatOptions{})
	if err != nil {
		return nil, err
	}

	opt := parseOptimization(result.Text)
	return &OptimizationResult{Optimization: opt, Model: result.Model}, nil
}

// parseOptimization extracts the structured optimization from the model
// output. Models occasionally wrap JSON in a code fence or prose; if no
// JSON can be recovered the raw text becomes the revised content.
func parseOptimization(text string) Optimization {
	candidate := strings.TrimSpace(text)
	if i := strings.Index(candidate, "{"); i >= 0 {
		if j := strings.LastIndex(candidate, "}"); j > i {
			candidate = candidate[i : j+1]
		}
	}

	var opt Optimization
	if err := json.Unmarshal([]byte(candidate), &opt); err == nil && opt.Content != "" {
		return opt
	}

	return Optimization{
		Content:   strings.TrimSpace(text),
		Rationale: "model returned an unstructured revision",
	}
}

// VariationsResult holds the ordered variation list and the model used.
type VariationsResult struct {
	Variations []string `json:"variations"`
	Model      string   `json:"model"`
}

const (
	defaultVariationCount = 3
	maxVariationCount     = 10
)

// GenerateVariations requests count distinct variations of content for
// the prompt in a single completion. If the model supplies fewer than
// requested the call fails with an upstream error; it never pads or
// silently returns a short list.
func (c *Client) GenerateVariations(ctx context.Context, prompt string, count int, contentType ContentType) (*VariationsResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, httperr.Validation("missing_field", "prompt is required")
	}
	if count <= 0 {
		count = defaultVariationCount
	}
	if count > maxVariationCount {
		count = maxVariationCount
	}

	system, ok := systemPrompts[contentType]
	if !ok {
		system = systemPrompts[ContentGeneral]
	}

	user := fmt.Sprintf(`%s

Produce exactly %d distinct variations of the content above. Number them 1. through %d., one variation per line. Do not add commentary before or after the list.`, prompt, count, count)

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: user},
	}

	result, err := c.Chat(ctx, messages, ChatOptions{})
	if err != nil {
		return nil, err
	}

	variations := parseNumberedList(result.Text)
	if len(variations) < count {
		return nil, httperr.Upstream(
			fmt.Sprintf("model returned %d variations, expected %d", len(variations), count), nil)
	}

	return &VariationsResult{Variations: variations[:count], Model: result.Model}, nil
}

var numberedItem = regexp.MustCompile(`^\s*\d+[.)]\s*`)

// parseNumberedList splits model output into numbered list items.
// Continuation lines are appended to the preceding item.
func parseNumberedList(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		if numberedItem.MatchString(line) {
			items = append(items, strings.TrimSpace(numberedItem.ReplaceAllString(line, "")))
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && len(items) > 0 {
			items[len(items)-1] += "\n" + trimmed
		}
	}
	return items
}
