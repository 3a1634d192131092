package openrouter

import "sort"

// DefaultModel is used when neither configuration nor the request names one.
const DefaultModel = "anthropic/claude-3-sonnet"

// ModelCatalogEntry is static metadata for a model reachable through
// OpenRouter. The catalog is configuration data and never mutated at
// runtime.
type ModelCatalogEntry struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Provider        string   `json:"provider"`
	ContextWindow   int      `json:"contextWindow"`
	MaxTokens       int      `json:"maxTokens"`
	InputCostPer1K  float64  `json:"inputCostPer1k"`
	OutputCostPer1K float64  `json:"outputCostPer1k"`
	Capabilities    []string `json:"capabilities"`
	Speed           string   `json:"speed"`
	Quality         string   `json:"quality"`
	BestFor         []string `json:"bestFor"`
}

var catalog = map[string]ModelCatalogEntry{
	"anthropic/claude-3-opus": {
		ID: "anthropic/claude-3-opus", Name: "Claude 3 Opus", Provider: "anthropic",
		ContextWindow: 200000, MaxTokens: 4096,
		InputCostPer1K: 0.015, OutputCostPer1K: 0.075,
		Capabilities: []string{"text", "vision", "coding", "analysis"},
		Speed:        "medium", Quality: "high",
		BestFor: []string{"complex reasoning", "creative writing", "code generation"},
	},
	"anthropic/claude-3-sonnet": {
		ID: "anthropic/claude-3-sonnet", Name: "Claude 3 Sonnet", Provider: "anthropic",
		ContextWindow: 200000, MaxTokens: 4096,
		InputCostPer1K: 0.003, OutputCostPer1K: 0.015,
		Capabilities: []string{"text", "vision", "coding"},
		Speed:        "fast", Quality: "high",
		BestFor: []string{"balanced tasks", "quick responses", "general purpose"},
	},
	"anthropic/claude-3-haiku": {
		ID: "anthropic/claude-3-haiku", Name: "Claude 3 Haiku", Provider: "anthropic",
		ContextWindow: 200000, MaxTokens: 4096,
		InputCostPer1K: 0.00025, OutputCostPer1K: 0.00125,
		Capabilities: []string{"text", "fast_processing"},
		Speed:        "very_fast", Quality: "medium",
		BestFor: []string{"simple tasks", "high volume", "quick responses"},
	},
	"openai/gpt-4-turbo": {
		ID: "openai/gpt-4-turbo", Name: "GPT-4 Turbo", Provider: "openai",
		ContextWindow: 128000, MaxTokens: 4096,
		InputCostPer1K: 0.01, OutputCostPer1K: 0.03,
		Capabilities: []string{"text", "vision", "function_calling"},
		Speed:        "medium", Quality: "high",
		BestFor: []string{"reasoning", "math", "structured output"},
	},
	"openai/gpt-4": {
		ID: "openai/gpt-4", Name: "GPT-4", Provider: "openai",
		ContextWindow: 8192, MaxTokens: 4096,
		InputCostPer1K: 0.03, OutputCostPer1K: 0.06,
		Capabilities: []string{"text", "analysis"},
		Speed:        "slow", Quality: "high",
		BestFor: []string{"complex tasks", "detailed analysis"},
	},
	"openai/gpt-3.5-turbo": {
		ID: "openai/gpt-3.5-turbo", Name: "GPT-3.5 Turbo", Provider: "openai",
		ContextWindow: 16384, MaxTokens: 4096,
		InputCostPer1K: 0.0005, OutputCostPer1K: 0.0015,
		Capabilities: []string{"text", "fast_processing"},
		Speed:        "very_fast", Quality: "medium",
		BestFor: []string{"simple tasks", "high throughput", "cost efficiency"},
	},
	"google/gemini-pro": {
		ID: "google/gemini-pro", Name: "Gemini Pro", Provider: "google",
		ContextWindow: 32000, MaxTokens: 8192,
		InputCostPer1K: 0.00025, OutputCostPer1K: 0.0005,
		Capabilities: []string{"text", "vision", "multimodal"},
		Speed:        "fast", Quality: "high",
		BestFor: []string{"multimodal tasks", "long context", "efficiency"},
	},
	"mistralai/mistral-medium": {
		ID: "mistralai/mistral-medium", Name: "Mistral Medium", Provider: "mistral",
		ContextWindow: 32000, MaxTokens: 8192,
		InputCostPer1K: 0.0027, OutputCostPer1K: 0.0081,
		Capabilities: []string{"text", "coding"},
		Speed:        "fast", Quality: "medium",
		BestFor: []string{"European languages", "coding", "reasoning"},
	},
	"meta-llama/llama-3-70b": {
		ID: "meta-llama/llama-3-70b", Name: "Llama 3 70B", Provider: "meta",
		ContextWindow: 8192, MaxTokens: 4096,
		InputCostPer1K: 0.0008, OutputCostPer1K: 0.0008,
		Capabilities: []string{"text", "open_source"},
		Speed:        "medium", Quality: "high",
		BestFor: []string{"open source", "customization", "research"},
	},
	"perplexity/llama-3-sonar-large-32k-online": {
		ID: "perplexity/llama-3-sonar-large-32k-online", Name: "Perplexity Online", Provider: "perplexity",
		ContextWindow: 32000, MaxTokens: 4096,
		InputCostPer1K: 0.001, OutputCostPer1K: 0.001,
		Capabilities: []string{"text", "web_search", "real_time"},
		Speed:        "medium", Quality: "high",
		BestFor: []string{"current events", "fact checking", "research"},
	},
}

// recommended maps a task profile to the models best suited for it, in
// preference order.
var recommended = map[string][]string{
	"creative":   {"anthropic/claude-3-opus", "openai/gpt-4-turbo", "anthropic/claude-3-sonnet"},
	"analytical": {"openai/gpt-4", "anthropic/claude-3-opus", "google/gemini-pro"},
	"fast":       {"openai/gpt-3.5-turbo", "anthropic/claude-3-haiku", "mistralai/mistral-medium"},
	"coding":     {"anthropic/claude-3-opus", "openai/gpt-4", "mistralai/mistral-medium"},
}

// ModelInfo looks up catalog metadata by model id. It never fails; the
// second return value reports whether the model is known.
func ModelInfo(id string) (ModelCatalogEntry, bool) {
	entry, ok := catalog[id]
	return entry, ok
}

// Models returns the full catalog sorted by id.
func Models() []ModelCatalogEntry {
	out := make([]ModelCatalogEntry, 0, len(catalog))
	for _, entry := range catalog {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Recommended returns the task-profile recommendations. Callers get a
// copy; the underlying map stays immutable.
func Recommended() map[string][]string {
	out := make(map[string][]string, len(recommended))
	for task, ids := range recommended {
		out[task] = append([]string(nil), ids...)
	}
	return out
}
