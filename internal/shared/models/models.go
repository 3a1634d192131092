package models

import "time"

// OperationKind identifies which gateway operation produced a log entry.
type OperationKind string

const (
	OpGenerate   OperationKind = "generate"
	OpOptimize   OperationKind = "optimize"
	OpVariations OperationKind = "variations"
)

// GenerationLogEntry is an append-only record of one content-generation,
// optimization, or variation request and its result. Entries are never
// mutated after creation.
type GenerationLogEntry struct {
	ID          string        `json:"id"`
	Kind        OperationKind `json:"kind"`
	Prompt      string        `json:"prompt"`
	ContentType string        `json:"contentType,omitempty"`
	Platform    string        `json:"platform,omitempty"`
	Goals       []string      `json:"goals,omitempty"`
	Count       int           `json:"count,omitempty"`
	Output      string        `json:"output"`
	Variations  []string      `json:"variations,omitempty"`
	Model       string        `json:"model"`
	DurationMs  int64         `json:"durationMs"`
	ClientIP    string        `json:"clientIp"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Statistics aggregates log entries created within a trailing window of days.
// All fields are derived on demand; nothing here is stored.
type Statistics struct {
	WindowDays    int              `json:"windowDays"`
	TotalRequests int64            `json:"totalRequests"`
	ByKind        map[string]int64 `json:"byKind"`
	ByContentType map[string]int64 `json:"byContentType"`
	ByPlatform    map[string]int64 `json:"byPlatform"`
	AvgDurationMs float64          `json:"avgDurationMs"`
}

// NewStatistics returns zeroed aggregates for the given window.
func NewStatistics(days int) *Statistics {
	return &Statistics{
		WindowDays:    days,
		ByKind:        make(map[string]int64),
		ByContentType: make(map[string]int64),
		ByPlatform:    make(map[string]int64),
	}
}
