package logstore

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/automarketing/content-gateway/internal/shared/models"
)

// Logger assigns ids and timestamps to log entries and writes them to a
// Store. A store failure is logged and swallowed; recording history must
// never fail the request that produced it.
type Logger struct {
	store Store
}

// NewLogger wraps a Store.
func NewLogger(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) write(entry *models.GenerationLogEntry) string {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()

	if err := l.store.Insert(context.Background(), entry); err != nil {
		log.Printf("logstore: failed to record %s entry %s: %v", entry.Kind, entry.ID, err)
	}
	return entry.ID
}

// LogGeneration records a marketing content generation and returns the
// new entry's id.
func (l *Logger) LogGeneration(prompt, contentType, output, model, clientIP string, duration time.Duration) string {
	return l.write(&models.GenerationLogEntry{
		Kind:        models.OpGenerate,
		Prompt:      prompt,
		ContentType: contentType,
		Output:      output,
		Model:       model,
		DurationMs:  duration.Milliseconds(),
		ClientIP:    clientIP,
	})
}

// LogOptimization records a content optimization run.
func (l *Logger) LogOptimization(content, platform string, goals []string, output, model, clientIP string, duration time.Duration) string {
	return l.write(&models.GenerationLogEntry{
		Kind:       models.OpOptimize,
		Prompt:     content,
		Platform:   platform,
		Goals:      goals,
		Output:     output,
		Model:      model,
		DurationMs: duration.Milliseconds(),
		ClientIP:   clientIP,
	})
}

// LogVariations records a variation batch.
func (l *Logger) LogVariations(prompt, contentType string, variations []string, model, clientIP string, duration time.Duration) string {
	return l.write(&models.GenerationLogEntry{
		Kind:        models.OpVariations,
		Prompt:      prompt,
		ContentType: contentType,
		Count:       len(variations),
		Variations:  variations,
		Model:       model,
		DurationMs:  duration.Milliseconds(),
		ClientIP:    clientIP,
	})
}
