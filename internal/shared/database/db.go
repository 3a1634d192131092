// Package database is the Postgres-backed implementation of the
// generation log store.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/automarketing/content-gateway/internal/gateway/logstore"
	"github.com/automarketing/content-gateway/internal/shared/models"
)

type DB struct {
	conn *sql.DB
}

var _ logstore.Store = (*DB)(nil)

// New opens a connection pool and verifies the database is reachable.
func New(databaseURL string) (*DB, error) {
	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Migrate creates the content_logs table and its indexes if missing.
func (db *DB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS content_logs (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			prompt TEXT NOT NULL,
			content_type TEXT NOT NULL DEFAULT '',
			platform TEXT NOT NULL DEFAULT '',
			goals TEXT[] NOT NULL DEFAULT '{}',
			variation_count INTEGER NOT NULL DEFAULT 0,
			output TEXT NOT NULL DEFAULT '',
			variations TEXT[] NOT NULL DEFAULT '{}',
			model TEXT NOT NULL,
			duration_ms BIGINT NOT NULL DEFAULT 0,
			client_ip TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_content_logs_created_at ON content_logs (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_content_logs_kind ON content_logs (kind)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Insert writes one log entry.
func (db *DB) Insert(ctx context.Context, entry *models.GenerationLogEntry) error {
	query := `
		INSERT INTO content_logs (
			id, kind, prompt, content_type, platform, goals, variation_count,
			output, variations, model, duration_ms, client_ip, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := db.conn.ExecContext(ctx,
		query,
		entry.ID,
		entry.Kind,
		entry.Prompt,
		entry.ContentType,
		entry.Platform,
		pq.Array(entry.Goals),
		entry.Count,
		entry.Output,
		pq.Array(entry.Variations),
		entry.Model,
		entry.DurationMs,
		entry.ClientIP,
		entry.CreatedAt,
	)
	return err
}

// GetByID fetches one entry, returning logstore.ErrNotFound when missing.
func (db *DB) GetByID(ctx context.Context, id string) (*models.GenerationLogEntry, error) {
	query := `
		SELECT id, kind, prompt, content_type, platform, goals, variation_count,
		       output, variations, model, duration_ms, client_ip, created_at
		FROM content_logs
		WHERE id = $1
	`

	entry, err := scanEntry(db.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, logstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return entry, nil
}

// Recent returns up to limit entries, newest first.
func (db *DB) Recent(ctx context.Context, limit int) ([]models.GenerationLogEntry, error) {
	query := `
		SELECT id, kind, prompt, content_type, platform, goals, variation_count,
		       output, variations, model, duration_ms, client_ip, created_at
		FROM content_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	entries := make([]models.GenerationLogEntry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Statistics aggregates entries created within the last days days.
func (db *DB) Statistics(ctx context.Context, days int) (*models.Statistics, error) {
	stats := models.NewStatistics(days)
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	summary := `
		SELECT COUNT(*), COALESCE(AVG(duration_ms), 0)
		FROM content_logs
		WHERE created_at >= $1
	`
	if err := db.conn.QueryRowContext(ctx, summary, cutoff).
		Scan(&stats.TotalRequests, &stats.AvgDurationMs); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	groupInto := func(column string, dest map[string]int64) error {
		query := fmt.Sprintf(`
			SELECT %s, COUNT(*)
			FROM content_logs
			WHERE created_at >= $1 AND %s <> ''
			GROUP BY %s
		`, column, column, column)

		rows, err := db.conn.QueryContext(ctx, query, cutoff)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var key string
			var count int64
			if err := rows.Scan(&key, &count); err != nil {
				return err
			}
			dest[key] = count
		}
		return rows.Err()
	}

	if err := groupInto("kind", stats.ByKind); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if err := groupInto("content_type", stats.ByContentType); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if err := groupInto("platform", stats.ByPlatform); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return stats, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*models.GenerationLogEntry, error) {
	var entry models.GenerationLogEntry
	err := row.Scan(
		&entry.ID,
		&entry.Kind,
		&entry.Prompt,
		&entry.ContentType,
		&entry.Platform,
		pq.Array(&entry.Goals),
		&entry.Count,
		&entry.Output,
		pq.Array(&entry.Variations),
		&entry.Model,
		&entry.DurationMs,
		&entry.ClientIP,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
