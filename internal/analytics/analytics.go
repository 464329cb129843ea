// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analytics aggregates stored ClassificationRecords: counts and
// shares per classification method, grouped by content type, over
// configurable time windows. It is read-only with respect to the pipeline
// and never feeds back into classification decisions.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pdiddy/scribe-engine/pkg/types"
)

// Store records and aggregates classification decisions.
type Store struct {
	db *sql.DB
}

// New builds a Store on an open database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the records table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS classification_records (
			rowid        INTEGER PRIMARY KEY AUTOINCREMENT,
			content_type TEXT NOT NULL,
			method       TEXT NOT NULL,
			confidence   REAL NOT NULL,
			recorded_at  TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_records_recorded_at ON classification_records (recorded_at);
	`)
	if err != nil {
		return fmt.Errorf("creating analytics schema: %w", err)
	}
	return nil
}

// Record stores one classification decision. It implements
// classify.Recorder.
func (s *Store) Record(ctx context.Context, rec types.ClassificationRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO classification_records (content_type, method, confidence, recorded_at)
		 VALUES (?, ?, ?, ?)`,
		string(rec.Type), string(rec.Method), rec.Confidence,
		rec.RecordedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording classification: %w", err)
	}
	return nil
}

// QueryOptions filters a summary.
type QueryOptions struct {
	// Since restricts the window to records at or after this time. Zero
	// means all records.
	Since time.Time

	// Type restricts to one content type. Empty means all types.
	Type types.ContentType
}

// MethodCount is one row of a summary breakdown.
type MethodCount struct {
	Type   types.ContentType          `json:"type" yaml:"type"`
	Method types.ClassificationMethod `json:"method" yaml:"method"`
	Count  int                        `json:"count" yaml:"count"`

	// Share is the method's fraction of all records in the window, in [0,1].
	Share float64 `json:"share" yaml:"share"`
}

// Summary is the aggregation result for one window.
type Summary struct {
	Total     int           `json:"total" yaml:"total"`
	Breakdown []MethodCount `json:"breakdown" yaml:"breakdown"`
}

// Summarize counts records by content type and method within the window.
// Rows come back ordered by content type then method for stable output.
func (s *Store) Summarize(ctx context.Context, opts QueryOptions) (Summary, error) {
	query := `SELECT content_type, method, COUNT(*)
		FROM classification_records WHERE 1=1`
	var args []any

	if !opts.Since.IsZero() {
		query += ` AND recorded_at >= ?`
		args = append(args, opts.Since.UTC().Format(time.RFC3339Nano))
	}
	if opts.Type != "" {
		query += ` AND content_type = ?`
		args = append(args, string(opts.Type))
	}
	query += ` GROUP BY content_type, method ORDER BY content_type, method`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Summary{}, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var summary Summary
	for rows.Next() {
		var mc MethodCount
		var ct, method string
		if err := rows.Scan(&ct, &method, &mc.Count); err != nil {
			return Summary{}, fmt.Errorf("scanning summary row: %w", err)
		}
		mc.Type = types.ContentType(ct)
		mc.Method = types.ClassificationMethod(method)
		summary.Breakdown = append(summary.Breakdown, mc)
		summary.Total += mc.Count
	}
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}

	if summary.Total > 0 {
		for i := range summary.Breakdown {
			summary.Breakdown[i].Share = float64(summary.Breakdown[i].Count) / float64(summary.Total)
		}
	}
	return summary, nil
}
