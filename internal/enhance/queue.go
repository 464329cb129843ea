// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enhance is the durable FIFO of deferred AI work. Items enter the
// queue only after a synchronous enhancement attempt definitively failed or
// was skipped. Draining runs when connectivity returns; an item that keeps
// failing becomes failed after maxAttempts and stays queryable for
// diagnostics.
package enhance

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/scribe-engine/pkg/types"
)

const (
	defaultMaxAttempts = 3
	defaultItemTimeout = 60 * time.Second
)

// Enhancer processes one queued item's text.
type Enhancer interface {
	Enhance(ctx context.Context, text string, ct types.ContentType) (string, error)
}

// ApplyFunc receives the enhanced text for an item; the storage collaborator
// hooks in here. An apply failure counts as a processing failure.
type ApplyFunc func(ctx context.Context, item types.EnhancementItem, enhanced string) error

// Queue is the enhancement queue handle. Enqueue and Drain are serialized by
// a single-writer mutex so the same item can never be processed twice.
type Queue struct {
	db          *sql.DB
	maxAttempts int
	itemTimeout time.Duration
	log         *slog.Logger

	mu sync.Mutex

	// now is swapped in tests for stable timestamps.
	now func() time.Time
}

// New builds a Queue on an open database. logger may be nil.
func New(db *sql.DB, cfg types.QueueConfig, logger *slog.Logger) *Queue {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	itemTimeout := cfg.ItemTimeout
	if itemTimeout <= 0 {
		itemTimeout = defaultItemTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{
		db:          db,
		maxAttempts: maxAttempts,
		itemTimeout: itemTimeout,
		log:         logger,
		now:         time.Now,
	}
}

// EnsureSchema creates the queue table if it does not exist.
func (q *Queue) EnsureSchema(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS enhancements (
			id            TEXT PRIMARY KEY,
			captured_text TEXT NOT NULL,
			content_type  TEXT NOT NULL,
			state         TEXT NOT NULL,
			attempts      INTEGER NOT NULL DEFAULT 0,
			last_error    TEXT NOT NULL DEFAULT '',
			enqueued_at   TEXT NOT NULL,
			updated_at    TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_enhancements_state ON enhancements (state, enqueued_at);
	`)
	if err != nil {
		return fmt.Errorf("creating queue schema: %w", err)
	}
	return nil
}

// Enqueue inserts a pending item and returns it.
func (q *Queue) Enqueue(ctx context.Context, text string, ct types.ContentType) (types.EnhancementItem, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now().UTC()
	item := types.EnhancementItem{
		ID:           uuid.NewString(),
		CapturedText: text,
		ContentType:  ct,
		State:        types.StatePending,
		EnqueuedAt:   now,
		UpdatedAt:    now,
	}

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO enhancements (id, captured_text, content_type, state, attempts, enqueued_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, ?, ?)`,
		item.ID, item.CapturedText, string(item.ContentType), string(item.State),
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return types.EnhancementItem{}, fmt.Errorf("enqueueing item: %w", err)
	}
	return item, nil
}

// Items lists queue items in FIFO order, optionally filtered by state.
func (q *Queue) Items(ctx context.Context, states ...types.QueueState) ([]types.EnhancementItem, error) {
	query := `SELECT id, captured_text, content_type, state, attempts, last_error, enqueued_at, updated_at
		FROM enhancements`
	var args []any
	if len(states) > 0 {
		query += ` WHERE state IN (?` + strings.Repeat(",?", len(states)-1) + `)`
		for _, s := range states {
			args = append(args, string(s))
		}
	}
	query += ` ORDER BY enqueued_at`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing queue items: %w", err)
	}
	defer rows.Close()

	var items []types.EnhancementItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// DrainSummary holds counts from one drain cycle.
type DrainSummary struct {
	Enhanced int
	Requeued int
	Failed   int
}

// Total returns the number of items processed.
func (s DrainSummary) Total() int {
	return s.Enhanced + s.Requeued + s.Failed
}

// Drain processes every pending item in FIFO order. Each item gets a bounded
// timeout so one slow item cannot block the rest of the cycle. Attempts
// increment exactly once per cycle; an item reaching maxAttempts becomes
// failed and is excluded from future drains. apply may be nil.
func (q *Queue) Drain(ctx context.Context, enhancer Enhancer, apply ApplyFunc) (DrainSummary, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending, err := q.Items(ctx, types.StatePending)
	if err != nil {
		return DrainSummary{}, err
	}

	var summary DrainSummary
	for _, item := range pending {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		if err := q.setProcessing(ctx, item.ID); err != nil {
			return summary, err
		}
		item.Attempts++

		itemCtx, cancel := context.WithTimeout(ctx, q.itemTimeout)
		enhanced, err := enhancer.Enhance(itemCtx, item.CapturedText, item.ContentType)
		if err == nil && apply != nil {
			err = apply(itemCtx, item, enhanced)
		}
		cancel()

		switch {
		case err == nil:
			if uerr := q.setState(ctx, item.ID, types.StateDone, ""); uerr != nil {
				return summary, uerr
			}
			q.log.Info("enhance: item done", "id", item.ID, "type", item.ContentType, "attempts", item.Attempts)
			summary.Enhanced++
		case item.Attempts >= q.maxAttempts:
			if uerr := q.setState(ctx, item.ID, types.StateFailed, err.Error()); uerr != nil {
				return summary, uerr
			}
			q.log.Warn("enhance: item failed permanently", "id", item.ID, "attempts", item.Attempts, "error", err)
			summary.Failed++
		default:
			if uerr := q.setState(ctx, item.ID, types.StatePending, err.Error()); uerr != nil {
				return summary, uerr
			}
			q.log.Warn("enhance: item requeued", "id", item.ID, "attempts", item.Attempts, "error", err)
			summary.Requeued++
		}
	}

	return summary, nil
}

// Purge deletes done and failed rows, keeping the queue table compact once
// the diagnostics are no longer needed.
func (q *Queue) Purge(ctx context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	res, err := q.db.ExecContext(ctx,
		`DELETE FROM enhancements WHERE state IN (?, ?)`,
		string(types.StateDone), string(types.StateFailed),
	)
	if err != nil {
		return 0, fmt.Errorf("purging queue: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (q *Queue) setProcessing(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE enhancements SET state = ?, attempts = attempts + 1, updated_at = ? WHERE id = ?`,
		string(types.StateProcessing), q.now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return fmt.Errorf("marking item %s processing: %w", id, err)
	}
	return nil
}

func (q *Queue) setState(ctx context.Context, id string, state types.QueueState, lastErr string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE enhancements SET state = ?, last_error = ?, updated_at = ? WHERE id = ?`,
		string(state), lastErr, q.now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return fmt.Errorf("updating item %s: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (types.EnhancementItem, error) {
	var item types.EnhancementItem
	var ct, state, enqueuedAt, updatedAt string
	if err := row.Scan(&item.ID, &item.CapturedText, &ct, &state, &item.Attempts, &item.LastError, &enqueuedAt, &updatedAt); err != nil {
		return types.EnhancementItem{}, fmt.Errorf("scanning queue row: %w", err)
	}
	item.ContentType = types.ContentType(ct)
	item.State = types.QueueState(state)
	var err error
	if item.EnqueuedAt, err = time.Parse(time.RFC3339Nano, enqueuedAt); err != nil {
		return types.EnhancementItem{}, fmt.Errorf("parsing enqueued_at for item %s: %w", item.ID, err)
	}
	if item.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return types.EnhancementItem{}, fmt.Errorf("parsing updated_at for item %s: %w", item.ID, err)
	}
	return item, nil
}
