// Package queue implements the durable task queue that carries document
// records between pipeline stages.
//
// It is a visibility-timeout queue on pure SQLite: a claimed task is
// invisible to other consumers for a configurable duration. If the holder
// finishes it acks (deletes) the task; if the holder crashes or exceeds the
// timeout the task reappears and another worker can claim it. Combined with
// idempotent stage logic this gives at-least-once processing that survives
// process restarts without an external broker.
//
// Tasks are keyed "stage:documentID", so re-enqueueing the same stage
// transition for the same document converges on a single row instead of
// fanning out duplicates.
package queue

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/seorim/newsgate/core"
)

// Task is a row in the queue: one pending stage execution for one document.
type Task struct {
	Key       string // "stage:documentID"
	Stage     core.Stage
	DocID     string
	Payload   []byte // MUS-serialized document record
	VisibleAt time.Time
	CreatedAt time.Time
	Attempts  int
}

// Options configures queue behaviour.
type Options struct {
	// Visibility is how long a claimed task stays invisible. It must
	// comfortably exceed the slowest stage execution. Default: 10m.
	Visibility time.Duration
	// PollInterval is the delay between claim attempts in Run loops.
	// Default: 1s.
	PollInterval time.Duration
	// Logger overrides the default slog logger.
	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.Visibility <= 0 {
		o.Visibility = 10 * time.Minute
	}
	if o.PollInterval <= 0 {
		o.PollInterval = time.Second
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Open opens (or creates) the queue database with WAL mode enabled. Use
// ":memory:" for tests.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Q is the queue handle.
type Q struct {
	db   *sql.DB
	opts Options
}

// New creates a queue handle. Call EnsureTable once at startup, then
// Enqueue and Claim as needed.
func New(db *sql.DB, opts Options) *Q {
	opts.defaults()
	return &Q{db: db, opts: opts}
}

// EnsureTable creates the task table and index if they don't exist.
func (q *Q) EnsureTable(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS pipeline_tasks (
			key         TEXT PRIMARY KEY,
			stage       TEXT NOT NULL,
			doc_id      TEXT NOT NULL,
			payload     BLOB,
			visible_at  INTEGER NOT NULL DEFAULT 0,
			created_at  INTEGER NOT NULL,
			attempts    INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_pipeline_visible ON pipeline_tasks (visible_at);
	`)
	return err
}

// taskKey builds the primary key for one stage transition of one document.
func taskKey(stage core.Stage, docID string) string {
	return string(stage) + ":" + docID
}

// Enqueue durably schedules a stage execution, immediately visible. A
// repeat of the same transition overwrites the existing row (latest record
// state wins) rather than creating a second task.
func (q *Q) Enqueue(ctx context.Context, stage core.Stage, docID string, payload []byte) error {
	now := time.Now().UnixMilli()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO pipeline_tasks (key, stage, doc_id, payload, visible_at, created_at)
		VALUES (?,?,?,?,?,?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, visible_at = excluded.visible_at`,
		taskKey(stage, docID), string(stage), docID, payload, now, now,
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskKey(stage, docID), err)
	}
	return nil
}

// Claim atomically picks the oldest visible task, marks it invisible for
// the configured visibility duration, and returns it. Returns nil, nil if
// no task is available.
func (q *Q) Claim(ctx context.Context) (*Task, error) {
	tasks, err := q.BatchClaim(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	return tasks[0], nil
}

// BatchClaim atomically claims up to n visible tasks. It returns an empty
// (non-nil) slice when nothing is visible.
func (q *Q) BatchClaim(ctx context.Context, n int) ([]*Task, error) {
	now := time.Now()
	hideUntil := now.Add(q.opts.Visibility).UnixMilli()

	rows, err := q.db.QueryContext(ctx, `
		UPDATE pipeline_tasks
		SET visible_at = ?, attempts = attempts + 1
		WHERE key IN (
			SELECT key FROM pipeline_tasks
			WHERE visible_at <= ?
			ORDER BY visible_at ASC
			LIMIT ?
		)
		RETURNING key, stage, doc_id, payload, visible_at, created_at, attempts`,
		hideUntil, now.UnixMilli(), n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*Task{}
	for rows.Next() {
		var t Task
		var stage string
		var visAt, creAt int64
		if err := rows.Scan(&t.Key, &stage, &t.DocID, &t.Payload, &visAt, &creAt, &t.Attempts); err != nil {
			return nil, err
		}
		t.Stage = core.Stage(stage)
		t.VisibleAt = time.UnixMilli(visAt)
		t.CreatedAt = time.UnixMilli(creAt)
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

// Ack deletes a successfully processed task.
func (q *Q) Ack(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM pipeline_tasks WHERE key = ?`, key)
	return err
}

// Nack re-schedules a task after a backoff delay so it can be retried.
// A zero delay makes it immediately visible again.
func (q *Q) Nack(ctx context.Context, key string, delay time.Duration) error {
	visibleAt := time.Now().Add(delay).UnixMilli()
	if delay <= 0 {
		visibleAt = 0
	}
	_, err := q.db.ExecContext(ctx,
		`UPDATE pipeline_tasks SET visible_at = ? WHERE key = ?`, visibleAt, key,
	)
	return err
}

// Len returns the total number of tasks (visible + invisible).
func (q *Q) Len(ctx context.Context) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pipeline_tasks`).Scan(&n)
	return n, err
}

// Purge deletes all tasks.
func (q *Q) Purge(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM pipeline_tasks`)
	return err
}
