// Package journal implements SQLite persistence of commit-session outcomes.
//
// The in-memory registry stays the source of truth while a session runs; the
// journal is the durable audit trail of what was attempted and how each task
// ended, queried by the status command after the process exits.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/fwsync/internal/changes"
	"github.com/desertthunder/fwsync/internal/shared"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS task_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL REFERENCES sessions(id),
	task_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	status TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT '',
	recorded_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_task_records_session ON task_records(session_id);
`

// Session is one recorded commit session.
type Session struct {
	ID         string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// TaskRecord is one task outcome within a session.
type TaskRecord struct {
	SessionID  string
	TaskID     string
	Kind       string
	Status     string
	Detail     string
	RecordedAt time.Time
}

// Journal records commit sessions and their task outcomes.
type Journal struct {
	db *sql.DB
}

// Open connects to the journal database and ensures the schema exists.
func Open(cfg shared.JournalConfig) (*Journal, error) {
	db, err := shared.NewDatabase(cfg.Path)
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply journal schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close releases the underlying database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// StartSession opens a new session and returns its id.
func (j *Journal) StartSession() (string, error) {
	id := shared.GenerateID()

	query := `INSERT INTO sessions (id, started_at) VALUES (?, ?)`
	if _, err := j.db.Exec(query, id, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("failed to start session: %w", err)
	}
	return id, nil
}

// FinishSession stamps a session's completion time.
func (j *Journal) FinishSession(id string) error {
	query := `UPDATE sessions SET finished_at = ? WHERE id = ?`
	result, err := j.db.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to finish session: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: session %s", shared.ErrTaskNotFound, id)
	}
	return nil
}

// RecordTask appends a task's current state to a session's trail.
func (j *Journal) RecordTask(sessionID string, task *changes.Task, detail string) error {
	query := `
		INSERT INTO task_records (session_id, task_id, kind, status, detail, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := j.db.Exec(query, sessionID, task.ID, task.Change.Kind(), task.Status().String(), detail, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record task: %w", err)
	}
	return nil
}

// RecordAll appends every task's current state to a session's trail.
func (j *Journal) RecordAll(sessionID string, tasks []*changes.Task) error {
	for _, task := range tasks {
		if err := j.RecordTask(sessionID, task, ""); err != nil {
			return err
		}
	}
	return nil
}

// Sessions lists every session, newest first.
func (j *Journal) Sessions() ([]Session, error) {
	rows, err := j.db.Query(`SELECT id, started_at, finished_at FROM sessions ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.StartedAt, &s.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// SessionRecords returns a session's task outcomes in recording order.
func (j *Journal) SessionRecords(sessionID string) ([]TaskRecord, error) {
	query := `
		SELECT session_id, task_id, kind, status, detail, recorded_at
		FROM task_records WHERE session_id = ? ORDER BY id ASC
	`
	rows, err := j.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query task records: %w", err)
	}
	defer rows.Close()

	var records []TaskRecord
	for rows.Next() {
		var r TaskRecord
		if err := rows.Scan(&r.SessionID, &r.TaskID, &r.Kind, &r.Status, &r.Detail, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
