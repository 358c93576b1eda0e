package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run statuses recorded in history.
const (
	RunStatusOK      = "ok"
	RunStatusPartial = "partial"
	RunStatusFailed  = "failed"
)

// Run is one recorded pipeline invocation.
type Run struct {
	ID           string
	Command      string
	StartedAt    time.Time
	FinishedAt   time.Time
	Repos        int
	Commits      int
	PullRequests int
	CodeReviews  int
	Status       string
	Detail       string
}

const timeLayout = time.RFC3339

// RecordRun inserts a run, assigning it a fresh ID which is returned.
func (s *Store) RecordRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO runs (id, command, started_at, finished_at, repos, commits, pull_requests, code_reviews, status, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Command,
		r.StartedAt.UTC().Format(timeLayout), r.FinishedAt.UTC().Format(timeLayout),
		r.Repos, r.Commits, r.PullRequests, r.CodeReviews,
		r.Status, r.Detail,
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return r.ID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, command, started_at, finished_at, repos, commits, pull_requests, code_reviews, status, detail
		FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &r.Command, &started, &finished,
			&r.Repos, &r.Commits, &r.PullRequests, &r.CodeReviews, &r.Status, &r.Detail); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, _ = time.Parse(timeLayout, started)
		r.FinishedAt, _ = time.Parse(timeLayout, finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LastRun returns the most recent run for command, or sql.ErrNoRows when
// history is empty.
func (s *Store) LastRun(command string) (Run, error) {
	rows, err := s.db.Query(`
		SELECT id, command, started_at, finished_at, repos, commits, pull_requests, code_reviews, status, detail
		FROM runs WHERE command = ? ORDER BY started_at DESC, id LIMIT 1`, command)
	if err != nil {
		return Run{}, fmt.Errorf("last run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Run{}, err
		}
		return Run{}, sql.ErrNoRows
	}

	var r Run
	var started, finished string
	if err := rows.Scan(&r.ID, &r.Command, &started, &finished,
		&r.Repos, &r.Commits, &r.PullRequests, &r.CodeReviews, &r.Status, &r.Detail); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	r.StartedAt, _ = time.Parse(timeLayout, started)
	r.FinishedAt, _ = time.Parse(timeLayout, finished)
	return r, nil
}
