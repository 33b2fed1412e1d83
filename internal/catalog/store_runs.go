package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StartRun records the beginning of an ingest pass and returns its record.
// Run bookkeeping writes immediately so a crashed scan leaves a visible
// "running" row behind.
func (s *Store) StartRun(ctx context.Context, root string) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Root:      root,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO ingest_runs (id, root, status, started_at) VALUES (?, ?, ?, ?)",
		run.ID, run.Root, string(run.Status), formatTimestamp(run.StartedAt))
	if err != nil {
		return nil, fmt.Errorf("start ingest run: %w", err)
	}
	return run, nil
}

// FinishRun records the outcome and counters of a completed or failed run.
func (s *Store) FinishRun(ctx context.Context, run *Run) error {
	now := time.Now()
	run.FinishedAt = &now
	_, err := s.db.ExecContext(ctx,
		`UPDATE ingest_runs
         SET status = ?, finished_at = ?, files_seen = ?, files_skipped = ?, duplicates = ?,
             files_copied = ?, files_cataloged = ?, error_message = ?
         WHERE id = ?`,
		string(run.Status), formatTimestamp(now), run.FilesSeen, run.FilesSkipped, run.Duplicates,
		run.FilesCopied, run.FilesCataloged, nullableString(run.ErrorMessage), run.ID)
	if err != nil {
		return fmt.Errorf("finish ingest run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent ingest runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.q().QueryContext(ctx,
		`SELECT id, root, status, started_at, finished_at, files_seen, files_skipped, duplicates,
                files_copied, files_cataloged, error_message
         FROM ingest_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list ingest runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			status     string
			startedAt  string
			finishedAt sql.NullString
			errMessage sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.Root, &status, &startedAt, &finishedAt,
			&run.FilesSeen, &run.FilesSkipped, &run.Duplicates,
			&run.FilesCopied, &run.FilesCataloged, &errMessage); err != nil {
			return nil, fmt.Errorf("scan ingest run: %w", err)
		}
		run.Status = RunStatus(status)
		if parsed, parseErr := parseTimestamp(startedAt); parseErr == nil {
			run.StartedAt = parsed
		}
		if finishedAt.Valid {
			if parsed, parseErr := parseTimestamp(finishedAt.String); parseErr == nil {
				run.FinishedAt = &parsed
			}
		}
		if errMessage.Valid {
			run.ErrorMessage = errMessage.String
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingest runs: %w", err)
	}
	return runs, nil
}
