// Package trackdb is the run index: a SQLite database recording every
// session run with its per-recording coverage, so batch history survives
// across invocations.
package trackdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/tracks.report/internal/session"
)

type Store struct {
	*sql.DB
}

// Open opens (creating if necessary) the run index at path. The schema is
// managed by migrations; call MigrateUp before first use.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run index: %w", err)
	}
	// Serialized writes; sqlite handles one writer at a time.
	db.SetMaxOpenConns(1)
	return &Store{db}, nil
}

// RecordRun persists one session run and its per-recording rows in a single
// transaction. Implements session.Recorder.
func (s *Store) RecordRun(ctx context.Context, run session.Run) error {
	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, session, started_at, duration_ms, recordings, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Session, run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Duration.Milliseconds(), len(run.Recordings), run.Err,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, r := range run.Recordings {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_recordings (run_id, recording, points, coverage)
			 VALUES (?, ?, ?, ?)`,
			run.ID, r.Name, r.Points, r.Coverage,
		)
		if err != nil {
			return fmt.Errorf("failed to insert recording row: %w", err)
		}
	}

	return tx.Commit()
}

// Runs returns the recorded runs for one session, newest first, with their
// per-recording rows attached.
func (s *Store) Runs(ctx context.Context, sessionName string) ([]session.Run, error) {
	rows, err := s.QueryContext(ctx,
		`SELECT run_id, session, started_at, duration_ms, error
		 FROM runs WHERE session = ? ORDER BY started_at DESC`,
		sessionName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []session.Run
	for rows.Next() {
		var (
			run        session.Run
			startedAt  string
			durationMs int64
		)
		if err := rows.Scan(&run.ID, &run.Session, &startedAt, &durationMs, &run.Err); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		runs[i].Recordings, err = s.recordingRows(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *Store) recordingRows(ctx context.Context, runID string) ([]session.RecordingRun, error) {
	rows, err := s.QueryContext(ctx,
		`SELECT recording, points, coverage FROM run_recordings
		 WHERE run_id = ? ORDER BY recording`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recordings: %w", err)
	}
	defer rows.Close()

	var recs []session.RecordingRun
	for rows.Next() {
		var r session.RecordingRun
		if err := rows.Scan(&r.Name, &r.Points, &r.Coverage); err != nil {
			return nil, fmt.Errorf("failed to scan recording: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// SessionCoverage returns the mean coverage over the most recent run of each
// named session, keyed by session name.
func (s *Store) SessionCoverage(ctx context.Context) (map[string]float64, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT r.session, AVG(rr.coverage)
		FROM runs r
		JOIN run_recordings rr ON rr.run_id = r.run_id
		WHERE r.started_at = (
			SELECT MAX(started_at) FROM runs WHERE session = r.session
		)
		GROUP BY r.session`)
	if err != nil {
		return nil, fmt.Errorf("failed to query coverage: %w", err)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var (
			name string
			cov  float64
		)
		if err := rows.Scan(&name, &cov); err != nil {
			return nil, err
		}
		out[name] = cov
	}
	return out, rows.Err()
}
