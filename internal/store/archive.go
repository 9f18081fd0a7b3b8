// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

// Package store archives processed turns in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/shadowtrack/shadowtrack/internal/core"
)

// recordTimeout bounds one archive write from the observer path.
const recordTimeout = 5 * time.Second

// TurnRecord is one archived turn.
type TurnRecord struct {
	ID           ulid.ULID
	SessionID    ulid.ULID
	Turn         uint32
	ClockElapsed uint64
	Events       []string
	RecordedAt   time.Time
}

// Archive stores turn reports in a SQLite database.
type Archive struct {
	db     *sql.DB
	logger *slog.Logger
	retry  RetryPolicy
	now    func() time.Time
}

// Option configures an Archive.
type Option func(*Archive)

// WithLogger sets the logger used for write failures on the observer path.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Archive) { a.logger = logger }
}

// WithRetryPolicy replaces DefaultRetryPolicy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(a *Archive) { a.retry = p }
}

// WithNow replaces the wall clock used for recorded_at.
func WithNow(now func() time.Time) Option {
	return func(a *Archive) { a.now = now }
}

// Open opens or creates the archive at path and migrates it to the latest
// schema.
func Open(ctx context.Context, path string, opts ...Option) (*Archive, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, oops.Code("ARCHIVE_OPEN_FAILED").With("path", path).Wrapf(err, "create archive directory")
		}
	}

	a := &Archive{
		logger: slog.Default(),
		retry:  DefaultRetryPolicy,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := migrateArchive(ctx, path, a.retry); err != nil {
		return nil, oops.Code("ARCHIVE_OPEN_FAILED").With("path", path).Wrap(err)
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, oops.Code("ARCHIVE_OPEN_FAILED").With("path", path).Wrapf(err, "open archive")
	}
	db.SetMaxOpenConns(1)
	a.db = db
	return a, nil
}

// dsn adds the connection pragmas to a database path.
func dsn(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
}

// migrateArchive applies pending migrations on a connection of its own.
func migrateArchive(ctx context.Context, path string, policy RetryPolicy) error {
	return withRetry(ctx, policy, func(context.Context) error {
		m, err := OpenMigrator(path)
		if err != nil {
			return err
		}
		upErr := m.Up()
		closeErr := m.Close()
		if upErr != nil {
			return upErr
		}
		return closeErr
	})
}

// Close closes the database.
func (a *Archive) Close() error {
	if err := a.db.Close(); err != nil {
		return oops.Code("ARCHIVE_CLOSE_FAILED").Wrap(err)
	}
	return nil
}

// Record stores one turn report for a session.
func (a *Archive) Record(ctx context.Context, sessionID ulid.ULID, report core.TurnReport) error {
	events := report.Events
	if events == nil {
		events = []string{}
	}
	payload, err := json.Marshal(events)
	if err != nil {
		return oops.Code("ARCHIVE_WRITE_FAILED").Wrapf(err, "encode events")
	}
	now := a.now()
	id := core.NewULIDAt(now)
	recordedAt := now.UTC().Format(time.RFC3339Nano)

	err = withRetry(ctx, a.retry, func(ctx context.Context) error {
		_, err := a.db.ExecContext(ctx,
			`INSERT INTO turns (id, session_id, turn, clock_elapsed, events, recorded_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id.String(), sessionID.String(), int64(report.Turn), int64(report.ClockElapsed), string(payload), recordedAt,
		)
		return err
	})
	if err != nil {
		return oops.Code("ARCHIVE_WRITE_FAILED").
			With("session_id", sessionID.String()).
			With("turn", report.Turn).
			Wrapf(err, "insert turn")
	}
	return nil
}

// History returns up to limit archived turns, newest first. A non-positive
// limit returns every turn.
func (a *Archive) History(ctx context.Context, limit int) ([]TurnRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, session_id, turn, clock_elapsed, events, recorded_at
		 FROM turns ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, oops.Code("ARCHIVE_READ_FAILED").Wrapf(err, "query turns")
	}
	defer func() { _ = rows.Close() }()

	var records []TurnRecord
	for rows.Next() {
		rec, err := scanTurn(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ARCHIVE_READ_FAILED").Wrapf(err, "iterate turns")
	}
	return records, nil
}

func scanTurn(rows *sql.Rows) (TurnRecord, error) {
	var (
		rec                    TurnRecord
		idStr, sessStr         string
		turn, clock            int64
		eventsJSON, recordedAt string
	)
	if err := rows.Scan(&idStr, &sessStr, &turn, &clock, &eventsJSON, &recordedAt); err != nil {
		return rec, oops.Code("ARCHIVE_READ_FAILED").Wrapf(err, "scan turn")
	}

	corrupt := oops.Code("ARCHIVE_CORRUPT").With("id", idStr)
	var err error
	if rec.ID, err = core.ParseULID(idStr); err != nil {
		return rec, corrupt.Wrapf(err, "turn id")
	}
	if rec.SessionID, err = core.ParseULID(sessStr); err != nil {
		return rec, corrupt.Wrapf(err, "session id")
	}
	if err := json.Unmarshal([]byte(eventsJSON), &rec.Events); err != nil {
		return rec, corrupt.Wrapf(err, "events")
	}
	if rec.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
		return rec, corrupt.Wrapf(err, "recorded_at")
	}
	rec.Turn = uint32(turn)
	rec.ClockElapsed = uint64(clock)
	return rec, nil
}

// Recorder returns a session observer that archives every turn. Write
// failures are logged and never reach the tick path.
func (a *Archive) Recorder(sessionID ulid.ULID) *Recorder {
	return &Recorder{archive: a, sessionID: sessionID}
}

// Recorder archives turns for one session.
type Recorder struct {
	archive   *Archive
	sessionID ulid.ULID
}

var _ core.Observer = (*Recorder)(nil)

// TurnProcessed archives report.
func (r *Recorder) TurnProcessed(report core.TurnReport) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := r.archive.Record(ctx, r.sessionID, report); err != nil {
		r.archive.logger.Error("archive turn failed",
			"session_id", r.sessionID.String(),
			"turn", report.Turn,
			"error", err,
		)
	}
}
