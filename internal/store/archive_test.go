// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package store

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowtrack/shadowtrack/internal/core"
	"github.com/shadowtrack/shadowtrack/pkg/errutil"
)

var epoch = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

// steppingClock returns epoch, then one second later on each call.
func steppingClock() func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return epoch.Add(time.Duration(n) * time.Second)
	}
}

func openArchive(t *testing.T, opts ...Option) *Archive {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "archive.db")
	a, err := Open(context.Background(), path, append([]Option{WithNow(steppingClock())}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestArchive_RecordAndHistory(t *testing.T) {
	a := openArchive(t)
	ctx := context.Background()
	session := core.NewULID()

	for turn := uint32(1); turn <= 3; turn++ {
		require.NoError(t, a.Record(ctx, session, core.TurnReport{
			Turn:         turn,
			ClockElapsed: uint64(turn) * 600,
			Events:       []string{"Drip", core.NoEncounterText},
		}))
	}

	recent, err := a.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, uint32(3), recent[0].Turn)
	assert.Equal(t, uint32(2), recent[1].Turn)
	assert.Equal(t, uint64(1800), recent[0].ClockElapsed)
	assert.Equal(t, session, recent[0].SessionID)
	assert.Equal(t, []string{"Drip", core.NoEncounterText}, recent[0].Events)
	assert.Equal(t, epoch.Add(3*time.Second), recent[0].RecordedAt)

	all, err := a.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestArchive_NilEventsStoredAsEmpty(t *testing.T) {
	a := openArchive(t)
	ctx := context.Background()

	require.NoError(t, a.Record(ctx, core.NewULID(), core.TurnReport{Turn: 1}))

	recs, err := a.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.NotNil(t, recs[0].Events)
	assert.Empty(t, recs[0].Events)
}

func TestArchive_EmptyHistory(t *testing.T) {
	recs, err := openArchive(t).History(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestArchive_ReopenKeepsTurns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	ctx := context.Background()

	a, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, a.Record(ctx, core.NewULID(), core.TurnReport{Turn: 7}))
	require.NoError(t, a.Close())

	b, err := Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()
	recs, err := b.History(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, uint32(7), recs[0].Turn)
}

func TestArchive_CorruptRow(t *testing.T) {
	a := openArchive(t)
	ctx := context.Background()
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO turns (id, session_id, turn, clock_elapsed, events, recorded_at) VALUES (?, ?, 1, 0, 'not json', ?)`,
		core.NewULID().String(), core.NewULID().String(), epoch.Format(time.RFC3339Nano))
	require.NoError(t, err)

	_, err = a.History(ctx, 1)
	errutil.AssertErrorCode(t, err, "ARCHIVE_CORRUPT")
}

func TestOpen_BadPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := Open(context.Background(), filepath.Join(blocker, "archive.db"))
	errutil.AssertErrorCode(t, err, "ARCHIVE_OPEN_FAILED")
}

func TestRecorder_ArchivesSessionTurns(t *testing.T) {
	a := openArchive(t)
	s := core.NewSession(core.NewSeededSource(7), core.WithNow(func() time.Time { return epoch }))
	s.AddObserver(a.Recorder(s.ID()))
	s.StartClock()

	// The first tick arms the trigger; the second crosses it.
	s.HandleClockTick(epoch.Add(time.Minute))
	report := s.HandleClockTick(epoch.Add(11 * time.Minute))
	require.NotNil(t, report)

	recs, err := a.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, s.ID(), recs[0].SessionID)
	assert.Equal(t, report.Turn, recs[0].Turn)
	assert.Equal(t, report.Events, recs[0].Events)
}

func TestRecorder_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	a := openArchive(t, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	require.NoError(t, a.Close())

	assert.NotPanics(t, func() {
		a.Recorder(core.NewULID()).TurnProcessed(core.TurnReport{Turn: 1})
	})
	assert.Contains(t, buf.String(), "archive turn failed")
}
