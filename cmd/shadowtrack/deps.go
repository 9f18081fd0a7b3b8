// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/shadowtrack/shadowtrack/internal/core"
	"github.com/shadowtrack/shadowtrack/internal/logging"
	"github.com/shadowtrack/shadowtrack/internal/observability"
	"github.com/shadowtrack/shadowtrack/internal/store"
	"github.com/shadowtrack/shadowtrack/internal/tui"
)

// RunDeps contains injectable dependencies for the run command.
// All fields with nil values will use their default implementations.
type RunDeps struct {
	// ObservabilityServerFactory creates an observability server.
	// Default: observability.NewServer
	ObservabilityServerFactory func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer

	// ArchiveOpener opens the turn archive.
	// Default: store.Open
	ArchiveOpener func(ctx context.Context, path string, logger *slog.Logger) (TurnArchive, error)

	// SourceFactory creates the dice source. A zero seed means unseeded.
	// Default: newRandomSource
	SourceFactory func(seed uint64) (core.RandomSource, error)

	// LogWriterOpener opens the log destination.
	// Default: logging.OpenFile
	LogWriterOpener func(path string) (io.WriteCloser, error)

	// ProgramRunner runs the terminal UI until the user quits.
	// Default: tui.Run
	ProgramRunner func(ctx context.Context, m *tui.Model) error
}

// ObservabilityServer is the subset of observability.Server used by run.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
	Metrics() *observability.Metrics
}

// TurnArchive records the turns of one session.
type TurnArchive interface {
	Observer(sessionID ulid.ULID) core.Observer
	Close() error
}

// sqliteArchive adapts store.Archive to TurnArchive.
type sqliteArchive struct {
	*store.Archive
}

func (a sqliteArchive) Observer(sessionID ulid.ULID) core.Observer {
	return a.Recorder(sessionID)
}

func (d *RunDeps) withDefaults() *RunDeps {
	out := RunDeps{}
	if d != nil {
		out = *d
	}
	if out.ObservabilityServerFactory == nil {
		out.ObservabilityServerFactory = func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer {
			return observability.NewServer(addr, readinessChecker)
		}
	}
	if out.ArchiveOpener == nil {
		out.ArchiveOpener = func(ctx context.Context, path string, logger *slog.Logger) (TurnArchive, error) {
			a, err := store.Open(ctx, path, store.WithLogger(logger))
			if err != nil {
				return nil, err
			}
			return sqliteArchive{a}, nil
		}
	}
	if out.SourceFactory == nil {
		out.SourceFactory = newRandomSource
	}
	if out.LogWriterOpener == nil {
		out.LogWriterOpener = func(path string) (io.WriteCloser, error) {
			return logging.OpenFile(path)
		}
	}
	if out.ProgramRunner == nil {
		out.ProgramRunner = func(ctx context.Context, m *tui.Model) error {
			return tui.Run(ctx, m)
		}
	}
	return &out
}

func newRandomSource(seed uint64) (core.RandomSource, error) {
	if seed != 0 {
		return core.NewSeededSource(seed), nil
	}
	return core.NewDefaultSource()
}
