// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/shadowtrack/shadowtrack/internal/command"
	"github.com/shadowtrack/shadowtrack/internal/command/handlers"
	"github.com/shadowtrack/shadowtrack/internal/config"
	"github.com/shadowtrack/shadowtrack/internal/core"
	"github.com/shadowtrack/shadowtrack/internal/save"
	"github.com/shadowtrack/shadowtrack/internal/tui"
	"github.com/shadowtrack/shadowtrack/internal/xdg"
)

const shutdownTimeout = 5 * time.Second

// runOptions holds the run flags that are not configuration keys.
type runOptions struct {
	loadPath  string
	noArchive bool
}

// NewRunCmd creates the run subcommand.
func NewRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive tracking session",
		Long: `Start the terminal UI. The game clock starts stopped; press space to
run it. Turns are archived to SQLite unless --no-archive is given, and
Prometheus metrics are served when --metrics-addr is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSessionWithDeps(ctx, cfg, opts, nil)
		},
	}

	cmd.Flags().StringVar(&opts.loadPath, "load", "", "save file to resume")
	cmd.Flags().BoolVar(&opts.noArchive, "no-archive", false, "do not archive turns")
	cmd.Flags().Uint64("interval-minutes", config.DefaultIntervalMinutes, "game minutes between turns")
	cmd.Flags().Duration("poll-interval", config.DefaultPollInterval, "how often the clock is checked")
	cmd.Flags().String("save-dir", config.DefaultSaveDir, "directory for save and load without a path")
	cmd.Flags().String("metrics-addr", "", "serve metrics and health probes on this address")
	cmd.Flags().String("archive", "", "turn archive database (default $XDG_DATA_HOME/shadowtrack/archive.db)")
	cmd.Flags().Uint64("seed", 0, "seed the dice for a reproducible session (0 is random)")
	cmd.Flags().String("log-file", "", "log file (default $XDG_STATE_HOME/shadowtrack/shadowtrack.log)")

	return cmd
}

// runSessionWithDeps builds a session from cfg and runs the terminal UI.
func runSessionWithDeps(ctx context.Context, cfg *config.Config, opts *runOptions, deps *RunDeps) error {
	deps = deps.withDefaults()

	// The terminal belongs to the UI, so logs always go to a file.
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = xdg.LogFile()
	}
	logWriter, err := deps.LogWriterOpener(logPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = logWriter.Close()
	}()
	logger := setupLogging(cfg, logWriter)

	logger.Info("starting session",
		"interval_minutes", cfg.IntervalMinutes,
		"poll_interval", cfg.PollInterval,
		"save_dir", cfg.SaveDir,
	)

	sessionOpts := []core.SessionOption{
		core.WithLogger(logger),
		core.WithDefaults(core.Defaults{
			ProcessIntervalMinutes: cfg.IntervalMinutes,
			EncounterTable:         cfg.Tables.Encounters,
			AmbientEventTable:      cfg.Tables.AmbientEvents,
		}),
	}
	if opts.loadPath != "" {
		state, loadErr := save.LoadSave(opts.loadPath)
		if loadErr != nil {
			return loadErr
		}
		sessionOpts = append(sessionOpts, core.WithState(state))
		logger.Info("resumed save", "path", opts.loadPath, "turn", state.Turn)
	}

	rng, err := deps.SourceFactory(cfg.Seed)
	if err != nil {
		return oops.Code("SESSION_FAILED").Wrapf(err, "create dice source")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var ready atomic.Bool
	if cfg.MetricsAddr != "" {
		srv := deps.ObservabilityServerFactory(cfg.MetricsAddr, ready.Load)
		errCh, startErr := srv.Start()
		if startErr != nil {
			return startErr
		}
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer stopCancel()
			if stopErr := srv.Stop(stopCtx); stopErr != nil {
				logger.Warn("error stopping observability server", "error", stopErr)
			}
		}()
		go monitorServerErrors(ctx, cancel, errCh, "observability")
		sessionOpts = append(sessionOpts, core.WithObservers(srv.Metrics()))
		logger.Info("observability server started", "addr", srv.Addr())
	}

	session := core.NewSession(rng, sessionOpts...)

	if !opts.noArchive {
		archivePath := cfg.Archive
		if archivePath == "" {
			archivePath = xdg.ArchiveFile()
		}
		archive, openErr := deps.ArchiveOpener(ctx, archivePath, logger)
		if openErr != nil {
			return openErr
		}
		defer func() {
			if closeErr := archive.Close(); closeErr != nil {
				logger.Warn("error closing archive", "error", closeErr)
			}
		}()
		session.AddObserver(archive.Observer(session.ID()))
		logger.Info("archiving turns", "path", archivePath)
	}

	registry := command.NewRegistry()
	handlers.RegisterAll(registry)
	dispatcher, err := command.NewDispatcher(registry, command.WithLogger(logger))
	if err != nil {
		return oops.Code("SESSION_FAILED").Wrapf(err, "create dispatcher")
	}

	model := tui.New(session, dispatcher,
		tui.WithPollInterval(cfg.PollInterval),
		tui.WithPicker(save.DirPicker{Dir: cfg.SaveDir}),
		tui.WithLogger(logger),
	)

	ready.Store(true)
	err = deps.ProgramRunner(ctx, model)
	ready.Store(false)

	logger.Info("session ended",
		"session_id", session.ID().String(),
		"turn", session.State().Turn,
		"clock_elapsed", session.State().ClockElapsed,
	)
	return err
}

// monitorServerErrors watches a server error channel and cancels the
// context on the first error. It returns when the channel closes or ctx ends.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
