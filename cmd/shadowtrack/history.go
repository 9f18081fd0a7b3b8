// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/shadowtrack/shadowtrack/internal/core"
	"github.com/shadowtrack/shadowtrack/internal/store"
	"github.com/shadowtrack/shadowtrack/internal/xdg"
	"github.com/shadowtrack/shadowtrack/pkg/errutil"
)

const defaultHistoryLimit = 20

var historyHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var historyCellStyle = lipgloss.NewStyle().Padding(0, 1)

// NewHistoryCmd creates the history subcommand.
func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived turns, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := setupLogging(cfg, cmd.ErrOrStderr())

			path := cfg.Archive
			if path == "" {
				path = xdg.ArchiveFile()
			}
			records, err := readHistory(cmd.Context(), path, limit)
			if err != nil {
				errutil.LogError(logger.With("path", path), "read history failed", err)
				return err
			}
			writeHistory(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().String("archive", "", "turn archive database (default $XDG_DATA_HOME/shadowtrack/archive.db)")
	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "number of turns to list (0 lists all)")
	return cmd
}

func readHistory(ctx context.Context, path string, limit int) ([]store.TurnRecord, error) {
	archive, err := store.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = archive.Close()
	}()
	return archive.History(ctx, limit)
}

func writeHistory(w io.Writer, records []store.TurnRecord) {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "No turns archived.")
		return
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.RecordedAt.Local().Format(time.DateTime),
			r.SessionID.String(),
			strconv.FormatUint(uint64(r.Turn), 10),
			core.FormatClock(r.ClockElapsed),
			strings.Join(r.Events, "; "),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Recorded", "Session", "Turn", "Clock", "Events").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return historyHeaderStyle
			}
			return historyCellStyle
		})
	_, _ = fmt.Fprintln(w, t.Render())
}
