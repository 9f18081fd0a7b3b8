// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

// Package logging builds the structured logger with OpenTelemetry trace context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel/trace"
)

// traceHandler stamps every record with service, version and the active span.
// The stamped attrs stay at the top level: groups and attrs added after the
// first group are replayed on top of them when a record is handled.
type traceHandler struct {
	handler slog.Handler
	service string
	version string
	grouped []groupOrAttrs
}

type groupOrAttrs struct {
	group string
	attrs []slog.Attr
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	stamp := []slog.Attr{
		slog.String("service", h.service),
		slog.String("version", h.version),
	}

	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.HasTraceID() {
		stamp = append(stamp, slog.String("trace_id", spanCtx.TraceID().String()))
	}
	if spanCtx.HasSpanID() {
		stamp = append(stamp, slog.String("span_id", spanCtx.SpanID().String()))
	}

	handler := h.handler.WithAttrs(stamp)
	for _, g := range h.grouped {
		if g.group != "" {
			handler = handler.WithGroup(g.group)
		} else {
			handler = handler.WithAttrs(g.attrs)
		}
	}

	//nolint:wrapcheck // Handler interface requires unwrapped error passthrough
	return handler.Handle(ctx, r)
}

func (h *traceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	if len(h.grouped) == 0 {
		return &traceHandler{handler: h.handler.WithAttrs(attrs), service: h.service, version: h.version}
	}
	return h.with(groupOrAttrs{attrs: attrs})
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.with(groupOrAttrs{group: name})
}

func (h *traceHandler) with(g groupOrAttrs) *traceHandler {
	grouped := make([]groupOrAttrs, 0, len(h.grouped)+1)
	grouped = append(grouped, h.grouped...)
	grouped = append(grouped, g)
	return &traceHandler{handler: h.handler, service: h.service, version: h.version, grouped: grouped}
}

// ParseLevel maps debug, info, warn or error to a slog level.
// An empty string means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, oops.Code("INVALID_LOG_LEVEL").With("level", level).Errorf("unknown log level %q", level)
	}
}

// Setup creates a configured slog.Logger.
// format: "json" or "text" (defaults to "text" if empty).
// An unknown level falls back to info. If w is nil, writes to os.Stderr.
func Setup(service, version, format, level string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, _ := ParseLevel(level)
	opts := &slog.HandlerOptions{Level: lvl}

	var base slog.Handler
	if format == "json" {
		base = slog.NewJSONHandler(w, opts)
	} else {
		base = slog.NewTextHandler(w, opts)
	}

	return slog.New(&traceHandler{handler: base, service: service, version: version})
}

// SetDefault sets up and installs the default logger.
func SetDefault(service, version, format, level string, w io.Writer) *slog.Logger {
	logger := Setup(service, version, format, level, w)
	slog.SetDefault(logger)
	return logger
}

// OpenFile opens path for appending log output, creating its directory.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, oops.Code("LOG_FILE_FAILED").With("path", path).Wrapf(err, "create log directory")
	}
	//nolint:gosec // path comes from configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, oops.Code("LOG_FILE_FAILED").With("path", path).Wrapf(err, "open log file")
	}
	return f, nil
}
