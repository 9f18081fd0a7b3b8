// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shadowtrack/shadowtrack/pkg/errutil"
)

var tracer = otel.Tracer("shadowtrack/command")

// Dispatcher parses command lines and runs the matching handler.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
}

// DispatcherOption configures a Dispatcher during construction.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger used for failed commands.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

// NewDispatcher creates a dispatcher over registry.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) (*Dispatcher, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	d := &Dispatcher{registry: registry, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Registry returns the dispatcher's registry.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Dispatch parses input and executes the command it names.
func (d *Dispatcher) Dispatch(ctx context.Context, input string, exec *CommandExecution) (err error) {
	if exec == nil || exec.Services == nil || exec.Services.Session == nil {
		return ErrNilServices()
	}

	parsed, err := Parse(input)
	if err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "command.execute",
		trace.WithAttributes(
			attribute.String("command.name", parsed.Name),
			attribute.String("session.id", exec.Services.Session.ID().String()),
		),
	)
	start := time.Now()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	entry, ok := d.registry.Get(parsed.Name)
	if !ok {
		RecordCommandExecution(parsed.Name, StatusNotFound)
		err = ErrUnknownCommand(parsed.Name)
		return err
	}
	if entry.Name != parsed.Name {
		span.SetAttributes(attribute.String("command.alias_used", parsed.Name))
	}
	span.SetAttributes(attribute.String("command.source", entry.Source))

	exec.Args = parsed.Args
	exec.InvokedAs = parsed.Name
	err = entry.Handler(ctx, exec)
	RecordCommandDuration(entry.Name, time.Since(start))
	if err != nil {
		RecordCommandExecution(entry.Name, statusFor(err))
		errutil.LogError(d.logger.With("command", entry.Name, "args", parsed.Args), "command execution failed", err)
		return err
	}
	RecordCommandExecution(entry.Name, StatusSuccess)
	return nil
}

func statusFor(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok && oopsErr.Code() == CodeInvalidArgs {
		return StatusInvalidArgs
	}
	return StatusError
}
