// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// SQLite primary result codes that clear up on their own.
const (
	sqliteBusy   = 5
	sqliteLocked = 6
)

// RetryPolicy bounds retries of transient SQLite errors.
type RetryPolicy struct {
	Base       time.Duration
	Cap        time.Duration
	MaxRetries uint64
}

// DefaultRetryPolicy retries three times starting at 50ms, capped at 500ms.
var DefaultRetryPolicy = RetryPolicy{
	Base:       50 * time.Millisecond,
	Cap:        500 * time.Millisecond,
	MaxRetries: 3,
}

func (p RetryPolicy) backoff() retry.Backoff {
	b := retry.NewExponential(p.Base)
	b = retry.WithJitter(p.Base, b)
	b = retry.WithCappedDuration(p.Cap, b)
	return retry.WithMaxRetries(p.MaxRetries, b)
}

type sqliteCoder interface {
	Code() int
}

// isTransient reports whether err is a busy or locked condition.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var coded sqliteCoder
	if errors.As(err, &coded) {
		switch coded.Code() & 0xff {
		case sqliteBusy, sqliteLocked:
			return true
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}

// withRetry runs fn, retrying transient errors under policy.
func withRetry(ctx context.Context, policy RetryPolicy, fn func(context.Context) error) error {
	return retry.Do(ctx, policy.backoff(), func(ctx context.Context) error {
		err := fn(ctx)
		if isTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
