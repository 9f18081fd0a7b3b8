// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package errutil_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowtrack/shadowtrack/pkg/errutil"
)

func TestLogError_WithOopsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := oops.Code("SAVE_IO").
		With("path", "save.json").
		Errorf("disk full")

	errutil.LogError(logger, "save failed", err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "save failed", entry["msg"])
	assert.Equal(t, "SAVE_IO", entry["code"])
	assert.Equal(t, map[string]any{"path": "save.json"}, entry["context"])
}

func TestLogError_WithStandardError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	errutil.LogError(logger, "save failed", errors.New("plain failure"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Contains(t, entry["error"], "plain failure")
	assert.NotContains(t, entry, "code")
}

func TestCode(t *testing.T) {
	assert.Equal(t, "LIGHT_NOT_FOUND", errutil.Code(oops.Code("LIGHT_NOT_FOUND").Errorf("x")))
	assert.Equal(t, "", errutil.Code(errors.New("x")))
	assert.Equal(t, "", errutil.Code(oops.Errorf("no code")))
	assert.Equal(t, "", errutil.Code(nil))
}
