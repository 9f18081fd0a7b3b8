// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowtrack/shadowtrack/internal/command"
	"github.com/shadowtrack/shadowtrack/internal/command/handlers/testutil"
	"github.com/shadowtrack/shadowtrack/internal/core"
	"github.com/shadowtrack/shadowtrack/internal/save"
	"github.com/shadowtrack/shadowtrack/pkg/errutil"
)

type cancelPicker struct{}

func (cancelPicker) PickSaveFile(string) (string, bool, error) { return "", false, nil }
func (cancelPicker) PickLoadFile() (string, bool, error)       { return "", false, nil }

func TestSaveAndLoadHandlers_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.json")
	st := core.NewGameState()
	st.Turn = 4
	exec, out := testutil.NewExecutionBuilder().WithState(st).WithArgs(path).Build()

	require.NoError(t, SaveHandler(context.Background(), exec))
	assert.Equal(t, "Saved to "+path+"\n", out.String())

	var loadedFrom string
	other, _ := testutil.NewExecutionBuilder().
		WithArgs(path).
		WithOnLoad(func(p string) { loadedFrom = p }).
		Build()
	require.NoError(t, LoadHandler(context.Background(), other))
	assert.Equal(t, uint32(4), other.Services.Session.State().Turn)
	assert.Equal(t, path, loadedFrom)
}

func TestSaveHandler_UsesPickerWhenNoPath(t *testing.T) {
	dir := t.TempDir()
	exec, _ := testutil.NewExecutionBuilder().WithPicker(save.DirPicker{Dir: dir}).Build()

	require.NoError(t, SaveHandler(context.Background(), exec))
	assert.FileExists(t, filepath.Join(dir, save.DefaultFileName))
}

func TestSaveHandler_Cancelled(t *testing.T) {
	exec, out := testutil.NewExecutionBuilder().WithPicker(cancelPicker{}).Build()

	require.NoError(t, SaveHandler(context.Background(), exec))
	assert.Equal(t, "Save cancelled.\n", out.String())
}

func TestLoadHandler_FailureKeepsState(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"turn": "x"}`), 0o600))
	st := core.NewGameState()
	st.Turn = 11

	exec, _ := testutil.NewExecutionBuilder().WithState(st).WithArgs(bad).Build()
	errutil.AssertErrorCode(t, LoadHandler(context.Background(), exec), string(save.KindSerialization))
	assert.Same(t, st, exec.Services.Session.State())
	assert.Equal(t, uint32(11), st.Turn)

	exec, _ = testutil.NewExecutionBuilder().WithState(st).WithPicker(cancelPicker{}).Build()
	errutil.AssertErrorCode(t, LoadHandler(context.Background(), exec), string(save.KindNoFileSelected))
	assert.Same(t, st, exec.Services.Session.State())
}

func TestSaveLoadHandlers_TooManyArgs(t *testing.T) {
	exec, _ := testutil.NewExecutionBuilder().WithArgs("a.json b.json").Build()
	errutil.AssertErrorCode(t, SaveHandler(context.Background(), exec), command.CodeInvalidArgs)
	errutil.AssertErrorCode(t, LoadHandler(context.Background(), exec), command.CodeInvalidArgs)
}

func TestResetHandler(t *testing.T) {
	st := core.NewGameState()
	st.Turn = 5
	st.ClockElapsed = 3000
	exec, out := testutil.NewExecutionBuilder().WithState(st).Build()

	require.NoError(t, ResetHandler(context.Background(), exec))
	assert.Zero(t, exec.Services.Session.State().Turn)
	assert.Zero(t, exec.Services.Session.State().ClockElapsed)
	assert.Equal(t, "Session reset.\n", out.String())

	exec.Args = "now"
	errutil.AssertErrorCode(t, ResetHandler(context.Background(), exec), command.CodeInvalidArgs)
}

func TestTablesHandler_ExportThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	exec, _ := testutil.NewExecutionBuilder().
		WithState(stateWithTables([]string{"Owlbear"}, []string{"Wind"})).
		WithArgs("export " + path).
		Build()
	require.NoError(t, TablesHandler(context.Background(), exec))

	other, out := testutil.NewExecutionBuilder().WithArgs("load " + path).Build()
	require.NoError(t, TablesHandler(context.Background(), other))
	assert.Equal(t, []string{"Owlbear"}, other.Services.Session.State().EncounterTable)
	assert.Equal(t, []string{"Wind"}, other.Services.Session.State().AmbientEventTable)
	assert.Contains(t, out.String(), "1 encounters, 1 ambient events")
}

func TestTablesHandler_PartialFileKeepsOtherTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ambient_events:\n  - Hum\n"), 0o600))
	exec, _ := testutil.NewExecutionBuilder().WithArgs("load " + path).Build()

	require.NoError(t, TablesHandler(context.Background(), exec))
	assert.Equal(t, core.DefaultEncounterTable(), exec.Services.Session.State().EncounterTable)
	assert.Equal(t, []string{"Hum"}, exec.Services.Session.State().AmbientEventTable)
}

func TestTablesHandler_Errors(t *testing.T) {
	for _, args := range []string{"", "load", "import x.yaml"} {
		exec, _ := testutil.NewExecutionBuilder().WithArgs(args).Build()
		errutil.AssertErrorCode(t, TablesHandler(context.Background(), exec), command.CodeInvalidArgs)
	}
	exec, _ := testutil.NewExecutionBuilder().WithArgs("load " + filepath.Join(t.TempDir(), "none.yaml")).Build()
	errutil.AssertErrorCode(t, TablesHandler(context.Background(), exec), string(save.KindIO))
}
