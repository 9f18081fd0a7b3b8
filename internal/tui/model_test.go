// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package tui

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowtrack/shadowtrack/internal/command"
	"github.com/shadowtrack/shadowtrack/internal/command/handlers"
	"github.com/shadowtrack/shadowtrack/internal/core"
	"github.com/shadowtrack/shadowtrack/internal/core/coretest"
	"github.com/shadowtrack/shadowtrack/internal/save"
)

var epoch = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

func newModel(t *testing.T, rng core.RandomSource, opts ...Option) *Model {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := core.NewSession(rng, core.WithNow(func() time.Time { return epoch }), core.WithLogger(quiet))
	reg := command.NewRegistry()
	handlers.RegisterAll(reg)
	d, err := command.NewDispatcher(reg, command.WithLogger(quiet))
	require.NoError(t, err)
	return New(session, d, append([]Option{WithLogger(quiet)}, opts...)...)
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeLine(m *Model, line string) {
	m.Update(key(":"))
	for _, r := range line {
		m.Update(key(string(r)))
	}
	m.Update(key("enter"))
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_InitSchedulesTick(t *testing.T) {
	m := newModel(t, coretest.NewScriptedSource(nil, nil))
	assert.NotNil(t, m.Init())
}

func TestModel_TickDrivesTurns(t *testing.T) {
	m := newModel(t, coretest.NewScriptedSource([]uint32{4}, nil))
	m.Update(key(" "))
	require.True(t, m.session.ClockRunning())

	_, cmd := m.Update(tickMsg(epoch.Add(time.Minute)))
	assert.NotNil(t, cmd, "polling continues")
	assert.Zero(t, m.session.State().Turn)

	m.Update(tickMsg(epoch.Add(11 * time.Minute)))
	assert.Equal(t, uint32(1), m.session.State().Turn)
	assert.Equal(t, "Turn 1: No encounter", m.Status())
}

func TestModel_StoppedClockIgnoresTicks(t *testing.T) {
	m := newModel(t, coretest.NewScriptedSource(nil, nil))

	m.Update(tickMsg(epoch.Add(time.Hour)))

	assert.Zero(t, m.session.State().ClockElapsed)
	assert.Contains(t, m.View(), "Game Time: 00:00 (")
}

func TestModel_Keys(t *testing.T) {
	m := newModel(t, coretest.NewScriptedSource(nil, []int{0}))
	st := m.session.State()

	m.Update(key("1"))
	m.Update(key("5"))
	m.Update(key("0"))
	assert.Equal(t, uint64(16*60), st.ClockElapsed)
	assert.Equal(t, "Advanced 10 min.", m.Status())

	m.Update(key("r"))
	assert.Zero(t, st.ClockElapsed)
	assert.False(t, m.session.ClockRunning())

	m.Update(key("e"))
	assert.Equal(t, core.EncounterPrefix+st.EncounterTable[0], m.Status())

	m.Update(key("t"))
	assert.Equal(t, st.AmbientEventTable[0], m.Status())
}

func TestModel_AmbientKeyWithEmptyTable(t *testing.T) {
	m := newModel(t, coretest.NewScriptedSource(nil, nil))
	m.session.State().AmbientEventTable = nil

	m.Update(key("t"))
	assert.Equal(t, "Ambient event table is empty.", m.Status())
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t, coretest.NewScriptedSource(nil, nil))

	_, cmd := m.Update(key("q"))
	assert.True(t, isQuit(t, cmd))

	_, cmd = m.Update(key("ctrl+c"))
	assert.True(t, isQuit(t, cmd))
}

func TestModel_CommandLine(t *testing.T) {
	m := newModel(t, coretest.NewScriptedSource(nil, nil))

	typeLine(m, `light add lantern "Mira's lantern" 30 240`)

	require.Len(t, m.session.State().LightSources, 1)
	assert.Equal(t, "Mira's lantern", m.session.State().LightSources[0].Label)
	assert.NotEmpty(t, m.Output())
	assert.Contains(t, m.View(), "Mira's lantern")
}

func TestModel_CommandLineEditing(t *testing.T) {
	m := newModel(t, coretest.NewScriptedSource(nil, nil))

	m.Update(key(":"))
	m.Update(key("q"))
	assert.Contains(t, m.View(), ":q", "q is typed, not quit")
	m.Update(key("backspace"))
	m.Update(key("esc"))
	assert.Equal(t, modeNormal, m.mode)

	m.Update(key(":"))
	m.Update(key("x"))
	_, cmd := m.Update(key("ctrl+c"))
	assert.True(t, isQuit(t, cmd))
}

func TestModel_CommandErrorsGoToStatus(t *testing.T) {
	m := newModel(t, coretest.NewScriptedSource(nil, nil))

	typeLine(m, "fly away")
	assert.Equal(t, "Unknown command. Try 'help'.", m.Status())

	typeLine(m, "light rm 4")
	assert.Equal(t, "No light source at that position.", m.Status())
}

func TestModel_SaveAndLoadKeys(t *testing.T) {
	dir := t.TempDir()
	m := newModel(t, coretest.NewScriptedSource(nil, nil), WithPicker(save.DirPicker{Dir: dir}))
	m.session.AdvanceClock(125)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.FileExists(t, filepath.Join(dir, save.DefaultFileName))

	m.session.Reset()
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, uint64(125), m.session.State().ClockElapsed)
}

func TestModel_LoadFailureKeepsState(t *testing.T) {
	m := newModel(t, coretest.NewScriptedSource(nil, nil), WithPicker(save.DirPicker{Dir: filepath.Join(t.TempDir(), "none")}))
	before := m.session.State()

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})

	assert.Same(t, before, m.session.State())
	assert.Equal(t, "No file selected.", m.Status())
}

func TestModel_WindowSize(t *testing.T) {
	m := newModel(t, coretest.NewScriptedSource(nil, nil))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
}

func TestWithPollInterval(t *testing.T) {
	m := newModel(t, coretest.NewScriptedSource(nil, nil), WithPollInterval(time.Second))
	assert.Equal(t, time.Second, m.poll)

	m = newModel(t, coretest.NewScriptedSource(nil, nil), WithPollInterval(0))
	assert.Equal(t, DefaultPollInterval, m.poll)
}

func TestRun_CancelledContextIsCleanExit(t *testing.T) {
	m := newModel(t, coretest.NewScriptedSource(nil, nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, m, tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutSignalHandler())

	assert.NoError(t, err)
}

func TestRun_QuitKeyIsCleanExit(t *testing.T) {
	m := newModel(t, coretest.NewScriptedSource(nil, nil))

	err := Run(context.Background(), m,
		tea.WithInput(strings.NewReader("q")), tea.WithOutput(io.Discard), tea.WithoutSignalHandler())

	assert.NoError(t, err)
}
