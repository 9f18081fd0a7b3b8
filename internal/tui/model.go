// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

// Package tui is the terminal front end. The bubbletea event loop owns the
// session: every clock poll, key press and console command runs on it.
package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/oops"

	"github.com/shadowtrack/shadowtrack/internal/command"
	"github.com/shadowtrack/shadowtrack/internal/core"
	"github.com/shadowtrack/shadowtrack/internal/save"
)

// DefaultPollInterval is how often the wall clock is checked.
const DefaultPollInterval = 250 * time.Millisecond

// maxOutputLines caps the command output pane.
const maxOutputLines = 8

// Seconds added by the advance keys.
const (
	advanceOne  = 60
	advanceFive = 5 * 60
	advanceTen  = 10 * 60
)

type mode uint8

const (
	modeNormal mode = iota
	modeCommand
)

// tickMsg carries the wall-clock time of one poll.
type tickMsg time.Time

// Model is the bubbletea model for one session.
type Model struct {
	session    *core.Session
	dispatcher *command.Dispatcher
	services   *command.Services
	logger     *slog.Logger
	poll       time.Duration

	mode   mode
	input  string
	status string
	output []string
	width  int
}

// Option configures a Model.
type Option func(*Model)

// WithPollInterval sets the wall-clock poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.poll = d
		}
	}
}

// WithPicker sets the file picker used by save and load.
func WithPicker(p save.FilePicker) Option {
	return func(m *Model) { m.services.Picker = p }
}

// WithLogger sets the logger for command failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// New creates the model. The dispatcher's registry backs the help command.
func New(session *core.Session, dispatcher *command.Dispatcher, opts ...Option) *Model {
	m := &Model{
		session:    session,
		dispatcher: dispatcher,
		logger:     slog.Default(),
		poll:       DefaultPollInterval,
		status:     "Press space to start the clock, : for commands, q to quit.",
	}
	m.services = &command.Services{
		Session:  session,
		Registry: dispatcher.Registry(),
		OnLoad: func(path string) {
			m.logger.Info("save loaded", "path", path)
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.poll, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the clock poll.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if report := m.session.HandleClockTick(time.Time(msg)); report != nil {
			m.status = turnStatus(report)
		}
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.mode == modeCommand {
			return m.updateCommand(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func turnStatus(r *core.TurnReport) string {
	return fmt.Sprintf("Turn %d: %s", r.Turn, r.Encounter.Text)
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		s.ToggleClock()
		if s.ClockRunning() {
			m.status = "Clock running."
		} else {
			m.status = "Clock stopped."
		}
	case "1":
		m.advance(advanceOne)
	case "5":
		m.advance(advanceFive)
	case "0":
		m.advance(advanceTen)
	case "r":
		s.ResetClock()
		m.status = "Clock reset."
	case "e":
		m.status = s.ForceEncounter().Text
	case "t":
		if event, ok := s.RollAmbientEvent(); ok {
			m.status = event
		} else {
			m.status = "Ambient event table is empty."
		}
	case "ctrl+s":
		m.run("save")
	case "ctrl+o":
		m.run("load")
	case ":":
		m.mode = modeCommand
		m.input = ""
	}
	return m, nil
}

func (m *Model) advance(seconds uint64) {
	m.session.AdvanceClock(seconds)
	m.status = fmt.Sprintf("Advanced %d min.", seconds/60)
}

func (m *Model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input = ""
	case tea.KeyEnter:
		line := m.input
		m.mode = modeNormal
		m.input = ""
		m.run(line)
	case tea.KeyBackspace, tea.KeyCtrlH:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += strings.ReplaceAll(string(msg.Runes), "\n", " ")
	}
	return m, nil
}

// run dispatches one console command and shows its output. Failures go to
// the status line; the dispatcher has already logged them.
func (m *Model) run(line string) {
	var buf bytes.Buffer
	exec := &command.CommandExecution{Output: &buf, Services: m.services}
	err := m.dispatcher.Dispatch(context.Background(), line, exec)

	if out := strings.TrimRight(buf.String(), "\n"); out != "" {
		m.output = strings.Split(out, "\n")
		if len(m.output) > maxOutputLines {
			m.output = m.output[len(m.output)-maxOutputLines:]
		}
		m.status = m.output[len(m.output)-1]
	}
	if err != nil {
		m.status = command.UserMessage(err)
	}
}

// Status returns the status line.
func (m *Model) Status() string { return m.status }

// Output returns the retained command output lines.
func (m *Model) Output() []string { return m.output }

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	if err == nil {
		return nil
	}
	// A cancelled ctx is a signal shutdown, not a failure.
	if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		m.logger.Info("terminal ui stopped", "reason", ctx.Err().Error())
		return nil
	}
	return oops.Code("TUI_FAILED").Wrapf(err, "run terminal ui")
}
