// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/shadowtrack/shadowtrack/internal/core"
)

// logTurns is how many turns of the event log are shown.
const logTurns = 6

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	stoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	lowStyle     = cellStyle.Foreground(lipgloss.Color("9"))
	encStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	paneStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// lowLightMinutes marks a light as nearly spent.
const lowLightMinutes = 10

// View renders the screen.
func (m *Model) View() string {
	st := m.session.State()
	sections := []string{
		m.viewHeader(st),
		paneStyle.Render(viewLights(st)),
		paneStyle.Render(viewLog(st)),
	}
	if len(m.output) > 0 {
		sections = append(sections, paneStyle.Render(strings.Join(m.output, "\n")))
	}
	sections = append(sections, m.viewFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) viewHeader(st *core.GameState) string {
	clock := stoppedStyle.Render("stopped")
	if m.session.ClockRunning() {
		clock = runningStyle.Render("running")
	}
	next := "-"
	if st.NextTriggerMinutes != nil {
		next = fmt.Sprintf("%d min", *st.NextTriggerMinutes)
	}
	return fmt.Sprintf("%s  Game Time: %s (%s)  Turn %d  Next turn at %s  Tables: %d encounters, %d events",
		titleStyle.Render("Shadowtrack"),
		core.FormatClock(st.ClockElapsed), clock, st.Turn, next,
		len(st.EncounterTable), len(st.AmbientEventTable),
	)
}

func viewLights(st *core.GameState) string {
	if len(st.LightSources) == 0 {
		return dimStyle.Render("No light sources. Add one with :light add torch <label>")
	}
	rows := make([][]string, 0, len(st.LightSources))
	for i, l := range st.LightSources {
		roll := "-"
		if l.LastRoll != nil {
			roll = fmt.Sprintf("%d", *l.LastRoll)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1), l.Label, l.Kind.String(),
			fmt.Sprintf("%dft", l.RadiusFeet), fmt.Sprintf("%d", l.MinutesRemaining), roll,
		})
	}
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderHeader(true).
		Headers("#", "Light", "Kind", "Radius", "Min left", "Last roll").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(st.LightSources) && st.LightSources[row].MinutesRemaining <= lowLightMinutes {
				return lowStyle
			}
			return cellStyle
		}).
		Render()
}

func viewLog(st *core.GameState) string {
	entries := core.NewestFirst(st.EventLog)
	if len(entries) == 0 {
		return dimStyle.Render("No events yet.")
	}
	if len(entries) > logTurns {
		entries = entries[:logTurns]
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(headerStyle.Render(fmt.Sprintf("Turn %d", e.Turn)))
		for _, ev := range e.Events {
			b.WriteString("\n  ")
			if strings.HasPrefix(ev, core.EncounterPrefix) {
				b.WriteString(encStyle.Render(ev))
			} else {
				b.WriteString(ev)
			}
		}
	}
	return b.String()
}

func (m *Model) viewFooter() string {
	if m.mode == modeCommand {
		return ":" + m.input + "█"
	}
	keys := dimStyle.Render("space clock  1/5/0 advance  r reset  e encounter  t event  : command  q quit")
	return m.status + "\n" + keys
}
