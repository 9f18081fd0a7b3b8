// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

// Package handlers implements the built-in console commands.
package handlers

import (
	"github.com/shadowtrack/shadowtrack/internal/command"
)

// RegisterAll registers every built-in command with the registry.
// Panics if any registration fails (indicates a programming error).
func RegisterAll(reg *command.Registry) {
	mustRegister := func(entry command.CommandEntry) {
		entry.Source = "core"
		if err := reg.Register(entry); err != nil {
			panic("failed to register core command " + entry.Name + ": " + err.Error())
		}
	}

	mustRegister(command.CommandEntry{
		Name:    "help",
		Aliases: []string{"h"},
		Handler: HelpHandler,
		Help:    "List commands or show help for one",
		Usage:   "help [command]",
	})

	// Clock commands
	mustRegister(command.CommandEntry{
		Name:    "clock",
		Handler: ClockHandler,
		Help:    "Show or control the game clock",
		Usage:   clockUsage,
		HelpText: `## Clock

The game clock only advances while it is running. Every ten game minutes
(the configured interval) a turn fires: lights burn down, an ambient event
is rolled and an encounter check is made.

- ` + "`clock`" + ` - Show the game time
- ` + "`clock start|stop|toggle`" + ` - Run or freeze the clock
- ` + "`clock reset`" + ` - Zero the clock and stop it; turns and lights are kept`,
	})

	mustRegister(command.CommandEntry{
		Name:    "advance",
		Aliases: []string{"adv"},
		Handler: AdvanceHandler,
		Help:    "Add time to the game clock",
		Usage:   advanceUsage,
		HelpText: `## Advance

Adds time to the clock whether or not it is running. Advancing never fires
a turn by itself; the next running tick that crosses a boundary does.

- ` + "`advance 90`" + ` - Add 90 seconds
- ` + "`advance 5m`" + ` - Add five minutes`,
	})

	// Light commands
	mustRegister(command.CommandEntry{
		Name:    "light",
		Aliases: []string{"l"},
		Handler: LightHandler,
		Help:    "List and edit light sources",
		Usage:   lightUsage,
		HelpText: `## Light

Each turn every light loses 10 minutes and rolls a d6. On a 1 or 2 it
gutters and loses another 10 minutes.

- ` + "`light`" + ` - List light sources
- ` + "`light add torch \"Bran's torch\" 30 60`" + ` - Add a light (radius 30ft, 60 min)
- ` + "`light add spell:Light Glow`" + ` - Add a spell light
- ` + "`light rm 2`" + ` - Remove the second light
- ` + "`light set 1 minutes 45`" + ` - Change a light
- ` + "`light draft label Spare`" + `, ` + "`light draft add`" + ` - Edit and add the new-light draft`,
	})

	// Table commands
	mustRegister(command.CommandEntry{
		Name:    "encounter",
		Aliases: []string{"enc"},
		Handler: EncounterHandler,
		Help:    "Edit the encounter table or check for an encounter",
		Usage:   "encounter [add <text>|rm <n>|set <n> <text>|roll|force]",
		HelpText: `## Encounter

- ` + "`encounter`" + ` - List the encounter table
- ` + "`encounter roll`" + ` - Roll the d6; a 1 draws an encounter
- ` + "`encounter force`" + ` - Draw an encounter without rolling`,
	})

	mustRegister(command.CommandEntry{
		Name:    "event",
		Aliases: []string{"ev"},
		Handler: EventHandler,
		Help:    "Edit the ambient event table or roll an event",
		Usage:   "event [add <text>|rm <n>|set <n> <text>|roll]",
	})

	mustRegister(command.CommandEntry{
		Name:    "tables",
		Handler: TablesHandler,
		Help:    "Import or export both tables as YAML",
		Usage:   tablesUsage,
	})

	// Session commands
	mustRegister(command.CommandEntry{
		Name:    "save",
		Handler: SaveHandler,
		Help:    "Save the game state",
		Usage:   "save [path]",
		HelpText: `## Save

Without a path the state is written to save.json in the save directory.`,
	})

	mustRegister(command.CommandEntry{
		Name:    "load",
		Handler: LoadHandler,
		Help:    "Load a save file",
		Usage:   "load [path]",
		HelpText: `## Load

Without a path the newest .json or .txt file in the save directory is
loaded. A file that fails to load leaves the current game untouched.`,
	})

	mustRegister(command.CommandEntry{
		Name:    "reset",
		Handler: ResetHandler,
		Help:    "Discard the game state and start over",
		Usage:   "reset",
	})
}
