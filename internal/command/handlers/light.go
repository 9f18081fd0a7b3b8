// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package handlers

import (
	"context"
	"strings"

	"github.com/shadowtrack/shadowtrack/internal/command"
	"github.com/shadowtrack/shadowtrack/internal/core"
)

const lightUsage = "light [add <kind> <label> [radius] [minutes]|rm <n>|set <n> minutes|radius|label <value>|draft ...]"

// LightHandler lists and edits light sources.
func LightHandler(ctx context.Context, exec *command.CommandExecution) error {
	sub, rest := splitFirst(exec.Args)
	switch sub {
	case "", "list":
		listLights(ctx, exec)
		return nil
	case "add":
		return addLight(ctx, exec, rest)
	case "rm", "remove":
		return removeLight(ctx, exec, rest)
	case "set":
		return setLight(ctx, exec, rest)
	case "draft":
		return editDraft(ctx, exec, rest)
	default:
		return command.ErrInvalidArgs("light", lightUsage)
	}
}

func listLights(ctx context.Context, exec *command.CommandExecution) {
	lights := exec.Services.Session.State().LightSources
	if len(lights) == 0 {
		writeOutput(ctx, exec, "light", "No light sources.")
		return
	}
	for i, l := range lights {
		writeOutputf(ctx, exec, "light", "%d. %s\n", i+1, l.Describe())
	}
}

func addLight(ctx context.Context, exec *command.CommandExecution, args string) error {
	const usage = "light add <torch|lantern|spell:<name>> <label> [radius] [minutes]"
	fields := command.Fields(args)
	if len(fields) < 2 || len(fields) > 4 {
		return command.ErrInvalidArgs("light", usage)
	}
	kind, err := parseKind(fields[0])
	if err != nil {
		return err
	}
	light := core.LightSource{
		Label:            fields[1],
		Kind:             kind,
		RadiusFeet:       core.DefaultNewLightRange,
		MinutesRemaining: core.DefaultNewLightMinutes,
	}
	if len(fields) > 2 {
		if light.RadiusFeet, err = parseUint(fields[2]); err != nil {
			return err
		}
	}
	if len(fields) > 3 {
		if light.MinutesRemaining, err = parseUint(fields[3]); err != nil {
			return err
		}
	}
	if err := exec.Services.Session.AddLight(light); err != nil {
		return err
	}
	writeOutput(ctx, exec, "light", "Added "+light.Describe())
	return nil
}

func removeLight(ctx context.Context, exec *command.CommandExecution, args string) error {
	fields := command.Fields(args)
	if len(fields) != 1 {
		return command.ErrInvalidArgs("light", "light rm <n>")
	}
	idx, err := parsePosition(fields[0])
	if err != nil {
		return err
	}
	removed, err := exec.Services.Session.RemoveLight(idx)
	if err != nil {
		return err
	}
	writeOutput(ctx, exec, "light", "Removed "+removed.Label)
	return nil
}

func setLight(ctx context.Context, exec *command.CommandExecution, args string) error {
	const usage = "light set <n> minutes|radius|label <value>"
	fields := command.Fields(args)
	if len(fields) < 3 {
		return command.ErrInvalidArgs("light", usage)
	}
	idx, err := parsePosition(fields[0])
	if err != nil {
		return err
	}
	value := strings.Join(fields[2:], " ")

	var update func(*core.LightSource)
	switch strings.ToLower(fields[1]) {
	case "minutes":
		n, err := parseUint(value)
		if err != nil {
			return err
		}
		update = func(l *core.LightSource) { l.MinutesRemaining = n }
	case "radius":
		n, err := parseUint(value)
		if err != nil {
			return err
		}
		update = func(l *core.LightSource) { l.RadiusFeet = n }
	case "label":
		if strings.TrimSpace(value) == "" {
			return command.ErrInvalidArgs("light", usage)
		}
		update = func(l *core.LightSource) { l.Label = value }
	default:
		return command.ErrInvalidArgs("light", usage)
	}

	s := exec.Services.Session
	if err := s.UpdateLight(idx, update); err != nil {
		return err
	}
	writeOutput(ctx, exec, "light", "Updated "+s.State().LightSources[idx].Describe())
	return nil
}

// editDraft edits the new-light form kept in the save file, or adds it.
func editDraft(ctx context.Context, exec *command.CommandExecution, args string) error {
	const usage = "light draft [kind <kind>|label <text>|minutes <n>|radius <n>|add]"
	s := exec.Services.Session
	st := s.State()
	field, value := splitFirst(args)

	switch field {
	case "":
	case "add":
		if err := s.AddDraftLight(); err != nil {
			return err
		}
		added := st.LightSources[len(st.LightSources)-1]
		writeOutput(ctx, exec, "light", "Added "+added.Describe())
		return nil
	case "kind":
		kind, err := parseKind(value)
		if err != nil {
			return err
		}
		st.NewLightType = kind
	case "label":
		st.NewLightLabel = value
	case "minutes":
		n, err := parseUint(value)
		if err != nil {
			return err
		}
		st.NewLightMinutes = n
	case "radius":
		n, err := parseUint(value)
		if err != nil {
			return err
		}
		st.NewLightRange = n
	default:
		return command.ErrInvalidArgs("light", usage)
	}

	writeOutputf(ctx, exec, "light", "Draft: %q %s (%dft) %d min\n",
		st.NewLightLabel, st.NewLightType, st.NewLightRange, st.NewLightMinutes)
	return nil
}
