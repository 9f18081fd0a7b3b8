// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

// Package save reads and writes game state as JSON save files.
package save

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/shadowtrack/shadowtrack/internal/core"
)

// DefaultFileName is offered when saving without a path.
const DefaultFileName = "save.json"

const fileMode os.FileMode = 0o600

// Encode renders state as indented save file JSON.
func Encode(state *core.GameState) ([]byte, error) {
	data, err := json.MarshalIndent(normalized(state), "", "  ")
	if err != nil {
		return nil, serializationErr("").Wrapf(err, "encode save")
	}
	return data, nil
}

// Decode validates save data and decodes it over a fresh default state, so
// optional keys missing from the file keep their defaults.
func Decode(data []byte) (*core.GameState, error) {
	return decode("", data)
}

func decode(path string, data []byte) (*core.GameState, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, serializationErr(path).Wrapf(err, "invalid save file")
	}
	state := core.NewGameState()
	if err := json.Unmarshal(data, state); err != nil {
		// %v keeps codes from custom unmarshalers out of the chain.
		return nil, serializationErr(path).Errorf("decode save: %v", err)
	}
	return state, nil
}

// WriteSave writes state to path. The file is replaced atomically, so a
// failed write leaves any previous save intact.
func WriteSave(path string, state *core.GameState) error {
	data, err := Encode(state)
	if err != nil {
		return serializationErr(path).Wrap(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return ioErr(path).Wrapf(err, "create save file")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return ioErr(path).Wrapf(err, "write save file")
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return ioErr(path).Wrapf(err, "set save file mode")
	}
	if err := tmp.Close(); err != nil {
		return ioErr(path).Wrapf(err, "close save file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return ioErr(path).Wrapf(err, "replace save file")
	}
	return nil
}

// LoadSave reads and decodes the save file at path. The caller's state is
// never touched; on error it should be kept as is.
func LoadSave(path string) (*core.GameState, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path chosen by the user
	if err != nil {
		return nil, ioErr(path).Wrapf(err, "read save file")
	}
	return decode(path, data)
}

// normalized returns state with nil slices replaced by empty ones so the
// file always matches the schema.
func normalized(state *core.GameState) *core.GameState {
	c := state.Clone()
	if c.LightSources == nil {
		c.LightSources = []core.LightSource{}
	}
	if c.EncounterTable == nil {
		c.EncounterTable = []string{}
	}
	if c.AmbientEventTable == nil {
		c.AmbientEventTable = []string{}
	}
	if c.EventLog == nil {
		c.EventLog = []core.TurnEntry{}
	}
	for i := range c.EventLog {
		if c.EventLog[i].Events == nil {
			c.EventLog[i].Events = []string{}
		}
	}
	return c
}
