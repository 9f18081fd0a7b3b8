// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package save

import (
	"os"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Tables is the YAML form of the two roll tables. A key left out of the
// file decodes to nil.
type Tables struct {
	Encounters    []string `yaml:"encounters"`
	AmbientEvents []string `yaml:"ambient_events"`
}

// LoadTables reads a tables file.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path chosen by the user
	if err != nil {
		return Tables{}, ioErr(path).Wrapf(err, "read tables file")
	}
	return ParseTables(data)
}

// ParseTables decodes tables YAML. At least one table must be present.
func ParseTables(data []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, oops.Code(string(KindSerialization)).Wrapf(err, "invalid tables YAML")
	}
	if t.Encounters == nil && t.AmbientEvents == nil {
		return Tables{}, oops.Code(string(KindSerialization)).
			Errorf("tables file has neither encounters nor ambient_events")
	}
	return t, nil
}

// WriteTables writes both tables to path.
func WriteTables(path string, t Tables) error {
	if t.Encounters == nil {
		t.Encounters = []string{}
	}
	if t.AmbientEvents == nil {
		t.AmbientEvents = []string{}
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return serializationErr(path).Wrapf(err, "encode tables")
	}
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return ioErr(path).Wrapf(err, "write tables file")
	}
	return nil
}
