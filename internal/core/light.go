// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package core

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
)

// LightVariant identifies the kind of a light source.
type LightVariant uint8

const (
	LightTorch LightVariant = iota
	LightLantern
	LightSpell
)

func (v LightVariant) String() string {
	switch v {
	case LightTorch:
		return "Torch"
	case LightLantern:
		return "Lantern"
	case LightSpell:
		return "Spell"
	default:
		return "unknown"
	}
}

// LightKind is Torch, Lantern, or Spell carrying the spell's name.
// The zero value is Torch. Values are comparable with ==.
type LightKind struct {
	Variant LightVariant
	Spell   string // only meaningful for LightSpell
}

// Torch returns the torch kind.
func Torch() LightKind { return LightKind{Variant: LightTorch} }

// Lantern returns the lantern kind.
func Lantern() LightKind { return LightKind{Variant: LightLantern} }

// Spell returns a spell kind with the given name.
func Spell(name string) LightKind { return LightKind{Variant: LightSpell, Spell: name} }

// IsSpell reports whether k carries a spell name.
func (k LightKind) IsSpell() bool { return k.Variant == LightSpell }

func (k LightKind) String() string {
	if k.Variant == LightSpell {
		return fmt.Sprintf("Spell( %s )", k.Spell)
	}
	return k.Variant.String()
}

// MarshalJSON encodes Torch and Lantern as bare strings and Spell as {"Spell": name}.
func (k LightKind) MarshalJSON() ([]byte, error) {
	switch k.Variant {
	case LightTorch, LightLantern:
		return json.Marshal(k.Variant.String())
	case LightSpell:
		return json.Marshal(map[string]string{"Spell": k.Spell})
	default:
		return nil, oops.Code("INVALID_LIGHT").With("variant", uint8(k.Variant)).Errorf("unknown light variant")
	}
}

// UnmarshalJSON accepts the forms produced by MarshalJSON.
func (k *LightKind) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err //nolint:wrapcheck // json errors surface as-is to the decoder
		}
		switch name {
		case "Torch":
			*k = Torch()
		case "Lantern":
			*k = Lantern()
		default:
			return oops.Code("INVALID_LIGHT").With("light_type", name).Errorf("unknown light type %q", name)
		}
		return nil
	}

	var tagged map[string]string
	if err := json.Unmarshal(data, &tagged); err != nil {
		return oops.Code("INVALID_LIGHT").Wrapf(err, "light type must be a string or {\"Spell\": name}")
	}
	name, ok := tagged["Spell"]
	if !ok || len(tagged) != 1 {
		return oops.Code("INVALID_LIGHT").With("light_type", string(data)).Errorf("unknown light type")
	}
	*k = Spell(name)
	return nil
}

// JSONSchema describes the tagged encoding for schema generation.
func (LightKind) JSONSchema() *jsonschema.Schema {
	one := uint64(1)
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string", Enum: []any{"Torch", "Lantern"}},
			{
				Type:                 "object",
				PatternProperties:    map[string]*jsonschema.Schema{"^Spell$": {Type: "string"}},
				AdditionalProperties: jsonschema.FalseSchema,
				Required:             []string{"Spell"},
				MinProperties:        &one,
				MaxProperties:        &one,
			},
		},
	}
}
