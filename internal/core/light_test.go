// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowtrack/shadowtrack/pkg/errutil"
)

func TestLightKind_JSON(t *testing.T) {
	tests := []struct {
		name string
		kind LightKind
		json string
	}{
		{"torch", Torch(), `"Torch"`},
		{"lantern", Lantern(), `"Lantern"`},
		{"spell", Spell("Light"), `{"Spell":"Light"}`},
		{"spell with spaces", Spell("Dancing Lights"), `{"Spell":"Dancing Lights"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.kind)
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(data))

			var got LightKind
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.kind, got)
		})
	}
}

func TestLightKind_UnmarshalRejectsUnknown(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown name", `"Candle"`},
		{"lowercase", `"torch"`},
		{"wrong tag", `{"Ritual":"x"}`},
		{"extra key", `{"Spell":"Light","Torch":"x"}`},
		{"number", `3`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var k LightKind
			err := json.Unmarshal([]byte(tt.input), &k)
			require.Error(t, err)
		})
	}
}

func TestLightKind_UnmarshalUnknownNameCode(t *testing.T) {
	var k LightKind
	err := k.UnmarshalJSON([]byte(`"Candle"`))
	errutil.AssertErrorCode(t, err, "INVALID_LIGHT")
}

func TestLightKind_String(t *testing.T) {
	assert.Equal(t, "Torch", Torch().String())
	assert.Equal(t, "Lantern", Lantern().String())
	assert.Equal(t, "Spell( Light )", Spell("Light").String())
}

func TestLightKind_ZeroValueIsTorch(t *testing.T) {
	var k LightKind
	assert.Equal(t, Torch(), k)
	assert.False(t, k.IsSpell())
	assert.True(t, Spell("x").IsSpell())
}

func TestLightSource_JSONFieldNames(t *testing.T) {
	roll := uint8(3)
	data, err := json.Marshal(LightSource{
		Label:            "Lantern",
		Kind:             Lantern(),
		RadiusFeet:       30,
		MinutesRemaining: 240,
		LastRoll:         &roll,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"label": "Lantern",
		"light_type": "Lantern",
		"radius_feet": 30,
		"minutes_remaining": 240,
		"last_roll": 3
	}`, string(data))

	data, err = json.Marshal(LightSource{Label: "T", Kind: Torch()})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"last_roll":null`)
}
