// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package core

import "fmt"

// FormatClock renders elapsed game seconds as MM:SS. Minutes grow past 99.
func FormatClock(seconds uint64) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Describe renders a light source for listings, e.g.
// "Torch - Torch (30ft) Time left: 40 min Last Burn Roll: 2".
func (l LightSource) Describe() string {
	s := fmt.Sprintf("%s - %s (%dft) Time left: %d min", l.Label, l.Kind, l.RadiusFeet, l.MinutesRemaining)
	if l.LastRoll != nil {
		s += fmt.Sprintf(" Last Burn Roll: %d", *l.LastRoll)
	}
	return s
}
