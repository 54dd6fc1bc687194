// Package model defines the core data structures for padprofile.
package model

import (
	"errors"
	"fmt"
)

// Binding is a logical input-action identifier assigned to a physical button.
type Binding string

// BindingUnspecified is the empty binding.
const BindingUnspecified Binding = ""

// IsSpecified reports whether the binding carries an action.
func (b Binding) IsSpecified() bool {
	return b != BindingUnspecified
}

// PhysicalButton identifies a physical button on a layout.
type PhysicalButton string

// GameMode selects which default bindings apply to a layout.
type GameMode string

// Known game modes.
const (
	GameModeXInput   GameMode = "xinput"
	GameModeSwitch   GameMode = "switch"
	GameModePS4      GameMode = "ps4"
	GameModeKeyboard GameMode = "keyboard"
)

// KnownGameModes returns all built-in game modes.
func KnownGameModes() []GameMode {
	return []GameMode{GameModeXInput, GameModeSwitch, GameModePS4, GameModeKeyboard}
}

// ErrUnknownGameMode is returned when a game mode is not recognised.
var ErrUnknownGameMode = errors.New("unknown game mode")

// ParseGameMode validates s as a known GameMode.
func ParseGameMode(s string) (GameMode, error) {
	for _, m := range KnownGameModes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q, must be one of: %v", ErrUnknownGameMode, s, KnownGameModes())
}

// StringID returns the mode's identifier as used in store keys.
func (m GameMode) StringID() string {
	return string(m)
}

// SocdType governs which direction wins when both sides of a pair are held.
type SocdType string

// SOCD resolution types.
const (
	SocdNeutral                   SocdType = "neutral"
	SocdSecondInput               SocdType = "second-input"
	SocdSecondInputNoReactivation SocdType = "second-input-no-reactivation"
	SocdDirAPriority              SocdType = "dir-a-priority"
	SocdDirBPriority              SocdType = "dir-b-priority"
)

// DefaultSocdType is assigned to freshly added pairs.
const DefaultSocdType = SocdSecondInputNoReactivation

// SocdsMaxLen is the maximum number of SOCD pairs per game mode.
const SocdsMaxLen = 8

// ValidSocdTypes returns all valid SOCD types.
func ValidSocdTypes() []SocdType {
	return []SocdType{
		SocdNeutral,
		SocdSecondInput,
		SocdSecondInputNoReactivation,
		SocdDirAPriority,
		SocdDirBPriority,
	}
}

// ErrInvalidSocdType is returned when a SOCD type is not recognised.
var ErrInvalidSocdType = errors.New("invalid socd type")

// ParseSocdType validates s as a SocdType.
func ParseSocdType(s string) (SocdType, error) {
	for _, t := range ValidSocdTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w %q, must be one of: %v", ErrInvalidSocdType, s, ValidSocdTypes())
}

// SocdPair declares two bindings as opposing directions.
type SocdPair struct {
	A    Binding  `json:"a"`
	B    Binding  `json:"b"`
	Type SocdType `json:"type"`
}

// Contains reports whether b sits on either side of the pair.
// Unspecified bindings never match.
func (p SocdPair) Contains(b Binding) bool {
	if !b.IsSpecified() {
		return false
	}
	return p.A == b || p.B == b
}
