package model

import (
	"errors"
	"fmt"
)

// ButtonBinding is a single remapped button as persisted on the device.
type ButtonBinding struct {
	Physical PhysicalButton `json:"physical"`
	Binding  Binding        `json:"binding"`
}

// ModeConfig holds the persisted profile for one game mode.
type ModeConfig struct {
	ID              GameMode        `json:"id"`
	ButtonRemapping []ButtonBinding `json:"buttonRemapping"`
	SocdPairs       []SocdPair      `json:"socdPairs"`
}

// Config is the device configuration snapshot.
type Config struct {
	GameModes []ModeConfig `json:"gameModes"`
}

// ModeRemap is a profile's answer to a remap request: the minimal diff to
// persist for its mode.
type ModeRemap struct {
	Mode    GameMode
	Buttons []ButtonBinding
	Socd    []SocdPair
}

// Validation errors.
var (
	ErrEmptyModeID     = errors.New("game mode id cannot be empty")
	ErrDuplicateMode   = errors.New("duplicate game mode")
	ErrTooManySocds    = errors.New("too many socd pairs")
	ErrDuplicateRemap  = errors.New("physical button remapped twice")
	ErrEmptyPhysicalID = errors.New("physical button id cannot be empty")
)

// Mode returns the configuration for mode, or nil if the snapshot has none.
func (c *Config) Mode(mode GameMode) *ModeConfig {
	if c == nil {
		return nil
	}
	for i := range c.GameModes {
		if c.GameModes[i].ID == mode {
			return &c.GameModes[i]
		}
	}
	return nil
}

// ApplyRemap replaces the mode's remapping and SOCD pairs with r,
// adding the mode if it is not present yet.
func (c *Config) ApplyRemap(r ModeRemap) {
	mc := ModeConfig{
		ID:              r.Mode,
		ButtonRemapping: copyBindings(r.Buttons),
		SocdPairs:       copyPairs(r.Socd),
	}
	if existing := c.Mode(r.Mode); existing != nil {
		*existing = mc
		return
	}
	c.GameModes = append(c.GameModes, mc)
}

// ClearRemapping drops all button remapping for mode, keeping its SOCD pairs.
func (c *Config) ClearRemapping(mode GameMode) {
	if mc := c.Mode(mode); mc != nil {
		mc.ButtonRemapping = make([]ButtonBinding, 0)
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := &Config{GameModes: make([]ModeConfig, len(c.GameModes))}
	for i, mc := range c.GameModes {
		clone.GameModes[i] = ModeConfig{
			ID:              mc.ID,
			ButtonRemapping: copyBindings(mc.ButtonRemapping),
			SocdPairs:       copyPairs(mc.SocdPairs),
		}
	}
	return clone
}

// Validate checks the snapshot for structural problems.
func (c *Config) Validate() error {
	seen := make(map[GameMode]bool, len(c.GameModes))
	for _, mc := range c.GameModes {
		if mc.ID == "" {
			return ErrEmptyModeID
		}
		if seen[mc.ID] {
			return fmt.Errorf("%w %q", ErrDuplicateMode, mc.ID)
		}
		seen[mc.ID] = true

		if len(mc.SocdPairs) > SocdsMaxLen {
			return fmt.Errorf("%w in mode %q: %d > %d", ErrTooManySocds, mc.ID, len(mc.SocdPairs), SocdsMaxLen)
		}
		for _, p := range mc.SocdPairs {
			if _, err := ParseSocdType(string(p.Type)); err != nil {
				return fmt.Errorf("mode %q: %w", mc.ID, err)
			}
		}

		remapped := make(map[PhysicalButton]bool, len(mc.ButtonRemapping))
		for _, bb := range mc.ButtonRemapping {
			if bb.Physical == "" {
				return fmt.Errorf("mode %q: %w", mc.ID, ErrEmptyPhysicalID)
			}
			if remapped[bb.Physical] {
				return fmt.Errorf("mode %q: %w: %q", mc.ID, ErrDuplicateRemap, bb.Physical)
			}
			remapped[bb.Physical] = true
		}
	}
	return nil
}

// Remapping returns the explicit binding for p, if the mode remaps it.
func (mc *ModeConfig) Remapping(p PhysicalButton) (Binding, bool) {
	for _, bb := range mc.ButtonRemapping {
		if bb.Physical == p {
			return bb.Binding, true
		}
	}
	return BindingUnspecified, false
}

// copyBindings and copyPairs never return nil so snapshots encode as arrays.
func copyBindings(src []ButtonBinding) []ButtonBinding {
	return append(make([]ButtonBinding, 0, len(src)), src...)
}

func copyPairs(src []SocdPair) []SocdPair {
	return append(make([]SocdPair, 0, len(src)), src...)
}
