package model

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// LayoutButton places a physical button on the device surface.
// In YAML it is written as a tuple: [physical, x, y].
type LayoutButton struct {
	Physical PhysicalButton
	X        float64
	Y        float64
}

// DefaultBinding is a layout's baked-in binding for a physical button.
// In YAML it is written as a tuple: [physical, binding].
type DefaultBinding struct {
	Physical PhysicalButton
	Binding  Binding
}

// ModeDefaults holds the default bindings of a layout for one game mode.
type ModeDefaults struct {
	Bindings []DefaultBinding `yaml:"bindings"`
}

// Layout is the physical arrangement of a device plus per-mode defaults.
type Layout struct {
	ID      string                    `yaml:"id"`
	Name    string                    `yaml:"name,omitempty"`
	Buttons []LayoutButton            `yaml:"buttons"`
	Modes   map[GameMode]ModeDefaults `yaml:"modes"`
}

// Layout validation errors.
var (
	ErrEmptyLayoutID     = errors.New("layout id cannot be empty")
	ErrNoButtons         = errors.New("layout has no buttons")
	ErrDuplicatePhysical = errors.New("duplicate physical button")
	ErrUnknownPhysical   = errors.New("default binding refers to unknown button")
	errMalformedTuple    = errors.New("malformed tuple")
)

// UnmarshalYAML decodes a [physical, x, y] tuple.
func (b *LayoutButton) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) != 3 {
		return fmt.Errorf("line %d: %w: button must be [physical, x, y]", value.Line, errMalformedTuple)
	}
	var physical string
	if err := value.Content[0].Decode(&physical); err != nil {
		return fmt.Errorf("line %d: button id: %w", value.Line, err)
	}
	if err := value.Content[1].Decode(&b.X); err != nil {
		return fmt.Errorf("line %d: button x: %w", value.Line, err)
	}
	if err := value.Content[2].Decode(&b.Y); err != nil {
		return fmt.Errorf("line %d: button y: %w", value.Line, err)
	}
	b.Physical = PhysicalButton(physical)
	return nil
}

// UnmarshalYAML decodes a [physical, binding] tuple.
func (d *DefaultBinding) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) != 2 {
		return fmt.Errorf("line %d: %w: binding must be [physical, binding]", value.Line, errMalformedTuple)
	}
	var physical, binding string
	if err := value.Content[0].Decode(&physical); err != nil {
		return fmt.Errorf("line %d: binding physical: %w", value.Line, err)
	}
	if err := value.Content[1].Decode(&binding); err != nil {
		return fmt.Errorf("line %d: binding value: %w", value.Line, err)
	}
	d.Physical = PhysicalButton(physical)
	d.Binding = Binding(binding)
	return nil
}

// DefaultBinding returns the layout default for physical in mode, or
// BindingUnspecified when the mode has none.
func (l *Layout) DefaultBinding(mode GameMode, physical PhysicalButton) Binding {
	defaults, ok := l.Modes[mode]
	if !ok {
		return BindingUnspecified
	}
	for _, d := range defaults.Bindings {
		if d.Physical == physical {
			return d.Binding
		}
	}
	return BindingUnspecified
}

// Validate checks that the layout is usable.
func (l *Layout) Validate() error {
	if l.ID == "" {
		return ErrEmptyLayoutID
	}
	if len(l.Buttons) == 0 {
		return fmt.Errorf("layout %q: %w", l.ID, ErrNoButtons)
	}

	known := make(map[PhysicalButton]bool, len(l.Buttons))
	for _, b := range l.Buttons {
		if b.Physical == "" {
			return fmt.Errorf("layout %q: %w", l.ID, ErrEmptyPhysicalID)
		}
		if known[b.Physical] {
			return fmt.Errorf("layout %q: %w %q", l.ID, ErrDuplicatePhysical, b.Physical)
		}
		known[b.Physical] = true
	}

	for mode, defaults := range l.Modes {
		for _, d := range defaults.Bindings {
			if !known[d.Physical] {
				return fmt.Errorf("layout %q mode %q: %w %q", l.ID, mode, ErrUnknownPhysical, d.Physical)
			}
		}
	}
	return nil
}
