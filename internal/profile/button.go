package profile

import (
	"fmt"

	"github.com/jmylchreest/padprofile/internal/model"
)

// NoSocd marks a button whose binding is not part of any SOCD pair.
const NoSocd = -1

// Button is the state of one physical button.
type Button struct {
	Index int     `json:"i"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`

	Physical       model.PhysicalButton `json:"physical"`
	DefaultBinding model.Binding        `json:"defaultBinding"`
	InitialBinding model.Binding        `json:"initialBinding"`
	Binding        model.Binding        `json:"binding"`

	Socd int `json:"socd"` // Index into the pair list, or NoSocd

	Hover    bool `json:"isHover"`
	Selected bool `json:"isSelected"`
	Dirty    bool `json:"isDirty"`    // Binding differs from the last loaded/saved value
	Modified bool `json:"isModified"` // Binding differs from the layout default
}

// InSocd reports whether the button's binding belongs to a SOCD pair.
func (b Button) InSocd() bool {
	return b.Socd != NoSocd
}

// SocdPair is a SOCD pair tagged with its sequential index.
type SocdPair struct {
	Index int `json:"i"`
	model.SocdPair
}

// Side selects one side of a SOCD pair.
type Side int

const (
	// SideA is the first binding of a pair.
	SideA Side = iota
	// SideB is the second binding of a pair.
	SideB
)

// String returns the string representation of Side.
func (s Side) String() string {
	if s == SideB {
		return "b"
	}
	return "a"
}

// ParseSide parses "a" or "b".
func ParseSide(s string) (Side, error) {
	switch s {
	case "a", "A":
		return SideA, nil
	case "b", "B":
		return SideB, nil
	default:
		return SideA, fmt.Errorf("invalid socd side %q, must be a or b", s)
	}
}

// mapButton seeds button i of the layout with its default binding for mode.
func mapButton(mode model.GameMode, layout *model.Layout, i int) Button {
	lb := layout.Buttons[i]
	binding := layout.DefaultBinding(mode, lb.Physical)

	return Button{
		Index:          i,
		X:              lb.X,
		Y:              lb.Y,
		Physical:       lb.Physical,
		DefaultBinding: binding,
		InitialBinding: binding,
		Binding:        binding,
		Socd:           NoSocd,
	}
}

func initButtons(layout *model.Layout, mode model.GameMode) []Button {
	buttons := make([]Button, len(layout.Buttons))
	for i := range buttons {
		buttons[i] = mapButton(mode, layout, i)
	}
	return buttons
}
