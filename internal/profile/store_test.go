package profile

import (
	"errors"
	"testing"

	"github.com/jmylchreest/padprofile/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, dm DeviceManager, opts ...Option) *Store {
	t.Helper()
	return NewStore(model.GameModeXInput, testLayout(), dm, opts...)
}

func bindings(s *Store) []model.Binding {
	var result []model.Binding
	for _, b := range s.Buttons() {
		result = append(result, b.Binding)
	}
	return result
}

func TestNewStore_SeedsLayoutDefaults(t *testing.T) {
	s := newTestStore(t, nil)

	buttons := s.Buttons()
	require.Len(t, buttons, 4)
	assert.Equal(t, []model.Binding{"left", "right", "up", "down"}, bindings(s))

	for i, b := range buttons {
		assert.Equal(t, i, b.Index)
		assert.Equal(t, b.DefaultBinding, b.Binding)
		assert.Equal(t, b.DefaultBinding, b.InitialBinding)
		assert.False(t, b.Dirty)
		assert.False(t, b.Modified)
		assert.False(t, b.InSocd())
	}
	assert.Empty(t, s.SocdPairs())

	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestNewStore_ModeWithoutDefaults(t *testing.T) {
	s := NewStore(model.GameModeSwitch, testLayout(), nil)
	assert.Equal(t, []model.Binding{"a", "b", "", ""}, bindings(s))

	s = NewStore(model.GameModePS4, testLayout(), nil)
	assert.Equal(t, []model.Binding{"", "", "", ""}, bindings(s))
}

func TestStore_ToggleSelected(t *testing.T) {
	s := newTestStore(t, nil)

	s.ToggleSelected(1)
	idx, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	// Selecting another clears the first
	s.ToggleSelected(2)
	idx, ok = s.Selected()
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	selected := 0
	for _, b := range s.Buttons() {
		if b.Selected {
			selected++
		}
	}
	assert.Equal(t, 1, selected)

	// Toggling twice deselects
	s.ToggleSelected(2)
	_, ok = s.Selected()
	assert.False(t, ok)
	for _, b := range s.Buttons() {
		assert.False(t, b.Selected)
	}

	// Out of range is ignored
	s.ToggleSelected(99)
	s.ToggleSelected(-1)
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestStore_SelectPhysical(t *testing.T) {
	s := newTestStore(t, nil)

	assert.True(t, s.SelectPhysical("k3"))
	idx, _ := s.Selected()
	assert.Equal(t, 2, idx)

	// Selecting the same button again keeps it selected
	assert.True(t, s.SelectPhysical("k3"))
	idx, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	assert.False(t, s.SelectPhysical("nope"))

	s.ClearSelected()
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestStore_SetHover(t *testing.T) {
	s := newTestStore(t, nil)
	ch := s.Subscribe()

	s.SetHover(0, true)
	assert.True(t, s.Buttons()[0].Hover)

	event := <-ch
	assert.Equal(t, ChangeHover, event.Type)
	assert.Equal(t, 0, event.Index)

	// No change, no event
	s.SetHover(0, true)
	assert.Empty(t, ch)
}

func TestStore_SetBinding(t *testing.T) {
	s := newTestStore(t, nil)

	// Without a selection nothing changes
	s.SetBinding("x")
	assert.Equal(t, []model.Binding{"left", "right", "up", "down"}, bindings(s))

	s.ToggleSelected(0)
	s.SetBinding("x")

	b := s.Buttons()[0]
	assert.Equal(t, model.Binding("x"), b.Binding)
	assert.True(t, b.Dirty)
	assert.True(t, b.Modified)

	// Back to the default clears both flags
	s.SetBinding("left")
	b = s.Buttons()[0]
	assert.False(t, b.Dirty)
	assert.False(t, b.Modified)

	remapped := s.RemappedButtons()
	assert.Empty(t, remapped)
}

func TestStore_SetBinding_TracksSocd(t *testing.T) {
	s := newTestStore(t, nil)

	s.AddSocd()
	s.ToggleSelected(0)
	s.SetSocdBinding(0, SideA)
	require.Equal(t, 0, s.Buttons()[0].Socd)

	// Rebinding to something outside any pair drops the reference
	s.SetBinding("x")
	assert.Equal(t, NoSocd, s.Buttons()[0].Socd)

	// Rebinding into the pair restores it
	s.SetBinding("left")
	assert.Equal(t, 0, s.Buttons()[0].Socd)
}

func TestStore_SocdPairFromSelection(t *testing.T) {
	s := newTestStore(t, nil)

	s.ToggleSelected(0)
	s.SetBinding("x")
	s.ToggleSelected(1)
	s.SetBinding("y")

	s.AddSocd()
	s.ToggleSelected(0)
	s.SetSocdBinding(0, SideA)
	s.ToggleSelected(1)
	s.SetSocdBinding(0, SideB)

	pairs := s.SocdPairs()
	require.Len(t, pairs, 1)
	assert.Equal(t, model.Binding("x"), pairs[0].A)
	assert.Equal(t, model.Binding("y"), pairs[0].B)
	assert.Equal(t, model.DefaultSocdType, pairs[0].Type)

	buttons := s.Buttons()
	assert.Equal(t, 0, buttons[0].Socd)
	assert.Equal(t, 0, buttons[1].Socd)
	assert.Equal(t, NoSocd, buttons[2].Socd)
}

func TestStore_SetSocdBinding_MovesBinding(t *testing.T) {
	s := newTestStore(t, nil)
	s.AddSocd()
	s.AddSocd()

	s.ToggleSelected(0)
	s.SetSocdBinding(0, SideA)
	s.SetSocdBinding(1, SideB)

	pairs := s.SocdPairs()
	assert.Equal(t, model.BindingUnspecified, pairs[0].A)
	assert.Equal(t, model.Binding("left"), pairs[1].B)
	assert.Equal(t, 1, s.Buttons()[0].Socd)
}

func TestStore_SetSocdBinding_ReplacesSide(t *testing.T) {
	s := newTestStore(t, nil)
	s.AddSocd()

	s.ToggleSelected(0)
	s.SetSocdBinding(0, SideA)
	s.ToggleSelected(2)
	s.SetSocdBinding(0, SideA)

	pairs := s.SocdPairs()
	assert.Equal(t, model.Binding("up"), pairs[0].A)

	buttons := s.Buttons()
	assert.Equal(t, NoSocd, buttons[0].Socd)
	assert.Equal(t, 0, buttons[2].Socd)
}

func TestStore_SetSocdBinding_Ignored(t *testing.T) {
	s := newTestStore(t, nil)
	s.AddSocd()

	// No selection
	s.SetSocdBinding(0, SideA)
	assert.Equal(t, model.BindingUnspecified, s.SocdPairs()[0].A)

	// Out of range
	s.ToggleSelected(0)
	s.SetSocdBinding(5, SideA)
	assert.Equal(t, NoSocd, s.Buttons()[0].Socd)

	// Unspecified binding
	s.SetBinding(model.BindingUnspecified)
	s.SetSocdBinding(0, SideA)
	assert.Equal(t, model.BindingUnspecified, s.SocdPairs()[0].A)
	assert.Equal(t, NoSocd, s.Buttons()[0].Socd)
}

func TestStore_SetSocdBindingType(t *testing.T) {
	s := newTestStore(t, nil)
	s.AddSocd()

	s.SetSocdBindingType(0, model.SocdNeutral)
	assert.Equal(t, model.SocdNeutral, s.SocdPairs()[0].Type)

	// Out of range is ignored
	s.SetSocdBindingType(3, model.SocdNeutral)
	assert.Len(t, s.SocdPairs(), 1)
}

func TestStore_AddSocd_Capacity(t *testing.T) {
	s := newTestStore(t, nil)

	for i := 0; i < model.SocdsMaxLen+1; i++ {
		s.AddSocd()
	}

	pairs := s.SocdPairs()
	require.Len(t, pairs, model.SocdsMaxLen)
	for i, p := range pairs {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, model.BindingUnspecified, p.A)
		assert.Equal(t, model.BindingUnspecified, p.B)
	}
}

func TestStore_AddSocd_CustomMax(t *testing.T) {
	s := newTestStore(t, nil, WithSocdMax(2))
	for i := 0; i < 5; i++ {
		s.AddSocd()
	}
	assert.Len(t, s.SocdPairs(), 2)
}

func TestStore_RemoveSocd(t *testing.T) {
	s := newTestStore(t, nil)
	s.AddSocd()
	s.AddSocd()

	s.ToggleSelected(0)
	s.SetSocdBinding(0, SideA)
	s.ToggleSelected(2)
	s.SetSocdBinding(1, SideA)

	s.RemoveSocd(0)

	pairs := s.SocdPairs()
	require.Len(t, pairs, 1)
	assert.Equal(t, model.Binding("up"), pairs[0].A)
	// Index tags are not renumbered
	assert.Equal(t, 1, pairs[0].Index)

	buttons := s.Buttons()
	assert.Equal(t, NoSocd, buttons[0].Socd)
	// References to later pairs are left as they were
	assert.Equal(t, 1, buttons[2].Socd)

	// Out of range is ignored
	s.RemoveSocd(7)
	assert.Len(t, s.SocdPairs(), 1)
}

func TestStore_AddSocd_AfterRemoveUsesLastIndex(t *testing.T) {
	s := newTestStore(t, nil)
	s.AddSocd()
	s.AddSocd()
	s.RemoveSocd(0)
	s.AddSocd()

	pairs := s.SocdPairs()
	require.Len(t, pairs, 2)
	assert.Equal(t, 1, pairs[0].Index)
	assert.Equal(t, 2, pairs[1].Index)
}

func TestStore_LoadFromConfig(t *testing.T) {
	s := newTestStore(t, nil)
	s.ToggleSelected(0)

	cfg := &model.Config{GameModes: []model.ModeConfig{
		{
			ID: model.GameModeXInput,
			ButtonRemapping: []model.ButtonBinding{
				{Physical: "k1", Binding: "right"},
				{Physical: "k2", Binding: "left"},
			},
			SocdPairs: []model.SocdPair{
				{A: "left", B: "right", Type: model.SocdNeutral},
			},
		},
		{ID: model.GameModeSwitch},
	}}

	s.LoadFromConfig(cfg)

	assert.Equal(t, []model.Binding{"right", "left", "up", "down"}, bindings(s))

	_, ok := s.Selected()
	assert.False(t, ok)

	buttons := s.Buttons()
	for _, i := range []int{0, 1} {
		assert.Equal(t, buttons[i].Binding, buttons[i].InitialBinding)
		assert.False(t, buttons[i].Dirty)
		assert.True(t, buttons[i].Modified)
		assert.Equal(t, 0, buttons[i].Socd)
	}
	assert.Equal(t, NoSocd, buttons[2].Socd)

	pairs := s.SocdPairs()
	require.Len(t, pairs, 1)
	assert.Equal(t, 0, pairs[0].Index)
	assert.Equal(t, model.SocdNeutral, pairs[0].Type)
}

func TestStore_LoadFromConfig_NoModeSection(t *testing.T) {
	s := newTestStore(t, nil)
	s.AddSocd()
	s.ToggleSelected(0)
	s.SetSocdBinding(0, SideA)
	s.SetBinding("x")

	s.LoadFromConfig(&model.Config{GameModes: []model.ModeConfig{{ID: model.GameModeSwitch}}})

	// Buttons fall back to defaults, the pair list is kept
	assert.Equal(t, []model.Binding{"left", "right", "up", "down"}, bindings(s))
	require.Len(t, s.SocdPairs(), 1)
	assert.Equal(t, 0, s.Buttons()[0].Socd)

	s.LoadFromConfig(nil)
	assert.Equal(t, []model.Binding{"left", "right", "up", "down"}, bindings(s))
}

func TestStore_RemapRequest(t *testing.T) {
	s := newTestStore(t, nil)

	s.ToggleSelected(3)
	s.SetBinding("jump")
	s.AddSocd()
	s.ToggleSelected(0)
	s.SetSocdBinding(0, SideA)

	r := s.RemapRequest()
	assert.Equal(t, model.GameModeXInput, r.Mode)
	assert.Equal(t, []model.ButtonBinding{{Physical: "k4", Binding: "jump"}}, r.Buttons)
	require.Len(t, r.Socd, 1)
	assert.Equal(t, model.Binding("left"), r.Socd[0].A)
}

func TestStore_SaveRoundTrip(t *testing.T) {
	dm := &fakeDevice{}
	s := newTestStore(t, dm)

	s.ToggleSelected(0)
	s.SetBinding("x")
	s.ToggleSelected(1)
	s.SetBinding("y")
	s.AddSocd()
	s.ToggleSelected(0)
	s.SetSocdBinding(0, SideA)
	s.ToggleSelected(1)
	s.SetSocdBinding(0, SideB)

	require.NoError(t, dm.SaveConfig())

	for _, b := range s.Buttons() {
		assert.False(t, b.Dirty)
		assert.Equal(t, b.Binding, b.InitialBinding)
	}

	saved := dm.cfg.Clone()

	// A fresh store on the same device sees the same state
	other := newTestStore(t, &fakeDevice{cfg: saved})
	assert.Equal(t, bindings(s), bindings(other))
	assert.Equal(t, s.SocdPairs(), other.SocdPairs())

	otherButtons := other.Buttons()
	assert.Equal(t, 0, otherButtons[0].Socd)
	assert.Equal(t, 0, otherButtons[1].Socd)
}

func TestStore_DeviceEvents(t *testing.T) {
	dm := &fakeDevice{}
	s := newTestStore(t, dm)
	ch := s.Subscribe()

	dm.load(&model.Config{GameModes: []model.ModeConfig{{
		ID:              model.GameModeXInput,
		ButtonRemapping: []model.ButtonBinding{{Physical: "k3", Binding: "a"}},
	}}})

	event := <-ch
	assert.Equal(t, ChangeLoad, event.Type)
	assert.Equal(t, model.GameModeXInput, event.Mode)
	assert.Equal(t, model.Binding("a"), s.Buttons()[2].Binding)

	dm.disconnect()
	event = <-ch
	assert.Equal(t, ChangeReset, event.Type)
	assert.Empty(t, s.Buttons())
	assert.Empty(t, s.SocdPairs())
}

func TestStore_ClearMappings(t *testing.T) {
	dm := &fakeDevice{cfg: &model.Config{GameModes: []model.ModeConfig{{
		ID:              model.GameModeXInput,
		ButtonRemapping: []model.ButtonBinding{{Physical: "k1", Binding: "x"}},
		SocdPairs:       []model.SocdPair{{A: "up", B: "down", Type: model.SocdNeutral}},
	}}}}
	s := newTestStore(t, dm)
	require.Equal(t, model.Binding("x"), s.Buttons()[0].Binding)

	require.NoError(t, s.ClearMappings())

	assert.Equal(t, []model.GameMode{model.GameModeXInput}, dm.cleared)
	assert.Equal(t, 1, dm.saves)
	assert.Equal(t, []model.Binding{"left", "right", "up", "down"}, bindings(s))
	for _, b := range s.Buttons() {
		assert.False(t, b.Dirty)
		assert.False(t, b.Modified)
	}

	// SOCD pairs survive and still mark their buttons
	assert.Len(t, s.SocdPairs(), 1)
	assert.Equal(t, 0, s.Buttons()[2].Socd)
	assert.Empty(t, dm.cfg.Mode(model.GameModeXInput).ButtonRemapping)
}

func TestStore_ClearMappings_DeviceErrors(t *testing.T) {
	errClear := errors.New("clear failed")
	errSave := errors.New("save failed")
	dm := &fakeDevice{clearErr: errClear, saveErr: errSave}
	s := newTestStore(t, dm)

	s.ToggleSelected(0)
	s.SetBinding("x")

	err := s.ClearMappings()
	require.Error(t, err)
	assert.ErrorIs(t, err, errClear)
	assert.ErrorIs(t, err, errSave)

	// Local reset still happened
	assert.Equal(t, model.Binding("left"), s.Buttons()[0].Binding)
}

func TestStore_Unsubscribe(t *testing.T) {
	s := newTestStore(t, nil)
	ch := s.Subscribe()
	s.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)

	// Notifying after unsubscribe must not panic
	s.ToggleSelected(0)
}

func TestStore_SlowSubscriberSeesLatest(t *testing.T) {
	s := newTestStore(t, nil)
	ch := s.Subscribe()

	for i := 0; i < 20; i++ {
		s.ToggleSelected(i % 4)
	}

	var last ChangeEvent
	received := 0
	for len(ch) > 0 {
		last = <-ch
		received++
	}
	assert.Equal(t, 16, received)
	assert.Equal(t, ChangeSelection, last.Type)
	assert.Equal(t, 3, last.Index)

	idx, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, last.Index, idx)
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		input   string
		want    Side
		wantStr string
		wantErr bool
	}{
		{"a", SideA, "a", false},
		{"B", SideB, "b", false},
		{"c", SideA, "", true},
		{"", SideA, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSide(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStr, got.String())
		})
	}
}
