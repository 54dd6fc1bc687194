package profile

import (
	"github.com/jmylchreest/padprofile/internal/model"
)

// fakeDevice is an in-memory DeviceManager for tests.
type fakeDevice struct {
	cfg *model.Config

	loaded       []func(*model.Config)
	saved        []func()
	disconnected []func()
	remap        []func() model.ModeRemap

	clearErr error
	saveErr  error
	cleared  []model.GameMode
	saves    int
}

func (f *fakeDevice) Config() *model.Config { return f.cfg }

func (f *fakeDevice) OnConfigLoaded(fn func(*model.Config)) { f.loaded = append(f.loaded, fn) }
func (f *fakeDevice) OnConfigSaved(fn func())               { f.saved = append(f.saved, fn) }
func (f *fakeDevice) OnDisconnected(fn func())              { f.disconnected = append(f.disconnected, fn) }

func (f *fakeDevice) OnRequestRemapped(fn func() model.ModeRemap) { f.remap = append(f.remap, fn) }

func (f *fakeDevice) ClearMappings(mode model.GameMode) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, mode)
	if f.cfg != nil {
		f.cfg.ClearRemapping(mode)
	}
	return nil
}

func (f *fakeDevice) SaveConfig() error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.cfg == nil {
		f.cfg = &model.Config{}
	}
	for _, fn := range f.remap {
		f.cfg.ApplyRemap(fn())
	}
	f.saves++
	for _, fn := range f.saved {
		fn()
	}
	return nil
}

func (f *fakeDevice) load(cfg *model.Config) {
	f.cfg = cfg
	for _, fn := range f.loaded {
		fn(cfg)
	}
}

func (f *fakeDevice) disconnect() {
	for _, fn := range f.disconnected {
		fn()
	}
}

// testLayout is a four button layout with xinput defaults for every
// button and switch defaults for two.
func testLayout() *model.Layout {
	return &model.Layout{
		ID:   "test-4",
		Name: "Test 4",
		Buttons: []model.LayoutButton{
			{Physical: "k1", X: 0, Y: 0},
			{Physical: "k2", X: 1, Y: 0},
			{Physical: "k3", X: 2, Y: 0},
			{Physical: "k4", X: 3, Y: 0},
		},
		Modes: map[model.GameMode]model.ModeDefaults{
			model.GameModeXInput: {Bindings: []model.DefaultBinding{
				{Physical: "k1", Binding: "left"},
				{Physical: "k2", Binding: "right"},
				{Physical: "k3", Binding: "up"},
				{Physical: "k4", Binding: "down"},
			}},
			model.GameModeSwitch: {Bindings: []model.DefaultBinding{
				{Physical: "k1", Binding: "a"},
				{Physical: "k2", Binding: "b"},
			}},
		},
	}
}
