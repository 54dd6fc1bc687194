package profile

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/jmylchreest/padprofile/internal/model"
)

// ChangeType indicates the type of store change.
type ChangeType int

const (
	// ChangeSelection indicates the selected button changed.
	ChangeSelection ChangeType = iota
	// ChangeHover indicates a button's hover flag changed.
	ChangeHover
	// ChangeBinding indicates a button binding changed.
	ChangeBinding
	// ChangeSocd indicates the SOCD pair list changed.
	ChangeSocd
	// ChangeLoad indicates the store was reloaded from a device config.
	ChangeLoad
	// ChangeSaved indicates the device confirmed a save.
	ChangeSaved
	// ChangeReset indicates the store was emptied after a disconnect.
	ChangeReset
)

// String returns the string representation of ChangeType.
func (c ChangeType) String() string {
	switch c {
	case ChangeSelection:
		return "selection"
	case ChangeHover:
		return "hover"
	case ChangeBinding:
		return "binding"
	case ChangeSocd:
		return "socd"
	case ChangeLoad:
		return "load"
	case ChangeSaved:
		return "saved"
	case ChangeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// ChangeEvent signals store content changes.
type ChangeEvent struct {
	Type  ChangeType
	Mode  model.GameMode
	Index int // Button or pair index, -1 when not applicable
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithSocdMax overrides the maximum number of SOCD pairs.
func WithSocdMax(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.socdMax = n
		}
	}
}

// Store holds the profile of one game mode on one layout.
type Store struct {
	mu     sync.RWMutex
	mode   model.GameMode
	layout *model.Layout
	dm     DeviceManager
	logger *slog.Logger

	socdMax  int
	buttons  []Button
	socd     []SocdPair
	selected int // Selected button index, -1 when none

	subscribers []chan ChangeEvent
}

// NewStore creates a store seeded with the layout defaults for mode.
// If dm is not nil the store subscribes to its events and applies the
// config it currently holds.
func NewStore(mode model.GameMode, layout *model.Layout, dm DeviceManager, opts ...Option) *Store {
	s := &Store{
		mode:     mode,
		layout:   layout,
		dm:       dm,
		logger:   slog.Default(),
		socdMax:  model.SocdsMaxLen,
		buttons:  initButtons(layout, mode),
		socd:     make([]SocdPair, 0),
		selected: -1,
	}
	for _, opt := range opts {
		opt(s)
	}

	if dm != nil {
		s.attach(dm)
	}

	return s
}

// Mode returns the store's game mode.
func (s *Store) Mode() model.GameMode {
	return s.mode
}

// Layout returns the store's layout.
func (s *Store) Layout() *model.Layout {
	return s.layout
}

// Buttons returns a copy of the button states.
func (s *Store) Buttons() []Button {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Button, len(s.buttons))
	copy(result, s.buttons)
	return result
}

// SocdPairs returns a copy of the SOCD pair list.
func (s *Store) SocdPairs() []SocdPair {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]SocdPair, len(s.socd))
	copy(result, s.socd)
	return result
}

// Selected returns the selected button index.
func (s *Store) Selected() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, s.selected >= 0
}

// ToggleSelected flips selection on button i and clears it everywhere else.
func (s *Store) ToggleSelected(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toggleSelected(i)
}

func (s *Store) toggleSelected(i int) {
	if i < 0 || i >= len(s.buttons) {
		return
	}

	s.buttons[i].Selected = !s.buttons[i].Selected
	for j := range s.buttons {
		if j != i {
			s.buttons[j].Selected = false
		}
	}

	if s.buttons[i].Selected {
		s.selected = i
	} else {
		s.selected = -1
	}
	s.notify(ChangeSelection, i)
}

// SelectPhysical selects the button with the given physical id.
// Returns false if the layout has no such button.
func (s *Store) SelectPhysical(p model.PhysicalButton) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.buttons {
		if s.buttons[i].Physical != p {
			continue
		}
		if !s.buttons[i].Selected {
			s.toggleSelected(i)
		}
		return true
	}
	return false
}

// ClearSelected deselects every button.
func (s *Store) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected < 0 {
		return
	}

	for i := range s.buttons {
		s.buttons[i].Selected = false
	}
	s.selected = -1
	s.notify(ChangeSelection, -1)
}

// SetHover sets the hover flag of button i.
func (s *Store) SetHover(i int, hover bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.buttons) {
		return
	}
	if s.buttons[i].Hover == hover {
		return
	}

	s.buttons[i].Hover = hover
	s.notify(ChangeHover, i)
}

// SetBinding assigns binding to the selected button.
func (s *Store) SetBinding(binding model.Binding) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected < 0 {
		return
	}

	k := &s.buttons[s.selected]
	k.Binding = binding
	k.Dirty = k.InitialBinding != binding
	k.Modified = k.DefaultBinding != binding
	k.Socd = s.socdIndexOf(binding)

	s.notify(ChangeBinding, s.selected)
}

// OnConfigSaved marks every button clean after a successful upload.
func (s *Store) OnConfigSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.buttons {
		s.buttons[i].InitialBinding = s.buttons[i].Binding
		s.buttons[i].Dirty = false
	}
	s.notify(ChangeSaved, -1)
}

// RemappedButtons returns every button whose binding differs from the
// layout default.
func (s *Store) RemappedButtons() []model.ButtonBinding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remappedButtons()
}

func (s *Store) remappedButtons() []model.ButtonBinding {
	result := make([]model.ButtonBinding, 0)
	for _, k := range s.buttons {
		if k.DefaultBinding != k.Binding {
			result = append(result, model.ButtonBinding{Physical: k.Physical, Binding: k.Binding})
		}
	}
	return result
}

// RemapRequest returns the diff the device should persist for this mode.
func (s *Store) RemapRequest() model.ModeRemap {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pairs := make([]model.SocdPair, len(s.socd))
	for i, p := range s.socd {
		pairs[i] = p.SocdPair
	}

	return model.ModeRemap{
		Mode:    s.mode,
		Buttons: s.remappedButtons(),
		Socd:    pairs,
	}
}

// LoadFromConfig re-seeds the store from the layout defaults and overlays
// the config section of this mode, if any.
func (s *Store) LoadFromConfig(cfg *model.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buttons = initButtons(s.layout, s.mode)
	s.selected = -1

	mc := cfg.Mode(s.mode)
	if mc == nil {
		for i := range s.buttons {
			s.buttons[i].Socd = s.socdIndexOf(s.buttons[i].Binding)
		}
		s.logger.Debug("no config for mode, using layout defaults", "mode", s.mode, "layout", s.layout.ID)
		s.notify(ChangeLoad, -1)
		return
	}

	s.socd = make([]SocdPair, len(mc.SocdPairs))
	for i, p := range mc.SocdPairs {
		s.socd[i] = SocdPair{Index: i, SocdPair: p}
	}

	for i := range s.buttons {
		k := &s.buttons[i]
		if binding, ok := mc.Remapping(k.Physical); ok {
			k.Binding = binding
			k.InitialBinding = binding
			k.Dirty = false
			k.Modified = k.DefaultBinding != binding
		}
		k.Socd = s.socdIndexOf(k.Binding)
	}

	s.logger.Debug("profile loaded from config",
		"mode", s.mode, "layout", s.layout.ID,
		"remapped", len(mc.ButtonRemapping), "socd", len(s.socd))
	s.notify(ChangeLoad, -1)
}

// ClearMappings resets every button to its layout default and asks the
// device to drop and persist the remapping of this mode. Device errors are
// returned after the local reset has been applied.
func (s *Store) ClearMappings() error {
	var errs []error

	if s.dm != nil {
		if err := s.dm.ClearMappings(s.mode); err != nil {
			s.logger.Warn("device failed to clear mappings", "mode", s.mode, "error", err)
			errs = append(errs, err)
		}
	}

	s.mu.Lock()
	for i := range s.buttons {
		k := &s.buttons[i]
		k.Binding = k.DefaultBinding
		k.InitialBinding = k.DefaultBinding
		k.Dirty = false
		k.Modified = false
		k.Socd = s.socdIndexOf(k.DefaultBinding)
	}
	s.notify(ChangeBinding, -1)
	s.mu.Unlock()

	if s.dm != nil {
		if err := s.dm.SaveConfig(); err != nil {
			s.logger.Warn("device failed to save cleared config", "mode", s.mode, "error", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// OnDisconnected empties the store.
func (s *Store) OnDisconnected() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.socd = make([]SocdPair, 0)
	s.buttons = make([]Button, 0)
	s.selected = -1
	s.notify(ChangeReset, -1)
}

// Subscribe returns a channel that receives change events.
func (s *Store) Subscribe() <-chan ChangeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan ChangeEvent, 16)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription.
func (s *Store) Unsubscribe(ch <-chan ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subscribers {
		if sub == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// socdIndexOf returns the position of the first pair containing binding.
func (s *Store) socdIndexOf(binding model.Binding) int {
	for i := range s.socd {
		if s.socd[i].Contains(binding) {
			return i
		}
	}
	return NoSocd
}

// notify sends a change event to all subscribers without blocking.
func (s *Store) notify(typ ChangeType, index int) {
	event := ChangeEvent{Type: typ, Mode: s.mode, Index: index}
	for _, ch := range s.subscribers {
		select {
		case ch <- event:
			continue
		default:
		}

		// Subscriber is behind: drop its oldest event for the newest
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- event:
		default:
		}
	}
}
