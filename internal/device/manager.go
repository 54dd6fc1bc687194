package device

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/padprofile/internal/model"
)

// ErrNotConnected is returned by operations that need a loaded config.
var ErrNotConnected = errors.New("device not connected")

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock sets the clock used for session ids.
func WithClock(clock clockwork.Clock) Option {
	return func(m *Manager) {
		m.clock = clock
	}
}

// Manager holds the device config and coordinates the profile stores
// subscribed to it.
type Manager struct {
	mu      sync.RWMutex
	backend Backend
	logger  *slog.Logger
	clock   clockwork.Clock

	cfg       *model.Config
	sessionID string

	loaded       []func(*model.Config)
	saved        []func()
	disconnected []func()
	remap        []func() model.ModeRemap
	saveFailed   []func(error)
	loadFailed   []func(error)
}

// NewManager creates a disconnected manager on top of backend.
func NewManager(backend Backend, opts ...Option) *Manager {
	m := &Manager{
		backend: backend,
		logger:  slog.Default(),
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Connect loads the snapshot from the backend and starts a session.
func (m *Manager) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg, err := m.load()
	if err != nil {
		m.fireLoadFailed(err)
		return err
	}

	id, err := ulid.New(ulid.Timestamp(m.clock.Now()), rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate session id: %w", err)
	}

	m.mu.Lock()
	m.cfg = cfg
	m.sessionID = id.String()
	listeners := append(([]func(*model.Config))(nil), m.loaded...)
	m.mu.Unlock()

	m.logger.Debug("device connected", "session", id.String(), "modes", len(cfg.GameModes))

	for _, fn := range listeners {
		fn(cfg.Clone())
	}
	return nil
}

// Disconnect drops the held config and ends the session.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	if m.cfg == nil {
		m.mu.Unlock()
		return
	}
	session := m.sessionID
	m.cfg = nil
	m.sessionID = ""
	listeners := append([]func(){}, m.disconnected...)
	m.mu.Unlock()

	m.logger.Debug("device disconnected", "session", session)

	for _, fn := range listeners {
		fn()
	}
}

// Reload re-reads the backend. Listeners are only notified when the
// snapshot differs from the held config.
func (m *Manager) Reload() error {
	if !m.Connected() {
		return ErrNotConnected
	}

	cfg, err := m.load()
	if err != nil {
		m.fireLoadFailed(err)
		return err
	}

	m.mu.Lock()
	if m.cfg == nil {
		m.mu.Unlock()
		return ErrNotConnected
	}
	if reflect.DeepEqual(m.cfg, cfg) {
		m.mu.Unlock()
		m.logger.Debug("device config unchanged")
		return nil
	}
	m.cfg = cfg
	listeners := append(([]func(*model.Config))(nil), m.loaded...)
	m.mu.Unlock()

	m.logger.Debug("device config reloaded", "modes", len(cfg.GameModes))

	for _, fn := range listeners {
		fn(cfg.Clone())
	}
	return nil
}

// Connected reports whether a config is loaded.
func (m *Manager) Connected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg != nil
}

// SessionID returns the id of the current session, or "" when disconnected.
func (m *Manager) SessionID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionID
}

// Config returns a copy of the held config, or nil when disconnected.
func (m *Manager) Config() *model.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.Clone()
}

// OnConfigLoaded registers fn to receive every loaded config.
func (m *Manager) OnConfigLoaded(fn func(cfg *model.Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = append(m.loaded, fn)
}

// OnConfigSaved registers fn to run after a successful save.
func (m *Manager) OnConfigSaved(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, fn)
}

// OnDisconnected registers fn to run when the session ends.
func (m *Manager) OnDisconnected(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disconnected = append(m.disconnected, fn)
}

// OnRequestRemapped registers a responder asked for its remap on save.
func (m *Manager) OnRequestRemapped(fn func() model.ModeRemap) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remap = append(m.remap, fn)
}

// OnSaveFailed registers fn to receive save errors.
func (m *Manager) OnSaveFailed(fn func(err error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveFailed = append(m.saveFailed, fn)
}

// OnLoadFailed registers fn to receive load and reload errors.
func (m *Manager) OnLoadFailed(fn func(err error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadFailed = append(m.loadFailed, fn)
}

// ClearMappings drops the button remapping of mode. SOCD pairs are kept.
func (m *Manager) ClearMappings(mode model.GameMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg == nil {
		return ErrNotConnected
	}
	m.cfg.ClearRemapping(mode)
	m.logger.Debug("device mappings cleared", "mode", mode)
	return nil
}

// SaveConfig collects the remap of every responder, merges it into the held
// config and persists the result.
func (m *Manager) SaveConfig() error {
	m.mu.RLock()
	if m.cfg == nil {
		m.mu.RUnlock()
		return ErrNotConnected
	}
	responders := append([]func() model.ModeRemap(nil), m.remap...)
	m.mu.RUnlock()

	remaps := make([]model.ModeRemap, 0, len(responders))
	for _, fn := range responders {
		remaps = append(remaps, fn())
	}

	if err := m.commit(remaps); err != nil {
		m.logger.Warn("failed to save device config", "error", err)
		m.fireSaveFailed(err)
		return err
	}

	m.mu.RLock()
	listeners := append([]func(){}, m.saved...)
	m.mu.RUnlock()

	m.logger.Debug("device config saved", "modes", len(remaps))

	for _, fn := range listeners {
		fn()
	}
	return nil
}

func (m *Manager) commit(remaps []model.ModeRemap) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg == nil {
		return ErrNotConnected
	}

	next := m.cfg.Clone()
	for _, r := range remaps {
		next.ApplyRemap(r)
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("invalid device config: %w", err)
	}
	if err := m.backend.Save(next); err != nil {
		return fmt.Errorf("failed to save device config: %w", err)
	}

	m.cfg = next
	return nil
}

func (m *Manager) load() (*model.Config, error) {
	cfg, err := m.backend.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load device config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid device config: %w", err)
	}
	return cfg, nil
}

func (m *Manager) fireSaveFailed(err error) {
	m.mu.RLock()
	listeners := append([]func(error){}, m.saveFailed...)
	m.mu.RUnlock()

	for _, fn := range listeners {
		fn(err)
	}
}

func (m *Manager) fireLoadFailed(err error) {
	m.mu.RLock()
	listeners := append([]func(error){}, m.loadFailed...)
	m.mu.RUnlock()

	for _, fn := range listeners {
		fn(err)
	}
}
