package profile

import "github.com/jmylchreest/padprofile/internal/model"

// DeviceManager is the collaborator that owns the device connection.
// It supplies config snapshots and receives remap diffs; it holds no
// button or SOCD state of its own.
type DeviceManager interface {
	// Config returns the currently loaded config, or nil.
	Config() *model.Config

	OnConfigLoaded(fn func(cfg *model.Config))
	OnConfigSaved(fn func())
	OnDisconnected(fn func())
	OnRequestRemapped(fn func() model.ModeRemap)

	// ClearMappings drops the button remapping of mode on the device.
	ClearMappings(mode model.GameMode) error
	// SaveConfig persists the remap diffs of every subscribed profile.
	SaveConfig() error
}

// attach subscribes the store to dm and applies an already loaded config.
func (s *Store) attach(dm DeviceManager) {
	dm.OnConfigLoaded(s.LoadFromConfig)
	dm.OnConfigSaved(s.OnConfigSaved)
	dm.OnRequestRemapped(s.RemapRequest)
	dm.OnDisconnected(s.OnDisconnected)

	if cfg := dm.Config(); cfg != nil {
		s.LoadFromConfig(cfg)
	}
}
