package device

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/padprofile/internal/model"
)

func TestFileBackend_MissingFile(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "device.json"))

	cfg, err := b.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.GameModes)
}

func TestFileBackend_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "device.json")
	b := NewFileBackend(path)
	assert.Equal(t, path, b.Path())

	require.NoError(t, b.Save(sampleConfig()))

	// No temp file left behind
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	cfg, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleConfig(), cfg)
}

func TestFileBackend_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.json")
	data := `{"gameModes":[{"id":"xinput","buttonRemapping":[{"physical":"up","binding":"dpad-up"}],"socdPairs":[{"a":"dpad-left","b":"dpad-right","type":"second-input-no-reactivation"}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	cfg, err := NewFileBackend(path).Load()
	require.NoError(t, err)

	mc := cfg.Mode(model.GameModeXInput)
	require.NotNil(t, mc)
	assert.Equal(t, []model.ButtonBinding{{Physical: "up", Binding: "dpad-up"}}, mc.ButtonRemapping)
	assert.Equal(t, []model.SocdPair{{A: "dpad-left", B: "dpad-right", Type: model.SocdSecondInputNoReactivation}}, mc.SocdPairs)
}

func TestFileBackend_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewFileBackend(path).Load()
	assert.Error(t, err)
}

func TestMemoryBackend_Copies(t *testing.T) {
	cfg := sampleConfig()
	b := NewMemoryBackend(cfg)

	cfg.GameModes[0].ID = "changed"
	loaded, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, model.GameModeXInput, loaded.GameModes[0].ID)

	loaded.GameModes = nil
	again, err := b.Load()
	require.NoError(t, err)
	assert.Len(t, again.GameModes, 1)
}
