package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		GameModes: []ModeConfig{
			{
				ID: GameModeXInput,
				ButtonRemapping: []ButtonBinding{
					{Physical: "up", Binding: "dpad-down"},
				},
				SocdPairs: []SocdPair{
					{A: "dpad-left", B: "dpad-right", Type: SocdNeutral},
				},
			},
		},
	}
}

func TestParseSocdType(t *testing.T) {
	for _, st := range ValidSocdTypes() {
		got, err := ParseSocdType(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	_, err := ParseSocdType("last-wins")
	assert.ErrorIs(t, err, ErrInvalidSocdType)
}

func TestParseGameMode(t *testing.T) {
	for _, m := range KnownGameModes() {
		got, err := ParseGameMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseGameMode("gamecube")
	assert.ErrorIs(t, err, ErrUnknownGameMode)
}

func TestSocdPair_Contains(t *testing.T) {
	p := SocdPair{A: "dpad-left", B: BindingUnspecified}

	assert.True(t, p.Contains("dpad-left"))
	assert.False(t, p.Contains("dpad-right"))
	assert.False(t, p.Contains(BindingUnspecified), "unspecified never participates")
}

func TestConfig_Mode(t *testing.T) {
	cfg := testConfig()

	mc := cfg.Mode(GameModeXInput)
	require.NotNil(t, mc)
	assert.Equal(t, GameModeXInput, mc.ID)

	assert.Nil(t, cfg.Mode(GameModeSwitch))

	var nilCfg *Config
	assert.Nil(t, nilCfg.Mode(GameModeXInput))
}

func TestConfig_ApplyRemap(t *testing.T) {
	cfg := testConfig()

	cfg.ApplyRemap(ModeRemap{
		Mode:    GameModeXInput,
		Buttons: []ButtonBinding{{Physical: "left", Binding: "dpad-up"}},
	})
	require.Len(t, cfg.GameModes, 1)
	assert.Equal(t, []ButtonBinding{{Physical: "left", Binding: "dpad-up"}}, cfg.GameModes[0].ButtonRemapping)
	assert.Empty(t, cfg.GameModes[0].SocdPairs)

	cfg.ApplyRemap(ModeRemap{Mode: GameModeSwitch})
	require.Len(t, cfg.GameModes, 2)
	assert.Equal(t, GameModeSwitch, cfg.GameModes[1].ID)
}

func TestConfig_ClearRemapping(t *testing.T) {
	cfg := testConfig()
	cfg.ClearRemapping(GameModeXInput)

	mc := cfg.Mode(GameModeXInput)
	assert.Empty(t, mc.ButtonRemapping)
	assert.Len(t, mc.SocdPairs, 1, "socd pairs are kept")

	// Unknown mode is a no-op
	cfg.ClearRemapping(GameModeSwitch)
	assert.Len(t, cfg.GameModes, 1)
}

func TestConfig_Clone(t *testing.T) {
	cfg := testConfig()
	clone := cfg.Clone()

	clone.GameModes[0].ButtonRemapping[0].Binding = "changed"
	clone.GameModes[0].SocdPairs[0].Type = SocdDirAPriority

	assert.Equal(t, Binding("dpad-down"), cfg.GameModes[0].ButtonRemapping[0].Binding)
	assert.Equal(t, SocdNeutral, cfg.GameModes[0].SocdPairs[0].Type)
}

func TestConfig_EncodesEmptyListsAsArrays(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyRemap(ModeRemap{Mode: GameModeXInput})

	data, err := json.Marshal(cfg.Clone())
	require.NoError(t, err)
	assert.JSONEq(t, `{"gameModes":[{"id":"xinput","buttonRemapping":[],"socdPairs":[]}]}`, string(data))

	cfg = testConfig()
	cfg.ClearRemapping(GameModeXInput)
	data, err = json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"buttonRemapping":[]`)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: nil,
		},
		{
			name: "empty mode id",
			modify: func(c *Config) {
				c.GameModes[0].ID = ""
			},
			wantErr: ErrEmptyModeID,
		},
		{
			name: "duplicate mode",
			modify: func(c *Config) {
				c.GameModes = append(c.GameModes, ModeConfig{ID: GameModeXInput})
			},
			wantErr: ErrDuplicateMode,
		},
		{
			name: "too many socd pairs",
			modify: func(c *Config) {
				for i := 0; i < SocdsMaxLen; i++ {
					c.GameModes[0].SocdPairs = append(c.GameModes[0].SocdPairs, SocdPair{Type: SocdNeutral})
				}
			},
			wantErr: ErrTooManySocds,
		},
		{
			name: "invalid socd type",
			modify: func(c *Config) {
				c.GameModes[0].SocdPairs[0].Type = "bogus"
			},
			wantErr: ErrInvalidSocdType,
		},
		{
			name: "empty physical id",
			modify: func(c *Config) {
				c.GameModes[0].ButtonRemapping[0].Physical = ""
			},
			wantErr: ErrEmptyPhysicalID,
		},
		{
			name: "duplicate remap",
			modify: func(c *Config) {
				c.GameModes[0].ButtonRemapping = append(c.GameModes[0].ButtonRemapping,
					ButtonBinding{Physical: "up", Binding: "a"})
			},
			wantErr: ErrDuplicateRemap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestModeConfig_Remapping(t *testing.T) {
	mc := testConfig().Mode(GameModeXInput)

	b, ok := mc.Remapping("up")
	assert.True(t, ok)
	assert.Equal(t, Binding("dpad-down"), b)

	_, ok = mc.Remapping("down")
	assert.False(t, ok)
}
