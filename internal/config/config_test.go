package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSteer/internal/models"
)

func setHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(homeEnv, dir)
	t.Setenv(apiKeyEnv, "")
	return dir
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	dir := setHome(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, ".roristeer", "config.json"))
	assert.Equal(t, "default", cfg.ActiveProfile)
	assert.Equal(t, DefaultModelID, cfg.GetModelID())
	assert.Equal(t, DefaultBaseURL+"/api/explanation/search", cfg.SearchURL())
	assert.Equal(t, DefaultBaseURL+"/api/steer-chat", cfg.SteerURL())
	assert.False(t, cfg.IsValid())
	assert.Equal(t, models.DefaultGenerationSettings(), cfg.GenerationSettings())
	assert.Equal(t, DefaultStrength, cfg.InitialStrength())
}

func TestEnvironmentKeyOverridesProfile(t *testing.T) {
	setHome(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	cfg.Profiles["default"] = Profile{APIKey: "from-file", ModelID: "gpt2-small"}
	require.NoError(t, cfg.Save())

	t.Setenv(apiKeyEnv, "from-env")
	cfg, err = LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsValid())
	assert.Equal(t, "from-env", cfg.GetAPIKey())
	assert.Equal(t, "gpt2-small", cfg.GetModelID())
}

func TestStaleActiveProfileFallsBack(t *testing.T) {
	dir := setHome(t)
	path := filepath.Join(dir, ".roristeer", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`{
		"profiles": {"work": {"api_key": "k", "base_url": "http://localhost:3000/", "model_id": "m"}},
		"active_profile": "gone",
		"generation": {"temperature": 3, "max_tokens": 0},
		"default_strength": 500
	}`), 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "work", cfg.ActiveProfile)
	assert.Equal(t, "http://localhost:3000/api/steer-chat", cfg.SteerURL())
	assert.Equal(t, 1.0, cfg.GenerationSettings().Temperature)
	assert.Equal(t, 1, cfg.GenerationSettings().MaxTokens)
	assert.Equal(t, models.MaxStrength, cfg.InitialStrength())
}

func TestProfileOverridesConfigDefaults(t *testing.T) {
	setHome(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	strength := -20
	generation := models.DefaultGenerationSettings()
	generation.Seed = 7
	cfg.Profiles["tuned"] = Profile{ModelID: "m", Generation: &generation, DefaultStrength: &strength}
	cfg.ActiveProfile = "tuned"
	require.NoError(t, cfg.Save())

	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.GenerationSettings().Seed)
	assert.Equal(t, -20, cfg.InitialStrength())

	// a profile without overrides falls back to the config-wide values
	assert.Equal(t, DefaultStrength, cfg.StrengthFor(cfg.Profiles["default"]))
	assert.Equal(t, models.DefaultGenerationSettings(), cfg.GenerationFor(cfg.Profiles["default"]))
}

func TestEmptyProfilesRejected(t *testing.T) {
	dir := setHome(t)
	path := filepath.Join(dir, ".roristeer", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`{"profiles": {}}`), 0600))

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLogPath(t *testing.T) {
	dir := setHome(t)
	path, err := LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".roristeer", "logs", "roristeer.log"), path)
}
