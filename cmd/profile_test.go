package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSteer/internal/config"
	"github.com/Rorical/RoriSteer/internal/models"
)

func TestShowProfilePrintsSessionDefaults(t *testing.T) {
	writeProfile(t, "https://example.test")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	var out bytes.Buffer
	writeProfileDetails(&out, cfg, "test", cfg.Profiles["test"])

	text := out.String()
	assert.Contains(t, text, "Profile: test")
	assert.Contains(t, text, "Base URL: https://example.test")
	assert.Contains(t, text, "API Key: Set (hidden for security)")
	assert.Contains(t, text, "Default strength: 40\n")
	assert.Contains(t, text, "Temperature: 0.50")
	assert.Contains(t, text, "Max tokens: 48")
	assert.Contains(t, text, "Steer special tokens: true")
}

func TestShowProfileMarksOverrides(t *testing.T) {
	writeProfile(t, "https://example.test")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	strength := -15
	generation := models.DefaultGenerationSettings()
	generation.Seed = 3
	p := cfg.Profiles["test"]
	p.DefaultStrength = &strength
	p.Generation = &generation

	var out bytes.Buffer
	writeProfileDetails(&out, cfg, "test", p)
	assert.Contains(t, out.String(), "Default strength: -15 (profile)")
	assert.Contains(t, out.String(), "Generation (profile):")
	assert.Contains(t, out.String(), "Seed: 3")
}

func TestRemoveProfile(t *testing.T) {
	cfg := &config.Config{
		Profiles:      map[string]config.Profile{"a": {}, "b": {}},
		ActiveProfile: "a",
	}

	removeProfile(cfg, "a")
	assert.Equal(t, "b", cfg.ActiveProfile)

	removeProfile(cfg, "b")
	assert.Equal(t, "default", cfg.ActiveProfile)
	assert.Equal(t, config.DefaultModelID, cfg.Profiles["default"].ModelID)
}

func TestPromptValidators(t *testing.T) {
	assert.NoError(t, validateStrength("-100"))
	assert.NoError(t, validateStrength(" 40 "))
	assert.Error(t, validateStrength("101"))
	assert.Error(t, validateStrength("lots"))

	assert.NoError(t, validateTemperature("0.7"))
	assert.Error(t, validateTemperature("1.5"))

	assert.NoError(t, validatePositive("48"))
	assert.Error(t, validatePositive("0"))

	assert.NoError(t, validateInt("-3"))
	assert.Error(t, validateInt("3.5"))

	assert.NoError(t, validateBaseURL("http://localhost:3000"))
	assert.Error(t, validateBaseURL("localhost"))

	assert.Error(t, notBlank("   "))
}
