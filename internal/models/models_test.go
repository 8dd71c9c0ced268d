package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampStrength(t *testing.T) {
	assert.Equal(t, -100, ClampStrength(-250))
	assert.Equal(t, 100, ClampStrength(101))
	assert.Equal(t, 0, ClampStrength(0))
	assert.Equal(t, 75, ClampStrength(75))
}

func TestFeatureKeyIgnoresDescription(t *testing.T) {
	a := Explanation{Description: "cats", Layer: "9-res", Index: 1}
	b := Explanation{Description: "cats", Layer: "9-res", Index: 2}
	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, "9-res/2", b.Key().String())
}

func TestNormalizeSettings(t *testing.T) {
	s := GenerationSettings{Temperature: 1.7, MaxTokens: 0, Seed: 3}
	got := s.Normalize()
	assert.Equal(t, 1.0, got.Temperature)
	assert.Equal(t, 1, got.MaxTokens)
	assert.Equal(t, 3, got.Seed)

	s.Temperature = -0.2
	assert.Equal(t, 0.0, s.Normalize().Temperature)
}

func TestPaneCycle(t *testing.T) {
	assert.Equal(t, PaneResults, PaneSearch.Next())
	assert.Equal(t, PaneSearch, PaneCompose.Next())
	assert.Equal(t, PaneCompose, PaneSearch.Prev())
}

func TestStepSettingBounds(t *testing.T) {
	s := GenerationSettings{Temperature: 1.0, MaxTokens: 4}
	assert.Equal(t, 1.0, s.Step(SettingTemperature, 1).Temperature)
	assert.Equal(t, 0.9, s.Step(SettingTemperature, -1).Temperature)
	assert.Equal(t, 1, s.Step(SettingMaxTokens, -1).MaxTokens)
	assert.Equal(t, 12, s.Step(SettingMaxTokens, 1).MaxTokens)
	assert.Equal(t, -1, s.Step(SettingFreqPenalty, -1).FreqPenalty)
	assert.True(t, s.Step(SettingSteerSpecialTokens, 1).SteerSpecialTokens)
}
