package models

import "math"

// GenerationSettings are read at send time; edits only affect later sends.
type GenerationSettings struct {
	Temperature        float64 `json:"temperature"`
	MaxTokens          int     `json:"max_tokens"`
	FreqPenalty        int     `json:"freq_penalty"`
	Seed               int     `json:"seed"`
	StrengthMultiplier int     `json:"strength_multiplier"`
	SteerSpecialTokens bool    `json:"steer_special_tokens"`
}

func DefaultGenerationSettings() GenerationSettings {
	return GenerationSettings{
		Temperature:        0.5,
		MaxTokens:          48,
		FreqPenalty:        2,
		Seed:               16,
		StrengthMultiplier: 4,
		SteerSpecialTokens: true,
	}
}

// Normalize clamps temperature to [0,1] and forces at least one token.
func (s GenerationSettings) Normalize() GenerationSettings {
	if s.Temperature < 0 {
		s.Temperature = 0
	}
	if s.Temperature > 1 {
		s.Temperature = 1
	}
	if s.MaxTokens < 1 {
		s.MaxTokens = 1
	}
	return s
}

// SettingField indexes the editable GenerationSettings fields in display order.
type SettingField int

const (
	SettingTemperature SettingField = iota
	SettingMaxTokens
	SettingFreqPenalty
	SettingSeed
	SettingStrengthMultiplier
	SettingSteerSpecialTokens
	SettingFieldCount
)

const (
	temperatureStep = 0.1
	maxTokensStep   = 8
)

// Step moves one field a step in direction dir (+1 or -1); the boolean field
// toggles. The result is normalized.
func (s GenerationSettings) Step(field SettingField, dir int) GenerationSettings {
	switch field {
	case SettingTemperature:
		s.Temperature = math.Round((s.Temperature+float64(dir)*temperatureStep)*10) / 10
	case SettingMaxTokens:
		s.MaxTokens += dir * maxTokensStep
	case SettingFreqPenalty:
		s.FreqPenalty += dir
	case SettingSeed:
		s.Seed += dir
	case SettingStrengthMultiplier:
		s.StrengthMultiplier += dir
	case SettingSteerSpecialTokens:
		s.SteerSpecialTokens = !s.SteerSpecialTokens
	}
	return s.Normalize()
}
