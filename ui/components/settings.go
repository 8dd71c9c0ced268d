package components

import (
	"fmt"
	"strings"

	"github.com/Rorical/RoriSteer/internal/models"
	"github.com/Rorical/RoriSteer/ui/styles"
)

var settingLabels = [models.SettingFieldCount]string{
	models.SettingTemperature:        "Temperature",
	models.SettingMaxTokens:          "Max tokens",
	models.SettingFreqPenalty:        "Freq penalty",
	models.SettingSeed:               "Seed",
	models.SettingStrengthMultiplier: "Strength multiplier",
	models.SettingSteerSpecialTokens: "Steer special tokens",
}

func settingValue(s models.GenerationSettings, field models.SettingField) string {
	switch field {
	case models.SettingTemperature:
		return fmt.Sprintf("%.1f", s.Temperature)
	case models.SettingMaxTokens:
		return fmt.Sprint(s.MaxTokens)
	case models.SettingFreqPenalty:
		return fmt.Sprint(s.FreqPenalty)
	case models.SettingSeed:
		return fmt.Sprint(s.Seed)
	case models.SettingStrengthMultiplier:
		return fmt.Sprint(s.StrengthMultiplier)
	case models.SettingSteerSpecialTokens:
		if s.SteerSpecialTokens {
			return "on"
		}
		return "off"
	}
	return ""
}

func RenderSettings(settings models.GenerationSettings, cursor int, focused bool, width int) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle().Render("Generation Settings"))

	for field := models.SettingField(0); field < models.SettingFieldCount; field++ {
		marker := "  "
		if focused && int(field) == cursor {
			marker = styles.CursorStyle().Render("> ")
		}
		b.WriteString(fmt.Sprintf("\n%s%-21s %s", marker, settingLabels[field], settingValue(settings, field)))
	}

	return styles.PanelStyle(width, focused).Render(b.String())
}
