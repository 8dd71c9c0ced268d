package components

import (
	"fmt"
	"strings"

	"github.com/Rorical/RoriSteer/internal/models"
	"github.com/Rorical/RoriSteer/ui/styles"
)

const sliderWidth = 21

// RenderResults lists catalog results; already selected ones are marked.
func RenderResults(results []models.Explanation, cursor int, selected map[models.FeatureKey]bool, searching bool, focused bool, width int) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle().Render("Search Results") + "\n")

	switch {
	case searching:
		b.WriteString(styles.MutedStyle().Render("Searching..."))
	case len(results) == 0:
		b.WriteString(styles.MutedStyle().Render("No results yet."))
	default:
		for i, r := range results {
			marker := "  "
			if focused && i == cursor {
				marker = styles.CursorStyle().Render("> ")
			}
			check := "[ ]"
			if selected[r.Key()] {
				check = "[x]"
			}
			line := fmt.Sprintf("%s %s %s", check, truncate(r.Description, width-28), styles.MutedStyle().Render(r.Key().String()))
			b.WriteString(marker + line)
			if i < len(results)-1 {
				b.WriteString("\n")
			}
		}
	}

	return styles.PanelStyle(width, focused).Render(b.String())
}

// RenderSelection draws the selection editor: one slider per feature.
func RenderSelection(selection []models.SelectedFeature, cursor int, focused bool, width int) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle().Render("Selected Features") + "\n")

	if len(selection) == 0 {
		b.WriteString(styles.MutedStyle().Render("No features selected yet."))
		return styles.PanelStyle(width, focused).Render(b.String())
	}

	for i, f := range selection {
		marker := "  "
		if focused && i == cursor {
			marker = styles.CursorStyle().Render("> ")
		}
		b.WriteString(marker + truncate(f.Description, width-8) + "\n")
		b.WriteString("    " + Slider(f.Strength) + " " + strengthLabel(f.Strength) + " " +
			styles.MutedStyle().Render(f.Key().String()))
		if i < len(selection)-1 {
			b.WriteString("\n")
		}
	}

	return styles.PanelStyle(width, focused).Render(b.String())
}

// Slider renders strength in [-100, 100] as a fixed-width bar with the zero
// point in the middle.
func Slider(strength int) string {
	strength = models.ClampStrength(strength)
	mid := sliderWidth / 2
	pos := mid + strength*mid/models.MaxStrength

	cells := make([]rune, sliderWidth)
	for i := range cells {
		cells[i] = '─'
	}
	cells[mid] = '┼'
	cells[pos] = '●'
	return "[" + string(cells) + "]"
}

func strengthLabel(strength int) string {
	label := fmt.Sprintf("%+4d", strength)
	switch {
	case strength > 0:
		return styles.PositiveStyle().Render(label)
	case strength < 0:
		return styles.NegativeStyle().Render(label)
	default:
		return label
	}
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
