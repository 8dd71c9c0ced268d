package components

import (
	"strings"

	"github.com/Rorical/RoriSteer/ui/styles"
)

func RenderStatus(status string, isError bool, loading bool, loadingDots int, width int) string {
	statusStyle := styles.StatusStyle(width)
	if isError {
		statusStyle = styles.ErrorStatusStyle(width)
	}

	statusContent := status
	if loading {
		statusContent += strings.Repeat(".", loadingDots)
	}

	return statusStyle.Render(statusContent)
}

func RenderHelp(width int) string {
	return styles.MutedStyle().Width(width).Render(
		"tab/shift+tab focus • enter search/add/send • ←/→ strength (shift ±10) • x remove • ctrl+l clear chat • ctrl+c quit")
}
