package components

import (
	"github.com/Rorical/RoriSteer/ui/styles"
)

func RenderInput(inputView string, focused bool, width int) string {
	return styles.InputStyle(width, focused).Render(inputView)
}
