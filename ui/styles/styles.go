package styles

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("62")
	muted   = lipgloss.Color("241")
	user    = lipgloss.Color("39")
	plain   = lipgloss.Color("214")
	steered = lipgloss.Color("141")
	danger  = lipgloss.Color("203")
)

func InputStyle(width int, focused bool) lipgloss.Style {
	border := muted
	if focused {
		border = accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 4)
}

func PanelStyle(width int, focused bool) lipgloss.Style {
	border := lipgloss.Color("238")
	if focused {
		border = accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2)
}

func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(steered).
		Bold(true)
}

func HeaderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(steered).
		Bold(true).
		Width(width).
		Align(lipgloss.Center)
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(muted).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func ErrorStatusStyle(width int) lipgloss.Style {
	return StatusStyle(width).Foreground(danger)
}

func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(muted)
}

func CursorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)
}

func UserStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(user).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(user).
		Padding(0, 1).
		Width(width)
}

func DefaultReplyStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(plain).
		Width(width)
}

func SteeredReplyStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(steered).
		Width(width)
}

func ColumnTitleStyle(steeredColumn bool) lipgloss.Style {
	color := plain
	if steeredColumn {
		color = steered
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Underline(true)
}

func PositiveStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
}

func NegativeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(danger)
}
