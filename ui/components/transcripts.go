package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriSteer/internal/models"
	"github.com/Rorical/RoriSteer/ui/styles"
)

// ReplyRenderer renders model replies as markdown. The glamour renderer is
// rebuilt only when the column width changes.
type ReplyRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

func (r *ReplyRenderer) Render(text string, width int) string {
	if width < 10 {
		width = 10
	}
	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		r.renderer = renderer
		r.width = width
	}

	out, err := r.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// RenderTranscripts shows the default and steered conversations side by side.
// Turns are aligned by index, so a user prompt sits on the same row in both
// columns.
func RenderTranscripts(def, steered []models.ChatTurn, pending []string, spinnerView string, renderer *ReplyRenderer, width int) string {
	colWidth := (width - 3) / 2
	if colWidth < 12 {
		colWidth = 12
	}

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(colWidth).Render(styles.ColumnTitleStyle(false).Render("Default")),
			"   ",
			lipgloss.NewStyle().Width(colWidth).Render(styles.ColumnTitleStyle(true).Render("Steered")),
		),
	}

	if len(def) == 0 && len(steered) == 0 && len(pending) == 0 {
		rows = append(rows, styles.MutedStyle().Render("Send a message to compare default and steered replies."))
	}

	n := max(len(def), len(steered))
	for i := 0; i < n; i++ {
		left := renderTurn(def, i, false, renderer, colWidth)
		right := renderTurn(steered, i, true, renderer, colWidth)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right))
	}

	for _, msg := range pending {
		prompt := styles.UserStyle(colWidth - 2).Render("You: " + msg)
		waiting := styles.MutedStyle().Render(spinnerView + " waiting for replies")
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.JoinVertical(lipgloss.Left, prompt, waiting), "   ",
			lipgloss.JoinVertical(lipgloss.Left, prompt, waiting)))
	}

	return strings.Join(rows, "\n\n")
}

func renderTurn(turns []models.ChatTurn, i int, steeredColumn bool, renderer *ReplyRenderer, width int) string {
	box := lipgloss.NewStyle().Width(width)
	if i >= len(turns) {
		return box.Render("")
	}

	turn := turns[i]
	if turn.Speaker == models.SpeakerUser {
		return box.Render(styles.UserStyle(width - 2).Render("You: " + turn.Text))
	}

	body := renderer.Render(turn.Text, width-2)
	if steeredColumn {
		return box.Render(styles.SteeredReplyStyle(width - 1).Render(body))
	}
	return box.Render(styles.DefaultReplyStyle(width - 1).Render(body))
}

// Tail keeps the last height lines of a rendered block.
func Tail(block string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(block, "\n")
	if len(lines) <= height {
		return block
	}
	return strings.Join(lines[len(lines)-height:], "\n")
}
