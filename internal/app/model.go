package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriSteer/internal/dispatcher"
	"github.com/Rorical/RoriSteer/internal/models"
	"github.com/Rorical/RoriSteer/internal/update"
	"github.com/Rorical/RoriSteer/ui/components"
	"github.com/Rorical/RoriSteer/ui/styles"
)

const (
	fallbackWidth  = 120
	fallbackHeight = 40
	sidebarRatio   = 0.4
)

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	replies    *components.ReplyRenderer
}

func NewAppModel(appModel models.AppModel, disp *dispatcher.EventDispatcher) *AppModel {
	return &AppModel{
		appModel:   appModel,
		dispatcher: disp,
		replies:    &components.ReplyRenderer{},
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.appModel.Spinner.Tick,
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, m.dispatcher.GetEventBus())
	return m, cmd
}

func (m *AppModel) View() string {
	am := &m.appModel

	width, height := am.Width, am.Height
	if width == 0 {
		width = fallbackWidth
	}
	if height == 0 {
		height = fallbackHeight
	}
	left := int(float64(width) * sidebarRatio)
	right := width - left

	selected := make(map[models.FeatureKey]bool, len(am.Selection))
	for _, f := range am.Selection {
		selected[f.Key()] = true
	}

	sidebar := lipgloss.JoinVertical(lipgloss.Left,
		components.RenderInput(am.SearchInput.View(), am.Focus == models.PaneSearch, left),
		components.RenderResults(am.Results, am.ResultCursor, selected, am.Searching, am.Focus == models.PaneResults, left),
		components.RenderSelection(am.Selection, am.SelectionCursor, am.Focus == models.PaneSelection, left),
		components.RenderSettings(am.Settings, am.SettingsCursor, am.Focus == models.PaneSettings, left),
	)

	input := components.RenderInput(am.ComposeInput.View(), am.Focus == models.PaneCompose, right)
	chatHeight := height - lipgloss.Height(input) - 4
	chat := components.Tail(
		components.RenderTranscripts(am.Default, am.Steered, am.Pending, am.Spinner.View(), m.replies, right-2),
		chatHeight,
	)
	main := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Height(chatHeight).Render(chat),
		input,
	)

	var b strings.Builder
	b.WriteString(styles.HeaderStyle(width).Render("RORISTEER · " + am.ModelID))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main))
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(am.Status, am.IsError, am.Loading, am.LoadingDots, width))
	b.WriteString("\n")
	b.WriteString(components.RenderHelp(width))

	return b.String()
}
