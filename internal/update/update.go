package update

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriSteer/internal/eventbus"
	"github.com/Rorical/RoriSteer/internal/models"
)

func HandleUpdateWithEventBus(appModel *models.AppModel, msg tea.Msg, eb *eventbus.EventBus) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsgWithEventBus(appModel, msg, eb)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
		return nil
	case TickMsg:
		return HandleTickMsg(appModel)
	case spinner.TickMsg:
		var cmd tea.Cmd
		appModel.Spinner, cmd = appModel.Spinner.Update(msg)
		return cmd
	case CoreEventMsg:
		return HandleCoreEvent(appModel, msg)
	}

	// Cursor blink and other input-internal messages
	var searchCmd, composeCmd tea.Cmd
	appModel.SearchInput, searchCmd = appModel.SearchInput.Update(msg)
	appModel.ComposeInput, composeCmd = appModel.ComposeInput.Update(msg)
	return tea.Batch(searchCmd, composeCmd)
}
