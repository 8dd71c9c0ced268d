package update

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriSteer/internal/apperr"
	"github.com/Rorical/RoriSteer/internal/eventbus"
	"github.com/Rorical/RoriSteer/internal/models"
)

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "tab":
		return setFocus(appModel, appModel.Focus.Next())
	case "shift+tab":
		return setFocus(appModel, appModel.Focus.Prev())
	case "ctrl+l":
		sendToCore(appModel, eb, eventbus.ClearTranscriptsEvent{})
		return nil
	}

	switch appModel.Focus {
	case models.PaneSearch:
		return handleSearchKey(appModel, keyMsg, eb)
	case models.PaneResults:
		return handleResultsKey(appModel, keyMsg, eb)
	case models.PaneSelection:
		return handleSelectionKey(appModel, keyMsg, eb)
	case models.PaneSettings:
		return handleSettingsKey(appModel, keyMsg, eb)
	case models.PaneCompose:
		return handleComposeKey(appModel, keyMsg, eb)
	}
	return nil
}

func handleSearchKey(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	if keyMsg.String() == "enter" {
		sendToCore(appModel, eb, eventbus.SearchEvent{Query: appModel.SearchInput.Value()})
		return nil
	}
	var cmd tea.Cmd
	appModel.SearchInput, cmd = appModel.SearchInput.Update(keyMsg)
	return cmd
}

func handleResultsKey(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		appModel.ResultCursor = moveCursor(appModel.ResultCursor, -1, len(appModel.Results))
	case "down", "j":
		appModel.ResultCursor = moveCursor(appModel.ResultCursor, 1, len(appModel.Results))
	case "enter", "a", " ":
		if appModel.ResultCursor < len(appModel.Results) {
			sendToCore(appModel, eb, eventbus.AddFeatureEvent{Explanation: appModel.Results[appModel.ResultCursor]})
		}
	}
	return nil
}

func handleSelectionKey(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	if appModel.SelectionCursor >= len(appModel.Selection) {
		if keyMsg.String() == "q" {
			return tea.Quit
		}
		return nil
	}
	// Only the key is taken from the snapshot; strengths are applied by the core
	// against the stored value, so repeated presses accumulate.
	current := appModel.Selection[appModel.SelectionCursor].Key()

	delta := 0
	switch keyMsg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		appModel.SelectionCursor = moveCursor(appModel.SelectionCursor, -1, len(appModel.Selection))
		return nil
	case "down", "j":
		appModel.SelectionCursor = moveCursor(appModel.SelectionCursor, 1, len(appModel.Selection))
		return nil
	case "left", "h":
		delta = -1
	case "right", "l":
		delta = 1
	case "shift+left", "H":
		delta = -10
	case "shift+right", "L":
		delta = 10
	case "0":
		sendToCore(appModel, eb, eventbus.SetStrengthEvent{Key: current, Strength: 0})
		return nil
	case "x", "delete", "backspace":
		sendToCore(appModel, eb, eventbus.RemoveFeatureEvent{Key: current})
		return nil
	default:
		return nil
	}

	sendToCore(appModel, eb, eventbus.AdjustStrengthEvent{Key: current, Delta: delta})
	return nil
}

func handleSettingsKey(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	field := models.SettingField(appModel.SettingsCursor)
	count := int(models.SettingFieldCount)

	dir := 0
	switch keyMsg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		appModel.SettingsCursor = moveCursor(appModel.SettingsCursor, -1, count)
		return nil
	case "down", "j":
		appModel.SettingsCursor = moveCursor(appModel.SettingsCursor, 1, count)
		return nil
	case "left", "h":
		dir = -1
	case "right", "l", "enter", " ":
		dir = 1
	default:
		return nil
	}

	sendToCore(appModel, eb, eventbus.AdjustSettingEvent{Field: field, Direction: dir})
	return nil
}

func handleComposeKey(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	if keyMsg.String() == "enter" {
		message := appModel.ComposeInput.Value()
		if !sendToCore(appModel, eb, eventbus.SendMessageEvent{Message: message}) {
			return nil
		}
		// Empty input is left for the core to reject so it is reported the same
		// way. A failed send comes back as a draft, see restoreDraft.
		if strings.TrimSpace(message) != "" {
			appModel.ComposeInput.Reset()
		}
		return nil
	}
	var cmd tea.Cmd
	appModel.ComposeInput, cmd = appModel.ComposeInput.Update(keyMsg)
	return cmd
}

func sendToCore(appModel *models.AppModel, eb *eventbus.EventBus, event eventbus.UIEvent) bool {
	if err := eb.SendToCore(event); err != nil {
		appModel.Status = "Error sending event: " + err.Error()
		appModel.IsError = true
		return false
	}
	return true
}

func setFocus(appModel *models.AppModel, pane models.Pane) tea.Cmd {
	appModel.Focus = pane
	appModel.SearchInput.Blur()
	appModel.ComposeInput.Blur()

	switch pane {
	case models.PaneSearch:
		appModel.SearchInput.Focus()
		return textinput.Blink
	case models.PaneCompose:
		appModel.ComposeInput.Focus()
		return textinput.Blink
	}
	return nil
}

func moveCursor(cursor, delta, length int) int {
	if length == 0 {
		return 0
	}
	cursor += delta
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		appModel.Results = event.Results
		appModel.Selection = event.Selection
		appModel.Default = event.Default
		appModel.Steered = event.Steered
		appModel.Pending = event.Pending
		appModel.Settings = event.Settings
		appModel.Searching = event.Searching
		appModel.Loading = event.Processing || event.Searching

		restoreDraft(appModel, event)

		appModel.ResultCursor = moveCursor(appModel.ResultCursor, 0, len(appModel.Results))
		appModel.SelectionCursor = moveCursor(appModel.SelectionCursor, 0, len(appModel.Selection))

		appModel.IsError = event.Error != nil
		switch {
		case event.Error != nil:
			appModel.Status = apperr.Describe(event.Error)
		case event.Notice != "":
			appModel.Status = event.Notice
		case event.Processing:
			appModel.Status = "Waiting for replies"
		case event.Searching:
			appModel.Status = "Searching"
		default:
			appModel.Status = "Ready"
		}
	}

	return nil
}

// restoreDraft puts the text of a failed send back into the compose box once,
// unless the user has already started typing something else.
func restoreDraft(appModel *models.AppModel, event eventbus.StateUpdateEvent) {
	if event.DraftSeq <= appModel.DraftSeq {
		return
	}
	appModel.DraftSeq = event.DraftSeq
	if appModel.ComposeInput.Value() == "" {
		appModel.ComposeInput.SetValue(event.Draft)
	}
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.Loading {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}
