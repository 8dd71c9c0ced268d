package models

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

// Pane is the focused region of the dashboard.
type Pane int

const (
	PaneSearch Pane = iota
	PaneResults
	PaneSelection
	PaneSettings
	PaneCompose
	paneCount
)

func (p Pane) Next() Pane {
	return (p + 1) % paneCount
}

func (p Pane) Prev() Pane {
	return (p - 1 + paneCount) % paneCount
}

// AppModel represents the UI state - only local UI concerns plus the last
// snapshot pushed by the core.
type AppModel struct {
	Results   []Explanation
	Selection []SelectedFeature
	Default   []ChatTurn
	Steered   []ChatTurn
	Pending   []string // messages sent but not yet answered
	Settings  GenerationSettings

	SearchInput  textinput.Model
	ComposeInput textinput.Model
	Spinner      spinner.Model

	Focus           Pane
	ResultCursor    int
	SelectionCursor int
	SettingsCursor  int
	DraftSeq        uint64 // last failed send restored into the compose box

	Status      string
	IsError     bool
	Searching   bool
	Loading     bool
	LoadingDots int
	Width       int
	Height      int
	ModelID     string
	Ready       bool
}

func NewAppModel(modelID string, ready bool) AppModel {
	search := textinput.New()
	search.Placeholder = "Search features (min 3 characters)"
	search.CharLimit = 200
	search.Focus()

	compose := textinput.New()
	compose.Placeholder = "Your message"
	compose.CharLimit = 2000

	return AppModel{
		Results:      make([]Explanation, 0),
		Selection:    make([]SelectedFeature, 0),
		SearchInput:  search,
		ComposeInput: compose,
		Spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		Focus:        PaneSearch,
		Status:       "Ready",
		ModelID:      modelID,
		Ready:        ready,
	}
}
