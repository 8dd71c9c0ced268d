package core

import (
	"sync"

	"github.com/Rorical/RoriSteer/internal/models"
	"github.com/Rorical/RoriSteer/internal/selection"
	"github.com/Rorical/RoriSteer/internal/session"
)

// SessionState is the explicit application state for one dashboard session.
// It owns the selection and chat stores; nothing outside the core mutates it.
type SessionState struct {
	mu              sync.RWMutex
	selection       *selection.Store
	transcripts     *session.Transcripts
	settings        models.GenerationSettings
	initialStrength int
	results         []models.Explanation
	searching       int
	pending         []pendingSend
	notice          string
	lastError       error
	nextSendID      uint64
	draft           string
	draftSeq        uint64
}

type pendingSend struct {
	id      uint64
	message string
}

func NewSessionState(settings models.GenerationSettings, initialStrength int) *SessionState {
	return &SessionState{
		selection:       selection.NewStore(),
		transcripts:     session.NewTranscripts(),
		settings:        settings.Normalize(),
		initialStrength: models.ClampStrength(initialStrength),
		results:         make([]models.Explanation, 0),
	}
}

func (s *SessionState) Selection() *selection.Store {
	return s.selection
}

func (s *SessionState) Transcripts() *session.Transcripts {
	return s.transcripts
}

func (s *SessionState) InitialStrength() int {
	return s.initialStrength
}

func (s *SessionState) Settings() models.GenerationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// StepSetting moves one field of the stored settings and returns the result.
func (s *SessionState) StepSetting(field models.SettingField, dir int) models.GenerationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = s.settings.Step(field, dir)
	return s.settings
}

func (s *SessionState) StartSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searching++
	s.lastError = nil
	s.notice = ""
}

// FinishSearch replaces the result list on success; on failure the previous
// results stay visible.
func (s *SessionState) FinishSearch(results []models.Explanation, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searching > 0 {
		s.searching--
	}
	if err != nil {
		s.lastError = err
		return
	}
	s.results = results
	s.lastError = nil
	if len(results) == 0 {
		s.notice = "No matches"
	}
}

// StartSend registers an in-flight message and returns its id.
func (s *SessionState) StartSend(message string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSendID++
	s.pending = append(s.pending, pendingSend{id: s.nextSendID, message: message})
	s.lastError = nil
	s.notice = ""
	return s.nextSendID
}

// FinishSend resolves an in-flight message. Only a successful send touches the
// transcripts, and then both tracks at once.
func (s *SessionState) FinishSend(id uint64, defaultText, steeredText string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var message string
	kept := make([]pendingSend, 0, len(s.pending))
	for _, p := range s.pending {
		if p.id == id {
			message = p.message
			continue
		}
		kept = append(kept, p)
	}
	s.pending = kept

	if err != nil {
		s.lastError = err
		s.draft = message
		s.draftSeq++
		return
	}
	s.transcripts.AppendExchange(message, defaultText, steeredText)
}

func (s *SessionState) SetNotice(notice string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = notice
	s.lastError = nil
}

func (s *SessionState) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err
}

func (s *SessionState) IsProcessing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pending) > 0
}

// Snapshot is a consistent copy of everything the UI renders.
type Snapshot struct {
	Results    []models.Explanation
	Selection  []models.SelectedFeature
	Default    []models.ChatTurn
	Steered    []models.ChatTurn
	Pending    []string
	Settings   models.GenerationSettings
	Searching  bool
	Processing bool
	Notice     string
	Error      error
	Draft      string
	DraftSeq   uint64
}

func (s *SessionState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.Explanation, len(s.results))
	copy(results, s.results)
	pending := make([]string, 0, len(s.pending))
	for _, p := range s.pending {
		pending = append(pending, p.message)
	}

	return Snapshot{
		Results:    results,
		Selection:  s.selection.List(),
		Default:    s.transcripts.Transcript(models.TrackDefault),
		Steered:    s.transcripts.Transcript(models.TrackSteered),
		Pending:    pending,
		Settings:   s.settings,
		Searching:  s.searching > 0,
		Processing: len(s.pending) > 0,
		Notice:     s.notice,
		Error:      s.lastError,
		Draft:      s.draft,
		DraftSeq:   s.draftSeq,
	}
}
