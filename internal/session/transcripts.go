package session

import (
	"fmt"
	"sync"

	"github.com/Rorical/RoriSteer/internal/models"
)

// Transcripts holds the default and steered conversations. Both are
// append-only and stay aligned by index.
type Transcripts struct {
	mu      sync.RWMutex
	history map[models.Track][]models.ChatTurn
}

func NewTranscripts() *Transcripts {
	return &Transcripts{
		history: map[models.Track][]models.ChatTurn{
			models.TrackDefault: make([]models.ChatTurn, 0),
			models.TrackSteered: make([]models.ChatTurn, 0),
		},
	}
}

// AppendTurn adds one turn to a single track.
func (t *Transcripts) AppendTurn(track models.Track, speaker models.Speaker, text string) error {
	if !track.Valid() {
		return fmt.Errorf("unknown track %q", track)
	}
	if speaker != models.SpeakerUser && speaker != models.SpeakerModel {
		return fmt.Errorf("unknown speaker %q", speaker)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.history[track] = append(t.history[track], models.ChatTurn{Speaker: speaker, Text: text})
	return nil
}

// AppendExchange records a completed send on both tracks at once: the user
// turn followed by each track's reply.
func (t *Transcripts) AppendExchange(userText, defaultReply, steeredReply string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	user := models.ChatTurn{Speaker: models.SpeakerUser, Text: userText}
	t.history[models.TrackDefault] = append(t.history[models.TrackDefault],
		user, models.ChatTurn{Speaker: models.SpeakerModel, Text: defaultReply})
	t.history[models.TrackSteered] = append(t.history[models.TrackSteered],
		user, models.ChatTurn{Speaker: models.SpeakerModel, Text: steeredReply})
}

// Transcript returns a copy of the turns on track.
func (t *Transcripts) Transcript(track models.Track) []models.ChatTurn {
	t.mu.RLock()
	defer t.mu.RUnlock()

	turns := make([]models.ChatTurn, len(t.history[track]))
	copy(turns, t.history[track])
	return turns
}

func (t *Transcripts) Len(track models.Track) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.history[track])
}

// Clear empties both tracks together.
func (t *Transcripts) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for track := range t.history {
		t.history[track] = make([]models.ChatTurn, 0)
	}
}
