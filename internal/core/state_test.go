package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSteer/internal/apperr"
	"github.com/Rorical/RoriSteer/internal/models"
)

func TestFinishSendFailureLeavesTranscriptsAlone(t *testing.T) {
	s := NewSessionState(models.DefaultGenerationSettings(), 40)

	id := s.StartSend("Hello")
	assert.True(t, s.IsProcessing())
	assert.Equal(t, []string{"Hello"}, s.Snapshot().Pending)

	s.FinishSend(id, "", "", &apperr.UnavailableError{Service: apperr.ServiceSteer, Message: "down"})

	snap := s.Snapshot()
	assert.False(t, snap.Processing)
	assert.Empty(t, snap.Pending)
	assert.Empty(t, snap.Default)
	assert.Empty(t, snap.Steered)
	assert.True(t, apperr.IsUnavailable(snap.Error, apperr.ServiceSteer))
	assert.Equal(t, "Hello", snap.Draft)
	assert.Equal(t, uint64(1), snap.DraftSeq)
}

func TestFinishSendOutOfOrder(t *testing.T) {
	s := NewSessionState(models.DefaultGenerationSettings(), 40)

	first := s.StartSend("first")
	second := s.StartSend("second")
	s.FinishSend(second, "d2", "s2", nil)
	s.FinishSend(first, "d1", "s1", nil)

	def := s.Snapshot().Default
	require.Len(t, def, 4)
	assert.Equal(t, "second", def[0].Text)
	assert.Equal(t, "d2", def[1].Text)
	assert.Equal(t, "first", def[2].Text)
	assert.Equal(t, "d1", def[3].Text)
}

func TestFinishSearchKeepsOldResultsOnError(t *testing.T) {
	s := NewSessionState(models.DefaultGenerationSettings(), 40)
	old := []models.Explanation{{Description: "cats", Layer: "l", Index: 1}}

	s.StartSearch()
	s.FinishSearch(old, nil)
	s.StartSearch()
	assert.True(t, s.Snapshot().Searching)
	s.FinishSearch(nil, errors.New("boom"))

	snap := s.Snapshot()
	assert.False(t, snap.Searching)
	assert.Equal(t, old, snap.Results)
	assert.EqualError(t, snap.Error, "boom")
}

func TestFinishSearchNoMatchesNotice(t *testing.T) {
	s := NewSessionState(models.DefaultGenerationSettings(), 40)
	s.StartSearch()
	s.FinishSearch([]models.Explanation{}, nil)

	snap := s.Snapshot()
	assert.Empty(t, snap.Results)
	assert.NoError(t, snap.Error)
	assert.Equal(t, "No matches", snap.Notice)
}

func TestNewSessionStateNormalizes(t *testing.T) {
	s := NewSessionState(models.GenerationSettings{Temperature: 5}, -300)
	assert.Equal(t, 1.0, s.Settings().Temperature)
	assert.Equal(t, -100, s.InitialStrength())
}
