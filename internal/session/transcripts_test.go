package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSteer/internal/models"
)

func TestAppendTurnTargetsOneTrack(t *testing.T) {
	tr := NewTranscripts()
	require.NoError(t, tr.AppendTurn(models.TrackSteered, models.SpeakerUser, "hi"))
	require.NoError(t, tr.AppendTurn(models.TrackSteered, models.SpeakerModel, "hello"))

	assert.Empty(t, tr.Transcript(models.TrackDefault))
	assert.Equal(t, []models.ChatTurn{
		{Speaker: models.SpeakerUser, Text: "hi"},
		{Speaker: models.SpeakerModel, Text: "hello"},
	}, tr.Transcript(models.TrackSteered))
}

func TestAppendTurnRejectsUnknownValues(t *testing.T) {
	tr := NewTranscripts()
	assert.Error(t, tr.AppendTurn("both", models.SpeakerUser, "x"))
	assert.Error(t, tr.AppendTurn(models.TrackDefault, "system", "x"))
	assert.Zero(t, tr.Len(models.TrackDefault))
}

func TestAppendExchangeKeepsTracksPaired(t *testing.T) {
	tr := NewTranscripts()
	tr.AppendExchange("Hello", "plain reply", "steered reply")
	tr.AppendExchange("Again", "No response", "ok")

	def := tr.Transcript(models.TrackDefault)
	steered := tr.Transcript(models.TrackSteered)
	require.Len(t, def, 4)
	require.Len(t, steered, 4)

	for i := range def {
		assert.Equal(t, def[i].Speaker, steered[i].Speaker)
	}
	assert.Equal(t, "Again", def[2].Text)
	assert.Equal(t, "Again", steered[2].Text)
	assert.Equal(t, "No response", def[3].Text)
	assert.Equal(t, "ok", steered[3].Text)
}

func TestTranscriptIsCopy(t *testing.T) {
	tr := NewTranscripts()
	tr.AppendExchange("a", "b", "c")

	snap := tr.Transcript(models.TrackDefault)
	snap[0].Text = "mutated"
	assert.Equal(t, "a", tr.Transcript(models.TrackDefault)[0].Text)
}

func TestClear(t *testing.T) {
	tr := NewTranscripts()
	tr.AppendExchange("a", "b", "c")
	tr.Clear()
	assert.Zero(t, tr.Len(models.TrackDefault))
	assert.Zero(t, tr.Len(models.TrackSteered))
}
