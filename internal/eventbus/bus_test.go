package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendToCoreDelivers(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	require.NoError(t, eb.SendToCore(SearchEvent{Query: "cats"}))
	got := <-eb.UIToCore()
	assert.Equal(t, SearchEvent{Query: "cats"}, got)
}

func TestFullChannelTripsBreaker(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(e EventBusError) { reported = append(reported, e) })

	for i := 0; i < cap(eb.coreToUI); i++ {
		require.NoError(t, eb.SendToUI(StateUpdateEvent{}))
	}
	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, eb.SendToUI(StateUpdateEvent{}), ErrChannelFull)
	}

	assert.Equal(t, CircuitOpen, eb.GetCircuitBreakerState())
	assert.ErrorIs(t, eb.SendToCore(ClearTranscriptsEvent{}), ErrCircuitOpen)
	assert.Len(t, reported, 6)
	assert.Equal(t, "SendToUI", reported[0].Operation)
}

func TestBreakerHalfOpensAfterTimeout(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	assert.False(t, cb.IsOpen())
	cb.RecordFailure()
	assert.True(t, cb.IsOpen())

	now = now.Add(2 * time.Minute)
	assert.False(t, cb.IsOpen())
	assert.Equal(t, CircuitHalfOpen, cb.State())

	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestSendAfterClose(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()

	assert.ErrorIs(t, eb.SendToCore(SendMessageEvent{Message: "hi"}), ErrClosed)
	assert.ErrorIs(t, eb.SendToUI(StateUpdateEvent{}), ErrClosed)

	_, ok := <-eb.CoreToUI()
	assert.False(t, ok)
}
