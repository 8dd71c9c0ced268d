package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSteer/internal/eventbus"
	"github.com/Rorical/RoriSteer/internal/update"
)

func TestListenWrapsCoreEvents(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	d := NewEventDispatcher(eb)
	defer d.Stop()

	require.NoError(t, eb.SendToUI(eventbus.StateUpdateEvent{Notice: "hi"}))

	msg := d.ListenForCoreEvents()()
	wrapped, ok := msg.(update.CoreEventMsg)
	require.True(t, ok)
	assert.Equal(t, "hi", wrapped.Event.(eventbus.StateUpdateEvent).Notice)
}

func TestListenStopsOnShutdown(t *testing.T) {
	eb := eventbus.NewEventBus()
	d := NewEventDispatcher(eb)

	d.Stop()
	assert.Nil(t, d.ListenForCoreEvents()())

	eb.Close()
	assert.Nil(t, NewEventDispatcher(eb).ListenForCoreEvents()())
}
