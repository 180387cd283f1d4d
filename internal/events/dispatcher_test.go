package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/service-desk/internal/events"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var taken []events.Event
	dispatcher.Subscribe(events.EventRequestTaken, func(_ context.Context, event events.Event) error {
		taken = append(taken, event)
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventRequestTaken,
		RequestID: 1,
		ActorID:   3,
	}))
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventRequestPaid,
		RequestID: 1,
	}))

	require.Len(t, taken, 1)
	assert.Equal(t, int64(1), taken[0].RequestID)
	assert.Equal(t, int64(3), taken[0].ActorID)
}

func TestDispatcherContinuesPastHandlerError(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var reached bool
	dispatcher.Subscribe(events.EventRequestCreated, func(context.Context, events.Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(events.EventRequestCreated, func(context.Context, events.Event) error {
		reached = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventRequestCreated}))
	assert.True(t, reached)
}
