package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishDispatchesToSubscribers(t *testing.T) {
	bus := NewEventBus()
	var received []Event
	bus.Subscribe(DatasetCreatedType, func(e Event) error {
		received = append(received, e)
		return nil
	})
	bus.Subscribe(DatasetCreatedType, func(e Event) error {
		received = append(received, e)
		return nil
	})

	event := NewEvent(context.Background(), DatasetCreatedType, DatasetCreated{Uid: "abc", Name: "commits", Observations: 3})
	err := bus.Publish(event)

	assert.NoError(t, err)
	assert.Len(t, received, 2)
	assert.Equal(t, "abc", received[0].Data.(DatasetCreated).Uid)
}

func TestPublishSkipsOtherEventTypes(t *testing.T) {
	bus := NewEventBus()
	called := false
	bus.Subscribe(DatasetDeletedType, func(Event) error {
		called = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), DatasetCreatedType, DatasetCreated{Uid: "abc"}))

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestPublishContinuesPastHandlerErrors(t *testing.T) {
	bus := NewEventBus()
	var calls int
	bus.Subscribe(EventDatesReplacedType, func(Event) error {
		calls++
		return errors.New("boom")
	})
	bus.Subscribe(EventDatesReplacedType, func(Event) error {
		calls++
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), EventDatesReplacedType, EventDatesReplaced{Uid: "abc"}))

	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestPublishStopsOnCancelledContext(t *testing.T) {
	bus := NewEventBus()
	called := false
	bus.Subscribe(DatasetCreatedType, func(Event) error {
		called = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := bus.Publish(NewEvent(ctx, DatasetCreatedType, DatasetCreated{Uid: "abc"}))

	assert.Error(t, err)
	assert.False(t, called)
}
