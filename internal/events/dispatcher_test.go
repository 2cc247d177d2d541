package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishInvokesSubscribersInOrder(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var calls []string
	dispatcher.Subscribe(EventAppointmentBooked, func(_ context.Context, _ Event) error {
		calls = append(calls, "first")
		return nil
	})
	dispatcher.Subscribe(EventAppointmentBooked, func(_ context.Context, _ Event) error {
		calls = append(calls, "second")
		return nil
	})
	dispatcher.Subscribe(EventConsentSigned, func(_ context.Context, _ Event) error {
		calls = append(calls, "other-type")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventAppointmentBooked, SubjectID: "a1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPublishContinuesAndLogsFailedHandler(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	dispatcher := NewInMemoryDispatcher(zap.New(core))

	var secondRan bool
	dispatcher.Subscribe(EventAppointmentBooked, func(_ context.Context, _ Event) error {
		return errors.New("smtp unreachable")
	})
	dispatcher.Subscribe(EventAppointmentBooked, func(_ context.Context, _ Event) error {
		secondRan = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventAppointmentBooked, SubjectID: "a1"})
	require.NoError(t, err)
	assert.True(t, secondRan)

	entries := logs.FilterMessage("event handler failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "appointment_booked", entries[0].ContextMap()["event_type"])
}
