package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/andriwidy/backend-troli/internal/events"
)

type captureNotifier struct {
	events []events.Event
	err    error
}

func (c *captureNotifier) Notify(_ context.Context, event events.Event) error {
	c.events = append(c.events, event)
	return c.err
}

func TestEmitFansOut(t *testing.T) {
	first := &captureNotifier{}
	second := &captureNotifier{}
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	bus := events.Bus{
		Notifiers: []events.Notifier{first, second},
		Now:       func() time.Time { return now },
	}

	aggregate := uuid.New()
	event, err := bus.Emit(context.Background(), events.TopicCartItemAdded, aggregate, map[string]any{"sku": "123456", "qty": 2})
	require.NoError(t, err)
	require.Equal(t, events.TopicCartItemAdded, event.Topic)
	require.Equal(t, aggregate, event.AggregateID)
	require.Equal(t, now, event.OccurredAt)
	require.JSONEq(t, `{"sku":"123456","qty":2}`, string(event.Payload))

	require.Len(t, first.events, 1)
	require.Len(t, second.events, 1)
	require.Equal(t, event.ID, first.events[0].ID)
}

func TestEmitNotifierErrorDoesNotStopFanout(t *testing.T) {
	failing := &captureNotifier{err: errors.New("sink unavailable")}
	healthy := &captureNotifier{}
	bus := events.Bus{Notifiers: []events.Notifier{failing, healthy}}

	_, err := bus.Emit(context.Background(), events.TopicCartEmptied, uuid.New(), nil)
	require.Error(t, err)
	require.Len(t, healthy.events, 1)
}

func TestEmitRejectsEmptyTopic(t *testing.T) {
	bus := events.Bus{}
	_, err := bus.Emit(context.Background(), "  ", uuid.New(), nil)
	require.Error(t, err)
}

func TestEmitRejectsNilAggregate(t *testing.T) {
	bus := events.Bus{}
	_, err := bus.Emit(context.Background(), events.TopicCartEmptied, uuid.Nil, nil)
	require.Error(t, err)
}

func TestEmitRejectsInvalidJSONPayload(t *testing.T) {
	bus := events.Bus{}
	_, err := bus.Emit(context.Background(), events.TopicCartEmptied, uuid.New(), []byte("{broken"))
	require.Error(t, err)
}

func TestEmitNilPayloadDefaultsToEmptyObject(t *testing.T) {
	bus := events.Bus{}
	event, err := bus.Emit(context.Background(), events.TopicCartEmptied, uuid.New(), nil)
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(event.Payload))
}
