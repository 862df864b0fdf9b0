package events

import (
	"context"
	"encoding/json"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// LogNotifier writes each emitted event to the structured log.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(_ context.Context, event Event) error {
	n.Logger.Info().
		Str("event_id", event.ID.String()).
		Str("topic", event.Topic).
		Str("aggregate_id", event.AggregateID.String()).
		RawJSON("payload", event.Payload).
		Time("occurred_at", event.OccurredAt).
		Msg("domain_event")
	return nil
}

// MetricsNotifier counts emitted events per topic and discount activations
// by identifier.
type MetricsNotifier struct {
	Topics    *prometheus.CounterVec
	Discounts *prometheus.CounterVec
}

// Notify implements Notifier.
func (n MetricsNotifier) Notify(_ context.Context, event Event) error {
	if n.Topics != nil {
		n.Topics.WithLabelValues(event.Topic).Inc()
	}
	if n.Discounts != nil && event.Topic == TopicCartDiscountApplied {
		var payload struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(event.Payload, &payload); err == nil && payload.Code != "" {
			n.Discounts.WithLabelValues(payload.Code).Inc()
		}
	}
	return nil
}
