package simulator

import (
	"context"
	"fmt"
	"time"

	"paysim/pkg/kafka"
	"paysim/pkg/token"
)

const EventTypePaymentSimulated = "payment.simulated"

type SimulationEvent struct {
	ClientToken string    `json:"client_token_fingerprint"`
	Outcome     Outcome   `json:"outcome"`
	StatusCode  int       `json:"status_code"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaOutcomePublisher publishes one SimulationEvent per answered
// simulation, keyed by the client token fingerprint.
type KafkaOutcomePublisher struct {
	producer messagePublisher
	source   string
	now      func() time.Time
}

func NewKafkaOutcomePublisher(producer messagePublisher, source string) *KafkaOutcomePublisher {
	return &KafkaOutcomePublisher{
		producer: producer,
		source:   source,
		now:      time.Now,
	}
}

func (p *KafkaOutcomePublisher) PublishOutcome(ctx context.Context, clientToken string, result *Result) error {
	fingerprint := token.Fingerprint(clientToken)

	msg, err := kafka.NewMessage().
		WithKey(fingerprint).
		WithValue(SimulationEvent{
			ClientToken: fingerprint,
			Outcome:     result.Outcome,
			StatusCode:  result.StatusCode,
			OccurredAt:  p.now().UTC(),
		}).
		WithEventID("").
		WithEventType(EventTypePaymentSimulated).
		WithSource(p.source).
		Build()
	if err != nil {
		return fmt.Errorf("build simulation event: %w", err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish simulation event: %w", err)
	}
	return nil
}
