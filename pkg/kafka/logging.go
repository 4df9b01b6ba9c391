package kafka

import (
	"context"
	"fmt"
	"time"

	"paysim/pkg/logger"
)

// LoggingMiddleware logs every publish attempt with its outcome.
func LoggingMiddleware(log *logger.Logger, topic string) ProducerMiddleware {
	return func(ctx context.Context, msg Message, next func(ctx context.Context, msg Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		attrs := []any{
			"topic", topic,
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if err != nil {
			log.Error("Failed to publish message", append(attrs, logger.Err(err))...)
		} else {
			log.Debug("Published message", attrs...)
		}

		return err
	}
}

func formatArgs(msg string, args ...any) string {
	return fmt.Sprintf(msg, args...)
}
