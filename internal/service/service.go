package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Skotchmaster/travel_compensation/internal/logging"
	"github.com/Skotchmaster/travel_compensation/internal/mykafka"
)

const publishTimeout = 5 * time.Second

// EventObserver is told the outcome of every publish.
type EventObserver interface {
	EventPublished(topic string, err error)
}

// Events publishes domain events. A failed publish is logged and never
// fails the caller.
type Events struct {
	Publisher mykafka.Publisher
	Observer  EventObserver
}

func (e Events) publish(ctx context.Context, topic, key string, event any) {
	if e.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := e.Publisher.PublishEvent(ctx, topic, key, event)
	if e.Observer != nil {
		e.Observer.EventPublished(topic, err)
	}
	if err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed",
			slog.String("topic", topic),
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}
