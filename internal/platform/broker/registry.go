package broker

import (
	"context"
	"log/slog"

	"scoutWorkspace/internal/modules/workspace/domain"
	"scoutWorkspace/internal/modules/workspace/infrastructure"
)

// StartActivityConsumer consumes the activity topic in the background and
// dispatches events through registry. done is closed when the consumer stops.
func StartActivityConsumer(
	ctx context.Context,
	registry *infrastructure.ActivityHandlerRegistry,
	brokers []string,
	groupID string,
	topic string,
) (done <-chan struct{}) {
	ch := make(chan struct{})
	if len(brokers) == 0 || topic == "" {
		// kafka.NewReader panics on an empty broker list.
		close(ch)
		return ch
	}
	go func() {
		defer close(ch)
		consumer := NewKafkaConsumer(brokers, groupID, topic)
		err := consumer.Consume(ctx, func(ctx context.Context, event domain.ActivityEvent) error {
			return registry.Dispatch(ctx, event)
		})
		if err != nil {
			slog.Error("kafka consumer stopped", slog.String("topic", topic), slog.Any("error", err))
		}
	}()
	return ch
}
