package port

import (
	"context"

	"scoutWorkspace/internal/modules/workspace/domain"
)

// Broadcaster sends messages to connected websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// ActivityPublisher forwards workspace activity to the event bus.
type ActivityPublisher interface {
	Publish(ctx context.Context, event domain.ActivityEvent) error
}
