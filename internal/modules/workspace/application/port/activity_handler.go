package port

import (
	"context"

	"scoutWorkspace/internal/modules/workspace/domain"
)

// ActivityHandler reacts to activity events consumed from the event bus.
type ActivityHandler interface {
	Types() []domain.ActivityType
	Handle(ctx context.Context, event domain.ActivityEvent) error
}
