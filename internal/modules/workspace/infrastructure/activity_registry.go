package infrastructure

import (
	"context"
	"sync"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/domain"
)

// ActivityHandlerRegistry routes consumed activity events by type.
type ActivityHandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[domain.ActivityType][]port.ActivityHandler
}

func NewActivityHandlerRegistry() *ActivityHandlerRegistry {
	return &ActivityHandlerRegistry{handlers: make(map[domain.ActivityType][]port.ActivityHandler)}
}

func (r *ActivityHandlerRegistry) Register(h port.ActivityHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, kind := range h.Types() {
		r.handlers[kind] = append(r.handlers[kind], h)
	}
}

// Dispatch runs every handler registered for the event's type and returns
// the first error.
func (r *ActivityHandlerRegistry) Dispatch(ctx context.Context, event domain.ActivityEvent) error {
	r.mu.RLock()
	handlers := append([]port.ActivityHandler(nil), r.handlers[event.Type]...)
	r.mu.RUnlock()
	var first error
	for _, h := range handlers {
		if err := h.Handle(ctx, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}
