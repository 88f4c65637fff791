package usecase

import (
	"context"
	"errors"
	"log/slog"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/domain"
)

// ActivitySync refreshes the remote-backed state of every other session in
// the same workspace when one session mutates it.
type ActivitySync struct {
	registry *WorkspaceRegistry
	logger   *slog.Logger
}

var _ port.ActivityHandler = (*ActivitySync)(nil)

func NewActivitySync(registry *WorkspaceRegistry, logger *slog.Logger) *ActivitySync {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivitySync{registry: registry, logger: logger}
}

func (s *ActivitySync) Types() []domain.ActivityType {
	return []domain.ActivityType{
		domain.ActivityShortlistUpdated,
		domain.ActivitySearchSaved,
		domain.ActivitySearchDeleted,
	}
}

func (s *ActivitySync) Handle(ctx context.Context, event domain.ActivityEvent) error {
	if s.registry == nil || event.WorkspaceID == "" {
		return nil
	}
	var errs []error
	for _, ws := range s.registry.ForWorkspace(event.WorkspaceID) {
		if ws.Session().SessionKey == event.SessionKey {
			continue
		}
		var err error
		switch event.Type {
		case domain.ActivityShortlistUpdated:
			err = ws.SyncShortlists(ctx)
		case domain.ActivitySearchSaved, domain.ActivitySearchDeleted:
			err = ws.SyncSavedSearches(ctx)
		default:
			continue
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		s.logger.Warn("activity sync incomplete",
			slog.String("type", string(event.Type)),
			slog.String("workspaceId", event.WorkspaceID),
			slog.Int("failures", len(errs)),
		)
	}
	return errors.Join(errs...)
}
