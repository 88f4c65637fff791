package port

import (
	"context"

	"scoutWorkspace/internal/modules/workspace/domain"
)

// SavedSearchRepository persists named criteria in the remote store.
type SavedSearchRepository interface {
	List(ctx context.Context, token, workspaceID string) ([]domain.SavedSearch, error)
	Create(ctx context.Context, token, workspaceID, name string, criteria domain.Criteria) (domain.SavedSearch, error)
	Delete(ctx context.Context, token, workspaceID, id string) error
}
