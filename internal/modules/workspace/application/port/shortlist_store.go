package port

import (
	"context"

	"scoutWorkspace/internal/modules/workspace/domain"
)

// ShortlistStore is the authoritative shortlist mapping. Every mutation
// returns the complete mapping after the change.
type ShortlistStore interface {
	Fetch(ctx context.Context, token string) (domain.Shortlists, error)
	Add(ctx context.Context, token, category, playerID string) (domain.Shortlists, error)
	Remove(ctx context.Context, token, category, playerID string) (domain.Shortlists, error)
	CreateCategory(ctx context.Context, token, name string) (domain.Shortlists, error)
	DeleteCategory(ctx context.Context, token, name string) (domain.Shortlists, error)
}
