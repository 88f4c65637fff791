package port

import (
	"context"

	"scoutWorkspace/internal/modules/workspace/domain"
)

// CatalogFetcher retrieves one page of player summaries from the remote catalog.
// Results preserve the remote ordering and report how many rows the remote sent.
type CatalogFetcher interface {
	Search(ctx context.Context, token string, query domain.CatalogQuery) (domain.CatalogPage, error)
}
