package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/domain"
)

// CatalogHTTPClient implements port.CatalogFetcher against the players API.
type CatalogHTTPClient struct {
	rest *RESTClient
}

var _ port.CatalogFetcher = (*CatalogHTTPClient)(nil)

func NewCatalogHTTPClient(rest *RESTClient) *CatalogHTTPClient {
	if rest == nil {
		rest = NewRESTClient("", 0, nil)
	}
	return &CatalogHTTPClient{rest: rest}
}

// NewCatalogHTTPClientFromURL is a shortcut for tools that only need the catalog.
func NewCatalogHTTPClientFromURL(baseURL string, timeout time.Duration, client *http.Client) *CatalogHTTPClient {
	return NewCatalogHTTPClient(NewRESTClient(baseURL, timeout, client))
}

func (c *CatalogHTTPClient) Search(ctx context.Context, token string, query domain.CatalogQuery) (domain.CatalogPage, error) {
	listing := query.Listing()
	path, ok := catalogPaths[listing]
	if !ok {
		return domain.CatalogPage{}, fmt.Errorf("catalog listing %q has no endpoint", listing)
	}

	values := query.Values()
	if listing == domain.ListingTopProspects {
		values = url.Values{"limit": values["limit"], "offset": values["offset"]}
	}

	slog.Debug("catalog fetch start", slog.String("listing", string(listing)), slog.String("params", values.Encode()))
	data, err := c.rest.call(ctx, token, "catalog", http.MethodGet, path, values, nil)
	if err != nil {
		return domain.CatalogPage{}, err
	}
	return decodePlayers(data)
}
