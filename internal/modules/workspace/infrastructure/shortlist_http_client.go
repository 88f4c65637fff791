package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/domain"
	"scoutWorkspace/internal/shared/normalization"
)

const shortlistStatusSuccess = "success"

// ShortlistHTTPClient implements port.ShortlistStore against /watchlist.
type ShortlistHTTPClient struct {
	rest *RESTClient
}

var _ port.ShortlistStore = (*ShortlistHTTPClient)(nil)

func NewShortlistHTTPClient(rest *RESTClient) *ShortlistHTTPClient {
	if rest == nil {
		rest = NewRESTClient("", 0, nil)
	}
	return &ShortlistHTTPClient{rest: rest}
}

type shortlistMutationResponse struct {
	Status    string         `json:"status"`
	Watchlist map[string]any `json:"watchlist"`
}

func (c *ShortlistHTTPClient) Fetch(ctx context.Context, token string) (domain.Shortlists, error) {
	data, err := c.rest.call(ctx, token, "shortlists", http.MethodGet, watchlistPath, nil, nil)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode shortlists: %w", err)
	}
	return shortlistsFromPayload(raw), nil
}

func (c *ShortlistHTTPClient) Add(ctx context.Context, token, category, playerID string) (domain.Shortlists, error) {
	path, err := resourcePath(watchlistPath, category, playerID)
	if err != nil {
		return nil, err
	}
	return c.mutate(ctx, token, http.MethodPost, path, nil)
}

func (c *ShortlistHTTPClient) Remove(ctx context.Context, token, category, playerID string) (domain.Shortlists, error) {
	path, err := resourcePath(watchlistPath, category, playerID)
	if err != nil {
		return nil, err
	}
	return c.mutate(ctx, token, http.MethodDelete, path, nil)
}

func (c *ShortlistHTTPClient) CreateCategory(ctx context.Context, token, name string) (domain.Shortlists, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, port.ErrRemoteNotFound
	}
	return c.mutate(ctx, token, http.MethodPost, categoryPath, url.Values{"name": {trimmed}})
}

func (c *ShortlistHTTPClient) DeleteCategory(ctx context.Context, token, name string) (domain.Shortlists, error) {
	path, err := resourcePath(categoryPath, name)
	if err != nil {
		return nil, err
	}
	return c.mutate(ctx, token, http.MethodDelete, path, nil)
}

func (c *ShortlistHTTPClient) mutate(ctx context.Context, token, method, path string, query url.Values) (domain.Shortlists, error) {
	data, err := c.rest.call(ctx, token, "shortlists", method, path, query, nil)
	if err != nil {
		return nil, err
	}
	var response shortlistMutationResponse
	if err := sonic.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("decode shortlist mutation: %w", err)
	}
	if !strings.EqualFold(strings.TrimSpace(response.Status), shortlistStatusSuccess) || response.Watchlist == nil {
		slog.Warn("shortlist mutation not confirmed", slog.String("method", method), slog.String("path", path), slog.String("status", response.Status))
		return nil, port.ErrShortlistRejected
	}
	return shortlistsFromPayload(response.Watchlist), nil
}

// shortlistsFromPayload tolerates numeric ids and null categories.
func shortlistsFromPayload(raw map[string]any) domain.Shortlists {
	lists := make(map[string][]string, len(raw))
	for category, value := range raw {
		items, _ := value.([]any)
		ids := make([]string, 0, len(items))
		for _, item := range items {
			if id := normalization.AsString(item); id != "" {
				ids = append(ids, id)
			}
		}
		lists[category] = ids
	}
	return domain.ShortlistsFromLists(lists)
}
