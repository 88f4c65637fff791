package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/domain"
	"scoutWorkspace/internal/shared/normalization"
)

// SavedSearchHTTPClient implements port.SavedSearchRepository against /scouting/searches.
type SavedSearchHTTPClient struct {
	rest *RESTClient
}

var _ port.SavedSearchRepository = (*SavedSearchHTTPClient)(nil)

func NewSavedSearchHTTPClient(rest *RESTClient) *SavedSearchHTTPClient {
	if rest == nil {
		rest = NewRESTClient("", 0, nil)
	}
	return &SavedSearchHTTPClient{rest: rest}
}

type savedSearchWire struct {
	ID        any             `json:"id"`
	Name      string          `json:"name"`
	Criteria  domain.Criteria `json:"criteria"`
	Date      string          `json:"date"`
	CreatedAt string          `json:"createdAt"`
}

func (w savedSearchWire) toDomain() domain.SavedSearch {
	created := w.CreatedAt
	if strings.TrimSpace(created) == "" {
		created = w.Date
	}
	return domain.SavedSearch{
		ID:        normalization.AsString(w.ID),
		Name:      strings.TrimSpace(w.Name),
		Criteria:  w.Criteria.Normalize(),
		CreatedAt: domain.ParseSavedSearchDate(created),
	}
}

type savedSearchCreateRequest struct {
	Name     string          `json:"name"`
	Criteria domain.Criteria `json:"criteria"`
}

func workspaceQuery(workspaceID string) url.Values {
	trimmed := strings.TrimSpace(workspaceID)
	if trimmed == "" {
		return nil
	}
	return url.Values{"workspace": {trimmed}}
}

func (c *SavedSearchHTTPClient) List(ctx context.Context, token, workspaceID string) ([]domain.SavedSearch, error) {
	data, err := c.rest.call(ctx, token, "saved searches", http.MethodGet, savedSearchesPath, workspaceQuery(workspaceID), nil)
	if err != nil {
		return nil, err
	}
	var wire []savedSearchWire
	if err := sonic.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode saved searches: %w", err)
	}
	out := make([]domain.SavedSearch, 0, len(wire))
	for _, entry := range wire {
		search := entry.toDomain()
		if search.ID == "" {
			continue
		}
		out = append(out, search)
	}
	return out, nil
}

func (c *SavedSearchHTTPClient) Create(ctx context.Context, token, workspaceID, name string, criteria domain.Criteria) (domain.SavedSearch, error) {
	payload := savedSearchCreateRequest{Name: name, Criteria: criteria}
	data, err := c.rest.call(ctx, token, "saved searches", http.MethodPost, savedSearchesPath, workspaceQuery(workspaceID), payload)
	if err != nil {
		return domain.SavedSearch{}, err
	}
	var wire savedSearchWire
	if err := sonic.Unmarshal(data, &wire); err != nil {
		return domain.SavedSearch{}, fmt.Errorf("decode saved search: %w", err)
	}
	entry := wire.toDomain()
	if entry.ID == "" {
		return domain.SavedSearch{}, fmt.Errorf("decode saved search: response without id")
	}
	return entry, nil
}

func (c *SavedSearchHTTPClient) Delete(ctx context.Context, token, workspaceID, id string) error {
	path, err := resourcePath(savedSearchesPath, id)
	if err != nil {
		return err
	}
	data, err := c.rest.call(ctx, token, "saved searches", http.MethodDelete, path, workspaceQuery(workspaceID), nil)
	if err != nil {
		return err
	}
	var ack struct {
		OK *bool `json:"ok"`
	}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := sonic.Unmarshal(data, &ack); err != nil {
			return fmt.Errorf("decode saved search delete: %w", err)
		}
	}
	if ack.OK != nil && !*ack.OK {
		return port.ErrRemoteNotFound
	}
	return nil
}
