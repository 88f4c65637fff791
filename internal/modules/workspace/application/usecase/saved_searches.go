package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/domain"
)

const listReadAttempts = 2

// SavedSearchStore is a read-through cache over the remote saved-search list,
// most recent first. A list fetched before a save or delete it did not
// observe is dropped.
type SavedSearchStore struct {
	repo   port.SavedSearchRepository
	logger *slog.Logger
	group  singleflight.Group

	mu      sync.RWMutex
	loaded  bool
	entries []domain.SavedSearch
	gate    versionGate
}

func NewSavedSearchStore(repo port.SavedSearchRepository, logger *slog.Logger) *SavedSearchStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SavedSearchStore{repo: repo, logger: logger}
}

// List returns the cached list, loading it from the remote store on first use.
func (s *SavedSearchStore) List(ctx context.Context, token, workspaceID string) ([]domain.SavedSearch, error) {
	s.mu.RLock()
	if s.loaded {
		out := cloneSavedSearches(s.entries)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()
	return s.load(ctx, token, workspaceID)
}

// Refresh reloads the list from the remote store.
func (s *SavedSearchStore) Refresh(ctx context.Context, token, workspaceID string) ([]domain.SavedSearch, error) {
	return s.load(ctx, token, workspaceID)
}

func (s *SavedSearchStore) load(ctx context.Context, token, workspaceID string) ([]domain.SavedSearch, error) {
	value, err, _ := s.group.Do("list:"+workspaceID, func() (any, error) {
		for attempt := 1; ; attempt++ {
			entries, current, err := s.fetchList(ctx, token, workspaceID)
			if err != nil {
				return nil, err
			}
			if current || attempt == listReadAttempts {
				return entries, nil
			}
			s.logger.Debug("saved searches list dropped after newer change",
				slog.String("workspaceId", workspaceID),
				slog.Int("attempt", attempt),
			)
		}
	})
	if err != nil {
		s.logger.Error("saved searches load failed", slog.Any("error", err))
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	return cloneSavedSearches(value.([]domain.SavedSearch)), nil
}

// fetchList reads the remote list and adopts it unless a save or delete was
// issued meanwhile. current is false when the read was dropped; entries is then
// the cached list.
func (s *SavedSearchStore) fetchList(ctx context.Context, token, workspaceID string) (entries []domain.SavedSearch, current bool, err error) {
	s.mu.Lock()
	mark := s.gate.beginRead()
	s.mu.Unlock()

	remote, err := s.repo.List(ctx, token, workspaceID)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gate.readCurrent(mark) {
		return cloneSavedSearches(s.entries), false, nil
	}
	s.entries = cloneSavedSearches(remote)
	s.loaded = true
	return remote, true, nil
}

// Save stores criteria under name and prepends the confirmed entry to the
// cached list. Blank names are rejected before any remote call.
func (s *SavedSearchStore) Save(ctx context.Context, token, workspaceID, name string, criteria domain.Criteria) (domain.SavedSearch, error) {
	cleanName := domain.NormalizeSearchName(name)
	if cleanName == "" {
		s.logger.Warn("saved search rejected", slog.String("reason", ErrEmptySearchName.Error()))
		return domain.SavedSearch{}, ErrEmptySearchName
	}

	s.mu.Lock()
	ticket := s.gate.beginMutation()
	s.mu.Unlock()

	entry, err := s.repo.Create(ctx, token, workspaceID, cleanName, criteria.Normalize())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate.finishMutation(ticket, err == nil)
	if err != nil {
		s.logger.Error("saved search create failed", slog.String("name", cleanName), slog.Any("error", err))
		return domain.SavedSearch{}, fmt.Errorf("save search %q: %w", cleanName, err)
	}
	s.entries = domain.PrependSavedSearch(s.entries, entry)
	return entry, nil
}

// Load returns the criteria stored in entry. It does not fetch anything.
func (s *SavedSearchStore) Load(entry domain.SavedSearch) domain.Criteria {
	return entry.Criteria.Normalize()
}

// Find looks an entry up in the cached list.
func (s *SavedSearchStore) Find(id string) (domain.SavedSearch, bool) {
	id = strings.TrimSpace(id)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return domain.SavedSearch{}, false
}

// Delete removes the entry remotely and drops it from the cache once confirmed.
func (s *SavedSearchStore) Delete(ctx context.Context, token, workspaceID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrSavedSearchNotFound
	}
	s.mu.Lock()
	ticket := s.gate.beginMutation()
	s.mu.Unlock()

	err := s.repo.Delete(ctx, token, workspaceID, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate.finishMutation(ticket, err == nil)
	if err != nil {
		s.logger.Error("saved search delete failed", slog.String("id", id), slog.Any("error", err))
		return fmt.Errorf("delete saved search %s: %w", id, err)
	}
	s.entries = domain.RemoveSavedSearch(s.entries, id)
	return nil
}

// Entries returns the cached list without touching the remote store.
func (s *SavedSearchStore) Entries() []domain.SavedSearch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSavedSearches(s.entries)
}

func cloneSavedSearches(in []domain.SavedSearch) []domain.SavedSearch {
	out := make([]domain.SavedSearch, len(in))
	copy(out, in)
	return out
}
