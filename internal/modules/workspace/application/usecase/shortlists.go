package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/domain"
)

// ShortlistSelection mirrors the remote shortlist mapping. The local value is
// only ever replaced by a mapping the store returned; it is never derived. A
// fetch that was issued before a mutation it did not observe is dropped.
type ShortlistSelection struct {
	store           port.ShortlistStore
	defaultCategory string
	logger          *slog.Logger
	group           singleflight.Group

	mu          sync.RWMutex
	lists       domain.Shortlists
	initialized bool
	gate        versionGate
}

func NewShortlistSelection(store port.ShortlistStore, defaultCategory string, logger *slog.Logger) *ShortlistSelection {
	if logger == nil {
		logger = slog.Default()
	}
	defaultCategory = domain.NormalizeCategory(defaultCategory)
	if defaultCategory == "" {
		defaultCategory = domain.DefaultShortlistCategory
	}
	return &ShortlistSelection{
		store:           store,
		defaultCategory: defaultCategory,
		logger:          logger,
		lists:           domain.Shortlists{},
	}
}

// DefaultCategory returns the permanent category name.
func (s *ShortlistSelection) DefaultCategory() string {
	return s.defaultCategory
}

// Init fetches the mapping once. Later calls return immediately.
func (s *ShortlistSelection) Init(ctx context.Context, token string) error {
	s.mu.RLock()
	done := s.initialized
	s.mu.RUnlock()
	if done {
		return nil
	}

	_, err, _ := s.group.Do("init", func() (any, error) {
		return s.fetch(ctx, token)
	})
	if err != nil {
		s.logger.Error("shortlist init failed", slog.Any("error", err))
		return fmt.Errorf("fetch shortlists: %w", err)
	}
	return nil
}

// Refresh refetches the mapping regardless of Init. When a mutation landed
// while the fetch was in flight the mutation's mapping is kept.
func (s *ShortlistSelection) Refresh(ctx context.Context, token string) (domain.Shortlists, error) {
	value, err, _ := s.group.Do("refresh", func() (any, error) {
		return s.fetch(ctx, token)
	})
	if err != nil {
		s.logger.Error("shortlist refresh failed", slog.Any("error", err))
		return nil, fmt.Errorf("refresh shortlists: %w", err)
	}
	return value.(domain.Shortlists), nil
}

func (s *ShortlistSelection) fetch(ctx context.Context, token string) (domain.Shortlists, error) {
	s.mu.Lock()
	mark := s.gate.beginRead()
	s.mu.Unlock()

	lists, err := s.store.Fetch(ctx, token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gate.readCurrent(mark) {
		s.logger.Debug("shortlist fetch dropped after newer mutation")
		return s.lists.WithDefault(s.defaultCategory), nil
	}
	s.lists = lists.Clone()
	s.initialized = true
	return s.lists.WithDefault(s.defaultCategory), nil
}

// mutate runs one store mutation and adopts its response unless a later
// mutation has already been adopted.
func (s *ShortlistSelection) mutate(call func() (domain.Shortlists, error)) (domain.Shortlists, error) {
	s.mu.Lock()
	ticket := s.gate.beginMutation()
	s.mu.Unlock()

	lists, err := call()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate.finishMutation(ticket, err == nil) {
		s.lists = lists.Clone()
		s.initialized = true
	}
	if err != nil {
		return nil, err
	}
	return s.lists.WithDefault(s.defaultCategory), nil
}

// Toggle adds playerID to category when the cached mapping lacks it and
// removes it otherwise, then adopts the mapping the store returns. An empty
// category means the default one.
func (s *ShortlistSelection) Toggle(ctx context.Context, token, playerID, category string) (domain.Shortlists, error) {
	playerID = domain.NormalizePlayerID(playerID)
	if playerID == "" {
		return nil, ErrMissingPlayerID
	}
	category = domain.NormalizeCategory(category)
	if category == "" {
		category = s.defaultCategory
	}

	s.mu.RLock()
	present := s.lists.Contains(category, playerID)
	s.mu.RUnlock()

	lists, err := s.mutate(func() (domain.Shortlists, error) {
		if present {
			return s.store.Remove(ctx, token, category, playerID)
		}
		return s.store.Add(ctx, token, category, playerID)
	})
	if err != nil {
		s.logger.Error("shortlist toggle failed",
			slog.String("category", category),
			slog.String("playerId", playerID),
			slog.Bool("remove", present),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("toggle %s in %q: %w", playerID, category, err)
	}
	return lists, nil
}

// CreateCategory adds an empty category and adopts the returned mapping.
func (s *ShortlistSelection) CreateCategory(ctx context.Context, token, name string) (domain.Shortlists, error) {
	name = domain.NormalizeCategory(name)
	if name == "" {
		return nil, ErrInvalidCategory
	}
	lists, err := s.mutate(func() (domain.Shortlists, error) {
		return s.store.CreateCategory(ctx, token, name)
	})
	if err != nil {
		s.logger.Error("shortlist category create failed", slog.String("category", name), slog.Any("error", err))
		return nil, fmt.Errorf("create category %q: %w", name, err)
	}
	return lists, nil
}

// DeleteCategory removes a category. The default category is refused without
// contacting the store.
func (s *ShortlistSelection) DeleteCategory(ctx context.Context, token, name string) (domain.Shortlists, error) {
	name = domain.NormalizeCategory(name)
	if name == "" {
		return nil, ErrInvalidCategory
	}
	if name == s.defaultCategory {
		s.logger.Warn("shortlist category delete rejected", slog.String("category", name))
		return nil, ErrDefaultCategoryPermanent
	}
	lists, err := s.mutate(func() (domain.Shortlists, error) {
		return s.store.DeleteCategory(ctx, token, name)
	})
	if err != nil {
		s.logger.Error("shortlist category delete failed", slog.String("category", name), slog.Any("error", err))
		return nil, fmt.Errorf("delete category %q: %w", name, err)
	}
	return lists, nil
}

func (s *ShortlistSelection) IsInAnyCategory(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lists.IsInAnyCategory(domain.NormalizePlayerID(playerID))
}

// Flatten returns every shortlisted id once.
func (s *ShortlistSelection) Flatten() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lists.Flatten()
}

// Snapshot returns a copy of the mapping that always includes the default category.
func (s *ShortlistSelection) Snapshot() domain.Shortlists {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lists.WithDefault(s.defaultCategory)
}
