package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/domain"
	"scoutWorkspace/internal/shared/logging"
)

// Session identifies the presentation session a workspace belongs to.
type Session struct {
	WorkspaceID string
	SessionKey  string
	Token       string
}

// WorkspaceDeps wires the remote ports a workspace talks to.
type WorkspaceDeps struct {
	Catalog          port.CatalogFetcher
	SavedSearches    port.SavedSearchRepository
	Shortlists       port.ShortlistStore
	Broadcaster      port.Broadcaster
	Activity         port.ActivityPublisher
	Metrics          port.WorkspaceMetrics
	Logger           *slog.Logger
	PageSize         int
	DefaultShortlist string
	Now              func() time.Time
}

// WorkspaceState is everything the presentation layer renders.
type WorkspaceState struct {
	WorkspaceID    string               `json:"workspaceId"`
	Results        []domain.Player      `json:"searchResults"`
	Criteria       domain.Criteria      `json:"criteria"`
	Cursor         domain.Cursor        `json:"cursor"`
	HasMore        bool                 `json:"hasMore"`
	Loading        bool                 `json:"loading"`
	Failed         bool                 `json:"failed"`
	LastError      string               `json:"lastError,omitempty"`
	SavedSearches  []domain.SavedSearch `json:"savedSearches"`
	Comparison     []domain.Player      `json:"comparisonSelection"`
	Shortlists     map[string][]string  `json:"shortlists"`
	ShortlistedIDs []string             `json:"shortlistedIds"`
}

// Workspace owns all engine state for one session and exposes the
// presentation triggers. Each trigger broadcasts the new state when it
// changes something.
type Workspace struct {
	catalog    *CatalogBrowser
	saved      *SavedSearchStore
	comparison *ComparisonSelection
	shortlists *ShortlistSelection
	broadcast  *BroadcastUseCase
	activity   port.ActivityPublisher
	metrics    port.WorkspaceMetrics
	logger     *slog.Logger
	now        func() time.Time

	mu      sync.RWMutex
	session Session
	lastErr string
}

func NewWorkspace(session Session, deps WorkspaceDeps) *Workspace {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithWorkspace(logger, session.WorkspaceID, session.SessionKey)
	metrics := deps.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}
	activity := deps.Activity
	if activity == nil {
		activity = nopPublisher{}
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Workspace{
		catalog:    NewCatalogBrowser(deps.Catalog, metrics, logger, deps.PageSize),
		saved:      NewSavedSearchStore(deps.SavedSearches, logger),
		comparison: NewComparisonSelection(),
		shortlists: NewShortlistSelection(deps.Shortlists, deps.DefaultShortlist, logger),
		broadcast:  NewBroadcastUseCase(deps.Broadcaster),
		activity:   activity,
		metrics:    metrics,
		logger:     logger,
		now:        now,
		session:    session,
	}
}

// Session returns the current session details.
func (w *Workspace) Session() Session {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.session
}

// SetToken replaces the bearer token forwarded to the remote API.
func (w *Workspace) SetToken(token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}
	w.mu.Lock()
	w.session.Token = token
	w.mu.Unlock()
}

// Bootstrap loads the shortlist mapping, the saved searches and the initial
// unfiltered listing concurrently. Each part fails independently; the first
// error is returned after all of them finished.
func (w *Workspace) Bootstrap(ctx context.Context) error {
	session := w.Session()
	var group errgroup.Group
	group.Go(func() error {
		return w.shortlists.Init(ctx, session.Token)
	})
	group.Go(func() error {
		_, err := w.saved.List(ctx, session.Token, session.WorkspaceID)
		return err
	})
	group.Go(func() error {
		_, err := w.catalog.RunSearch(ctx, session.Token, domain.DefaultCriteria())
		return err
	})
	err := group.Wait()
	w.finish(ctx, "bootstrap", err)
	return err
}

// RunSearch starts a fresh search. A response superseded by a newer search is
// dropped without error.
func (w *Workspace) RunSearch(ctx context.Context, criteria domain.Criteria) error {
	session := w.Session()
	outcome, err := w.catalog.RunSearch(ctx, session.Token, criteria)
	if err == nil && !outcome.Applied {
		return nil
	}
	if err == nil {
		state := w.catalog.State()
		w.publish(ctx, domain.ActivitySearchExecuted, map[string]any{
			"mode":    string(FetchReplace),
			"listing": string(state.Criteria.Listing()),
			"params":  domain.ToQueryParams(state.Criteria, state.Cursor).Encode(),
			"rows":    outcome.Rows,
		})
	}
	w.finish(ctx, "search", err)
	return err
}

// LoadMore appends the next page of the displayed results.
func (w *Workspace) LoadMore(ctx context.Context) error {
	session := w.Session()
	outcome, err := w.catalog.LoadMore(ctx, session.Token)
	if errors.Is(err, ErrFetchInFlight) {
		return err
	}
	if err == nil && !outcome.Applied {
		return nil
	}
	if err == nil {
		state := w.catalog.State()
		w.publish(ctx, domain.ActivitySearchExecuted, map[string]any{
			"mode":   string(FetchAppend),
			"offset": state.Cursor.Offset,
			"rows":   outcome.Rows,
		})
	}
	w.finish(ctx, "load_more", err)
	return err
}

// SaveCurrentSearch stores the criteria of the most recent search under name.
func (w *Workspace) SaveCurrentSearch(ctx context.Context, name string) (domain.SavedSearch, error) {
	session := w.Session()
	entry, err := w.saved.Save(ctx, session.Token, session.WorkspaceID, name, w.catalog.RequestedCriteria())
	w.metrics.MutationCompleted("saved_search.create", err)
	if errors.Is(err, ErrEmptySearchName) {
		return domain.SavedSearch{}, err
	}
	if err == nil {
		w.publish(ctx, domain.ActivitySearchSaved, map[string]any{"id": entry.ID, "name": entry.Name})
	}
	w.finish(ctx, "save_search", err)
	return entry, err
}

// LoadSavedSearch feeds a saved entry's criteria into a fresh search.
func (w *Workspace) LoadSavedSearch(ctx context.Context, id string) error {
	entry, ok := w.saved.Find(id)
	if !ok {
		return ErrSavedSearchNotFound
	}
	return w.RunSearch(ctx, w.saved.Load(entry))
}

// DeleteSavedSearch removes a saved search.
func (w *Workspace) DeleteSavedSearch(ctx context.Context, id string) error {
	session := w.Session()
	err := w.saved.Delete(ctx, session.Token, session.WorkspaceID, id)
	w.metrics.MutationCompleted("saved_search.delete", err)
	if errors.Is(err, ErrSavedSearchNotFound) {
		return err
	}
	if err == nil {
		w.publish(ctx, domain.ActivitySearchDeleted, map[string]any{"id": strings.TrimSpace(id)})
	}
	w.finish(ctx, "delete_search", err)
	return err
}

// ToggleComparison applies the ring-buffer toggle.
func (w *Workspace) ToggleComparison(ctx context.Context, player domain.Player) ([]domain.Player, error) {
	player.ID = domain.NormalizePlayerID(player.ID)
	if player.ID == "" {
		return nil, ErrMissingPlayerID
	}
	selection := w.comparison.Toggle(player)
	w.publish(ctx, domain.ActivityComparisonUpdated, map[string]any{"playerId": player.ID, "size": len(selection)})
	w.finish(ctx, "comparison", nil)
	return selection, nil
}

// ClearComparison empties the comparison selection.
func (w *Workspace) ClearComparison(ctx context.Context) {
	w.comparison.Clear()
	w.publish(ctx, domain.ActivityComparisonUpdated, map[string]any{"size": 0})
	w.finish(ctx, "comparison", nil)
}

// ToggleShortlist flips playerID's membership in category.
func (w *Workspace) ToggleShortlist(ctx context.Context, playerID, category string) error {
	session := w.Session()
	_, err := w.shortlists.Toggle(ctx, session.Token, playerID, category)
	return w.afterShortlistMutation(ctx, "shortlist.toggle", err, map[string]any{"playerId": playerID, "category": category})
}

// CreateCategory adds a shortlist category.
func (w *Workspace) CreateCategory(ctx context.Context, name string) error {
	session := w.Session()
	_, err := w.shortlists.CreateCategory(ctx, session.Token, name)
	return w.afterShortlistMutation(ctx, "shortlist.category.create", err, map[string]any{"category": name})
}

// DeleteCategory removes a shortlist category other than the default one.
func (w *Workspace) DeleteCategory(ctx context.Context, name string) error {
	session := w.Session()
	_, err := w.shortlists.DeleteCategory(ctx, session.Token, name)
	return w.afterShortlistMutation(ctx, "shortlist.category.delete", err, map[string]any{"category": name})
}

func (w *Workspace) afterShortlistMutation(ctx context.Context, kind string, err error, attrs map[string]any) error {
	w.metrics.MutationCompleted(kind, err)
	if isValidationError(err) {
		return err
	}
	if err == nil {
		attrs["operation"] = kind
		w.publish(ctx, domain.ActivityShortlistUpdated, attrs)
	}
	w.finish(ctx, kind, err)
	return err
}

// SyncShortlists refetches the shortlist mapping after another session
// changed it.
func (w *Workspace) SyncShortlists(ctx context.Context) error {
	_, err := w.shortlists.Refresh(ctx, w.Session().Token)
	w.finish(ctx, "sync.shortlists", err)
	return err
}

// SyncSavedSearches reloads the saved-search list after another session
// changed it.
func (w *Workspace) SyncSavedSearches(ctx context.Context) error {
	session := w.Session()
	_, err := w.saved.Refresh(ctx, session.Token, session.WorkspaceID)
	w.finish(ctx, "sync.saved_searches", err)
	return err
}

// State assembles the presentation view.
func (w *Workspace) State() WorkspaceState {
	catalog := w.catalog.State()
	lists := w.shortlists.Snapshot()

	w.mu.RLock()
	session := w.session
	lastErr := w.lastErr
	w.mu.RUnlock()
	if catalog.LastError != "" {
		lastErr = catalog.LastError
	}

	return WorkspaceState{
		WorkspaceID:    session.WorkspaceID,
		Results:        catalog.Results,
		Criteria:       catalog.Criteria,
		Cursor:         catalog.Cursor,
		HasMore:        catalog.HasMore,
		Loading:        catalog.Loading,
		Failed:         catalog.Failed,
		LastError:      lastErr,
		SavedSearches:  w.saved.Entries(),
		Comparison:     w.comparison.Players(),
		Shortlists:     lists.Lists(),
		ShortlistedIDs: lists.Flatten(),
	}
}

// IsShortlisted reports whether playerID is in any shortlist category.
func (w *Workspace) IsShortlisted(playerID string) bool {
	return w.shortlists.IsInAnyCategory(playerID)
}

// InComparison reports whether playerID is part of the comparison selection.
func (w *Workspace) InComparison(playerID string) bool {
	return w.comparison.Contains(playerID)
}

// finish records the trigger outcome and pushes the new state to the session.
func (w *Workspace) finish(ctx context.Context, reason string, err error) {
	w.mu.Lock()
	if err != nil {
		w.lastErr = err.Error()
	} else {
		w.lastErr = ""
	}
	session := w.session
	w.mu.Unlock()

	at := w.now()
	if err != nil {
		w.broadcast.Execute(ctx, domain.BuildErrorMessage(session.SessionKey, reason, err, at))
	}
	w.broadcast.Execute(ctx, domain.BuildStateMessage(session.WorkspaceID, session.SessionKey, reason, w.State(), at))
}

func (w *Workspace) publish(ctx context.Context, kind domain.ActivityType, attrs map[string]any) {
	session := w.Session()
	event := domain.NewActivityEvent(kind, session.WorkspaceID, session.SessionKey, attrs, w.now())
	if err := w.activity.Publish(ctx, event); err != nil {
		w.logger.Warn("activity publish failed", slog.String("type", string(kind)), slog.Any("error", err))
	}
}

// IsRejection reports whether err was a local rejection that never reached
// the remote store and was not broadcast.
func IsRejection(err error) bool {
	return isValidationError(err) || errors.Is(err, ErrFetchInFlight)
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrEmptySearchName) ||
		errors.Is(err, ErrDefaultCategoryPermanent) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrMissingPlayerID) ||
		errors.Is(err, ErrSavedSearchNotFound)
}
