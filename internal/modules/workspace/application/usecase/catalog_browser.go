package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/domain"
)

// FetchMode selects whether a page replaces or extends the visible results.
type FetchMode string

const (
	FetchReplace FetchMode = "replace"
	FetchAppend  FetchMode = "append"
)

// CatalogState is the presentation view of one result list.
type CatalogState struct {
	Results   []domain.Player `json:"searchResults"`
	Criteria  domain.Criteria `json:"criteria"`
	Cursor    domain.Cursor   `json:"cursor"`
	HasMore   bool            `json:"hasMore"`
	Loading   bool            `json:"loading"`
	Failed    bool            `json:"failed"`
	LastError string          `json:"lastError,omitempty"`
}

// FetchOutcome describes what happened to a fetch once it resolved.
type FetchOutcome struct {
	Applied bool
	Rows    int
}

// CatalogBrowser owns the visible result list and its cursor. Every fresh
// search takes a new sequence number; responses carrying an older number are
// dropped so the latest search always wins.
type CatalogBrowser struct {
	fetcher  port.CatalogFetcher
	metrics  port.WorkspaceMetrics
	logger   *slog.Logger
	pageSize int

	mu        sync.Mutex
	seq       uint64
	loading   bool
	results   []domain.Player
	criteria  domain.Criteria
	requested domain.Criteria
	cursor    domain.Cursor
	failed    bool
	lastErr   string
}

func NewCatalogBrowser(fetcher port.CatalogFetcher, metrics port.WorkspaceMetrics, logger *slog.Logger, pageSize int) *CatalogBrowser {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return &CatalogBrowser{
		fetcher:   fetcher,
		metrics:   metrics,
		logger:    logger,
		pageSize:  pageSize,
		criteria:  domain.DefaultCriteria(),
		requested: domain.DefaultCriteria(),
		cursor:    domain.Cursor{Limit: pageSize},
	}
}

// Search runs a fresh search (FetchReplace) or loads the next page of the
// displayed criteria (FetchAppend).
func (b *CatalogBrowser) Search(ctx context.Context, token string, criteria domain.Criteria, mode FetchMode) (FetchOutcome, error) {
	if mode == FetchAppend {
		b.mu.Lock()
		displayed := b.criteria
		b.mu.Unlock()
		if !displayed.Equal(criteria) {
			return FetchOutcome{}, ErrCriteriaChanged
		}
		return b.LoadMore(ctx, token)
	}
	return b.RunSearch(ctx, token, criteria)
}

// RunSearch discards the current list and fetches the first page for criteria.
// A failure leaves the previous list and cursor in place.
func (b *CatalogBrowser) RunSearch(ctx context.Context, token string, criteria domain.Criteria) (FetchOutcome, error) {
	normalized := criteria.Normalize()

	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.loading = true
	b.requested = normalized
	cursor := domain.NewCursor(b.pageSize)
	b.mu.Unlock()

	query := domain.NewCatalogQuery(normalized, cursor)
	b.logger.Debug("catalog search start",
		slog.Uint64("seq", seq),
		slog.String("listing", string(query.Listing())),
		slog.String("params", query.Values().Encode()),
	)

	page, err := b.fetch(ctx, token, query, FetchReplace)

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.seq {
		b.metrics.FetchDiscarded(string(FetchReplace))
		b.logger.Debug("catalog search discarded stale response", slog.Uint64("seq", seq), slog.Uint64("latest", b.seq))
		return FetchOutcome{}, nil
	}
	b.loading = false
	if err != nil {
		b.failed = true
		b.lastErr = err.Error()
		return FetchOutcome{}, err
	}

	b.results = append(make([]domain.Player, 0, len(page.Players)), page.Players...)
	b.criteria = normalized
	b.cursor = cursor.UpdateHasMore(page.Returned, cursor.Limit)
	b.failed = false
	b.lastErr = ""
	return FetchOutcome{Applied: true, Rows: len(page.Players)}, nil
}

// LoadMore appends the next page of the displayed criteria. It is a no-op once
// the cursor reports no more rows and is rejected while another fetch for the
// list is pending.
func (b *CatalogBrowser) LoadMore(ctx context.Context, token string) (FetchOutcome, error) {
	b.mu.Lock()
	if b.loading {
		b.mu.Unlock()
		return FetchOutcome{}, ErrFetchInFlight
	}
	if !b.cursor.HasMore {
		b.mu.Unlock()
		return FetchOutcome{}, nil
	}
	seq := b.seq
	b.loading = true
	criteria := b.criteria
	next := b.cursor.Advance(b.cursor.Limit)
	b.mu.Unlock()

	query := domain.NewCatalogQuery(criteria, next)
	b.logger.Debug("catalog load more start", slog.Uint64("seq", seq), slog.Int("offset", next.Offset))

	page, err := b.fetch(ctx, token, query, FetchAppend)

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.seq {
		b.metrics.FetchDiscarded(string(FetchAppend))
		b.logger.Debug("catalog load more discarded after fresh search", slog.Uint64("seq", seq), slog.Uint64("latest", b.seq))
		return FetchOutcome{}, nil
	}
	b.loading = false
	if err != nil {
		b.failed = true
		b.lastErr = err.Error()
		return FetchOutcome{}, err
	}

	b.results = append(b.results, page.Players...)
	b.cursor = next.UpdateHasMore(page.Returned, next.Limit)
	b.failed = false
	b.lastErr = ""
	return FetchOutcome{Applied: true, Rows: len(page.Players)}, nil
}

func (b *CatalogBrowser) fetch(ctx context.Context, token string, query domain.CatalogQuery, mode FetchMode) (domain.CatalogPage, error) {
	b.metrics.FetchStarted(string(mode))
	started := time.Now()
	page, err := b.fetcher.Search(ctx, token, query)
	if err != nil {
		b.metrics.FetchFailed(string(mode))
		b.logger.Error("catalog fetch failed",
			slog.String("mode", string(mode)),
			slog.Int("offset", query.Cursor.Offset),
			slog.Any("error", err),
		)
		return domain.CatalogPage{}, err
	}
	if skipped := page.Returned - len(page.Players); skipped > 0 {
		b.logger.Debug("catalog rows without id skipped", slog.Int("skipped", skipped), slog.Int("returned", page.Returned))
	}
	b.metrics.FetchCompleted(string(mode), len(page.Players), time.Since(started))
	return page, nil
}

// RequestedCriteria returns the criteria of the most recently issued search,
// whether or not its response has arrived.
func (b *CatalogBrowser) RequestedCriteria() domain.Criteria {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requested
}

// State returns a copy of the visible list and its flags.
func (b *CatalogBrowser) State() CatalogState {
	b.mu.Lock()
	defer b.mu.Unlock()
	results := make([]domain.Player, len(b.results))
	copy(results, b.results)
	return CatalogState{
		Results:   results,
		Criteria:  b.criteria,
		Cursor:    b.cursor,
		HasMore:   b.cursor.HasMore,
		Loading:   b.loading,
		Failed:    b.failed,
		LastError: b.lastErr,
	}
}
