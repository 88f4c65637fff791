package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/domain"
)

func makePlayers(prefix string, n int) []domain.Player {
	out := make([]domain.Player, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Player{ID: prefix + strconv.Itoa(i), Name: fmt.Sprintf("%s player %d", prefix, i)})
	}
	return out
}

func playerIDs(players []domain.Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.ID)
	}
	return out
}

type fakeCatalog struct {
	mu       sync.Mutex
	queries  []domain.CatalogQuery
	tokens   []string
	searchFn func(ctx context.Context, query domain.CatalogQuery) ([]domain.Player, error)
	// skipped counts rows per page the remote sent but the decoder dropped.
	skipped int
}

func (f *fakeCatalog) Search(ctx context.Context, token string, query domain.CatalogQuery) (domain.CatalogPage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.tokens = append(f.tokens, token)
	fn := f.searchFn
	skipped := f.skipped
	f.mu.Unlock()
	if fn == nil {
		return domain.CatalogPage{}, nil
	}
	players, err := fn(ctx, query)
	if err != nil {
		return domain.CatalogPage{}, err
	}
	page := domain.NewCatalogPage(players)
	page.Returned += skipped
	return page, nil
}

func (f *fakeCatalog) calls() []domain.CatalogQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.CatalogQuery(nil), f.queries...)
}

// pagedCatalog serves pages from a fixed total.
func pagedCatalog(total int) *fakeCatalog {
	all := makePlayers("p", total)
	return &fakeCatalog{searchFn: func(_ context.Context, q domain.CatalogQuery) ([]domain.Player, error) {
		start := q.Cursor.Offset
		if start > len(all) {
			start = len(all)
		}
		end := start + q.Cursor.Limit
		if end > len(all) {
			end = len(all)
		}
		return append([]domain.Player(nil), all[start:end]...), nil
	}}
}

// readGate holds a read after it has taken its snapshot, so a test can land
// mutations before the read resolves.
type readGate struct {
	started chan struct{}
	release chan struct{}
}

func newReadGate() *readGate {
	return &readGate{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *readGate) wait() {
	if g == nil {
		return
	}
	g.started <- struct{}{}
	<-g.release
}

type fakeSavedSearchRepo struct {
	mu          sync.Mutex
	entries     []domain.SavedSearch
	nextID      int
	listCalls   int
	createCalls int
	deleteCalls int
	err         error
	listGate    *readGate
}

func (f *fakeSavedSearchRepo) List(_ context.Context, _, _ string) ([]domain.SavedSearch, error) {
	f.mu.Lock()
	f.listCalls++
	err := f.err
	entries := append([]domain.SavedSearch(nil), f.entries...)
	gate := f.listGate
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	gate.wait()
	return entries, nil
}

func (f *fakeSavedSearchRepo) Create(_ context.Context, _, _, name string, criteria domain.Criteria) (domain.SavedSearch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.err != nil {
		return domain.SavedSearch{}, f.err
	}
	f.nextID++
	entry := domain.SavedSearch{
		ID:        strconv.Itoa(f.nextID),
		Name:      name,
		Criteria:  criteria,
		CreatedAt: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
	}
	f.entries = append([]domain.SavedSearch{entry}, f.entries...)
	return entry, nil
}

func (f *fakeSavedSearchRepo) Delete(_ context.Context, _, _, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.err != nil {
		return f.err
	}
	f.entries = domain.RemoveSavedSearch(f.entries, id)
	return nil
}

type shortlistCall struct {
	op       string
	category string
	playerID string
}

type fakeShortlistStore struct {
	mu        sync.Mutex
	lists     map[string][]string
	calls     []shortlistCall
	err       error
	fetchN    int
	fetchGate *readGate
}

func newFakeShortlistStore(initial map[string][]string) *fakeShortlistStore {
	return &fakeShortlistStore{lists: initial}
}

func (f *fakeShortlistStore) snapshot() domain.Shortlists {
	return domain.ShortlistsFromLists(f.lists)
}

func (f *fakeShortlistStore) record(op, category, playerID string) error {
	f.calls = append(f.calls, shortlistCall{op: op, category: category, playerID: playerID})
	return f.err
}

func (f *fakeShortlistStore) Fetch(context.Context, string) (domain.Shortlists, error) {
	f.mu.Lock()
	f.fetchN++
	err := f.record("fetch", "", "")
	lists := f.snapshot()
	gate := f.fetchGate
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	gate.wait()
	return lists, nil
}

func (f *fakeShortlistStore) Add(_ context.Context, _, category, playerID string) (domain.Shortlists, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("add", category, playerID); err != nil {
		return nil, err
	}
	for _, id := range f.lists[category] {
		if id == playerID {
			return f.snapshot(), nil
		}
	}
	f.lists[category] = append(f.lists[category], playerID)
	return f.snapshot(), nil
}

func (f *fakeShortlistStore) Remove(_ context.Context, _, category, playerID string) (domain.Shortlists, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("remove", category, playerID); err != nil {
		return nil, err
	}
	kept := f.lists[category][:0:0]
	for _, id := range f.lists[category] {
		if id != playerID {
			kept = append(kept, id)
		}
	}
	if _, ok := f.lists[category]; ok {
		f.lists[category] = kept
	}
	return f.snapshot(), nil
}

func (f *fakeShortlistStore) CreateCategory(_ context.Context, _, name string) (domain.Shortlists, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("create", name, ""); err != nil {
		return nil, err
	}
	if _, ok := f.lists[name]; !ok {
		f.lists[name] = nil
	}
	return f.snapshot(), nil
}

func (f *fakeShortlistStore) DeleteCategory(_ context.Context, _, name string) (domain.Shortlists, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("delete", name, ""); err != nil {
		return nil, err
	}
	delete(f.lists, name)
	return f.snapshot(), nil
}

func (f *fakeShortlistStore) recorded() []shortlistCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]shortlistCall(nil), f.calls...)
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []*domain.Message
}

func (r *recordingBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	r.mu.Lock()
	r.messages = append(r.messages, msg)
	r.mu.Unlock()
}

func (r *recordingBroadcaster) topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.messages))
	for _, msg := range r.messages {
		out = append(out, msg.Topic)
	}
	return out
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, event domain.ActivityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingPublisher) types() []domain.ActivityType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ActivityType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

var (
	_ port.CatalogFetcher        = (*fakeCatalog)(nil)
	_ port.SavedSearchRepository = (*fakeSavedSearchRepo)(nil)
	_ port.ShortlistStore        = (*fakeShortlistStore)(nil)
	_ port.Broadcaster           = (*recordingBroadcaster)(nil)
	_ port.ActivityPublisher     = (*recordingPublisher)(nil)
)
