package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scoutWorkspace/internal/modules/workspace/domain"
)

func TestSavedSearchStoreRejectsBlankName(t *testing.T) {
	t.Parallel()

	repo := &fakeSavedSearchRepo{}
	store := NewSavedSearchStore(repo, nil)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := store.Save(context.Background(), "tok", "ws", name, domain.DefaultCriteria())
		require.ErrorIs(t, err, ErrEmptySearchName)
	}
	assert.Zero(t, repo.createCalls)
}

func TestSavedSearchStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewSavedSearchStore(&fakeSavedSearchRepo{}, nil)
	criteria := domain.Criteria{Query: "eze", Position: "Attacking Midfield", League: "Premier League", Club: "Palace", MaxAge: 26, MinValue: 10, MaxValue: 60}

	entry, err := store.Save(context.Background(), "tok", "ws", "  Creative   tens ", criteria)
	require.NoError(t, err)
	assert.Equal(t, "Creative tens", entry.Name)
	assert.Equal(t, criteria, store.Load(entry))
}

func TestSavedSearchStorePrependsWithoutRefetch(t *testing.T) {
	t.Parallel()

	repo := &fakeSavedSearchRepo{entries: []domain.SavedSearch{{ID: "old", Name: "Old"}}}
	store := NewSavedSearchStore(repo, nil)
	ctx := context.Background()

	list, err := store.List(ctx, "tok", "ws")
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = store.Save(ctx, "tok", "ws", "New", domain.Criteria{Club: "Porto"})
	require.NoError(t, err)

	list, err = store.List(ctx, "tok", "ws")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "New", list[0].Name)
	assert.Equal(t, "old", list[1].ID)
	assert.Equal(t, 1, repo.listCalls)

	found, ok := store.Find("1")
	require.True(t, ok)
	assert.Equal(t, "Porto", found.Criteria.Club)
}

func TestSavedSearchStoreListIsSharedAcrossCallers(t *testing.T) {
	t.Parallel()

	repo := &fakeSavedSearchRepo{entries: []domain.SavedSearch{{ID: "1", Name: "A"}}}
	store := NewSavedSearchStore(repo, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			list, err := store.List(context.Background(), "tok", "ws")
			assert.NoError(t, err)
			assert.Len(t, list, 1)
		}()
	}
	wg.Wait()

	_, err := store.Refresh(context.Background(), "tok", "ws")
	require.NoError(t, err)
	assert.LessOrEqual(t, repo.listCalls, 9)
	assert.GreaterOrEqual(t, repo.listCalls, 2)
}

func TestSavedSearchStoreDelete(t *testing.T) {
	t.Parallel()

	repo := &fakeSavedSearchRepo{entries: []domain.SavedSearch{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}}
	store := NewSavedSearchStore(repo, nil)
	ctx := context.Background()
	_, err := store.List(ctx, "tok", "ws")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "tok", "ws", " 1 "))
	assert.Equal(t, []string{"2"}, savedIDs(store.Entries()))

	repo.err = errors.New("boom")
	require.Error(t, store.Delete(ctx, "tok", "ws", "2"))
	assert.Equal(t, []string{"2"}, savedIDs(store.Entries()))

	require.ErrorIs(t, store.Delete(ctx, "tok", "ws", " "), ErrSavedSearchNotFound)
}

func TestSavedSearchStoreListFailure(t *testing.T) {
	t.Parallel()

	repo := &fakeSavedSearchRepo{err: errors.New("unavailable")}
	store := NewSavedSearchStore(repo, nil)

	_, err := store.List(context.Background(), "tok", "ws")
	require.Error(t, err)

	repo.err = nil
	repo.entries = []domain.SavedSearch{{ID: "9"}}
	list, err := store.List(context.Background(), "tok", "ws")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func savedIDs(entries []domain.SavedSearch) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestSavedSearchStoreListResolvingAfterSaveKeepsEntry(t *testing.T) {
	t.Parallel()

	gate := newReadGate()
	repo := &fakeSavedSearchRepo{entries: []domain.SavedSearch{{ID: "old", Name: "Old"}}, listGate: gate}
	store := NewSavedSearchStore(repo, nil)
	ctx := context.Background()

	type result struct {
		list []domain.SavedSearch
		err  error
	}
	listed := make(chan result, 1)
	go func() {
		list, err := store.List(ctx, "tok", "ws")
		listed <- result{list, err}
	}()
	<-gate.started

	entry, err := store.Save(ctx, "tok", "ws", "New", domain.Criteria{Club: "Porto"})
	require.NoError(t, err)
	close(gate.release)

	got := <-listed
	require.NoError(t, got.err)
	assert.Equal(t, []string{entry.ID, "old"}, savedIDs(got.list))
	assert.Equal(t, []string{entry.ID, "old"}, savedIDs(store.Entries()))
	assert.Equal(t, 2, repo.listCalls, "the stale read is retried once")
}

func TestSavedSearchStoreStaleListDoesNotRestoreDeletedEntry(t *testing.T) {
	t.Parallel()

	repo := &fakeSavedSearchRepo{entries: []domain.SavedSearch{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}}
	store := NewSavedSearchStore(repo, nil)
	ctx := context.Background()
	_, err := store.List(ctx, "tok", "ws")
	require.NoError(t, err)

	gate := newReadGate()
	repo.mu.Lock()
	repo.listGate = gate
	repo.mu.Unlock()

	refreshed := make(chan error, 1)
	go func() {
		_, err := store.Refresh(ctx, "tok", "ws")
		refreshed <- err
	}()
	<-gate.started

	require.NoError(t, store.Delete(ctx, "tok", "ws", "1"))
	close(gate.release)
	require.NoError(t, <-refreshed)

	assert.Equal(t, []string{"2"}, savedIDs(store.Entries()))
}
