package infrastructure

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/domain"
)

func TestSavedSearchListDecodesEntries(t *testing.T) {
	t.Parallel()

	srv, requests := newCaptureServer(t, http.StatusOK, `[
		{"id": 3, "name": " Young wingers ", "criteria": {"pos": "Winger", "max_age": 21}, "date": "2026-01-02T10:00:00Z"},
		{"name": "orphan", "criteria": {}}
	]`)
	client := NewSavedSearchHTTPClient(NewRESTClient(srv.URL, time.Second, nil))

	entries, err := client.List(context.Background(), "tok", "club-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "3", entries[0].ID)
	assert.Equal(t, "Young wingers", entries[0].Name)
	assert.Equal(t, "Winger", entries[0].Criteria.Position)
	assert.Equal(t, 21, entries[0].Criteria.MaxAge)

	got := (*requests)[0]
	assert.Equal(t, "/scouting/searches", got.path)
	assert.Equal(t, "workspace=club-1", got.query)
}

func TestSavedSearchCreatePostsNameAndCriteria(t *testing.T) {
	t.Parallel()

	srv, requests := newCaptureServer(t, http.StatusOK, `{"id":"s-9","name":"Dutch value","criteria":{"league":"Eredivisie"},"createdAt":"2026-02-01T00:00:00Z"}`)
	client := NewSavedSearchHTTPClient(NewRESTClient(srv.URL, time.Second, nil))

	entry, err := client.Create(context.Background(), "tok", "", "Dutch value", domain.Criteria{League: "Eredivisie", MaxValue: 15})
	require.NoError(t, err)
	assert.Equal(t, "s-9", entry.ID)
	assert.Equal(t, "Eredivisie", entry.Criteria.League)

	got := (*requests)[0]
	assert.Equal(t, http.MethodPost, got.method)
	assert.Empty(t, got.query)
	assert.Contains(t, got.body, `"name":"Dutch value"`)
	assert.Contains(t, got.body, `"league":"Eredivisie"`)
	assert.Contains(t, got.body, `"max_val":15`)
}

func TestSavedSearchCreateRequiresID(t *testing.T) {
	t.Parallel()

	srv, _ := newCaptureServer(t, http.StatusOK, `{"name":"x"}`)
	client := NewSavedSearchHTTPClient(NewRESTClient(srv.URL, time.Second, nil))
	_, err := client.Create(context.Background(), "tok", "", "x", domain.Criteria{})
	require.Error(t, err)
}

func TestSavedSearchDeleteHonoursAck(t *testing.T) {
	t.Parallel()

	srv, requests := newCaptureServer(t, http.StatusOK, `{"ok":true}`)
	client := NewSavedSearchHTTPClient(NewRESTClient(srv.URL, time.Second, nil))
	require.NoError(t, client.Delete(context.Background(), "tok", "club-1", "12"))
	assert.Equal(t, http.MethodDelete, (*requests)[0].method)
	assert.Equal(t, "/scouting/searches/12", (*requests)[0].path)

	srv, _ = newCaptureServer(t, http.StatusOK, `{"ok":false}`)
	client = NewSavedSearchHTTPClient(NewRESTClient(srv.URL, time.Second, nil))
	require.ErrorIs(t, client.Delete(context.Background(), "tok", "", "12"), port.ErrRemoteNotFound)

	require.ErrorIs(t, client.Delete(context.Background(), "tok", "", " "), port.ErrRemoteNotFound)
}

func TestShortlistFetchToleratesNumericIDs(t *testing.T) {
	t.Parallel()

	srv, _ := newCaptureServer(t, http.StatusOK, `{"General Shortlist":[1,"2"," "],"Targets":null}`)
	client := NewShortlistHTTPClient(NewRESTClient(srv.URL, time.Second, nil))

	lists, err := client.Fetch(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, lists.Contains(domain.DefaultShortlistCategory, "1"))
	assert.True(t, lists.Contains(domain.DefaultShortlistCategory, "2"))
	assert.Equal(t, []string{"1", "2"}, lists.Flatten())
	assert.Contains(t, lists.Categories(), "Targets")
}

func TestShortlistMutationsAdoptConfirmedMapping(t *testing.T) {
	t.Parallel()

	srv, requests := newCaptureServer(t, http.StatusOK, `{"status":"success","watchlist":{"General Shortlist":["42"]}}`)
	client := NewShortlistHTTPClient(NewRESTClient(srv.URL, time.Second, nil))
	ctx := context.Background()

	lists, err := client.Add(ctx, "tok", domain.DefaultShortlistCategory, "42")
	require.NoError(t, err)
	assert.True(t, lists.Contains(domain.DefaultShortlistCategory, "42"))

	_, err = client.Remove(ctx, "tok", "Targets", "42")
	require.NoError(t, err)
	_, err = client.CreateCategory(ctx, "tok", " Targets ")
	require.NoError(t, err)
	_, err = client.DeleteCategory(ctx, "tok", "Targets")
	require.NoError(t, err)

	require.Len(t, *requests, 4)
	assert.Equal(t, "POST /watchlist/General%20Shortlist/42", (*requests)[0].method+" "+(*requests)[0].path)
	assert.Equal(t, "DELETE /watchlist/Targets/42", (*requests)[1].method+" "+(*requests)[1].path)
	assert.Equal(t, "POST /watchlist/category", (*requests)[2].method+" "+(*requests)[2].path)
	assert.Equal(t, "name=Targets", (*requests)[2].query)
	assert.Equal(t, "DELETE /watchlist/category/Targets", (*requests)[3].method+" "+(*requests)[3].path)
}

func TestShortlistMutationRejectedWithoutSuccessStatus(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"status":"error","message":"limit reached"}`, `{"status":"success"}`} {
		srv, _ := newCaptureServer(t, http.StatusOK, body)
		client := NewShortlistHTTPClient(NewRESTClient(srv.URL, time.Second, nil))
		_, err := client.Add(context.Background(), "tok", "Targets", "1")
		require.ErrorIs(t, err, port.ErrShortlistRejected, body)
	}

	srv, _ := newCaptureServer(t, http.StatusForbidden, `{}`)
	client := NewShortlistHTTPClient(NewRESTClient(srv.URL, time.Second, nil))
	_, err := client.DeleteCategory(context.Background(), "tok", "Targets")
	require.ErrorIs(t, err, port.ErrRemoteForbidden)
}
