// internal/github/client_test.go
package github

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-contrib-finder/internal/model"
)

// setupTestClient creates a httptest server and a Client pointing to it.
func setupTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := NewClient(NewHTTPTransport(""), server.URL, logger)
	return client, server
}

func TestClient_FetchRepositories(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		assert.Contains(t, r.URL.RawQuery, "stars:1000..1001")
		assert.Contains(t, r.URL.RawQuery, "language:go")

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"total_count": 2,
			"items": [
				{"id": 2, "name": "repo2", "full_name": "mock/repo2", "stargazers_count": 1001,
				 "html_url": "https://github.com/mock/repo2", "description": "dsc2",
				 "owner": {"login": "mock", "avatar_url": "https://avatar.com/2"}},
				{"id": 1, "name": "repo1", "full_name": "mock/repo1", "stargazers_count": 1000,
				 "html_url": "https://github.com/mock/repo1", "description": "dsc1",
				 "owner": {"login": "mock", "avatar_url": "https://avatar.com/1"}}
			]
		}`))
	})
	client, _ := setupTestClient(t, handler)

	collection, err := client.FetchRepositories(context.Background(), model.SearchCriteria{
		MinStars:        1000,
		MaxStars:        intPtr(1001),
		LastPushed:      "2024-09-07",
		Language:        "go",
		GoodFirstIssues: 1,
		HelpWanted:      1,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, collection.TotalCount)
	require.Len(t, collection.Items, 2)
	assert.Equal(t, 1001, collection.Items[0].StargazersCount)
	assert.Equal(t, 1000, collection.Items[1].StargazersCount)
	assert.Equal(t, "mock/repo2", collection.Items[0].FullName)
}

func TestClient_FetchTopReadme(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/mock/repo/readme", r.URL.Path)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"content": "aGVsbG8=", "encoding": "base64"}`))
		})
		client, _ := setupTestClient(t, handler)

		result, err := client.FetchTopReadme(context.Background(), "mock", "repo")

		require.NoError(t, err)
		assert.True(t, result.Found)
		require.NotNil(t, result.Content)
		assert.Equal(t, "hello", *result.Content)
	})

	t.Run("not found", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		client, _ := setupTestClient(t, handler)

		result, err := client.FetchTopReadme(context.Background(), "mock", "repo")

		require.NoError(t, err)
		assert.False(t, result.Found)
		assert.Nil(t, result.Content)
	})
}

func TestClient_FetchIssues(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/mock/repo/issues", r.URL.Path)
		assert.Equal(t, "all", r.URL.Query().Get("state"))
		assert.Equal(t, "none", r.URL.Query().Get("assignee"))
		assert.Equal(t, "created", r.URL.Query().Get("sort"))
		assert.Equal(t, "desc", r.URL.Query().Get("direction"))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"html_url": "https://github.com/mock/repo/issues/7", "title": "an issue", "body": "text"}]`))
	})
	client, _ := setupTestClient(t, handler)

	issues, err := client.FetchIssues(context.Background(), "mock", "repo", model.IssueSearchCriteria{})

	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "an issue", issues[0].Title)
}

func TestClient_FetchIssues_SpaceBearingLabels(t *testing.T) {
	var handled bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled = true
		assert.Equal(t, "/repos/mock/repo/issues", r.URL.Path)
		assert.Equal(t, "bug,good first issue", r.URL.Query().Get("labels"))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"html_url": "https://github.com/mock/repo/issues/1", "title": "labelled", "body": ""}]`))
	})
	client, _ := setupTestClient(t, handler)

	issues, err := client.FetchIssues(context.Background(), "mock", "repo", model.IssueSearchCriteria{
		Labels: []string{"bug", "good first issue"},
	})

	require.NoError(t, err)
	assert.True(t, handled, "request never reached the server")
	require.Len(t, issues, 1)
	assert.Equal(t, "labelled", issues[0].Title)
}

func TestClient_FetchRepositories_RateLimited(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "API rate limit exceeded"}`))
	})
	client, _ := setupTestClient(t, handler)

	_, err := client.FetchRepositories(context.Background(), model.SearchCriteria{
		MinStars: 1000,
		Language: "go",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestClient_FetchIssues_RateLimited(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "API rate limit exceeded"}`))
	})
	client, _ := setupTestClient(t, handler)

	issues, err := client.FetchIssues(context.Background(), "mock", "repo", model.IssueSearchCriteria{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Nil(t, issues)
}
