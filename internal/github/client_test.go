package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRepositories(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/octocat/repos", r.URL.Path)
			assert.Equal(t, "5", r.URL.Query().Get("per_page"))
			assert.Equal(t, "created:asc", r.URL.Query().Get("sort"))
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			assert.Empty(t, r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"id":1,"name":"hello-world","full_name":"octocat/hello-world","stargazers_count":80},
				{"id":2,"name":"spoon-knife","forks_count":12}
			]`))
		}))
		defer upstream.Close()

		client := NewClient(upstream.URL, "")
		repos, err := client.ListRepositories(context.Background(), "octocat")
		require.NoError(t, err)
		require.Len(t, repos, 2)
		assert.Equal(t, "hello-world", repos[0].Name)
		assert.Equal(t, 80, repos[0].Stargazers)
		assert.Equal(t, 12, repos[1].Forks)
	})

	t.Run("token is forwarded", func(t *testing.T) {
		t.Parallel()
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`[]`))
		}))
		defer upstream.Close()

		client := NewClient(upstream.URL, "gh-token")
		_, err := client.ListRepositories(context.Background(), "octocat")
		require.NoError(t, err)
	})

	t.Run("non-200 is a lookup error", func(t *testing.T) {
		t.Parallel()
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer upstream.Close()

		client := NewClient(upstream.URL, "")
		_, err := client.ListRepositories(context.Background(), "nobody")
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeExternalLookup))
		assert.Contains(t, err.Error(), "No Github profile found")
	})

	t.Run("unreachable host is a lookup error", func(t *testing.T) {
		t.Parallel()
		client := NewClient("http://127.0.0.1:1", "")
		_, err := client.ListRepositories(context.Background(), "octocat")
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeExternalLookup))
	})

	t.Run("malformed payload is a lookup error", func(t *testing.T) {
		t.Parallel()
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"an array"}`))
		}))
		defer upstream.Close()

		client := NewClient(upstream.URL, "")
		_, err := client.ListRepositories(context.Background(), "octocat")
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeExternalLookup))
	})
}
