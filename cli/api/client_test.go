package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogctl/pkg/config"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token() string { return s.token }

func testConfig(baseURL string) *config.Config {
	cfg := config.Default()
	cfg.API.BaseURL = baseURL
	cfg.API.Timeout = 5 * time.Second
	return cfg
}

func TestNewClient(t *testing.T) {
	t.Run("Should create client with valid config", func(t *testing.T) {
		client, err := NewClient(testConfig("http://localhost:5000/api"), &staticTokens{})
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "http://localhost:5000/api", client.BaseURL())
	})

	t.Run("Should reject missing config", func(t *testing.T) {
		client, err := NewClient(nil, &staticTokens{})
		require.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("Should reject relative base URL", func(t *testing.T) {
		_, err := NewClient(testConfig("localhost:5000"), &staticTokens{})
		require.Error(t, err)
	})

	t.Run("Should reject non-http scheme", func(t *testing.T) {
		_, err := NewClient(testConfig("ftp://localhost/api"), &staticTokens{})
		require.Error(t, err)
	})
}

func TestClientAuthorization(t *testing.T) {
	t.Run("Should attach bearer token when signed in", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]any{})
		}))
		defer server.Close()

		client, err := NewClient(testConfig(server.URL), &staticTokens{token: "session-token"})
		require.NoError(t, err)
		require.NoError(t, client.get(context.Background(), "/profile", &map[string]any{}))
		assert.Equal(t, "Bearer session-token", gotAuth)
	})

	t.Run("Should omit authorization header when signed out", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]any{})
		}))
		defer server.Close()

		client, err := NewClient(testConfig(server.URL), &staticTokens{})
		require.NoError(t, err)
		require.NoError(t, client.get(context.Background(), "/posts", &[]Post{}))
		assert.Empty(t, gotAuth)
	})
}

func TestClientErrors(t *testing.T) {
	t.Run("Should surface server error message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
		}))
		defer server.Close()

		client, err := NewClient(testConfig(server.URL), &staticTokens{})
		require.NoError(t, err)
		err = client.get(context.Background(), "/profile", &User{})
		require.Error(t, err)

		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "invalid credentials", apiErr.Message)
		assert.True(t, IsAuthRejection(err))
	})

	t.Run("Should fall back to generic message when body has no error field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{}`)
		}))
		defer server.Close()

		client, err := NewClient(testConfig(server.URL), &staticTokens{})
		require.NoError(t, err)
		err = client.get(context.Background(), "/stats", &Stats{})
		require.Error(t, err)

		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
		assert.NotEmpty(t, apiErr.Message)
		assert.False(t, IsAuthRejection(err))
	})

	t.Run("Should not retry failed requests", func(t *testing.T) {
		attempts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			attempts++
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
		}))
		defer server.Close()

		client, err := NewClient(testConfig(server.URL), &staticTokens{})
		require.NoError(t, err)
		require.Error(t, client.get(context.Background(), "/posts", &[]Post{}))
		assert.Equal(t, 1, attempts)
	})

	t.Run("Should report 404 as not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "post not found"})
		}))
		defer server.Close()

		client, err := NewClient(testConfig(server.URL), &staticTokens{})
		require.NoError(t, err)
		_, err = NewPostService(client).Get(context.Background(), 42)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})
}

func TestPostServiceCommentCounts(t *testing.T) {
	t.Run("Should decorate posts with comment counts", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/posts", func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode([]Post{{ID: 1, Title: "first"}, {ID: 2, Title: "second"}})
		})
		mux.HandleFunc("/posts/1/comments", func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode([]Comment{{ID: 10, PostID: 1}, {ID: 11, PostID: 1}})
		})
		mux.HandleFunc("/posts/2/comments", func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode([]Comment{})
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client, err := NewClient(testConfig(server.URL), &staticTokens{})
		require.NoError(t, err)
		posts, err := NewPostService(client).List(context.Background())
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, 2, posts[0].CommentsCount)
		assert.Equal(t, 0, posts[1].CommentsCount)
	})

	t.Run("Should leave count at zero when the lookup fails", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/posts", func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode([]Post{{ID: 7, Title: "lonely"}})
		})
		mux.HandleFunc("/posts/7/comments", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client, err := NewClient(testConfig(server.URL), &staticTokens{})
		require.NoError(t, err)
		posts, err := NewPostService(client).List(context.Background())
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, 0, posts[0].CommentsCount)
	})
}

func TestUserService(t *testing.T) {
	t.Run("Should send role change body", func(t *testing.T) {
		var gotBody map[string]string
		mux := http.NewServeMux()
		mux.HandleFunc("/users/3/role", func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(User{ID: 3, Role: RoleModerator})
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client, err := NewClient(testConfig(server.URL), &staticTokens{token: "tok"})
		require.NoError(t, err)
		updated, err := NewUserService(client).SetRole(context.Background(), 3, RoleModerator)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"role": "moderator"}, gotBody)
		assert.Equal(t, RoleModerator, updated.Role)
	})

	t.Run("Should send status change body", func(t *testing.T) {
		var gotBody map[string]bool
		mux := http.NewServeMux()
		mux.HandleFunc("/users/4/status", func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(User{ID: 4, IsActive: false})
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client, err := NewClient(testConfig(server.URL), &staticTokens{token: "tok"})
		require.NoError(t, err)
		updated, err := NewUserService(client).SetStatus(context.Background(), 4, false)
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"is_active": false}, gotBody)
		assert.False(t, updated.IsActive)
	})
}
