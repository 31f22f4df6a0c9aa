package hn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/zkhourdaji/hackernews/internal/config"
)

const sampleBody = `{
  "hits": [
    {"objectID": "1", "title": "Redux", "url": "https://redux.js.org/", "author": "gaearon",
     "num_comments": 2, "points": 5, "created_at_i": 1438214400},
    {"objectID": "2", "title": "Ask HN: state?", "url": null, "author": "pg",
     "num_comments": null, "points": null, "story_text": "<p>which one</p>"}
  ],
  "page": 3,
  "nbPages": 10
}`

func TestSearchDecodesHits(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/search", r.URL.Path)
		q := r.URL.Query()
		gotQuery = map[string]string{
			"query":       q.Get("query"),
			"page":        q.Get("page"),
			"hitsPerPage": q.Get("hitsPerPage"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api/v1/search")
	res, err := c.Search(context.Background(), "redux toolkit", 3)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"query": "redux toolkit", "page": "3", "hitsPerPage": "100"}, gotQuery)
	assert.Equal(t, 3, res.Page)
	require.Len(t, res.Items, 2)

	first := res.Items[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Redux", first.Title)
	assert.Equal(t, "https://redux.js.org/", first.URL)
	assert.Equal(t, "gaearon", first.Author)
	assert.Equal(t, 2, first.NumComments)
	assert.Equal(t, 5, first.Points)
	assert.Equal(t, time.Unix(1438214400, 0), first.CreatedAt)

	second := res.Items[1]
	assert.Equal(t, "2", second.ID)
	assert.Empty(t, second.URL)
	assert.Zero(t, second.NumComments)
	assert.Zero(t, second.Points)
	assert.True(t, second.CreatedAt.IsZero())
	assert.Equal(t, "<p>which one</p>", second.StoryText)
}

func TestSearchHitsPerPageOption(t *testing.T) {
	var hpp string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hpp = r.URL.Query().Get("hitsPerPage")
		w.Write([]byte(`{"hits": [], "page": 0}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHitsPerPage(25))
	res, err := c.Search(context.Background(), "go", 0)
	require.NoError(t, err)
	assert.Equal(t, "25", hpp)
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
}

func TestSearchExactlyOneRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Search(context.Background(), "redux", 1)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "failed requests must not be retried")
}

func TestSearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Search(context.Background(), "redux", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "redux", fe.Term)
	assert.Equal(t, 1, fe.Page)
	assert.Contains(t, fe.Error(), "500")
}

func TestSearchDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits": [`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Search(context.Background(), "redux", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
	assert.Contains(t, err.Error(), "decoding response")
}

func TestSearchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Search(context.Background(), "redux", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.NotNil(t, errors.Unwrap(fe))
}

func TestSearchCancelledWhileThrottled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits": [], "page": 0}`))
	}))
	defer srv.Close()

	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	c := NewClient(srv.URL, WithLimiter(limiter))

	_, err := c.Search(context.Background(), "first", 0)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Search(ctx, "second", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
}

func TestNewFromConfig(t *testing.T) {
	var hpp string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		hpp = r.URL.Query().Get("hitsPerPage")
		w.Write([]byte(`{"hits": [{"objectID": "9"}], "page": 0}`))
	}))
	defer srv.Close()

	cfg := &config.Config{API: config.APIConfig{
		BaseURL:           srv.URL + "/v1",
		SearchPath:        "/search",
		HitsPerPage:       10,
		Timeout:           "5s",
		RequestsPerSecond: 100,
		Burst:             1,
	}}
	res, err := New(cfg, zerolog.Nop()).Search(WithRequestID(context.Background(), "req-1"), "x", 0)
	require.NoError(t, err)
	assert.Equal(t, "10", hpp)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "9", res.Items[0].ID)
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "abc", requestID(WithRequestID(context.Background(), "abc")))
	assert.NotEmpty(t, requestID(context.Background()))
}
