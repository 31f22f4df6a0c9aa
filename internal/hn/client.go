package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/zkhourdaji/hackernews/internal/config"
	"github.com/zkhourdaji/hackernews/internal/store"
)

const DefaultHitsPerPage = 100

// Result is one decoded page of hits.
type Result struct {
	Items []store.ResultItem
	Page  int
}

type searchResponse struct {
	Hits []hit `json:"hits"`
	Page int   `json:"page"`
}

// JSON nulls leave the zero value in place.
type hit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	NumComments int    `json:"num_comments"`
	Points      int    `json:"points"`
	CreatedAtI  int64  `json:"created_at_i"`
	StoryText   string `json:"story_text"`
}

func (h hit) toItem() store.ResultItem {
	item := store.ResultItem{
		ID:          h.ObjectID,
		Title:       h.Title,
		URL:         h.URL,
		Author:      h.Author,
		NumComments: h.NumComments,
		Points:      h.Points,
		StoryText:   h.StoryText,
	}
	if h.CreatedAtI > 0 {
		item.CreatedAt = time.Unix(h.CreatedAtI, 0)
	}
	return item
}

// Searcher is what the UI needs from the dispatcher.
type Searcher interface {
	Search(ctx context.Context, term string, page int) (Result, error)
}

// Client issues search requests against the Algolia Hacker News API. It does
// not serialize calls; callers decide when to fetch.
type Client struct {
	searchURL   string
	hitsPerPage int
	httpClient  *http.Client
	limiter     *rate.Limiter
	log         zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithHitsPerPage(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.hitsPerPage = n
		}
	}
}

// WithLimiter throttles outgoing requests. A nil limiter disables throttling.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log.With().Str("component", "hn").Logger() }
}

// NewClient creates a client for the given search endpoint, e.g.
// https://hn.algolia.com/api/v1/search.
func NewClient(searchURL string, opts ...Option) *Client {
	c := &Client{
		searchURL:   searchURL,
		hitsPerPage: DefaultHitsPerPage,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// New builds a client from the api section of the config.
func New(cfg *config.Config, log zerolog.Logger) *Client {
	return NewClient(cfg.SearchURL(),
		WithHitsPerPage(cfg.GetHitsPerPage()),
		WithHTTPClient(&http.Client{Timeout: cfg.TimeoutDuration()}),
		WithLimiter(rate.NewLimiter(rate.Limit(cfg.API.RequestsPerSecond), cfg.API.Burst)),
		WithLogger(log),
	)
}

type requestIDKey struct{}

// WithRequestID tags ctx so the request is logged under id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return xid.New().String()
}

func (c *Client) buildURL(term string, page int) (string, error) {
	u, err := url.Parse(c.searchURL)
	if err != nil {
		return "", fmt.Errorf("parsing search url: %w", err)
	}
	q := u.Query()
	q.Set("query", term)
	q.Set("page", strconv.Itoa(page))
	q.Set("hitsPerPage", strconv.Itoa(c.hitsPerPage))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Search fetches one page of hits for term. Every failure is returned as a
// *FetchError; nothing is retried.
func (c *Client) Search(ctx context.Context, term string, page int) (Result, error) {
	log := c.log.With().
		Str("request_id", requestID(ctx)).
		Str("term", term).
		Int("page", page).
		Logger()

	res, err := c.search(ctx, term, page)
	if err != nil {
		log.Warn().Err(err).Msg("Search request failed")
		return Result{}, &FetchError{Term: term, Page: page, Err: err}
	}
	log.Debug().Int("hits", len(res.Items)).Msg("Search request finished")
	return res, nil
}

func (c *Client) search(ctx context.Context, term string, page int) (Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Result{}, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	target, err := c.buildURL(term, page)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Result{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("decoding response: %w", err)
	}

	items := make([]store.ResultItem, 0, len(body.Hits))
	for _, h := range body.Hits {
		items = append(items, h.toItem())
	}
	return Result{Items: items, Page: body.Page}, nil
}
