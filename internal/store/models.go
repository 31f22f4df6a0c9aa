package store

import "time"

// ResultItem is a single hit returned by the search backend. ID is unique
// across the corpus.
type ResultItem struct {
	ID          string
	Title       string
	URL         string
	Author      string
	NumComments int
	Points      int
	CreatedAt   time.Time
	StoryText   string
}

// DiscussionURL returns the Hacker News comment page for the item.
func (r ResultItem) DiscussionURL() string {
	return "https://news.ycombinator.com/item?id=" + r.ID
}

// Link is the article URL, or the discussion page for text posts.
func (r ResultItem) Link() string {
	if r.URL == "" {
		return r.DiscussionURL()
	}
	return r.URL
}

// PagedResultSet holds every item fetched so far for one term, oldest page
// first, and the last page number that was merged in.
type PagedResultSet struct {
	Items []ResultItem
	Page  int
}
