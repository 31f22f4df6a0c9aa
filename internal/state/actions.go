package state

import "github.com/zkhourdaji/hackernews/internal/store"

// Action is any input to Reduce.
type Action interface {
	isAction()
}

// SearchChanged is a keystroke in the search box.
type SearchChanged struct {
	Term string
}

// SearchSubmitted makes the typed term active. RequestID tags the fetch it may
// start.
type SearchSubmitted struct {
	RequestID string
}

// LoadMore asks for the page after the active term's current page.
type LoadMore struct {
	RequestID string
}

type FetchSucceeded struct {
	RequestID string
	Term      string
	Page      int
	Items     []store.ResultItem
}

type FetchFailed struct {
	RequestID string
	Term      string
	Page      int
	Err       error
}

// Dismissed removes one item from the active term's results.
type Dismissed struct {
	ID string
}

// FilterChanged narrows the visible items by title without touching the cache.
type FilterChanged struct {
	Filter string
}

func (SearchChanged) isAction()   {}
func (SearchSubmitted) isAction() {}
func (LoadMore) isAction()        {}
func (FetchSucceeded) isAction()  {}
func (FetchFailed) isAction()     {}
func (Dismissed) isAction()       {}
func (FilterChanged) isAction()   {}

// Effect is a fetch the caller must run. Its outcome comes back as
// FetchSucceeded or FetchFailed carrying the same RequestID, Term and Page.
type Effect struct {
	RequestID string
	Term      string
	Page      int
}
