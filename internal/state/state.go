package state

import (
	"strings"

	"github.com/zkhourdaji/hackernews/internal/store"
)

// State is the whole UI state. Values are treated as immutable: Reduce
// returns a new State and leaves its input alone.
type State struct {
	Cache      store.Cache
	SearchTerm string // what is typed in the search box
	ActiveTerm string // last submitted term, the one being displayed
	Filter     string
	Err        error

	pending map[string]Effect
}

// New returns the state for a fresh session with term pre-filled.
func New(term string) State {
	return State{Cache: store.New(), SearchTerm: term}
}

// Loading reports whether any fetch is still in flight.
func (s State) Loading() bool {
	return len(s.pending) > 0
}

// inFlight reports whether a fetch for term and page is already pending.
func (s State) inFlight(term string, page int) bool {
	for _, e := range s.pending {
		if e.Term == term && e.Page == page {
			return true
		}
	}
	return false
}

// Items returns every cached item for the active term.
func (s State) Items() []store.ResultItem {
	return s.Cache.CurrentItems(s.ActiveTerm)
}

// Page returns the active term's current page.
func (s State) Page() int {
	return s.Cache.CurrentPage(s.ActiveTerm)
}

// Visible returns the active term's items whose title contains the filter,
// case-insensitively.
func (s State) Visible() []store.ResultItem {
	items := s.Items()
	if s.Filter == "" {
		return items
	}
	needle := strings.ToLower(s.Filter)
	out := make([]store.ResultItem, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Title), needle) {
			out = append(out, it)
		}
	}
	return out
}

func (s State) withPending(e Effect) State {
	next := make(map[string]Effect, len(s.pending)+1)
	for k, v := range s.pending {
		next[k] = v
	}
	next[e.RequestID] = e
	s.pending = next
	return s
}

func (s State) withoutPending(id string) State {
	if _, ok := s.pending[id]; !ok {
		return s
	}
	next := make(map[string]Effect, len(s.pending))
	for k, v := range s.pending {
		if k != id {
			next[k] = v
		}
	}
	s.pending = next
	return s
}

// Reduce applies a to s. A non-nil Effect asks the caller to start a fetch.
// The only error is a *store.LookupError from Dismissed against a term that
// was never fetched; s is returned unchanged in that case.
func Reduce(s State, a Action) (State, *Effect, error) {
	switch a := a.(type) {
	case SearchChanged:
		s.SearchTerm = a.Term
		return s, nil, nil

	case SearchSubmitted:
		s.ActiveTerm = s.SearchTerm
		s.Err = nil
		if !s.Cache.NeedsFetch(s.ActiveTerm) || s.inFlight(s.ActiveTerm, 0) {
			return s, nil, nil
		}
		e := Effect{RequestID: a.RequestID, Term: s.ActiveTerm, Page: 0}
		return s.withPending(e), &e, nil

	case LoadMore:
		if s.Cache.NeedsFetch(s.ActiveTerm) {
			return s, nil, nil
		}
		s.Err = nil
		e := Effect{RequestID: a.RequestID, Term: s.ActiveTerm, Page: s.Cache.CurrentPage(s.ActiveTerm) + 1}
		return s.withPending(e), &e, nil

	case FetchSucceeded:
		// Merged under the term the request was issued for, even if the user
		// has moved on. Err belongs to the active term only.
		s.Cache = s.Cache.Merge(a.Term, a.Items, a.Page)
		if a.Term == s.ActiveTerm {
			s.Err = nil
		}
		return s.withoutPending(a.RequestID), nil, nil

	case FetchFailed:
		if a.Term == s.ActiveTerm {
			s.Err = a.Err
		}
		return s.withoutPending(a.RequestID), nil, nil

	case Dismissed:
		cache, err := s.Cache.Dismiss(s.ActiveTerm, a.ID)
		if err != nil {
			return s, nil, err
		}
		s.Cache = cache
		return s, nil, nil

	case FilterChanged:
		s.Filter = a.Filter
		return s, nil, nil
	}
	return s, nil, nil
}
