package store

import "sort"

// Cache maps a search term to the results fetched for it. A Cache value is
// never mutated: Merge and Dismiss return a new Cache that shares the
// untouched entries with the old one. The zero value is an empty cache.
type Cache struct {
	entries map[string]PagedResultSet
}

// New returns an empty cache.
func New() Cache {
	return Cache{}
}

func (c Cache) with(term string, set PagedResultSet) Cache {
	next := make(map[string]PagedResultSet, len(c.entries)+1)
	for k, v := range c.entries {
		next[k] = v
	}
	next[term] = set
	return Cache{entries: next}
}

// Merge appends items to whatever is cached for term and records page as the
// term's current page. Items are not de-duplicated across pages.
func (c Cache) Merge(term string, items []ResultItem, page int) Cache {
	prior := c.entries[term].Items
	merged := make([]ResultItem, 0, len(prior)+len(items))
	merged = append(merged, prior...)
	merged = append(merged, items...)
	return c.with(term, PagedResultSet{Items: merged, Page: page})
}

// Dismiss removes the item with the given id from term's results. The page is
// left as is. Dismissing an id that is not present is a no-op, but term must
// already be cached.
func (c Cache) Dismiss(term, id string) (Cache, error) {
	set, ok := c.entries[term]
	if !ok {
		return c, &LookupError{Term: term}
	}
	kept := make([]ResultItem, 0, len(set.Items))
	for _, item := range set.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	return c.with(term, PagedResultSet{Items: kept, Page: set.Page}), nil
}

// NeedsFetch reports whether term has never been fetched. It only checks
// presence: a cached term never needs a fetch, even if more pages exist.
func (c Cache) NeedsFetch(term string) bool {
	_, ok := c.entries[term]
	return !ok
}

// CurrentPage returns the last merged page for term, or 0.
func (c Cache) CurrentPage(term string) int {
	return c.entries[term].Page
}

// CurrentItems returns a copy of the cached items for term, or an empty slice.
func (c Cache) CurrentItems(term string) []ResultItem {
	items := c.entries[term].Items
	out := make([]ResultItem, len(items))
	copy(out, items)
	return out
}

// Lookup returns the full entry for term. The items are a copy.
func (c Cache) Lookup(term string) (PagedResultSet, bool) {
	set, ok := c.entries[term]
	if !ok {
		return PagedResultSet{}, false
	}
	items := make([]ResultItem, len(set.Items))
	copy(items, set.Items)
	return PagedResultSet{Items: items, Page: set.Page}, true
}

// Len returns the number of cached terms.
func (c Cache) Len() int {
	return len(c.entries)
}

// Terms lists every cached term in lexical order.
func (c Cache) Terms() []string {
	terms := make([]string, 0, len(c.entries))
	for t := range c.entries {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}
