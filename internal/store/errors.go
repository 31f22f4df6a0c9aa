package store

import (
	"errors"
	"fmt"
)

// ErrLookup matches any *LookupError via errors.Is.
var ErrLookup = errors.New("term not cached")

// LookupError reports an operation against a term that has no cached entry.
type LookupError struct {
	Term string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %q: %v", e.Term, ErrLookup)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}
