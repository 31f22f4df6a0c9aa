package hn

import (
	"errors"
	"fmt"
)

// ErrFetch matches any *FetchError via errors.Is.
var ErrFetch = errors.New("search request failed")

// FetchError wraps a transport, status or decode failure for one (term, page)
// request.
type FetchError struct {
	Term string
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("searching %q page %d: %v", e.Term, e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
