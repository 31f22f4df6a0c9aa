package history

import "time"

// Entry is one remembered search term.
type Entry struct {
	Term     string
	Count    int
	LastUsed time.Time
}
