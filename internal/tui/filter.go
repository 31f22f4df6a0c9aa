package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// termsBar is the tab row of cached terms. Terms keep the order they first
// appeared in so the number keys stay stable.
type termsBar struct {
	terms  []string
	active string
}

// sync makes the bar list exactly the cached terms. Known terms keep their
// position and new ones are appended in the order given.
func (t *termsBar) sync(cached []string) {
	present := make(map[string]bool, len(cached))
	for _, term := range cached {
		present[term] = true
	}
	kept := t.terms[:0]
	seen := make(map[string]bool, len(t.terms))
	for _, term := range t.terms {
		if present[term] {
			kept = append(kept, term)
			seen[term] = true
		}
	}
	for _, term := range cached {
		if !seen[term] {
			kept = append(kept, term)
		}
	}
	t.terms = kept
}

// at returns the term for the 1-based index shown on its tab.
func (t *termsBar) at(n int) (string, bool) {
	if n < 1 || n > len(t.terms) {
		return "", false
	}
	return t.terms[n-1], true
}

func (t *termsBar) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")

	var row string
	for i, term := range t.terms {
		style := tabInactiveStyle
		if term == t.active {
			style = tabActiveStyle
		}
		label := term
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, term)
		}
		part := style.Render(label)

		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		// stop when we'd exceed width
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}
	if row == "" {
		row = tabSeparatorStyle.Render("no searches yet · press / to search")
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
