package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type statusInfo struct {
	shown, total int
	page         int
	filter       string
	recent       []string
	mode         mode
	loading      bool
	cached       int
}

func renderStatusBar(s statusInfo, width int) string {
	left := fmt.Sprintf(" %d stories · page %d", s.total, s.page+1)
	if s.filter != "" {
		left = fmt.Sprintf(" %d/%d stories · page %d · filter %q", s.shown, s.total, s.page+1, s.filter)
	}
	if s.cached > 1 {
		left += fmt.Sprintf(" · %d terms cached", s.cached)
	}
	if s.loading {
		left += " (loading...)"
	}
	if len(s.recent) > 0 && s.mode == modeNormal && width > 100 {
		left += " · recent: " + joinLimited(s.recent, 3)
	}

	right := " / search  m more  d dismiss  f filter  ? help "
	switch s.mode {
	case modeSearch:
		right = " esc cancel  enter search "
	case modeFilter:
		right = " esc clear  enter keep "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

func joinLimited(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
