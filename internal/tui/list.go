package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/zkhourdaji/hackernews/internal/classify"
	"github.com/zkhourdaji/hackernews/internal/store"
)

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	case d < 365*24*time.Hour:
		return t.Format("Jan 2")
	default:
		return t.Format("Jan 2006")
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func itemMeta(it store.ResultItem) string {
	parts := []string{plural(it.Points, "point"), plural(it.NumComments, "comment")}
	if ago := relativeTime(it.CreatedAt); ago != "" {
		parts = append(parts, ago)
	}
	return strings.Join(parts, " · ")
}

func displayTitle(it store.ResultItem) string {
	if it.Title == "" {
		return "(untitled)"
	}
	return it.Title
}

func renderListItem(it store.ResultItem, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(displayTitle(it), width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(displayTitle(it), width-4))
	}

	meta := "  "
	if tag := classify.Classify(it.Title).Short(); tag != "" {
		meta += kindTagStyle.Render("["+tag+"]") + " "
	}
	meta += itemAuthorStyle.Render(it.Author) + " " + itemMetaStyle.Render("· "+itemMeta(it))

	return title + "\n" + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// visibleRange returns the [start, end) window of n items that keeps cursor
// on screen when only visible items fit.
func visibleRange(n, cursor, visible int) (int, int) {
	if visible < 1 {
		visible = 1
	}
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > n {
		end = n
		start = end - visible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

func renderList(items []store.ResultItem, cursor int, height int, width int, emptyMsg string) string {
	if len(items) == 0 {
		return lipglossCenter(emptyMsg, width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	start, end := visibleRange(len(items), cursor, height/3)

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(items[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
