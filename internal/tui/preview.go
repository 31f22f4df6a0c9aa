package tui

import (
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zkhourdaji/hackernews/internal/classify"
	"github.com/zkhourdaji/hackernews/internal/store"
)

func renderPreview(it *store.ResultItem, width, height, scroll int) string {
	if it == nil {
		return lipglossCenter("Select a story", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(displayTitle(*it))
	meta := "by " + it.Author
	if kind := classify.Classify(it.Title); kind != classify.Story {
		meta = string(kind) + " " + meta
	}
	if !it.CreatedAt.IsZero() {
		meta += " · " + it.CreatedAt.Format("Jan 2, 2006")
	}
	byline := previewMetaStyle.Render(meta)
	stats := previewBodyStyle.Render(plural(it.Points, "point") + " · " + plural(it.NumComments, "comment"))

	parts := []string{title, byline, stats}
	if text := stripHTML(it.StoryText); text != "" {
		parts = append(parts, "", previewBodyStyle.Width(contentWidth).Render(wrapText(text, contentWidth)))
	}
	parts = append(parts,
		previewLinkStyle.Width(contentWidth).Render("Link: "+it.Link()),
		previewLinkStyle.UnsetMarginTop().Width(contentWidth).Render("Discuss: "+it.DiscussionURL()),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

// stripHTML drops tags, decodes entities and collapses whitespace. Paragraph
// tags in story text become spaces.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
