package classify

import (
	"regexp"
	"strings"
)

// Kind is the Hacker News post type inferred from a story title.
type Kind string

const (
	Story  Kind = "Story"
	ShowHN Kind = "Show HN"
	AskHN  Kind = "Ask HN"
	Tell   Kind = "Tell HN"
	Launch Kind = "Launch HN"
	Job    Kind = "Job"
)

var prefixes = []Kind{ShowHN, AskHN, Tell, Launch}

// Matches "Acme (YC W21) is hiring", "Acme Is Hiring a ...", "We're hiring".
var hiringRe = regexp.MustCompile(`(?i)\b(is|are|we're|we are)\s+hiring\b`)

// Classify infers the kind of a story from its title. Prefix matching is
// case-insensitive and tolerates a missing colon ("Show HN Foo").
func Classify(title string) Kind {
	t := strings.TrimSpace(title)
	lower := strings.ToLower(t)
	for _, k := range prefixes {
		p := strings.ToLower(string(k))
		if !strings.HasPrefix(lower, p) {
			continue
		}
		rest := lower[len(p):]
		if rest == "" || rest[0] == ':' || rest[0] == ' ' {
			return k
		}
	}
	if hiringRe.MatchString(t) {
		return Job
	}
	return Story
}

// Short returns a compact tag for list rendering, or "" for plain stories.
func (k Kind) Short() string {
	switch k {
	case ShowHN:
		return "show"
	case AskHN:
		return "ask"
	case Tell:
		return "tell"
	case Launch:
		return "launch"
	case Job:
		return "job"
	default:
		return ""
	}
}
