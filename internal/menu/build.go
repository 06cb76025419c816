package menu

import (
	"fmt"
	"strings"

	"github.com/gnomegl/dronebar/internal/models"
)

const entryLength = 50

// DisplayTitle derives the one-line menu text for a build. Pull
// request builds use the PR title, builds targeting the base branch
// use the commit message, and anything else is not displayable.
func DisplayTitle(b models.Build, baseBranch string) (string, bool) {
	var text string
	switch {
	case b.Event == models.EventPullRequest:
		text = b.Title
	case b.Target == baseBranch:
		text = b.Message
	default:
		return "", false
	}
	return truncate(firstLine(text)), true
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= entryLength {
		return s
	}
	return string(runes[:entryLength]) + "…"
}

func statusColor(s models.Status) Color {
	switch {
	case s.InProgress():
		return Orange
	case s == models.StatusFailure:
		return Red
	default:
		return Green
	}
}

// Build renders one build: a colored menu line linking to the build,
// a submenu with the source ref, PR helpers for pull_request events,
// and an alternate line with the build's origin. Builds with no
// displayable title are skipped silently.
func (m *Menu) Build(b models.Build, baseBranch string) {
	title, ok := DisplayTitle(b, baseBranch)
	if !ok {
		return
	}

	m.Add(Line{Text: title, Color: statusColor(b.Status), Href: b.Link, Length: entryLength})
	m.Sub(Line{Text: b.Source})

	if b.Event == models.EventPullRequest {
		m.Sub(Line{Text: "View pull request", Href: strings.TrimSuffix(b.Link, ".diff")})
		// The copy action is only described here; the host runs it.
		m.Sub(Line{
			Text:   "Copy branch name",
			Bash:   "/bin/bash",
			Params: []string{"-c", fmt.Sprintf("echo -n '%s' | pbcopy", b.Source)},
		})
	}

	m.Add(Line{
		Text:      fmt.Sprintf("%s from %s on %s", b.Event, b.AuthorLogin, b.Repo.Slug),
		Alternate: true,
	})
}
