package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ryo246912/gh-pulls/pkg/models"
)

var (
	openStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	closedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mergedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	draftStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Styler renders text with color only when enabled.
type Styler struct {
	Color bool
}

func (s Styler) render(style lipgloss.Style, text string) string {
	if !s.Color {
		return text
	}
	return style.Render(text)
}

// PRState returns the display state of a pull request: merged, draft,
// open or closed.
func PRState(pr models.PullRequest) string {
	switch {
	case pr.IsMerged():
		return "merged"
	case pr.IsDraft() && pr.IsOpen():
		return "draft"
	}
	return pr.State
}

// State renders a state word such as "open" or "merged".
func (s Styler) State(state string) string {
	switch strings.ToLower(state) {
	case "open":
		return s.render(openStyle, state)
	case "closed":
		return s.render(closedStyle, state)
	case "merged":
		return s.render(mergedStyle, state)
	case "draft":
		return s.render(draftStyle, state)
	}
	return state
}

func (s Styler) Heading(text string) string {
	return s.render(headingStyle, text)
}

func (s Styler) Label(name string) string {
	return s.render(labelStyle, name)
}

// Check renders a check run outcome.
func (s Styler) Check(run models.CheckRun) string {
	switch {
	case run.IsPending():
		return s.render(pendingStyle, "pending")
	case run.IsSuccessful():
		return s.render(openStyle, "pass")
	case run.IsFailed():
		return s.render(closedStyle, "fail")
	case run.IsSkipped():
		return s.render(draftStyle, "skipped")
	case run.IsNeutral():
		return s.render(draftStyle, "neutral")
	}
	if run.Conclusion != nil {
		return *run.Conclusion
	}
	return run.Status
}
