package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/ryo246912/gh-pulls/pkg/models"
)

// FormatSummary formats a picker row for a pull request summary.
func FormatSummary(pr models.PullRequestSummary) string {
	state := pr.State
	if pr.Draft {
		state += " (Draft)"
	}
	return fmt.Sprintf(
		"#%s %s %s %s %s",
		PadRight(fmt.Sprintf("%-6d", pr.Number), 7),
		Cell(pr.Title, 75),
		PadRight(pr.User, 15),
		PadRight(state, 14),
		PadRight(pr.UpdatedAt, 20),
	)
}

func searcher(items []string) func(string, int) bool {
	return func(input string, index int) bool {
		return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
	}
}

func SelectPR(prs []models.PullRequestSummary) (int, error) {
	if len(prs) == 0 {
		return 0, fmt.Errorf("no assigned pull requests found")
	}

	items := make([]string, len(prs))
	for i, pr := range prs {
		items[i] = FormatSummary(pr)
	}

	prompt := promptui.Select{
		Label:             "Select PR",
		Items:             items,
		Size:              12,
		Searcher:          searcher(items),
		StartInSearchMode: true,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("prompt failed: %w", err)
	}
	return prs[idx].Number, nil
}

// SelectReviewer shows reviewer selection prompt
func SelectReviewer(reviewers []string) (string, error) {
	if len(reviewers) == 0 {
		return "", fmt.Errorf("no available reviewers")
	}

	prompt := promptui.Select{
		Label:             "Select reviewer",
		Items:             reviewers,
		Size:              12,
		Searcher:          searcher(reviewers),
		StartInSearchMode: true,
	}

	_, selectedReviewer, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("reviewer selection failed: %w", err)
	}

	return selectedReviewer, nil
}

// Confirm asks a yes/no question. Answering no is not an error.
func Confirm(message string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     message,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return true, nil
}
