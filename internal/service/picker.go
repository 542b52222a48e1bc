package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/ryo246912/gh-pulls/internal/github"
	"github.com/ryo246912/gh-pulls/internal/ui"
)

var prURLPattern = regexp.MustCompile(`/pull/(\d+)(?:[/?#].*)?$`)

// Picker resolves the pull request a command acts on
type Picker struct {
	searcher github.PRSearcher
	repo     github.RepositoryInfo
	prompter ui.Prompter
}

// NewPicker creates a picker for repo
func NewPicker(searcher github.PRSearcher, repo github.RepositoryInfo, prompter ui.Prompter) *Picker {
	return &Picker{searcher: searcher, repo: repo, prompter: prompter}
}

// PRNumber takes the number from args[0], or prompts with the open pull
// requests assigned to the viewer when args is empty.
func (p *Picker) PRNumber(ctx context.Context, args []string) (int, error) {
	if len(args) >= 1 {
		return ParsePRNumber(args[0])
	}

	prs, err := p.searcher.GetAssignedPRs(ctx, p.repo.GetOwner(), p.repo.GetName())
	if err != nil {
		return 0, fmt.Errorf("failed to get assigned PRs: %w", err)
	}

	return p.prompter.SelectPR(prs)
}

// ParsePRNumber accepts "123", "#123" or a pull request URL.
func ParsePRNumber(arg string) (int, error) {
	if m := prURLPattern.FindStringSubmatch(arg); m != nil {
		arg = m[1]
	} else if len(arg) > 0 && arg[0] == '#' {
		arg = arg[1:]
	}
	prNumber, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid PR number: %w", err)
	}
	if prNumber <= 0 {
		return 0, fmt.Errorf("PR number must be positive")
	}
	return prNumber, nil
}
