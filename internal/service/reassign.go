package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/ryo246912/gh-pulls/internal/github"
	"github.com/ryo246912/gh-pulls/internal/logger"
	"github.com/ryo246912/gh-pulls/internal/ui"
	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/pulls"
)

// ReassignService re-requests a review from someone who already reviewed
// or commented on a pull request
type ReassignService struct {
	prs      *pulls.Service
	picker   *Picker
	repo     github.RepositoryInfo
	prompter ui.Prompter
	ignored  []string
	bots     bool
}

// NewReassignService creates a new service instance
func NewReassignService(prs *pulls.Service, searcher github.PRSearcher, repo github.RepositoryInfo, prompter ui.Prompter) *ReassignService {
	return &ReassignService{
		prs:      prs,
		picker:   NewPicker(searcher, repo, prompter),
		repo:     repo,
		prompter: prompter,
	}
}

// IgnoreUsers excludes logins from the reviewer candidates
func (s *ReassignService) IgnoreUsers(logins []string) *ReassignService {
	s.ignored = append(s.ignored, logins...)
	return s
}

// IncludeBots keeps bot accounts among the reviewer candidates
func (s *ReassignService) IncludeBots(include bool) *ReassignService {
	s.bots = include
	return s
}

func (s *ReassignService) fullName() string {
	return s.repo.GetOwner() + "/" + s.repo.GetName()
}

// ProcessReassignment handles the complete workflow and returns the
// reviewer that was requested
func (s *ReassignService) ProcessReassignment(ctx context.Context, args []string) (string, error) {
	// Get current user
	self, err := s.prs.CurrentUser(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}

	// Get PR number from args or prompt
	prNumber, err := s.picker.PRNumber(ctx, args)
	if err != nil {
		return "", fmt.Errorf("failed to get PR number: %w", err)
	}
	ctx = logger.With(ctx, "pr", prNumber)

	pr, err := s.prs.Find(ctx, s.fullName(), prNumber)
	if err != nil {
		return "", err
	}

	// Get available reviewers
	reviewers, err := s.GetAvailableReviewers(ctx, pr, self.Login)
	if err != nil {
		return "", fmt.Errorf("failed to get reviewers and commenters: %w", err)
	}

	if len(reviewers) == 0 {
		return "", fmt.Errorf("no available reviewers to re-request")
	}

	// Select reviewer
	selectedReviewer, err := s.prompter.SelectReviewer(reviewers)
	if err != nil {
		return "", fmt.Errorf("failed to select reviewer: %w", err)
	}
	if err := s.ValidateReviewers([]string{selectedReviewer}, self.Login); err != nil {
		return "", err
	}

	// Confirm selection
	confirmed, err := s.prompter.Confirm(fmt.Sprintf("Re-request review from %s", selectedReviewer))
	if err != nil {
		return "", fmt.Errorf("failed to confirm selection: %w", err)
	}
	if !confirmed {
		return "", fmt.Errorf("reviewer selection cancelled")
	}

	if _, err := pr.RequestReviewer(ctx, selectedReviewer); err != nil {
		return "", fmt.Errorf("failed to reassign reviewers: %w", err)
	}
	logger.Info(ctx, "review re-requested", "reviewer", selectedReviewer)

	return selectedReviewer, nil
}

// ValidateReviewers checks if reviewers list is valid
func (s *ReassignService) ValidateReviewers(reviewers []string, self string) error {
	if len(reviewers) == 0 {
		return fmt.Errorf("no reviewers provided")
	}

	for _, reviewer := range reviewers {
		if reviewer == "" {
			return fmt.Errorf("reviewer name cannot be empty")
		}
		if reviewer == self {
			return fmt.Errorf("cannot assign yourself as reviewer")
		}
	}

	return nil
}

// GetAvailableReviewers collects reviewers and commenters of pr, in the
// order they first appear, without self, bots or ignored users
func (s *ReassignService) GetAvailableReviewers(ctx context.Context, pr *pulls.PullRequest, self string) ([]string, error) {
	reviews, err := pr.ReviewQuery().Get(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := pr.IssueComments(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(reviews)+len(comments))
	for _, review := range reviews {
		users = append(users, review.User)
	}
	for _, comment := range comments {
		users = append(users, comment.User)
	}

	seen := make(map[string]struct{}, len(users))
	available := []string{}
	for _, u := range users {
		if !s.isValidUser(u, self) {
			continue
		}
		if _, ok := seen[u.Login]; ok {
			continue
		}
		seen[u.Login] = struct{}{}
		available = append(available, u.Login)
	}
	logger.Debug(ctx, "collected reviewer candidates",
		"reviews", len(reviews), "comments", len(comments), "candidates", len(available))
	return available, nil
}

// isValidUser checks if user should be included as potential reviewer
func (s *ReassignService) isValidUser(u models.User, self string) bool {
	return u.Login != self &&
		u.Login != "" &&
		(s.bots || !u.IsBot()) &&
		!slices.Contains(s.ignored, u.Login)
}
