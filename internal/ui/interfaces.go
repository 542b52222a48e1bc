package ui

import "github.com/ryo246912/gh-pulls/pkg/models"

// Prompter defines interface for user interaction
type Prompter interface {
	SelectPR(prs []models.PullRequestSummary) (int, error)
	SelectReviewer(reviewers []string) (string, error)
	Confirm(message string) (bool, error)
}

// DefaultPrompter implements the actual prompting logic
type DefaultPrompter struct{}

// SelectPR prompts user to select a PR
func (p *DefaultPrompter) SelectPR(prs []models.PullRequestSummary) (int, error) {
	return SelectPR(prs)
}

// SelectReviewer prompts user to select a reviewer
func (p *DefaultPrompter) SelectReviewer(reviewers []string) (string, error) {
	return SelectReviewer(reviewers)
}

// Confirm prompts user to confirm an action
func (p *DefaultPrompter) Confirm(message string) (bool, error) {
	return Confirm(message)
}

// MockPrompter for testing
type MockPrompter struct {
	SelectedPRNumber int
	PRSelectionError error

	SelectedReviewer       string
	ReviewerSelectionError error

	Confirmed         bool
	ConfirmationError error

	// Call tracking
	SelectPRCalled       bool
	SelectReviewerCalled bool
	ConfirmCalled        bool
	LastReviewers        []string
	LastMessage          string
}

// SelectPR mocks PR selection
func (m *MockPrompter) SelectPR(prs []models.PullRequestSummary) (int, error) {
	m.SelectPRCalled = true
	return m.SelectedPRNumber, m.PRSelectionError
}

// SelectReviewer mocks reviewer selection
func (m *MockPrompter) SelectReviewer(reviewers []string) (string, error) {
	m.SelectReviewerCalled = true
	m.LastReviewers = reviewers
	return m.SelectedReviewer, m.ReviewerSelectionError
}

// Confirm mocks confirmation
func (m *MockPrompter) Confirm(message string) (bool, error) {
	m.ConfirmCalled = true
	m.LastMessage = message
	return m.Confirmed, m.ConfirmationError
}
