package github

import (
	"context"
	"fmt"

	"github.com/ryo246912/gh-pulls/pkg/models"
)

// MockClient implements PRSearcher for testing
type MockClient struct {
	// Control test behavior
	AssignedPRs      []models.PullRequestSummary
	AssignedPRsError error
	SearchResults    []models.PullRequestSummary
	SearchError      error

	// Track method calls
	GetAssignedPRsCalled bool
	SearchPRsCalled      bool

	// Store call arguments for verification
	LastOwner string
	LastRepo  string
	LastQuery string
	LastLimit int
}

// GetAssignedPRs mocks the assigned pull request search
func (m *MockClient) GetAssignedPRs(ctx context.Context, owner, repo string) ([]models.PullRequestSummary, error) {
	m.GetAssignedPRsCalled = true
	m.LastOwner = owner
	m.LastRepo = repo
	return m.AssignedPRs, m.AssignedPRsError
}

// SearchPRs mocks a free form search
func (m *MockClient) SearchPRs(ctx context.Context, query string, limit int) ([]models.PullRequestSummary, error) {
	m.SearchPRsCalled = true
	m.LastQuery = query
	m.LastLimit = limit
	return m.SearchResults, m.SearchError
}

// Reset clears all tracking data for fresh test
func (m *MockClient) Reset() {
	m.GetAssignedPRsCalled = false
	m.SearchPRsCalled = false
	m.LastOwner = ""
	m.LastRepo = ""
	m.LastQuery = ""
	m.LastLimit = 0
}

// MockRepository implements repository information for testing
type MockRepository struct {
	Owner string
	Name  string
}

func (m *MockRepository) GetOwner() string {
	return m.Owner
}

func (m *MockRepository) GetName() string {
	return m.Name
}

// CreateTestPRs builds count open summaries, alternating draft state
func CreateTestPRs(count int) []models.PullRequestSummary {
	prs := make([]models.PullRequestSummary, count)
	for i := 0; i < count; i++ {
		prs[i] = models.PullRequestSummary{
			Number:    i + 1,
			Title:     fmt.Sprintf("Test PR #%d", i+1),
			User:      fmt.Sprintf("user%d", i+1),
			State:     "OPEN",
			Draft:     i%2 == 0,
			UpdatedAt: "2023-01-01T12:00:00Z",
			CreatedAt: "2023-01-01T10:00:00Z",
		}
	}
	return prs
}

// NewAPIError builds an error for testing failure paths
func NewAPIError(message string) error {
	return fmt.Errorf("API error: %s", message)
}
