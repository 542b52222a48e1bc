package github

import (
	"context"

	"github.com/ryo246912/gh-pulls/pkg/models"
)

// PRSearcher finds pull requests to offer in pickers
type PRSearcher interface {
	GetAssignedPRs(ctx context.Context, owner, repo string) ([]models.PullRequestSummary, error)
	SearchPRs(ctx context.Context, query string, limit int) ([]models.PullRequestSummary, error)
}

// RepositoryInfo defines repository information interface
type RepositoryInfo interface {
	GetOwner() string
	GetName() string
}

// Ensure Client implements PRSearcher interface
var _ PRSearcher = (*Client)(nil)
