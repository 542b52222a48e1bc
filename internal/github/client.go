package github

import (
	"context"
	"fmt"

	"github.com/cli/go-gh/v2/pkg/api"
	graphql "github.com/cli/shurcooL-graphql"
	"github.com/ryo246912/gh-pulls/pkg/models"
)

// searchPageSize is the GraphQL search page size; 100 is the API maximum.
const searchPageSize = 100

// Client searches pull requests through the GraphQL API. The REST side of
// the CLI goes through package pulls.
type Client struct {
	gql *api.GraphQLClient
}

// NewClient creates a GraphQL client for host, or the gh default host
// when empty.
func NewClient(host string) (*Client, error) {
	return NewClientWithOptions(api.ClientOptions{Host: host})
}

// NewClientWithOptions creates a client from explicit go-gh options.
func NewClientWithOptions(opts api.ClientOptions) (*Client, error) {
	gqlClient, err := api.NewGraphQLClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}
	return &Client{gql: gqlClient}, nil
}

type searchQuery struct {
	Search struct {
		Nodes []struct {
			PullRequest struct {
				Number    int
				Title     string
				State     string
				IsDraft   bool
				UpdatedAt string
				CreatedAt string
				Author    struct {
					Login string
				}
			} `graphql:"... on PullRequest"`
		}
		PageInfo struct {
			HasNextPage bool
			EndCursor   string
		}
	} `graphql:"search(type: ISSUE, query: $query, first: $first, after: $endCursor)"`
}

// GetAssignedPRs lists open pull requests of owner/repo assigned to the
// authenticated user, newest first.
func (c *Client) GetAssignedPRs(ctx context.Context, owner, repo string) ([]models.PullRequestSummary, error) {
	return c.SearchPRs(ctx, AssignedQuery(owner, repo), searchPageSize)
}

// AssignedQuery builds the search string GetAssignedPRs sends.
func AssignedQuery(owner, repo string) string {
	return fmt.Sprintf("repo:%s/%s is:pr state:open assignee:@me sort:created-desc", owner, repo)
}

// SearchPRs runs a pull request search and follows pages until limit
// results were collected or the search is exhausted.
func (c *Client) SearchPRs(ctx context.Context, query string, limit int) ([]models.PullRequestSummary, error) {
	if limit <= 0 {
		limit = searchPageSize
	}

	variables := map[string]interface{}{
		"query":     graphql.String(query),
		"first":     graphql.Int(min(limit, searchPageSize)),
		"endCursor": (*graphql.String)(nil),
	}

	found := make([]models.PullRequestSummary, 0, limit)
	for {
		var q searchQuery
		if err := c.gql.QueryWithContext(ctx, "PullRequestSearch", &q, variables); err != nil {
			return nil, fmt.Errorf("failed to search pull requests: %w", err)
		}

		for _, node := range q.Search.Nodes {
			pr := node.PullRequest
			if pr.Number == 0 {
				continue
			}
			found = append(found, models.PullRequestSummary{
				Number:    pr.Number,
				Title:     pr.Title,
				User:      pr.Author.Login,
				State:     pr.State,
				Draft:     pr.IsDraft,
				UpdatedAt: pr.UpdatedAt,
				CreatedAt: pr.CreatedAt,
			})
			if len(found) >= limit {
				return found, nil
			}
		}

		if !q.Search.PageInfo.HasNextPage {
			return found, nil
		}
		variables["endCursor"] = graphql.String(q.Search.PageInfo.EndCursor)
	}
}
