package pulls

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ryo246912/gh-pulls/pkg/connector"
	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/requests"
)

// PullRequestBuilder assembles a new pull request.
type PullRequestBuilder struct {
	conn   connector.Connector
	logger *slog.Logger
	owner  string
	repo   string
	err    error

	title               string
	body                *string
	head                string
	base                string
	draft               bool
	maintainerCanModify *bool
}

func (b *PullRequestBuilder) Title(title string) *PullRequestBuilder {
	b.title = title
	return b
}

func (b *PullRequestBuilder) Body(body string) *PullRequestBuilder {
	b.body = &body
	return b
}

// Head sets the branch to merge, "user:branch" for forks.
func (b *PullRequestBuilder) Head(head string) *PullRequestBuilder {
	b.head = head
	return b
}

func (b *PullRequestBuilder) Base(base string) *PullRequestBuilder {
	b.base = base
	return b
}

func (b *PullRequestBuilder) Draft(draft bool) *PullRequestBuilder {
	b.draft = draft
	return b
}

func (b *PullRequestBuilder) MaintainerCanModify(allow bool) *PullRequestBuilder {
	b.maintainerCanModify = &allow
	return b
}

func (b *PullRequestBuilder) payload() map[string]any {
	body := map[string]any{
		"title": b.title,
		"head":  b.head,
		"base":  b.base,
		"draft": b.draft,
	}
	if b.body != nil {
		body["body"] = *b.body
	}
	if b.maintainerCanModify != nil {
		body["maintainer_can_modify"] = *b.maintainerCanModify
	}
	return body
}

// Create opens the pull request.
func (b *PullRequestBuilder) Create(ctx context.Context) (*PullRequest, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.conn == nil {
		return nil, ErrNoConnector
	}
	if b.title == "" || b.head == "" || b.base == "" {
		return nil, ErrInvalidPullRequest
	}
	resp, err := b.conn.Send(ctx, requests.CreatePullRequest(b.owner, b.repo, b.payload()))
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	var data models.PullRequest
	if err := resp.JSON(&data); err != nil {
		return nil, err
	}
	pr := NewPullRequest(b.conn, b.owner, b.repo, data)
	pr.logger = b.logger
	return pr, nil
}
