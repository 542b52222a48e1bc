package pulls

import (
	"context"
	"fmt"

	"github.com/ryo246912/gh-pulls/pkg/connector"
	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/requests"
)

const defaultRequestChangesBody = "Changes requested"

// ReviewBuilder collects a review event, body and inline comments and
// submits them in one request.
type ReviewBuilder struct {
	conn     connector.Connector
	owner    string
	repo     string
	number   int
	event    string
	body     *string
	comments []requests.ReviewComment
}

// NewReviewBuilder starts a review for pull request number of owner/repo.
func NewReviewBuilder(conn connector.Connector, owner, repo string, number int) *ReviewBuilder {
	return &ReviewBuilder{conn: conn, owner: owner, repo: repo, number: number}
}

// Approve selects the approve event. An empty body sends none.
func (b *ReviewBuilder) Approve(body string) *ReviewBuilder {
	b.event = requests.EventApprove
	b.body = optional(body)
	return b
}

// RequestChanges selects the request changes event.
func (b *ReviewBuilder) RequestChanges(body string) *ReviewBuilder {
	if body == "" {
		body = defaultRequestChangesBody
	}
	b.event = requests.EventRequestChanges
	b.body = &body
	return b
}

func (b *ReviewBuilder) Comment(body string) *ReviewBuilder {
	b.event = requests.EventComment
	b.body = &body
	return b
}

func (b *ReviewBuilder) AddInlineComment(path string, line int, body string) *ReviewBuilder {
	b.comments = append(b.comments, requests.ReviewComment{Path: path, Line: line, Body: body})
	return b
}

// AddSuggestion proposes replacing lines startLine..endLine of path.
func (b *ReviewBuilder) AddSuggestion(path string, startLine, endLine int, suggestion string) *ReviewBuilder {
	b.comments = append(b.comments, requests.ReviewComment{
		Path:      path,
		StartLine: startLine,
		Line:      endLine,
		Body:      "```suggestion\n" + suggestion + "\n```",
	})
	return b
}

// Submit sends the review. It fails before sending when no event was chosen.
func (b *ReviewBuilder) Submit(ctx context.Context) (*models.Review, error) {
	if b.event == "" {
		return nil, ErrReviewEventRequired
	}
	if b.conn == nil {
		return nil, ErrNoConnector
	}
	resp, err := b.conn.Send(ctx, requests.CreatePullRequestReview(b.owner, b.repo, b.number, b.event, b.body, b.comments))
	if err != nil {
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}
	var review models.Review
	if err := resp.JSON(&review); err != nil {
		return nil, err
	}
	return &review, nil
}
