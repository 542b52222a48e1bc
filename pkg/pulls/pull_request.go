// Package pulls is a fluent client for GitHub pull requests. A Service
// finds, lists and creates pull requests; each result is a PullRequest
// bound to the connector and repository it came from, so actions can be
// chained on it.
package pulls

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ryo246912/gh-pulls/pkg/connector"
	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/requests"
)

// Merge methods accepted by the merge endpoint.
const (
	MergeMethodMerge  = "merge"
	MergeMethodSquash = "squash"
	MergeMethodRebase = "rebase"
)

// MergeOptions controls how a pull request is merged. Empty fields are
// left out of the request.
type MergeOptions struct {
	Method        string
	CommitTitle   string
	CommitMessage string
	// SHA must match the head for the merge to succeed.
	SHA string
}

func (o MergeOptions) payload() map[string]any {
	method := o.Method
	if method == "" {
		method = MergeMethodMerge
	}
	body := map[string]any{"merge_method": method}
	if o.CommitTitle != "" {
		body["commit_title"] = o.CommitTitle
	}
	if o.CommitMessage != "" {
		body["commit_message"] = o.CommitMessage
	}
	if o.SHA != "" {
		body["sha"] = o.SHA
	}
	return body
}

// PullRequest binds pull request data to the connector and repository it
// was fetched from.
//
// Actions never change the receiver. When the endpoint answers with the
// updated pull request, or with the labels or assignees it changed, the
// returned value is rebuilt from that response; otherwise the receiver is
// returned as is.
type PullRequest struct {
	conn     connector.Connector
	owner    string
	repo     string
	data     models.PullRequest
	logger   *slog.Logger
	maxPages int
}

// NewPullRequest binds data to a connector and repository. A nil
// connector yields a value whose remote operations fail with
// ErrNoConnector.
func NewPullRequest(conn connector.Connector, owner, repo string, data models.PullRequest) *PullRequest {
	return &PullRequest{
		conn:   conn,
		owner:  owner,
		repo:   repo,
		data:   data,
		logger: slog.Default(),
	}
}

// Data returns the decoded pull request.
func (p *PullRequest) Data() models.PullRequest { return p.data }

func (p *PullRequest) Number() int     { return p.data.Number }
func (p *PullRequest) Title() string   { return p.data.Title }
func (p *PullRequest) State() string   { return p.data.State }
func (p *PullRequest) HTMLURL() string { return p.data.HTMLURL }
func (p *PullRequest) HeadSHA() string { return p.data.Head.SHA }
func (p *PullRequest) IsMerged() bool  { return p.data.IsMerged() }
func (p *PullRequest) Owner() string   { return p.owner }
func (p *PullRequest) Repo() string    { return p.repo }

// FullName returns "owner/repo".
func (p *PullRequest) FullName() string { return p.owner + "/" + p.repo }

func (p *PullRequest) String() string {
	return fmt.Sprintf("%s#%d", p.FullName(), p.data.Number)
}

func (p *PullRequest) ensureConnector() error {
	if p.conn == nil || p.owner == "" || p.repo == "" {
		return ErrNoConnector
	}
	return nil
}

func (p *PullRequest) send(ctx context.Context, req requests.Request) (*connector.Response, error) {
	if err := p.ensureConnector(); err != nil {
		return nil, err
	}
	p.logger.DebugContext(ctx, "sending pull request action",
		"pr", p.String(), "request", req.Name())
	return p.conn.Send(ctx, req)
}

func (p *PullRequest) with(data models.PullRequest) *PullRequest {
	cp := *p
	cp.data = data
	return &cp
}

// rebuild decodes a pull request body into a new wrapper.
func (p *PullRequest) rebuild(resp *connector.Response) (*PullRequest, error) {
	if len(resp.Bytes()) == 0 {
		return p, nil
	}
	var data models.PullRequest
	if err := resp.JSON(&data); err != nil {
		return nil, err
	}
	return p.with(data), nil
}

func (p *PullRequest) update(ctx context.Context, body map[string]any) (*PullRequest, error) {
	resp, err := p.send(ctx, requests.UpdatePullRequest(p.owner, p.repo, p.data.Number, body))
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", p, err)
	}
	return p.rebuild(resp)
}

// Update patches arbitrary pull request fields such as title or body.
func (p *PullRequest) Update(ctx context.Context, attrs map[string]any) (*PullRequest, error) {
	return p.update(ctx, attrs)
}

func (p *PullRequest) Close(ctx context.Context) (*PullRequest, error) {
	return p.update(ctx, map[string]any{"state": models.StateClosed})
}

func (p *PullRequest) Reopen(ctx context.Context) (*PullRequest, error) {
	return p.update(ctx, map[string]any{"state": models.StateOpen})
}

func (p *PullRequest) MarkDraft(ctx context.Context) (*PullRequest, error) {
	return p.update(ctx, map[string]any{"draft": true})
}

func (p *PullRequest) MarkReady(ctx context.Context) (*PullRequest, error) {
	return p.update(ctx, map[string]any{"draft": false})
}

// Merge merges the pull request. The merge endpoint does not return the
// pull request, so the receiver is returned unchanged.
func (p *PullRequest) Merge(ctx context.Context, opts MergeOptions) (*PullRequest, error) {
	if _, err := p.merge(ctx, opts); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PullRequest) merge(ctx context.Context, opts MergeOptions) (models.MergeResult, error) {
	var result models.MergeResult
	resp, err := p.send(ctx, requests.MergePullRequest(p.owner, p.repo, p.data.Number, opts.payload()))
	if err != nil {
		return result, fmt.Errorf("failed to merge %s: %w", p, err)
	}
	if err := resp.JSON(&result); err != nil {
		return result, err
	}
	return result, nil
}

// SquashMerge squashes the pull request into one commit. An empty message
// keeps GitHub's default commit message.
func (p *PullRequest) SquashMerge(ctx context.Context, message string) (*PullRequest, error) {
	return p.Merge(ctx, MergeOptions{Method: MergeMethodSquash, CommitMessage: message})
}

func (p *PullRequest) RebaseMerge(ctx context.Context) (*PullRequest, error) {
	return p.Merge(ctx, MergeOptions{Method: MergeMethodRebase})
}

// Approve submits an approving review. An empty body sends none.
func (p *PullRequest) Approve(ctx context.Context, body string) (*PullRequest, error) {
	return p.SubmitReview(ctx, requests.EventApprove, optional(body), nil)
}

// RequestChanges submits a review requesting changes. GitHub requires a
// body for this event so an empty one falls back to a default.
func (p *PullRequest) RequestChanges(ctx context.Context, body string) (*PullRequest, error) {
	if body == "" {
		body = defaultRequestChangesBody
	}
	return p.SubmitReview(ctx, requests.EventRequestChanges, &body, nil)
}

// SubmitReview posts a review with the given event and inline comments.
func (p *PullRequest) SubmitReview(ctx context.Context, event string, body *string, comments []requests.ReviewComment) (*PullRequest, error) {
	req := requests.CreatePullRequestReview(p.owner, p.repo, p.data.Number, event, body, comments)
	if _, err := p.send(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to submit review on %s: %w", p, err)
	}
	return p, nil
}

// Comment posts a conversation comment.
func (p *PullRequest) Comment(ctx context.Context, body string) (*PullRequest, error) {
	if _, err := p.send(ctx, requests.CreateIssueComment(p.owner, p.repo, p.data.Number, body)); err != nil {
		return nil, fmt.Errorf("failed to comment on %s: %w", p, err)
	}
	return p, nil
}

// CommentOnLine posts a review comment on a line of path at the head commit.
func (p *PullRequest) CommentOnLine(ctx context.Context, body, path string, line int) (*PullRequest, error) {
	req := requests.CreatePullRequestComment(p.owner, p.repo, p.data.Number, body, path, line, p.data.Head.SHA)
	if _, err := p.send(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to comment on %s: %w", p, err)
	}
	return p, nil
}

func (p *PullRequest) AddLabel(ctx context.Context, label string) (*PullRequest, error) {
	return p.AddLabels(ctx, label)
}

func (p *PullRequest) AddLabels(ctx context.Context, labels ...string) (*PullRequest, error) {
	resp, err := p.send(ctx, requests.AddIssueLabels(p.owner, p.repo, p.data.Number, labels))
	if err != nil {
		return nil, fmt.Errorf("failed to add labels to %s: %w", p, err)
	}
	return p.withLabels(resp)
}

func (p *PullRequest) RemoveLabel(ctx context.Context, label string) (*PullRequest, error) {
	resp, err := p.send(ctx, requests.RemoveIssueLabel(p.owner, p.repo, p.data.Number, label))
	if err != nil {
		return nil, fmt.Errorf("failed to remove label from %s: %w", p, err)
	}
	return p.withLabels(resp)
}

// SetLabels replaces every label on the pull request.
func (p *PullRequest) SetLabels(ctx context.Context, labels ...string) (*PullRequest, error) {
	resp, err := p.send(ctx, requests.SetIssueLabels(p.owner, p.repo, p.data.Number, labels))
	if err != nil {
		return nil, fmt.Errorf("failed to set labels on %s: %w", p, err)
	}
	return p.withLabels(resp)
}

// withLabels rebuilds from a label list response.
func (p *PullRequest) withLabels(resp *connector.Response) (*PullRequest, error) {
	labels := []models.Label{}
	if err := resp.JSON(&labels); err != nil {
		return nil, err
	}
	data := p.data
	data.Labels = labels
	return p.with(data), nil
}

func (p *PullRequest) RequestReviewer(ctx context.Context, login string) (*PullRequest, error) {
	return p.RequestReviewers(ctx, login)
}

func (p *PullRequest) RequestReviewers(ctx context.Context, logins ...string) (*PullRequest, error) {
	return p.requestReviews(ctx, logins, nil)
}

// RequestTeamReview requests a review from teams by slug.
func (p *PullRequest) RequestTeamReview(ctx context.Context, teams ...string) (*PullRequest, error) {
	return p.requestReviews(ctx, nil, teams)
}

func (p *PullRequest) requestReviews(ctx context.Context, users, teams []string) (*PullRequest, error) {
	resp, err := p.send(ctx, requests.RequestReviewers(p.owner, p.repo, p.data.Number, users, teams))
	if err != nil {
		return nil, fmt.Errorf("failed to request reviewers on %s: %w", p, err)
	}
	return p.rebuild(resp)
}

func (p *PullRequest) RemoveReviewers(ctx context.Context, logins ...string) (*PullRequest, error) {
	resp, err := p.send(ctx, requests.RemoveReviewers(p.owner, p.repo, p.data.Number, logins, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to remove reviewers from %s: %w", p, err)
	}
	return p.rebuild(resp)
}

func (p *PullRequest) AssignUser(ctx context.Context, login string) (*PullRequest, error) {
	return p.Assign(ctx, login)
}

func (p *PullRequest) Assign(ctx context.Context, logins ...string) (*PullRequest, error) {
	resp, err := p.send(ctx, requests.AddAssignees(p.owner, p.repo, p.data.Number, logins))
	if err != nil {
		return nil, fmt.Errorf("failed to assign %s: %w", p, err)
	}
	return p.withAssignees(resp)
}

func (p *PullRequest) Unassign(ctx context.Context, logins ...string) (*PullRequest, error) {
	resp, err := p.send(ctx, requests.RemoveAssignees(p.owner, p.repo, p.data.Number, logins))
	if err != nil {
		return nil, fmt.Errorf("failed to unassign %s: %w", p, err)
	}
	return p.withAssignees(resp)
}

// withAssignees rebuilds from the issue body the assignee endpoints return.
func (p *PullRequest) withAssignees(resp *connector.Response) (*PullRequest, error) {
	assignees := []models.User{}
	if err := resp.JSONKey("assignees", &assignees); err != nil {
		return nil, err
	}
	data := p.data
	data.Assignees = assignees
	data.Assignee = nil
	if len(assignees) > 0 {
		data.Assignee = &assignees[0]
	}
	return p.with(data), nil
}

// Assignees returns a manager for the pull request's assignees.
func (p *PullRequest) Assignees() *AssigneeManager {
	return &AssigneeManager{conn: p.boundConnector(), owner: p.owner, repo: p.repo, number: p.data.Number}
}

// Milestone returns a manager for the pull request's milestone.
func (p *PullRequest) Milestone() *MilestoneManager {
	return &MilestoneManager{conn: p.boundConnector(), owner: p.owner, repo: p.repo, number: p.data.Number}
}

// Review starts a review submission.
func (p *PullRequest) Review() *ReviewBuilder {
	return &ReviewBuilder{conn: p.boundConnector(), owner: p.owner, repo: p.repo, number: p.data.Number}
}

// ReviewQuery queries the submitted reviews.
func (p *PullRequest) ReviewQuery() *ReviewQuery {
	return &ReviewQuery{conn: p.boundConnector(), owner: p.owner, repo: p.repo, number: p.data.Number}
}

// FileQuery queries the changed files.
func (p *PullRequest) FileQuery() *FileQuery {
	return &FileQuery{pr: p}
}

// CheckQuery queries the check runs of the head commit.
func (p *PullRequest) CheckQuery() *CheckRunQuery {
	return &CheckRunQuery{pr: p}
}

// boundConnector returns nil unless conn, owner and repo are all set.
func (p *PullRequest) boundConnector() connector.Connector {
	if p.ensureConnector() != nil {
		return nil
	}
	return p.conn
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
