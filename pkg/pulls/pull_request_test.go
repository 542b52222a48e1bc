package pulls

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryo246912/gh-pulls/pkg/connector"
	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/requests"
)

func prPayload(number int, state string) map[string]any {
	return map[string]any{
		"number":     number,
		"title":      "PR " + state,
		"state":      state,
		"user":       map[string]any{"login": "octocat"},
		"html_url":   "https://github.com/octo/hello/pull/1",
		"created_at": "2024-01-01T00:00:00Z",
		"updated_at": "2024-01-02T00:00:00Z",
		"draft":      false,
		"labels":     []map[string]any{},
		"head":       map[string]any{"ref": "feature", "sha": "headsha"},
		"base":       map[string]any{"ref": "main", "sha": "basesha"},
	}
}

func withLabels(p map[string]any, names ...string) map[string]any {
	labels := make([]map[string]any, 0, len(names))
	for _, n := range names {
		labels = append(labels, map[string]any{"name": n})
	}
	p["labels"] = labels
	return p
}

func bound(conn connector.Connector) *PullRequest {
	return NewPullRequest(conn, "octo", "hello", models.PullRequest{
		Number: 7,
		State:  models.StateOpen,
		Head:   models.Ref{Ref: "feature", SHA: "headsha"},
	})
}

func bodyOf(t *testing.T, req requests.Request) map[string]any {
	t.Helper()
	body, ok := req.Body().(map[string]any)
	require.True(t, ok, "body of %s is %T", req.Name(), req.Body())
	return body
}

func TestPullRequest_UnboundFailsFast(t *testing.T) {
	ctx := context.Background()
	unbound := NewPullRequest(nil, "octo", "hello", models.PullRequest{Number: 1})

	_, err := unbound.Merge(ctx, MergeOptions{})
	assert.ErrorIs(t, err, ErrNoConnector)

	_, err = unbound.Close(ctx)
	assert.ErrorIs(t, err, ErrNoConnector)

	_, err = unbound.Commits(ctx)
	assert.ErrorIs(t, err, ErrNoConnector)

	_, err = unbound.Review().Approve("").Submit(ctx)
	assert.ErrorIs(t, err, ErrNoConnector)

	// A connector without repository context is not bound either.
	mock := connector.NewMockConnector()
	_, err = NewPullRequest(mock, "", "", models.PullRequest{Number: 1}).Merge(ctx, MergeOptions{})
	assert.ErrorIs(t, err, ErrNoConnector)
	assert.Equal(t, 0, mock.CallCount())
}

func TestPullRequest_StateChangesRebuildFromResponse(t *testing.T) {
	tests := []struct {
		name string
		act  func(*PullRequest, context.Context) (*PullRequest, error)
		body map[string]any
	}{
		{name: "close", act: (*PullRequest).Close, body: map[string]any{"state": "closed"}},
		{name: "reopen", act: (*PullRequest).Reopen, body: map[string]any{"state": "open"}},
		{name: "mark draft", act: (*PullRequest).MarkDraft, body: map[string]any{"draft": true}},
		{name: "mark ready", act: (*PullRequest).MarkReady, body: map[string]any{"draft": false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := connector.NewMockConnector().QueueJSON(prPayload(7, models.StateClosed))
			pr := bound(mock)

			updated, err := tt.act(pr, context.Background())
			require.NoError(t, err)

			req, _ := mock.LastRequest()
			assert.Equal(t, http.MethodPatch, req.Method())
			assert.Equal(t, "/repos/octo/hello/pulls/7", req.Endpoint())
			assert.Equal(t, tt.body, bodyOf(t, req))

			assert.NotSame(t, pr, updated)
			assert.Equal(t, models.StateClosed, updated.State())
			assert.Equal(t, models.StateOpen, pr.State(), "receiver is not mutated")
			assert.Equal(t, "octo/hello", updated.FullName())
		})
	}
}

func TestPullRequest_Merge(t *testing.T) {
	tests := []struct {
		name string
		act  func(*PullRequest, context.Context) (*PullRequest, error)
		want map[string]any
	}{
		{
			name: "default merge",
			act: func(p *PullRequest, ctx context.Context) (*PullRequest, error) {
				return p.Merge(ctx, MergeOptions{})
			},
			want: map[string]any{"merge_method": "merge"},
		},
		{
			name: "squash with message",
			act: func(p *PullRequest, ctx context.Context) (*PullRequest, error) {
				return p.SquashMerge(ctx, "squashed")
			},
			want: map[string]any{"merge_method": "squash", "commit_message": "squashed"},
		},
		{
			name: "rebase",
			act:  (*PullRequest).RebaseMerge,
			want: map[string]any{"merge_method": "rebase"},
		},
		{
			name: "merge with title and sha",
			act: func(p *PullRequest, ctx context.Context) (*PullRequest, error) {
				return p.Merge(ctx, MergeOptions{Method: MergeMethodMerge, CommitTitle: "Release", SHA: "headsha"})
			},
			want: map[string]any{"merge_method": "merge", "commit_title": "Release", "sha": "headsha"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := connector.NewMockConnector().QueueJSON(models.MergeResult{SHA: "m1", Merged: true, Message: "merged"})
			pr := bound(mock)

			got, err := tt.act(pr, context.Background())
			require.NoError(t, err)
			assert.Same(t, pr, got)

			req, _ := mock.LastRequest()
			assert.Equal(t, http.MethodPut, req.Method())
			assert.Equal(t, "/repos/octo/hello/pulls/7/merge", req.Endpoint())
			assert.Equal(t, tt.want, bodyOf(t, req))
		})
	}
}

func TestPullRequest_MergeErrorPassesThrough(t *testing.T) {
	upstream := errors.New("405 Pull Request is not mergeable")
	mock := connector.NewMockConnector().QueueError(upstream)

	_, err := bound(mock).Merge(context.Background(), MergeOptions{})
	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, 1, mock.CallCount())
}

func TestPullRequest_Reviews(t *testing.T) {
	t.Run("approve without body", func(t *testing.T) {
		mock := connector.NewMockConnector().QueueJSON(map[string]any{"id": 1, "state": "APPROVED"})
		_, err := bound(mock).Approve(context.Background(), "")
		require.NoError(t, err)

		req, _ := mock.LastRequest()
		assert.Equal(t, "/repos/octo/hello/pulls/7/reviews", req.Endpoint())
		assert.Equal(t, map[string]any{"event": "APPROVE"}, bodyOf(t, req))
	})

	t.Run("request changes defaults body", func(t *testing.T) {
		mock := connector.NewMockConnector().QueueJSON(map[string]any{"id": 1})
		_, err := bound(mock).RequestChanges(context.Background(), "")
		require.NoError(t, err)

		req, _ := mock.LastRequest()
		assert.Equal(t, map[string]any{"event": "REQUEST_CHANGES", "body": "Changes requested"}, bodyOf(t, req))
	})

	t.Run("submit with inline comments", func(t *testing.T) {
		mock := connector.NewMockConnector().QueueJSON(map[string]any{"id": 1})
		body := "see inline"
		comments := []requests.ReviewComment{{Path: "main.go", Line: 3, Body: "nit"}}
		_, err := bound(mock).SubmitReview(context.Background(), requests.EventComment, &body, comments)
		require.NoError(t, err)

		req, _ := mock.LastRequest()
		got := bodyOf(t, req)
		assert.Equal(t, "COMMENT", got["event"])
		assert.Equal(t, comments, got["comments"])
	})
}

func TestPullRequest_Comments(t *testing.T) {
	mock := connector.NewMockConnector().QueueJSON(map[string]any{"id": 1}).QueueJSON(map[string]any{"id": 2})
	pr := bound(mock)
	ctx := context.Background()

	_, err := pr.Comment(ctx, "lgtm")
	require.NoError(t, err)
	_, err = pr.CommentOnLine(ctx, "typo", "README.md", 12)
	require.NoError(t, err)

	require.Len(t, mock.Requests, 2)
	assert.Equal(t, "/repos/octo/hello/issues/7/comments", mock.Requests[0].Endpoint())
	assert.Equal(t, map[string]any{"body": "lgtm"}, bodyOf(t, mock.Requests[0]))
	assert.Equal(t, "/repos/octo/hello/pulls/7/comments", mock.Requests[1].Endpoint())
	assert.Equal(t, map[string]any{
		"body":      "typo",
		"path":      "README.md",
		"line":      12,
		"commit_id": "headsha",
	}, bodyOf(t, mock.Requests[1]))
}

func TestPullRequest_Labels(t *testing.T) {
	ctx := context.Background()
	mock := connector.NewMockConnector().
		QueueJSON([]map[string]any{{"name": "bug"}, {"name": "p1"}}).
		QueueJSON([]map[string]any{{"name": "p1"}}).
		QueueJSON([]map[string]any{{"name": "docs"}})
	pr := bound(mock)

	pr, err := pr.AddLabels(ctx, "bug", "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bug", "p1"}, pr.Data().LabelNames())

	pr, err = pr.RemoveLabel(ctx, "bug")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, pr.Data().LabelNames())

	pr, err = pr.SetLabels(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, []string{"docs"}, pr.Data().LabelNames())

	assert.Equal(t, http.MethodPost, mock.Requests[0].Method())
	assert.Equal(t, "/repos/octo/hello/issues/7/labels/bug", mock.Requests[1].Endpoint())
	assert.Equal(t, http.MethodPut, mock.Requests[2].Method())
}

func TestPullRequest_Reviewers(t *testing.T) {
	ctx := context.Background()
	requested := prPayload(7, models.StateOpen)
	requested["requested_reviewers"] = []map[string]any{{"login": "alice"}, {"login": "bob"}}
	mock := connector.NewMockConnector().
		QueueJSON(requested).
		QueueJSON(prPayload(7, models.StateOpen)).
		QueueJSON(prPayload(7, models.StateOpen))
	pr := bound(mock)

	updated, err := pr.RequestReviewers(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Len(t, updated.Data().RequestedReviewers, 2)

	_, err = pr.RequestTeamReview(ctx, "core")
	require.NoError(t, err)
	_, err = pr.RemoveReviewers(ctx, "bob")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"reviewers": []string{"alice", "bob"}}, bodyOf(t, mock.Requests[0]))
	assert.Equal(t, map[string]any{"team_reviewers": []string{"core"}}, bodyOf(t, mock.Requests[1]))
	assert.Equal(t, http.MethodDelete, mock.Requests[2].Method())
}

func TestPullRequest_Assign(t *testing.T) {
	ctx := context.Background()
	mock := connector.NewMockConnector().
		QueueJSON(map[string]any{"assignees": []map[string]any{{"login": "alice"}}}).
		QueueJSON(map[string]any{"assignees": []map[string]any{}})
	pr := bound(mock)

	pr, err := pr.AssignUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, pr.Data().AssigneeLogins())
	require.NotNil(t, pr.Data().Assignee)
	assert.Equal(t, "alice", pr.Data().Assignee.Login)

	pr, err = pr.Unassign(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, pr.Data().Assignees)
	assert.Nil(t, pr.Data().Assignee)

	assert.Equal(t, "/repos/octo/hello/issues/7/assignees", mock.Requests[1].Endpoint())
	assert.Equal(t, http.MethodDelete, mock.Requests[1].Method())
}

func TestPullRequest_Accessors(t *testing.T) {
	pr := NewPullRequest(nil, "octo", "hello", models.PullRequest{
		Number:  3,
		Title:   "Fix",
		State:   models.StateOpen,
		HTMLURL: "https://github.com/octo/hello/pull/3",
		Head:    models.Ref{SHA: "abc"},
	})

	assert.Equal(t, 3, pr.Number())
	assert.Equal(t, "Fix", pr.Title())
	assert.Equal(t, "abc", pr.HeadSHA())
	assert.Equal(t, "octo", pr.Owner())
	assert.Equal(t, "hello", pr.Repo())
	assert.Equal(t, "octo/hello#3", pr.String())
	assert.False(t, pr.IsMerged())
}
