package pulls

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryo246912/gh-pulls/pkg/connector"
	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/requests"
)

func assigned(logins ...string) map[string]any {
	users := make([]map[string]any, 0, len(logins))
	for _, l := range logins {
		users = append(users, map[string]any{"login": l})
	}
	p := prPayload(7, "open")
	p["assignees"] = users
	return p
}

func TestAssigneeManager_Replace(t *testing.T) {
	ctx := context.Background()
	mock := connector.NewMockConnector().
		QueueJSON(assigned("alice", "bob")).
		QueueJSON(map[string]any{}).
		QueueJSON(map[string]any{})

	err := bound(mock).Assignees().Replace(ctx, []string{"carol"})
	require.NoError(t, err)

	require.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "GetPullRequest", mock.Requests[0].Name())
	assert.Equal(t, http.MethodDelete, mock.Requests[1].Method())
	assert.Equal(t, map[string]any{"assignees": []string{"alice", "bob"}}, bodyOf(t, mock.Requests[1]))
	assert.Equal(t, http.MethodPost, mock.Requests[2].Method())
	assert.Equal(t, map[string]any{"assignees": []string{"carol"}}, bodyOf(t, mock.Requests[2]))
}

func TestAssigneeManager_ReplaceSkipsEmptyHalves(t *testing.T) {
	ctx := context.Background()

	mock := connector.NewMockConnector().QueueJSON(assigned()).QueueJSON(map[string]any{})
	require.NoError(t, bound(mock).Assignees().Replace(ctx, []string{"carol"}))
	assert.Equal(t, []string{"GetPullRequest", "AddAssignees"}, requestNames(mock))

	mock = connector.NewMockConnector().QueueJSON(assigned("alice")).QueueJSON(map[string]any{})
	require.NoError(t, bound(mock).Assignees().Replace(ctx, nil))
	assert.Equal(t, []string{"GetPullRequest", "RemoveAssignees"}, requestNames(mock))
}

func TestAssigneeManager_GetAndHas(t *testing.T) {
	ctx := context.Background()
	mock := connector.NewMockConnector().QueueJSON(assigned("alice")).QueueJSON(assigned("alice"))
	m := bound(mock).Assignees()

	users, err := m.Get(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Login)

	has, err := m.Has(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestAssigneeManager_Unbound(t *testing.T) {
	m := NewPullRequest(nil, "octo", "hello", models.PullRequest{Number: 1}).Assignees()
	assert.ErrorIs(t, m.Add(context.Background(), "alice"), ErrNoConnector)
}

func requestNames(m *connector.MockConnector) []string {
	names := make([]string, 0, len(m.Requests))
	for _, r := range m.Requests {
		names = append(names, r.Name())
	}
	return names
}

func TestMilestoneManager(t *testing.T) {
	ctx := context.Background()
	withMilestone := prPayload(7, "open")
	withMilestone["milestone"] = map[string]any{"number": 3, "title": "v1.0", "state": "open", "open_issues": 1, "closed_issues": 1}
	mock := connector.NewMockConnector().
		QueueJSON(prPayload(7, "open")).
		QueueJSON(withMilestone).
		QueueJSON(prPayload(7, "open"))
	m := bound(mock).Milestone()

	got, err := m.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = m.Set(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "v1.0", got.Title)
	assert.Equal(t, 50.0, got.Progress())

	require.NoError(t, m.Remove(ctx))

	assert.Equal(t, map[string]any{"milestone": 3}, bodyOf(t, mock.Requests[1]))
	assert.Equal(t, map[string]any{"milestone": nil}, bodyOf(t, mock.Requests[2]))
	assert.Equal(t, http.MethodPatch, mock.Requests[2].Method())
	assert.Equal(t, "/repos/octo/hello/pulls/7", mock.Requests[2].Endpoint())
}

func TestRepositoryMilestoneManager(t *testing.T) {
	ctx := context.Background()
	milestone := map[string]any{"number": 4, "title": "v2", "state": "open"}
	mock := connector.NewMockConnector().
		QueueJSON([]map[string]any{milestone}).
		QueueJSON([]map[string]any{}).
		QueueJSON(milestone).
		QueueJSON(milestone).
		QueueJSON(milestone).
		QueueRaw(http.StatusNoContent, "")
	m := NewRepositoryMilestoneManager(mock, "octo", "hello")

	all, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	closed, err := m.WhereClosed(ctx)
	require.NoError(t, err)
	assert.Empty(t, closed)

	found, err := m.Find(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "v2", found.Title)

	due := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	desc := "second release"
	_, err = m.Create(ctx, "v2", MilestoneOptions{Description: &desc, DueOn: &due})
	require.NoError(t, err)

	closedState := models.StateClosed
	_, err = m.Update(ctx, 4, MilestoneOptions{State: &closedState})
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, 4))

	assert.Equal(t, "all", mock.Requests[0].Query().Get("state"))
	assert.Equal(t, "closed", mock.Requests[1].Query().Get("state"))
	assert.Equal(t, map[string]any{
		"title":       "v2",
		"description": "second release",
		"due_on":      "2024-12-31T00:00:00Z",
		"state":       "open",
	}, bodyOf(t, mock.Requests[3]))
	assert.Equal(t, map[string]any{"state": "closed"}, bodyOf(t, mock.Requests[4]))
	assert.Equal(t, http.MethodDelete, mock.Requests[5].Method())
	assert.Equal(t, "/repos/octo/hello/milestones/4", mock.Requests[5].Endpoint())
}

func TestReviewBuilder_SubmitRequiresEvent(t *testing.T) {
	mock := connector.NewMockConnector()

	_, err := bound(mock).Review().AddInlineComment("main.go", 1, "nit").Submit(context.Background())
	assert.ErrorIs(t, err, ErrReviewEventRequired)
	assert.Equal(t, 0, mock.CallCount())
}

func TestReviewBuilder_Submit(t *testing.T) {
	mock := connector.NewMockConnector().QueueJSON(map[string]any{
		"id":           99,
		"state":        "CHANGES_REQUESTED",
		"user":         map[string]any{"login": "me"},
		"submitted_at": "2024-01-01T00:00:00Z",
	})

	review, err := bound(mock).Review().
		RequestChanges("").
		AddInlineComment("main.go", 10, "rename this").
		AddSuggestion("main.go", 20, 22, "return nil").
		Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(99), review.ID)
	assert.True(t, review.IsChangesRequested())

	req, _ := mock.LastRequest()
	body := bodyOf(t, req)
	assert.Equal(t, "REQUEST_CHANGES", body["event"])
	assert.Equal(t, "Changes requested", body["body"])
	assert.Equal(t, []requests.ReviewComment{
		{Path: "main.go", Line: 10, Body: "rename this"},
		{Path: "main.go", StartLine: 20, Line: 22, Body: "```suggestion\nreturn nil\n```"},
	}, body["comments"])
}

func TestReviewBuilder_LastEventWins(t *testing.T) {
	mock := connector.NewMockConnector().QueueJSON(map[string]any{"id": 1})

	_, err := NewReviewBuilder(mock, "octo", "hello", 7).Comment("hmm").Approve("").Submit(context.Background())
	require.NoError(t, err)

	req, _ := mock.LastRequest()
	assert.Equal(t, map[string]any{"event": "APPROVE"}, bodyOf(t, req))
}

func reviewPayload(id int, login, state, submitted string) map[string]any {
	r := map[string]any{"id": id, "user": map[string]any{"login": login}, "state": state}
	if submitted != "" {
		r["submitted_at"] = submitted
	}
	return r
}

func TestReviewQuery(t *testing.T) {
	page := []map[string]any{
		reviewPayload(1, "alice", "COMMENTED", "2024-01-01T00:00:00Z"),
		reviewPayload(2, "bob", "APPROVED", "2024-01-03T00:00:00Z"),
		reviewPayload(3, "alice", "CHANGES_REQUESTED", "2024-01-02T00:00:00Z"),
		reviewPayload(4, "carol", "PENDING", ""),
	}
	mock := connector.NewMockConnector()
	for i := 0; i < 8; i++ {
		mock.QueueJSON(page)
	}
	q := bound(mock).ReviewQuery()
	ctx := context.Background()

	approved, err := q.WhereApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "bob", approved[0].User.Login)

	changes, err := q.WhereChangesRequested(ctx)
	require.NoError(t, err)
	assert.Len(t, changes, 1)

	commented, err := q.WhereCommented(ctx)
	require.NoError(t, err)
	assert.Len(t, commented, 1)

	byAlice, err := q.ByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, byAlice, 2)

	latest, err := q.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), latest.ID)

	first, err := q.First(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	n, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	reviewers, err := q.Reviewers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, reviewers)

	assert.Equal(t, 8, mock.CallCount(), "every call fetches again")
}

func TestReviewQuery_LatestEmpty(t *testing.T) {
	latest, err := bound(connector.NewMockConnector()).ReviewQuery().Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestFileQuery(t *testing.T) {
	page := []map[string]any{
		{"filename": "cmd/main.go", "status": "modified", "additions": 2, "deletions": 1, "changes": 3},
		{"filename": "pkg/api/client.go", "status": "added", "additions": 40, "changes": 40},
		{"filename": "docs/README.md", "status": "removed", "deletions": 5, "changes": 5},
		{"filename": "pkg/api/v2/types.go", "status": "renamed", "previous_filename": "pkg/api/types.go"},
	}
	mock := connector.NewMockConnector()
	for i := 0; i < 7; i++ {
		mock.QueueJSON(page)
	}
	q := bound(mock).FileQuery()
	ctx := context.Background()

	filenames := func(files []models.File) []string {
		names := []string{}
		for _, f := range files {
			names = append(names, f.Filename)
		}
		return names
	}

	added, err := q.WhereAdded(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg/api/client.go"}, filenames(added))

	removed, err := q.WhereRemoved(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/README.md"}, filenames(removed))

	renamed, err := q.WhereRenamed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg/api/v2/types.go"}, filenames(renamed))

	underAPI, err := q.WherePath(ctx, "pkg/api/**")
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg/api/client.go", "pkg/api/v2/types.go"}, filenames(underAPI))

	glob, err := q.WherePath(ctx, "cmd/*.go")
	require.NoError(t, err)
	assert.Equal(t, []string{"cmd/main.go"}, filenames(glob))

	goFiles, err := q.WhereExtension(ctx, ".go")
	require.NoError(t, err)
	assert.Len(t, goFiles, 3)

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.FileStats{
		Total: 4, Added: 1, Modified: 1, Removed: 1, Renamed: 1,
		TotalAdditions: 42, TotalDeletions: 6, TotalChanges: 48,
	}, stats)
}

func TestCheckRunQuery(t *testing.T) {
	payload := map[string]any{"check_runs": []map[string]any{
		{"id": 1, "name": "build", "status": "completed", "conclusion": "success", "started_at": "2024-01-01T00:00:00Z"},
		{"id": 2, "name": "test", "status": "completed", "conclusion": "failure", "started_at": "2024-01-01T00:05:00Z"},
		{"id": 3, "name": "lint", "status": "queued", "started_at": "2024-01-01T00:02:00Z"},
		{"id": 4, "name": "docs", "status": "completed", "conclusion": "skipped", "started_at": "2024-01-01T00:01:00Z"},
	}}
	mock := connector.NewMockConnector()
	for i := 0; i < 6; i++ {
		mock.QueueJSON(payload)
	}
	q := bound(mock).CheckQuery()
	ctx := context.Background()

	passing, err := q.WherePassing(ctx)
	require.NoError(t, err)
	assert.Len(t, passing, 1)

	failing, err := q.WhereFailing(ctx)
	require.NoError(t, err)
	require.Len(t, failing, 1)
	assert.Equal(t, "test", failing[0].Name)

	pending, err := q.WherePending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	byName, err := q.ByName(ctx, "docs")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.True(t, byName[0].IsSkipped())

	latest, err := q.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test", latest.Name)

	summary, err := q.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.CheckSummary{Total: 4, Passing: 1, Failing: 1, Pending: 1, Skipped: 1}, summary)
	assert.True(t, summary.HasFailures())
}
