package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCommit_UnmarshalFlattensGitData(t *testing.T) {
	payload := `{
		"sha": "0123456789abcdef",
		"html_url": "https://github.com/octo/hello/commit/0123456",
		"commit": {
			"message": "Fix parser\n\nLonger description",
			"author": {"name": "Alice", "email": "alice@example.com", "date": "2024-03-01T12:00:00Z"},
			"committer": {"name": "GitHub", "email": "noreply@github.com", "date": "2024-03-01T12:05:00Z"}
		},
		"author": {"login": "alice"},
		"committer": null
	}`

	var c Commit
	require.NoError(t, json.Unmarshal([]byte(payload), &c))

	assert.Equal(t, "0123456789abcdef", c.SHA)
	assert.Equal(t, "0123456", c.ShortSHA())
	assert.Equal(t, "Fix parser", c.Subject())
	assert.Equal(t, "Alice", c.Author.Name)
	assert.Equal(t, "GitHub", c.Committer.Name)
	require.NotNil(t, c.GitHubAuthor)
	assert.Equal(t, "alice", c.GitHubAuthor.Login)
	assert.Nil(t, c.GitHubCommitter)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	nested, ok := raw["commit"].(map[string]any)
	require.True(t, ok, "git data nested under commit")
	assert.Equal(t, "Fix parser\n\nLonger description", nested["message"])
}

func TestCommit_ShortSHA(t *testing.T) {
	assert.Equal(t, "abc", Commit{SHA: "abc"}.ShortSHA())
}

func TestMilestone_Progress(t *testing.T) {
	tests := []struct {
		name   string
		open   int
		closed int
		want   float64
	}{
		{name: "two thirds", open: 1, closed: 2, want: 66.67},
		{name: "ten of fifteen", open: 5, closed: 10, want: 66.67},
		{name: "one third", open: 2, closed: 1, want: 33.33},
		{name: "no issues", open: 0, closed: 0, want: 0},
		{name: "all closed", open: 0, closed: 15, want: 100},
		{name: "none closed", open: 4, closed: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Milestone{OpenIssues: tt.open, ClosedIssues: tt.closed}
			assert.Equal(t, tt.want, m.Progress())
		})
	}
}

func TestMilestone_IsOverdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.True(t, Milestone{State: StateOpen, DueOn: &past}.IsOverdue(now))
	assert.False(t, Milestone{State: StateClosed, DueOn: &past}.IsOverdue(now))
	assert.False(t, Milestone{State: StateOpen, DueOn: &future}.IsOverdue(now))
	assert.False(t, Milestone{State: StateOpen}.IsOverdue(now))
}

func TestCheckRun_Predicates(t *testing.T) {
	tests := []struct {
		name       string
		run        CheckRun
		completed  bool
		successful bool
		failed     bool
	}{
		{name: "in progress", run: CheckRun{Status: "in_progress"}},
		{name: "queued", run: CheckRun{Status: "queued"}},
		{name: "success", run: CheckRun{Status: "completed", Conclusion: strPtr("success")}, completed: true, successful: true},
		{name: "failure", run: CheckRun{Status: "completed", Conclusion: strPtr("failure")}, completed: true, failed: true},
		{name: "timed out", run: CheckRun{Status: "completed", Conclusion: strPtr("timed_out")}, completed: true, failed: true},
		{name: "action required", run: CheckRun{Status: "completed", Conclusion: strPtr("action_required")}, completed: true, failed: true},
		{name: "cancelled", run: CheckRun{Status: "completed", Conclusion: strPtr("cancelled")}, completed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.completed, tt.run.IsCompleted())
			assert.Equal(t, !tt.completed, tt.run.IsPending())
			assert.Equal(t, tt.successful, tt.run.IsSuccessful())
			assert.Equal(t, tt.failed, tt.run.IsFailed())
		})
	}
}

func TestSummarizeChecks(t *testing.T) {
	runs := []CheckRun{
		{Status: "completed", Conclusion: strPtr("success")},
		{Status: "completed", Conclusion: strPtr("success")},
		{Status: "completed", Conclusion: strPtr("failure")},
		{Status: "in_progress"},
		{Status: "completed", Conclusion: strPtr("neutral")},
		{Status: "completed", Conclusion: strPtr("skipped")},
	}

	s := SummarizeChecks(runs)
	assert.Equal(t, CheckSummary{Total: 6, Passing: 2, Failing: 1, Pending: 1, Neutral: 1, Skipped: 1}, s)
	assert.False(t, s.AllPassing())
	assert.True(t, s.HasFailures())
	assert.True(t, s.HasPending())

	assert.True(t, SummarizeChecks(runs[:2]).AllPassing())
	assert.False(t, SummarizeChecks(nil).AllPassing())
}

func TestFile_ExtensionAndStats(t *testing.T) {
	files := []File{
		{Filename: "main.go", Status: FileModified, Additions: 3, Deletions: 1, Changes: 4},
		{Filename: "docs/README.md", Status: FileAdded, Additions: 10, Changes: 10},
		{Filename: "Makefile", Status: FileRemoved, Deletions: 7, Changes: 7},
		{Filename: "pkg/new.go", Status: FileRenamed, PreviousFilename: strPtr("pkg/old.go")},
	}

	assert.Equal(t, "go", files[0].Extension())
	assert.Equal(t, "md", files[1].Extension())
	assert.Equal(t, "", files[2].Extension())
	assert.True(t, files[3].IsRenamed())

	assert.Equal(t, FileStats{
		Total: 4, Added: 1, Modified: 1, Removed: 1, Renamed: 1,
		TotalAdditions: 13, TotalDeletions: 8, TotalChanges: 21,
	}, StatsFor(files))
}

func TestComment_IsInline(t *testing.T) {
	var c Comment
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "body": "nit", "path": "main.go", "line": 12}`), &c))
	assert.True(t, c.IsInline())
	require.NotNil(t, c.Line)
	assert.Equal(t, 12, *c.Line)

	assert.False(t, Comment{Body: "lgtm"}.IsInline())
}

func TestTimelineEvent(t *testing.T) {
	payload := `[
		{"event": "labeled", "actor": {"login": "alice"}, "label": {"name": "bug"}},
		{"event": "committed", "sha": "abc"}
	]`

	var events []TimelineEvent
	require.NoError(t, json.Unmarshal([]byte(payload), &events))
	require.Len(t, events, 2)

	assert.Equal(t, "labeled", events[0].Event())
	require.NotNil(t, events[0].Actor())
	assert.Equal(t, "alice", events[0].Actor().Login)
	assert.Nil(t, events[1].Actor())

	var labeled struct {
		Label Label `json:"label"`
	}
	require.NoError(t, events[0].Decode(&labeled))
	assert.Equal(t, "bug", labeled.Label.Name)

	data, err := json.Marshal(events[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"event": "committed", "sha": "abc"}`, string(data))
}

func TestFile_StatusPredicatesAreExclusive(t *testing.T) {
	for _, status := range []string{FileAdded, FileRemoved, FileModified, FileRenamed} {
		f := File{Status: status}
		matched := 0
		for _, is := range []bool{f.IsAdded(), f.IsRemoved(), f.IsModified(), f.IsRenamed()} {
			if is {
				matched++
			}
		}
		assert.Equal(t, 1, matched, status)
	}
	assert.False(t, File{Status: "copied"}.IsModified())
}
