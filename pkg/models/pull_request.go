package models

import "time"

// Pull request states as reported by the REST API.
const (
	StateOpen   = "open"
	StateClosed = "closed"
	StateAll    = "all"
)

// Ref is the head or base side of a pull request.
type Ref struct {
	Ref  string      `json:"ref"`
	SHA  string      `json:"sha"`
	User User        `json:"user"`
	Repo *Repository `json:"repo"`
}

// PullRequest represents a pull request resource
type PullRequest struct {
	ID                 int64      `json:"id,omitempty"`
	NodeID             string     `json:"node_id,omitempty"`
	Number             int        `json:"number"`
	Title              string     `json:"title"`
	Body               *string    `json:"body"`
	State              string     `json:"state"`
	User               User       `json:"user"`
	HTMLURL            string     `json:"html_url"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	ClosedAt           *time.Time `json:"closed_at"`
	MergedAt           *time.Time `json:"merged_at"`
	MergeCommitSHA     *string    `json:"merge_commit_sha"`
	Draft              bool       `json:"draft"`
	Mergeable          *bool      `json:"mergeable,omitempty"`
	Additions          *int       `json:"additions"`
	Deletions          *int       `json:"deletions"`
	ChangedFiles       *int       `json:"changed_files"`
	Assignee           *User      `json:"assignee"`
	Assignees          []User     `json:"assignees"`
	RequestedReviewers []User     `json:"requested_reviewers"`
	RequestedTeams     []Team     `json:"requested_teams,omitempty"`
	Labels             []Label    `json:"labels"`
	Milestone          *Milestone `json:"milestone,omitempty"`
	Head               Ref        `json:"head"`
	Base               Ref        `json:"base"`
}

// Team is a team review request entry.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (p PullRequest) IsOpen() bool {
	return p.State == StateOpen
}

func (p PullRequest) IsClosed() bool {
	return p.State == StateClosed
}

// IsMerged reports whether the pull request carries a merge timestamp.
func (p PullRequest) IsMerged() bool {
	return p.MergedAt != nil
}

func (p PullRequest) IsDraft() bool {
	return p.Draft
}

// HasLabel reports whether a label with the given name is attached.
func (p PullRequest) HasLabel(name string) bool {
	for _, l := range p.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}

// LabelNames returns the attached label names in API order.
func (p PullRequest) LabelNames() []string {
	names := make([]string, 0, len(p.Labels))
	for _, l := range p.Labels {
		names = append(names, l.Name)
	}
	return names
}

// AssigneeLogins returns the logins of all assignees.
func (p PullRequest) AssigneeLogins() []string {
	logins := make([]string, 0, len(p.Assignees))
	for _, u := range p.Assignees {
		logins = append(logins, u.Login)
	}
	return logins
}

// PullRequestSummary is the compact listing shape used by pickers.
type PullRequestSummary struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	User      string `json:"user"`
	State     string `json:"state"`
	Draft     bool   `json:"draft"`
	UpdatedAt string `json:"updated_at"`
	CreatedAt string `json:"created_at"`
}

// Summarize projects a pull request onto its listing shape.
func Summarize(p PullRequest) PullRequestSummary {
	return PullRequestSummary{
		Number:    p.Number,
		Title:     p.Title,
		User:      p.User.Login,
		State:     p.State,
		Draft:     p.Draft,
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

// MergeResult is the body returned by the merge endpoint.
type MergeResult struct {
	SHA     string `json:"sha"`
	Merged  bool   `json:"merged"`
	Message string `json:"message"`
}
