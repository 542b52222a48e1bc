package requests

import (
	"net/http"
	"net/url"
)

func GetIssueComments(owner, repo string, number, perPage, page int) Request {
	return newRequest("GetIssueComments", http.MethodGet, issuePath(owner, repo, number)+"/comments").
		withQuery(pageQuery(perPage, page))
}

func CreateIssueComment(owner, repo string, number int, body string) Request {
	return newRequest("CreateIssueComment", http.MethodPost, issuePath(owner, repo, number)+"/comments").
		withBody(map[string]any{"body": body})
}

// GetIssueTimeline lists timeline events using the timeline preview media type.
func GetIssueTimeline(owner, repo string, number, perPage, page int) Request {
	return newRequest("GetIssueTimeline", http.MethodGet, issuePath(owner, repo, number)+"/timeline").
		withQuery(pageQuery(perPage, page)).
		withHeader("Accept", MediaTypeTimeline)
}

func UpdateIssue(owner, repo string, number int, body map[string]any) Request {
	return newRequest("UpdateIssue", http.MethodPatch, issuePath(owner, repo, number)).withBody(body)
}

func AddIssueLabels(owner, repo string, number int, labels []string) Request {
	return newRequest("AddIssueLabels", http.MethodPost, issuePath(owner, repo, number)+"/labels").
		withBody(map[string]any{"labels": labels})
}

// SetIssueLabels replaces every label on the issue.
func SetIssueLabels(owner, repo string, number int, labels []string) Request {
	return newRequest("SetIssueLabels", http.MethodPut, issuePath(owner, repo, number)+"/labels").
		withBody(map[string]any{"labels": labels})
}

func RemoveIssueLabel(owner, repo string, number int, label string) Request {
	return newRequest("RemoveIssueLabel", http.MethodDelete, issuePath(owner, repo, number)+"/labels/"+url.PathEscape(label))
}

func AddAssignees(owner, repo string, number int, assignees []string) Request {
	return newRequest("AddAssignees", http.MethodPost, issuePath(owner, repo, number)+"/assignees").
		withBody(map[string]any{"assignees": assignees})
}

func RemoveAssignees(owner, repo string, number int, assignees []string) Request {
	return newRequest("RemoveAssignees", http.MethodDelete, issuePath(owner, repo, number)+"/assignees").
		withBody(map[string]any{"assignees": assignees})
}

func GetCommitCheckRuns(owner, repo, sha string) Request {
	return newRequest("GetCommitCheckRuns", http.MethodGet, repoPath(owner, repo)+"/commits/"+url.PathEscape(sha)+"/check-runs")
}

// GetAuthenticatedUser fetches the user the token belongs to.
func GetAuthenticatedUser() Request {
	return newRequest("GetAuthenticatedUser", http.MethodGet, "/user")
}
