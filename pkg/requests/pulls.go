package requests

import (
	"net/http"
	"net/url"
)

func GetPullRequest(owner, repo string, number int) Request {
	return newRequest("GetPullRequest", http.MethodGet, pullPath(owner, repo, number))
}

// ListPullRequests lists pull requests; params are sent verbatim.
func ListPullRequests(owner, repo string, params url.Values) Request {
	q := url.Values{}
	for k, v := range params {
		q[k] = append([]string(nil), v...)
	}
	return newRequest("ListPullRequests", http.MethodGet, repoPath(owner, repo)+"/pulls").withQuery(q)
}

func CreatePullRequest(owner, repo string, body map[string]any) Request {
	return newRequest("CreatePullRequest", http.MethodPost, repoPath(owner, repo)+"/pulls").withBody(body)
}

func UpdatePullRequest(owner, repo string, number int, body map[string]any) Request {
	return newRequest("UpdatePullRequest", http.MethodPatch, pullPath(owner, repo, number)).withBody(body)
}

// GetPullRequestDiff fetches the unified diff of a pull request.
func GetPullRequestDiff(owner, repo string, number int) Request {
	return newRequest("GetPullRequestDiff", http.MethodGet, pullPath(owner, repo, number)).
		withHeader("Accept", MediaTypeDiff)
}

// MergePullRequest merges a pull request. Recognised body keys are
// merge_method, commit_title, commit_message and sha.
func MergePullRequest(owner, repo string, number int, body map[string]any) Request {
	return newRequest("MergePullRequest", http.MethodPut, pullPath(owner, repo, number)+"/merge").withBody(body)
}

func GetPullRequestFiles(owner, repo string, number int) Request {
	return newRequest("GetPullRequestFiles", http.MethodGet, pullPath(owner, repo, number)+"/files")
}

func GetPullRequestCommits(owner, repo string, number, perPage, page int) Request {
	return newRequest("GetPullRequestCommits", http.MethodGet, pullPath(owner, repo, number)+"/commits").
		withQuery(pageQuery(perPage, page))
}

func GetPullRequestComments(owner, repo string, number int) Request {
	return newRequest("GetPullRequestComments", http.MethodGet, pullPath(owner, repo, number)+"/comments")
}

// CreatePullRequestComment posts a review comment on a line of a file.
// commitID may be empty, in which case the head commit is implied.
func CreatePullRequestComment(owner, repo string, number int, body, path string, line int, commitID string) Request {
	payload := map[string]any{
		"body": body,
		"path": path,
		"line": line,
	}
	if commitID != "" {
		payload["commit_id"] = commitID
	}
	return newRequest("CreatePullRequestComment", http.MethodPost, pullPath(owner, repo, number)+"/comments").
		withBody(payload)
}

// RequestReviewers asks users and teams for a review. Empty lists are
// left out of the payload.
func RequestReviewers(owner, repo string, number int, reviewers, teamReviewers []string) Request {
	return newRequest("RequestReviewers", http.MethodPost, pullPath(owner, repo, number)+"/requested_reviewers").
		withBody(reviewerPayload(reviewers, teamReviewers))
}

func RemoveReviewers(owner, repo string, number int, reviewers, teamReviewers []string) Request {
	return newRequest("RemoveReviewers", http.MethodDelete, pullPath(owner, repo, number)+"/requested_reviewers").
		withBody(reviewerPayload(reviewers, teamReviewers))
}

func reviewerPayload(reviewers, teamReviewers []string) map[string]any {
	payload := map[string]any{}
	if len(reviewers) > 0 {
		payload["reviewers"] = reviewers
	}
	if len(teamReviewers) > 0 {
		payload["team_reviewers"] = teamReviewers
	}
	return payload
}
