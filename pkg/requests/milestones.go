package requests

import (
	"fmt"
	"net/http"
	"net/url"
)

// ListMilestones lists repository milestones. An empty state leaves the
// API default in place.
func ListMilestones(owner, repo, state string) Request {
	q := url.Values{}
	if state != "" {
		q.Set("state", state)
	}
	return newRequest("ListMilestones", http.MethodGet, repoPath(owner, repo)+"/milestones").withQuery(q)
}

func GetMilestone(owner, repo string, number int) Request {
	return newRequest("GetMilestone", http.MethodGet, milestonePath(owner, repo, number))
}

func CreateMilestone(owner, repo string, body map[string]any) Request {
	return newRequest("CreateMilestone", http.MethodPost, repoPath(owner, repo)+"/milestones").withBody(body)
}

func UpdateMilestone(owner, repo string, number int, body map[string]any) Request {
	return newRequest("UpdateMilestone", http.MethodPatch, milestonePath(owner, repo, number)).withBody(body)
}

func DeleteMilestone(owner, repo string, number int) Request {
	return newRequest("DeleteMilestone", http.MethodDelete, milestonePath(owner, repo, number))
}

func milestonePath(owner, repo string, number int) string {
	return fmt.Sprintf("%s/milestones/%d", repoPath(owner, repo), number)
}
