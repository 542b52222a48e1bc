package requests

import "net/http"

// Review events accepted by CreatePullRequestReview.
const (
	EventApprove        = "APPROVE"
	EventRequestChanges = "REQUEST_CHANGES"
	EventComment        = "COMMENT"
)

// ReviewComment is an inline comment attached to a review submission.
// StartLine is set for multi-line comments such as suggestions.
type ReviewComment struct {
	Path      string `json:"path"`
	Line      int    `json:"line"`
	StartLine int    `json:"start_line,omitempty"`
	Body      string `json:"body"`
}

func GetPullRequestReviews(owner, repo string, number int) Request {
	return newRequest("GetPullRequestReviews", http.MethodGet, pullPath(owner, repo, number)+"/reviews")
}

// CreatePullRequestReview submits a review. body is omitted when nil and
// comments when empty.
func CreatePullRequestReview(owner, repo string, number int, event string, body *string, comments []ReviewComment) Request {
	payload := map[string]any{"event": event}
	if body != nil {
		payload["body"] = *body
	}
	if len(comments) > 0 {
		payload["comments"] = append([]ReviewComment(nil), comments...)
	}
	return newRequest("CreatePullRequestReview", http.MethodPost, pullPath(owner, repo, number)+"/reviews").
		withBody(payload)
}
