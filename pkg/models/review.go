package models

import "time"

// Review states.
const (
	ReviewApproved         = "APPROVED"
	ReviewChangesRequested = "CHANGES_REQUESTED"
	ReviewCommented        = "COMMENTED"
	ReviewPending          = "PENDING"
	ReviewDismissed        = "DISMISSED"
)

// Review represents a pull request review
type Review struct {
	ID          int64      `json:"id"`
	User        User       `json:"user"`
	Body        *string    `json:"body"`
	State       string     `json:"state"`
	HTMLURL     string     `json:"html_url"`
	SubmittedAt *time.Time `json:"submitted_at"`
}

func (r Review) IsApproved() bool {
	return r.State == ReviewApproved
}

func (r Review) IsChangesRequested() bool {
	return r.State == ReviewChangesRequested
}

func (r Review) IsCommented() bool {
	return r.State == ReviewCommented
}

func (r Review) IsPending() bool {
	return r.State == ReviewPending
}
