package models

import (
	"math"
	"time"
)

// Milestone represents a repository milestone
type Milestone struct {
	Number       int        `json:"number"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	State        string     `json:"state"`
	OpenIssues   int        `json:"open_issues"`
	ClosedIssues int        `json:"closed_issues"`
	DueOn        *time.Time `json:"due_on"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ClosedAt     *time.Time `json:"closed_at"`
	HTMLURL      string     `json:"html_url"`
}

func (m Milestone) IsOpen() bool {
	return m.State == StateOpen
}

func (m Milestone) IsClosed() bool {
	return m.State == StateClosed
}

// IsOverdue reports whether an open milestone's due date is before now.
func (m Milestone) IsOverdue(now time.Time) bool {
	return m.DueOn != nil && m.DueOn.Before(now) && m.IsOpen()
}

// Progress returns the closed issue percentage rounded to two decimals.
func (m Milestone) Progress() float64 {
	total := m.OpenIssues + m.ClosedIssues
	if total == 0 {
		return 0
	}
	pct := float64(m.ClosedIssues) / float64(total) * 100
	return math.Round(pct*100) / 100
}
