package models

import "time"

// Comment represents an issue comment or a review comment on code
type Comment struct {
	ID        int64     `json:"id"`
	User      User      `json:"user"`
	Body      string    `json:"body"`
	HTMLURL   string    `json:"html_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Set on review comments only.
	Path *string `json:"path,omitempty"`
	Line *int    `json:"line,omitempty"`
}

// IsInline reports whether the comment is attached to a file line.
func (c Comment) IsInline() bool {
	return c.Path != nil
}
