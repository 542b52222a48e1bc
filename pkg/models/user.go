// Package models holds the GitHub resources returned by the pull request
// endpoints. Values decode straight from the REST payloads and are never
// mutated after decoding.
package models

import "strings"

// User represents a GitHub user or bot account
type User struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Type      string `json:"type"`
}

// IsBot reports whether the account is a GitHub App or bot user.
func (u User) IsBot() bool {
	return u.Type == "Bot" || strings.HasSuffix(u.Login, "[bot]")
}

// Repository represents the repository attached to a head or base ref
type Repository struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
	Private  bool   `json:"private"`
}

// Label represents an issue label
type Label struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}
