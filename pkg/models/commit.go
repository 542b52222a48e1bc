package models

import (
	"encoding/json"
	"strings"
	"time"
)

// CommitAuthor is the git identity recorded on a commit
type CommitAuthor struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// Commit represents a commit listed on a pull request. The REST payload
// nests the git data under "commit"; Commit flattens it.
type Commit struct {
	SHA             string
	Message         string
	Author          CommitAuthor
	Committer       CommitAuthor
	HTMLURL         string
	GitHubAuthor    *User
	GitHubCommitter *User
}

type commitWire struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message   string       `json:"message"`
		Author    CommitAuthor `json:"author"`
		Committer CommitAuthor `json:"committer"`
	} `json:"commit"`
	HTMLURL   string `json:"html_url"`
	Author    *User  `json:"author"`
	Committer *User  `json:"committer"`
}

func (c *Commit) UnmarshalJSON(data []byte) error {
	var w commitWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*c = Commit{
		SHA:             w.SHA,
		Message:         w.Commit.Message,
		Author:          w.Commit.Author,
		Committer:       w.Commit.Committer,
		HTMLURL:         w.HTMLURL,
		GitHubAuthor:    w.Author,
		GitHubCommitter: w.Committer,
	}
	return nil
}

func (c Commit) MarshalJSON() ([]byte, error) {
	var w commitWire
	w.SHA = c.SHA
	w.Commit.Message = c.Message
	w.Commit.Author = c.Author
	w.Commit.Committer = c.Committer
	w.HTMLURL = c.HTMLURL
	w.Author = c.GitHubAuthor
	w.Committer = c.GitHubCommitter
	return json.Marshal(w)
}

// ShortSHA returns the first seven characters of the commit sha.
func (c Commit) ShortSHA() string {
	if len(c.SHA) <= 7 {
		return c.SHA
	}
	return c.SHA[:7]
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return subject
}
