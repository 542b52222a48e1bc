package models

import "path"

// File statuses reported by the pull request files endpoint.
const (
	FileAdded    = "added"
	FileRemoved  = "removed"
	FileModified = "modified"
	FileRenamed  = "renamed"
)

// File represents one changed file of a pull request
type File struct {
	SHA              string  `json:"sha"`
	Filename         string  `json:"filename"`
	Status           string  `json:"status"`
	Additions        int     `json:"additions"`
	Deletions        int     `json:"deletions"`
	Changes          int     `json:"changes"`
	BlobURL          string  `json:"blob_url"`
	RawURL           string  `json:"raw_url"`
	ContentsURL      string  `json:"contents_url"`
	Patch            *string `json:"patch"`
	PreviousFilename *string `json:"previous_filename"`
}

func (f File) IsAdded() bool    { return f.Status == FileAdded }
func (f File) IsRemoved() bool  { return f.Status == FileRemoved }
func (f File) IsModified() bool { return f.Status == FileModified }
func (f File) IsRenamed() bool  { return f.Status == FileRenamed }

// Extension returns the file extension without the leading dot.
func (f File) Extension() string {
	ext := path.Ext(f.Filename)
	if ext == "" {
		return ""
	}
	return ext[1:]
}

// FileStats aggregates a set of changed files
type FileStats struct {
	Total          int `json:"total"`
	Added          int `json:"added"`
	Modified       int `json:"modified"`
	Removed        int `json:"removed"`
	Renamed        int `json:"renamed"`
	TotalAdditions int `json:"total_additions"`
	TotalDeletions int `json:"total_deletions"`
	TotalChanges   int `json:"total_changes"`
}

// StatsFor counts files by status and sums their line changes.
func StatsFor(files []File) FileStats {
	stats := FileStats{Total: len(files)}
	for _, f := range files {
		switch f.Status {
		case FileAdded:
			stats.Added++
		case FileModified:
			stats.Modified++
		case FileRemoved:
			stats.Removed++
		case FileRenamed:
			stats.Renamed++
		}
		stats.TotalAdditions += f.Additions
		stats.TotalDeletions += f.Deletions
		stats.TotalChanges += f.Changes
	}
	return stats
}
