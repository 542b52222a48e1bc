package models

import "time"

// CheckRun represents a check run reported against a commit
type CheckRun struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Conclusion  *string    `json:"conclusion"`
	HTMLURL     string     `json:"html_url"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (c CheckRun) IsCompleted() bool {
	return c.Status == "completed"
}

func (c CheckRun) IsPending() bool {
	return !c.IsCompleted()
}

func (c CheckRun) IsSuccessful() bool {
	return c.conclusion() == "success"
}

// IsFailed reports failure, timed_out and action_required conclusions.
func (c CheckRun) IsFailed() bool {
	switch c.conclusion() {
	case "failure", "timed_out", "action_required":
		return true
	}
	return false
}

func (c CheckRun) IsNeutral() bool {
	return c.conclusion() == "neutral"
}

func (c CheckRun) IsSkipped() bool {
	return c.conclusion() == "skipped"
}

func (c CheckRun) conclusion() string {
	if c.Conclusion == nil {
		return ""
	}
	return *c.Conclusion
}

// CheckSummary counts check runs by outcome
type CheckSummary struct {
	Total   int `json:"total"`
	Passing int `json:"passing"`
	Failing int `json:"failing"`
	Pending int `json:"pending"`
	Neutral int `json:"neutral"`
	Skipped int `json:"skipped"`
}

// SummarizeChecks counts runs by outcome. A run counts as pending while it is
// not completed, regardless of conclusion.
func SummarizeChecks(runs []CheckRun) CheckSummary {
	s := CheckSummary{Total: len(runs)}
	for _, r := range runs {
		switch {
		case r.IsPending():
			s.Pending++
		case r.IsSuccessful():
			s.Passing++
		case r.IsFailed():
			s.Failing++
		case r.IsNeutral():
			s.Neutral++
		case r.IsSkipped():
			s.Skipped++
		}
	}
	return s
}

// AllPassing reports whether at least one check ran and none failed or
// are still pending.
func (s CheckSummary) AllPassing() bool {
	return s.Total > 0 && s.Failing == 0 && s.Pending == 0
}

func (s CheckSummary) HasFailures() bool {
	return s.Failing > 0
}

func (s CheckSummary) HasPending() bool {
	return s.Pending > 0
}
