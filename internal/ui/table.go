package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/ryo246912/gh-pulls/pkg/models"
)

const (
	numberWidth = 7
	titleWidth  = 60
	authorWidth = 15
	stateWidth  = 8
)

// PRRow formats a pull request as one fixed width table row.
func PRRow(pr models.PullRequest, s Styler) string {
	state := PRState(pr)
	return strings.TrimRight(fmt.Sprintf("%s %s %s %s %s",
		PadRight(fmt.Sprintf("#%d", pr.Number), numberWidth),
		Cell(pr.Title, titleWidth),
		Cell(pr.User.Login, authorWidth),
		s.State(state)+strings.Repeat(" ", max(0, stateWidth-len(state))),
		strings.Join(pr.LabelNames(), ","),
	), " ")
}

// WritePRTable writes one row per pull request.
func WritePRTable(w io.Writer, prs []models.PullRequest, s Styler) error {
	if len(prs) == 0 {
		_, err := fmt.Fprintln(w, "no pull requests match")
		return err
	}
	for _, pr := range prs {
		if _, err := fmt.Fprintln(w, PRRow(pr, s)); err != nil {
			return err
		}
	}
	return nil
}

// WritePRDetail writes a multi line summary of one pull request.
func WritePRDetail(w io.Writer, pr models.PullRequest, checks *models.CheckSummary, s Styler) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d\n", s.Heading(pr.Title), pr.Number)
	fmt.Fprintf(&b, "%s  %s wants to merge %s into %s\n", s.State(PRState(pr)), pr.User.Login, pr.Head.Ref, pr.Base.Ref)

	if len(pr.Labels) > 0 {
		names := make([]string, 0, len(pr.Labels))
		for _, l := range pr.Labels {
			names = append(names, s.Label(l.Name))
		}
		fmt.Fprintf(&b, "Labels:    %s\n", strings.Join(names, ", "))
	}
	if len(pr.Assignees) > 0 {
		fmt.Fprintf(&b, "Assignees: %s\n", strings.Join(pr.AssigneeLogins(), ", "))
	}
	if len(pr.RequestedReviewers) > 0 {
		logins := make([]string, 0, len(pr.RequestedReviewers))
		for _, u := range pr.RequestedReviewers {
			logins = append(logins, u.Login)
		}
		fmt.Fprintf(&b, "Reviewers: %s\n", strings.Join(logins, ", "))
	}
	if pr.Milestone != nil {
		fmt.Fprintf(&b, "Milestone: %s (%.2f%%)\n", pr.Milestone.Title, pr.Milestone.Progress())
	}
	if pr.Additions != nil && pr.Deletions != nil {
		fmt.Fprintf(&b, "Changes:   +%d -%d\n", *pr.Additions, *pr.Deletions)
	}
	if checks != nil {
		fmt.Fprintf(&b, "Checks:    %d passing, %d failing, %d pending\n", checks.Passing, checks.Failing, checks.Pending)
	}
	if pr.Body != nil && *pr.Body != "" {
		fmt.Fprintf(&b, "\n%s\n", *pr.Body)
	}
	fmt.Fprintf(&b, "\n%s\n", pr.HTMLURL)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteChecks writes one row per check run followed by a summary line.
func WriteChecks(w io.Writer, runs []models.CheckRun, s Styler) error {
	for _, run := range runs {
		if _, err := fmt.Fprintf(w, "%s %s\n", Cell(run.Name, 40), s.Check(run)); err != nil {
			return err
		}
	}
	sum := models.SummarizeChecks(runs)
	_, err := fmt.Fprintf(w, "\n%d checks: %d passing, %d failing, %d pending, %d neutral, %d skipped\n",
		sum.Total, sum.Passing, sum.Failing, sum.Pending, sum.Neutral, sum.Skipped)
	return err
}

// WriteMilestones writes one row per milestone with its progress.
func WriteMilestones(w io.Writer, milestones []models.Milestone, s Styler, overdue func(models.Milestone) bool) error {
	for _, m := range milestones {
		state := m.State
		if overdue != nil && overdue(m) {
			state = "overdue"
		}
		_, err := fmt.Fprintf(w, "%s %s %s %6.2f%%\n",
			PadRight(fmt.Sprintf("#%d", m.Number), numberWidth),
			Cell(m.Title, 40),
			s.State(state)+strings.Repeat(" ", max(0, stateWidth-len(state))),
			m.Progress(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
