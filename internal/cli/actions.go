package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryo246912/gh-pulls/internal/logger"
	"github.com/ryo246912/gh-pulls/internal/ui"
	"github.com/ryo246912/gh-pulls/pkg/pulls"
)

func (a *App) mergeCommand() *cobra.Command {
	var (
		squash  bool
		rebase  bool
		title   string
		message string
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "merge [<number> | <url>]",
		Short: "Merge a pull request",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if squash && rebase {
				return errors.New("specify only one of --squash and --rebase")
			}
			ctx := cmd.Context()

			pr, err := a.fetch(ctx, args)
			if err != nil {
				return err
			}

			method := a.cfg.MergeMethod
			switch {
			case squash:
				method = pulls.MergeMethodSquash
			case rebase:
				method = pulls.MergeMethodRebase
			}

			if !yes {
				confirmed, err := a.Prompter.Confirm(fmt.Sprintf("%s merge %s %q", method, pr, pr.Title()))
				if err != nil {
					return fmt.Errorf("failed to confirm merge: %w", err)
				}
				if !confirmed {
					return errors.New("merge cancelled")
				}
			}

			result, err := a.prs.Merge(ctx, a.fullName(), pr.Number(), pulls.MergeOptions{
				Method:        method,
				CommitTitle:   title,
				CommitMessage: message,
				SHA:           pr.HeadSHA(),
			})
			if err != nil {
				return err
			}
			logger.Info(ctx, "merged", "pr", pr.String(), "method", method, "sha", result.SHA)
			a.printf("%s %s (%s)\n", a.styler.State("merged"), pr, result.SHA)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&squash, "squash", "s", false, "Squash the commits into one commit")
	f.BoolVarP(&rebase, "rebase", "r", false, "Rebase the commits onto the base branch")
	f.StringVarP(&title, "title", "t", "", "Title of the merge commit")
	f.StringVarP(&message, "message", "m", "", "Message of the merge commit")
	f.BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// stateCommand builds close, reopen, ready and draft, which differ only in
// the action they run.
func (a *App) stateCommand(use, short string, action func(*pulls.PullRequest, context.Context) (*pulls.PullRequest, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [<number> | <url>]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := a.bind(cmd.Context(), args)
			if err != nil {
				return err
			}
			updated, err := action(pr, cmd.Context())
			if err != nil {
				return err
			}
			a.printf("%s %s\n", updated, a.styler.State(ui.PRState(updated.Data())))
			return nil
		},
	}
}

func (a *App) reviewCommand() *cobra.Command {
	var (
		approve        bool
		requestChanges bool
		comment        bool
		body           string
		inline         []string
	)

	cmd := &cobra.Command{
		Use:   "review [<number> | <url>]",
		Short: "Approve, request changes on, or comment on a pull request",
		Example: `  gh pulls review 12 --approve
  gh pulls review 12 --request-changes -b "needs tests"
  gh pulls review 12 --comment -b "a few notes" --inline main.go:42:"rename this"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := 0
			for _, set := range []bool{approve, requestChanges, comment} {
				if set {
					selected++
				}
			}
			if selected > 1 {
				return errors.New("specify only one of --approve, --request-changes and --comment")
			}

			pr, err := a.bind(cmd.Context(), args)
			if err != nil {
				return err
			}

			review := pr.Review()
			switch {
			case approve:
				review.Approve(body)
			case requestChanges:
				review.RequestChanges(body)
			case comment:
				review.Comment(body)
			}
			for _, arg := range inline {
				path, line, text, err := parseInline(arg)
				if err != nil {
					return err
				}
				review.AddInlineComment(path, line, text)
			}

			submitted, err := review.Submit(cmd.Context())
			if err != nil {
				return err
			}
			a.printf("%s review %s on %s\n", submitted.State, submitted.HTMLURL, pr)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&approve, "approve", "a", false, "Approve the pull request")
	f.BoolVarP(&requestChanges, "request-changes", "r", false, "Request changes")
	f.BoolVarP(&comment, "comment", "c", false, "Comment without approving")
	f.StringVarP(&body, "body", "b", "", "Review body")
	f.StringArrayVar(&inline, "inline", nil, "Inline comment as PATH:LINE:TEXT (repeatable)")
	return cmd
}

func (a *App) commentCommand() *cobra.Command {
	var (
		body string
		path string
		line int
	)

	cmd := &cobra.Command{
		Use:   "comment [<number> | <url>]",
		Short: "Comment on a pull request or on a line of its diff",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if path != "" && line <= 0 {
				return errors.New("--line is required with --path")
			}

			if path == "" {
				pr, err := a.bind(ctx, args)
				if err != nil {
					return err
				}
				if _, err := pr.Comment(ctx, body); err != nil {
					return err
				}
				a.printf("commented on %s\n", pr)
				return nil
			}

			// Line comments are anchored to the head commit.
			pr, err := a.fetch(ctx, args)
			if err != nil {
				return err
			}
			if _, err := pr.CommentOnLine(ctx, body, path, line); err != nil {
				return err
			}
			a.printf("commented on %s:%d of %s\n", path, line, pr)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&body, "body", "b", "", "Comment text")
	f.StringVar(&path, "path", "", "File to comment on")
	f.IntVar(&line, "line", 0, "Line of --path to comment on")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

// parseInline splits "PATH:LINE:TEXT".
func parseInline(arg string) (string, int, string, error) {
	parts := strings.SplitN(arg, ":", 3)
	if len(parts) != 3 || parts[0] == "" {
		return "", 0, "", fmt.Errorf("invalid inline comment %q, want PATH:LINE:TEXT", arg)
	}
	line, err := strconv.Atoi(parts[1])
	if err != nil || line <= 0 {
		return "", 0, "", fmt.Errorf("invalid line in inline comment %q", arg)
	}
	return parts[0], line, parts[2], nil
}
