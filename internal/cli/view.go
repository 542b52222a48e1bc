package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryo246912/gh-pulls/internal/logger"
	"github.com/ryo246912/gh-pulls/internal/ui"
	"github.com/ryo246912/gh-pulls/pkg/models"
)

func (a *App) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [<number> | <url>]",
		Short: "Show a pull request with its labels, reviewers and checks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pr, err := a.fetch(ctx, args)
			if err != nil {
				return err
			}

			var summary *models.CheckSummary
			if pr.HeadSHA() != "" {
				s, err := pr.CheckQuery().Summary(ctx)
				if err != nil {
					logger.Warn(ctx, "skipping checks", "pr", pr.String(), "error", err)
				} else {
					summary = &s
				}
			}
			return ui.WritePRDetail(a.Stdout, pr.Data(), summary, a.styler)
		},
	}
}

func (a *App) diffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff [<number> | <url>]",
		Short: "Show the diff of a pull request",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := a.bind(cmd.Context(), args)
			if err != nil {
				return err
			}
			diff, err := pr.Diff(cmd.Context())
			if err != nil {
				return err
			}
			return ui.WriteDiff(a.Stdout, diff, a.styler.Color)
		},
	}
}

func (a *App) checksCommand() *cobra.Command {
	var failing bool

	cmd := &cobra.Command{
		Use:   "checks [<number> | <url>]",
		Short: "Show the check runs of the head commit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pr, err := a.fetch(ctx, args)
			if err != nil {
				return err
			}

			query := pr.CheckQuery()
			var runs []models.CheckRun
			if failing {
				runs, err = query.WhereFailing(ctx)
			} else {
				runs, err = query.Get(ctx)
			}
			if err != nil {
				return err
			}
			return ui.WriteChecks(a.Stdout, runs, a.styler)
		},
	}
	cmd.Flags().BoolVar(&failing, "failing", false, "Only show failed check runs")
	return cmd
}

func (a *App) filesCommand() *cobra.Command {
	var (
		pattern string
		stat    bool
	)

	cmd := &cobra.Command{
		Use:   "files [<number> | <url>]",
		Short: "List the files changed by a pull request",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pr, err := a.bind(ctx, args)
			if err != nil {
				return err
			}
			query := pr.FileQuery()

			if stat {
				s, err := query.Stats(ctx)
				if err != nil {
					return err
				}
				a.printf("%d files changed (%d added, %d modified, %d removed, %d renamed), +%d -%d\n",
					s.Total, s.Added, s.Modified, s.Removed, s.Renamed, s.TotalAdditions, s.TotalDeletions)
				return nil
			}

			var files []models.File
			if pattern != "" {
				files, err = query.WherePath(ctx, pattern)
			} else {
				files, err = query.Get(ctx)
			}
			if err != nil {
				return err
			}
			for _, f := range files {
				name := f.Filename
				if f.IsRenamed() && f.PreviousFilename != nil {
					name = fmt.Sprintf("%s -> %s", *f.PreviousFilename, f.Filename)
				}
				a.printf("%s %s +%d -%d\n", ui.PadRight(f.Status, 9), name, f.Additions, f.Deletions)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pattern, "path", "", "Only files matching a glob, \"dir/**\" matches a whole tree")
	cmd.Flags().BoolVar(&stat, "stat", false, "Print totals only")
	return cmd
}

func (a *App) commitsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "commits [<number> | <url>]",
		Short: "List every commit of a pull request",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := a.bind(cmd.Context(), args)
			if err != nil {
				return err
			}
			commits, err := pr.Commits(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range commits {
				a.printf("%s %s %s\n", c.ShortSHA(), ui.Cell(c.Author.Name, 15), c.Subject())
			}
			return nil
		},
	}
}
