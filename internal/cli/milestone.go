package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ryo246912/gh-pulls/internal/ui"
	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/pulls"
)

func (a *App) milestoneCommand() *cobra.Command {
	var (
		set    int
		remove bool
	)

	cmd := &cobra.Command{
		Use:   "milestone [<number> | <url>]",
		Short: "Show, set or remove the milestone of a pull request",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pr, err := a.bind(ctx, args)
			if err != nil {
				return err
			}
			manager := pr.Milestone()

			var milestone *models.Milestone
			switch {
			case remove:
				if err := manager.Remove(ctx); err != nil {
					return err
				}
				a.printf("removed milestone from %s\n", pr)
				return nil
			case set > 0:
				milestone, err = manager.Set(ctx, set)
			default:
				milestone, err = manager.Get(ctx)
			}
			if err != nil {
				return err
			}
			if milestone == nil {
				a.printf("%s has no milestone\n", pr)
				return nil
			}
			return ui.WriteMilestones(a.Stdout, []models.Milestone{*milestone}, a.styler, a.overdue)
		},
	}

	cmd.Flags().IntVar(&set, "set", 0, "Attach the milestone with this number")
	cmd.Flags().BoolVar(&remove, "remove", false, "Detach the milestone")
	cmd.MarkFlagsMutuallyExclusive("set", "remove")
	return cmd
}

func (a *App) milestonesCommand() *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "Manage the milestones of the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := a.prs.Milestones(a.fullName())
			if err != nil {
				return err
			}

			var milestones []models.Milestone
			switch state {
			case "", models.StateOpen:
				milestones, err = manager.WhereOpen(cmd.Context())
			case models.StateClosed:
				milestones, err = manager.WhereClosed(cmd.Context())
			case "all":
				milestones, err = manager.List(cmd.Context())
			default:
				return fmt.Errorf("invalid state %q, want open, closed or all", state)
			}
			if err != nil {
				return err
			}
			return ui.WriteMilestones(a.Stdout, milestones, a.styler, a.overdue)
		},
	}
	cmd.Flags().StringVarP(&state, "state", "s", "", "Filter by state: {open|closed|all} (default open)")

	cmd.AddCommand(
		a.milestoneCreateCommand(),
		a.milestoneCloseCommand(),
		a.milestoneDeleteCommand(),
	)
	return cmd
}

func (a *App) milestoneCreateCommand() *cobra.Command {
	var description, due string

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := a.prs.Milestones(a.fullName())
			if err != nil {
				return err
			}

			var opts pulls.MilestoneOptions
			if description != "" {
				opts.Description = &description
			}
			if due != "" {
				dueOn, err := time.Parse(time.DateOnly, due)
				if err != nil {
					return fmt.Errorf("invalid due date %q, want YYYY-MM-DD: %w", due, err)
				}
				opts.DueOn = &dueOn
			}

			milestone, err := manager.Create(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			a.printf("created milestone #%d %s\n", milestone.Number, milestone.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Milestone description")
	cmd.Flags().StringVar(&due, "due", "", "Due date as YYYY-MM-DD")
	return cmd
}

func (a *App) milestoneCloseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "close <number>",
		Short: "Close a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := milestoneNumber(args[0])
			if err != nil {
				return err
			}
			manager, err := a.prs.Milestones(a.fullName())
			if err != nil {
				return err
			}
			closed := models.StateClosed
			milestone, err := manager.Update(cmd.Context(), number, pulls.MilestoneOptions{State: &closed})
			if err != nil {
				return err
			}
			a.printf("closed milestone #%d %s\n", milestone.Number, milestone.Title)
			return nil
		},
	}
}

func (a *App) milestoneDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := milestoneNumber(args[0])
			if err != nil {
				return err
			}
			manager, err := a.prs.Milestones(a.fullName())
			if err != nil {
				return err
			}
			if !yes {
				confirmed, err := a.Prompter.Confirm(fmt.Sprintf("Delete milestone #%d", number))
				if err != nil {
					return fmt.Errorf("failed to confirm delete: %w", err)
				}
				if !confirmed {
					return errors.New("delete cancelled")
				}
			}
			if err := manager.Delete(cmd.Context(), number); err != nil {
				return err
			}
			a.printf("deleted milestone #%d\n", number)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func (a *App) overdue(m models.Milestone) bool {
	return m.IsOverdue(a.Now())
}

func milestoneNumber(arg string) (int, error) {
	number, err := strconv.Atoi(arg)
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("invalid milestone number %q", arg)
	}
	return number, nil
}
