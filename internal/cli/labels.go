package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/pulls"
)

func (a *App) labelCommand() *cobra.Command {
	var add, remove, set []string

	cmd := &cobra.Command{
		Use:   "label [<number> | <url>]",
		Short: "Add, remove or replace the labels of a pull request",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(add)+len(remove)+len(set) == 0 {
				return errors.New("specify --add, --remove or --set")
			}
			if len(set) > 0 && len(add)+len(remove) > 0 {
				return errors.New("--set cannot be combined with --add or --remove")
			}
			ctx := cmd.Context()

			pr, err := a.bind(ctx, args)
			if err != nil {
				return err
			}
			if len(set) > 0 {
				if pr, err = pr.SetLabels(ctx, set...); err != nil {
					return err
				}
			}
			if len(add) > 0 {
				if pr, err = pr.AddLabels(ctx, add...); err != nil {
					return err
				}
			}
			for _, name := range remove {
				if pr, err = pr.RemoveLabel(ctx, name); err != nil {
					return err
				}
			}

			labels := make([]string, 0, len(pr.Data().Labels))
			for _, name := range pr.Data().LabelNames() {
				labels = append(labels, a.styler.Label(name))
			}
			a.printf("%s labels: %s\n", pr, strings.Join(labels, " "))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&add, "add", nil, "Labels to add")
	f.StringSliceVar(&remove, "remove", nil, "Labels to remove")
	f.StringSliceVar(&set, "set", nil, "Replace every label with these")
	return cmd
}

func (a *App) assignCommand() *cobra.Command {
	var (
		add, remove, replace []string
		clearAll             bool
	)

	cmd := &cobra.Command{
		Use:   "assign [<number> | <url>]",
		Short: "Change the assignees of a pull request",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pr, err := a.bind(ctx, args)
			if err != nil {
				return err
			}

			manager := pr.Assignees()
			switch {
			case clearAll:
				err = manager.Clear(ctx)
			case len(replace) > 0:
				err = manager.Replace(ctx, replace)
			default:
				err = changeAssignees(cmd, pr, add, remove)
			}
			if err != nil {
				return err
			}

			users, err := manager.Get(ctx)
			if err != nil {
				return err
			}
			a.printf("%s assignees: %s\n", pr, logins(users))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&add, "add", nil, "Users to assign")
	f.StringSliceVar(&remove, "remove", nil, "Users to unassign")
	f.StringSliceVar(&replace, "replace", nil, "Assign exactly these users")
	f.BoolVar(&clearAll, "clear", false, "Remove every assignee")
	cmd.MarkFlagsMutuallyExclusive("clear", "replace", "add")
	cmd.MarkFlagsMutuallyExclusive("clear", "replace", "remove")
	return cmd
}

func changeAssignees(cmd *cobra.Command, pr *pulls.PullRequest, add, remove []string) error {
	if len(add) > 0 {
		if _, err := pr.Assign(cmd.Context(), add...); err != nil {
			return err
		}
	}
	if len(remove) > 0 {
		if _, err := pr.Unassign(cmd.Context(), remove...); err != nil {
			return err
		}
	}
	return nil
}

func logins(users []models.User) string {
	if len(users) == 0 {
		return "none"
	}
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Login
	}
	return strings.Join(names, ", ")
}
