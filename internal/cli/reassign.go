package cli

import (
	"github.com/spf13/cobra"

	"github.com/ryo246912/gh-pulls/internal/github"
	"github.com/ryo246912/gh-pulls/internal/service"
)

func (a *App) reassignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reassign [<number> | <url>]",
		Short: "Re-request a review from someone who already reviewed or commented",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var searcher github.PRSearcher
			if len(args) == 0 {
				var err error
				if searcher, err = a.searcher(); err != nil {
					return err
				}
			}

			reassign := service.NewReassignService(a.prs, searcher, &RepositoryAdapter{repo: a.repo}, a.Prompter).
				IgnoreUsers(a.cfg.IgnoreUsers).
				IncludeBots(!a.cfg.IgnoreBots)

			reviewer, err := reassign.ProcessReassignment(cmd.Context(), args)
			if err != nil {
				return err
			}
			a.printf("Successfully reassigned reviewer %s\n", reviewer)
			return nil
		},
	}
}
