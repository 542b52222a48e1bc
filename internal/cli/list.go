package cli

import (
	"github.com/spf13/cobra"

	"github.com/ryo246912/gh-pulls/internal/ui"
	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/pulls"
)

func (a *App) listCommand() *cobra.Command {
	var (
		filters   pulls.ListFilters
		labels    []string
		allLabels bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pull requests",
		Long: `List pull requests of the repository.

--draft, --merged and --all-labels are evaluated on the fetched page, so
they can return fewer results than --limit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if allLabels {
				filters.AllLabels = labels
			} else {
				filters.Labels = labels
			}
			if filters.Limit == 0 {
				filters.Limit = a.cfg.PerPage
			}

			prs, err := a.prs.List(cmd.Context(), a.fullName(), filters)
			if err != nil {
				return err
			}
			data := make([]models.PullRequest, 0, len(prs))
			for _, pr := range prs {
				data = append(data, pr.Data())
			}
			return ui.WritePRTable(a.Stdout, data, a.styler)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&filters.State, "state", "s", "", "Filter by state: {open|closed|all} (default open)")
	f.StringVarP(&filters.Author, "author", "A", "", "Filter by author")
	f.StringSliceVarP(&labels, "label", "l", nil, "Filter by label, any of the given labels matches")
	f.BoolVar(&allLabels, "all-labels", false, "Require every --label to match")
	f.StringVarP(&filters.Base, "base", "B", "", "Filter by base branch")
	f.StringVarP(&filters.Head, "head", "H", "", "Filter by head branch, \"user:branch\" for forks")
	f.BoolVarP(&filters.Draft, "draft", "d", false, "Only draft pull requests")
	f.BoolVar(&filters.Merged, "merged", false, "Only merged pull requests")
	f.IntVarP(&filters.Limit, "limit", "L", 0, "Maximum number of pull requests to fetch (default from config)")
	f.IntVar(&filters.Page, "page", 0, "Page to fetch")
	f.StringVar(&filters.Sort, "sort", "", "Sort by: {created|updated|popularity|long-running}")
	f.StringVar(&filters.Direction, "order", "", "Sort direction: {asc|desc}")
	return cmd
}
