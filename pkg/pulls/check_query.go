package pulls

import (
	"context"

	"github.com/ryo246912/gh-pulls/pkg/models"
)

// CheckRunQuery filters the check runs of a pull request's head commit.
type CheckRunQuery struct {
	pr *PullRequest
}

func (q *CheckRunQuery) Get(ctx context.Context) ([]models.CheckRun, error) {
	return q.pr.Checks(ctx)
}

func (q *CheckRunQuery) where(ctx context.Context, keep func(models.CheckRun) bool) ([]models.CheckRun, error) {
	runs, err := q.Get(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.CheckRun{}
	for _, r := range runs {
		if keep(r) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (q *CheckRunQuery) WherePassing(ctx context.Context) ([]models.CheckRun, error) {
	return q.where(ctx, models.CheckRun.IsSuccessful)
}

func (q *CheckRunQuery) WhereFailing(ctx context.Context) ([]models.CheckRun, error) {
	return q.where(ctx, models.CheckRun.IsFailed)
}

func (q *CheckRunQuery) WherePending(ctx context.Context) ([]models.CheckRun, error) {
	return q.where(ctx, models.CheckRun.IsPending)
}

func (q *CheckRunQuery) WhereNeutral(ctx context.Context) ([]models.CheckRun, error) {
	return q.where(ctx, models.CheckRun.IsNeutral)
}

func (q *CheckRunQuery) WhereSkipped(ctx context.Context) ([]models.CheckRun, error) {
	return q.where(ctx, models.CheckRun.IsSkipped)
}

func (q *CheckRunQuery) ByName(ctx context.Context, name string) ([]models.CheckRun, error) {
	return q.where(ctx, func(r models.CheckRun) bool { return r.Name == name })
}

// Latest returns the most recently started run.
func (q *CheckRunQuery) Latest(ctx context.Context) (*models.CheckRun, error) {
	runs, err := q.Get(ctx)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	latest := runs[0]
	for _, r := range runs[1:] {
		if r.StartedAt.After(latest.StartedAt) {
			latest = r
		}
	}
	return &latest, nil
}

func (q *CheckRunQuery) Summary(ctx context.Context) (models.CheckSummary, error) {
	runs, err := q.Get(ctx)
	if err != nil {
		return models.CheckSummary{}, err
	}
	return models.SummarizeChecks(runs), nil
}
