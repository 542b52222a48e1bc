package pulls

import (
	"context"
	"fmt"

	"github.com/ryo246912/gh-pulls/pkg/connector"
	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/requests"
)

// ReviewQuery reads the reviews of one pull request. Every call fetches
// the review list again.
type ReviewQuery struct {
	conn   connector.Connector
	owner  string
	repo   string
	number int
}

func (q *ReviewQuery) Get(ctx context.Context) ([]models.Review, error) {
	if q.conn == nil {
		return nil, ErrNoConnector
	}
	resp, err := q.conn.Send(ctx, requests.GetPullRequestReviews(q.owner, q.repo, q.number))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	reviews := []models.Review{}
	if err := resp.JSON(&reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (q *ReviewQuery) where(ctx context.Context, keep func(models.Review) bool) ([]models.Review, error) {
	reviews, err := q.Get(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Review{}
	for _, r := range reviews {
		if keep(r) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (q *ReviewQuery) WhereApproved(ctx context.Context) ([]models.Review, error) {
	return q.where(ctx, models.Review.IsApproved)
}

func (q *ReviewQuery) WhereChangesRequested(ctx context.Context) ([]models.Review, error) {
	return q.where(ctx, models.Review.IsChangesRequested)
}

func (q *ReviewQuery) WhereCommented(ctx context.Context) ([]models.Review, error) {
	return q.where(ctx, models.Review.IsCommented)
}

func (q *ReviewQuery) WherePending(ctx context.Context) ([]models.Review, error) {
	return q.where(ctx, models.Review.IsPending)
}

func (q *ReviewQuery) ByUser(ctx context.Context, login string) ([]models.Review, error) {
	return q.where(ctx, func(r models.Review) bool { return r.User.Login == login })
}

// Latest returns the most recently submitted review. Reviews without a
// submission time sort before all others.
func (q *ReviewQuery) Latest(ctx context.Context) (*models.Review, error) {
	reviews, err := q.Get(ctx)
	if err != nil || len(reviews) == 0 {
		return nil, err
	}
	latest := reviews[0]
	for _, r := range reviews[1:] {
		if submittedAfter(r, latest) {
			latest = r
		}
	}
	return &latest, nil
}

func submittedAfter(a, b models.Review) bool {
	switch {
	case a.SubmittedAt == nil:
		return false
	case b.SubmittedAt == nil:
		return true
	}
	return a.SubmittedAt.After(*b.SubmittedAt)
}

// First returns the earliest review in API order.
func (q *ReviewQuery) First(ctx context.Context) (*models.Review, error) {
	reviews, err := q.Get(ctx)
	if err != nil || len(reviews) == 0 {
		return nil, err
	}
	return &reviews[0], nil
}

func (q *ReviewQuery) Count(ctx context.Context) (int, error) {
	reviews, err := q.Get(ctx)
	return len(reviews), err
}

// Reviewers returns the distinct logins that reviewed, in first-seen order.
func (q *ReviewQuery) Reviewers(ctx context.Context) ([]string, error) {
	reviews, err := q.Get(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(reviews))
	logins := []string{}
	for _, r := range reviews {
		if _, ok := seen[r.User.Login]; ok {
			continue
		}
		seen[r.User.Login] = struct{}{}
		logins = append(logins, r.User.Login)
	}
	return logins, nil
}
