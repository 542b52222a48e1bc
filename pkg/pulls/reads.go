package pulls

import (
	"context"
	"fmt"

	"github.com/ryo246912/gh-pulls/pkg/connector"
	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/requests"
)

// pageSize is the per_page value paginated reads request.
const pageSize = 100

// paginate requests pages from 1 until a page comes back short or empty.
// maxPages of zero means no limit.
func paginate[T any](ctx context.Context, conn connector.Connector, maxPages int, build func(page int) requests.Request) ([]T, error) {
	all := []T{}
	for page := 1; ; page++ {
		resp, err := conn.Send(ctx, build(page))
		if err != nil {
			return nil, err
		}
		var items []T
		if err := resp.JSON(&items); err != nil {
			return nil, err
		}
		all = append(all, items...)

		if len(items) < pageSize {
			return all, nil
		}
		if maxPages > 0 && page >= maxPages {
			return all, nil
		}
	}
}

func list[T any](ctx context.Context, p *PullRequest, req requests.Request) ([]T, error) {
	resp, err := p.send(ctx, req)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if err := resp.JSON(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *PullRequest) Reviews(ctx context.Context) ([]models.Review, error) {
	reviews, err := list[models.Review](ctx, p, requests.GetPullRequestReviews(p.owner, p.repo, p.data.Number))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews of %s: %w", p, err)
	}
	return reviews, nil
}

// Comments lists the review comments left on code.
func (p *PullRequest) Comments(ctx context.Context) ([]models.Comment, error) {
	comments, err := list[models.Comment](ctx, p, requests.GetPullRequestComments(p.owner, p.repo, p.data.Number))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review comments of %s: %w", p, err)
	}
	return comments, nil
}

func (p *PullRequest) Files(ctx context.Context) ([]models.File, error) {
	files, err := list[models.File](ctx, p, requests.GetPullRequestFiles(p.owner, p.repo, p.data.Number))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch files of %s: %w", p, err)
	}
	return files, nil
}

// Checks lists the check runs reported on the head commit.
func (p *PullRequest) Checks(ctx context.Context) ([]models.CheckRun, error) {
	if err := p.ensureConnector(); err != nil {
		return nil, err
	}
	if p.data.Head.SHA == "" {
		return nil, ErrMissingHeadSHA
	}
	resp, err := p.send(ctx, requests.GetCommitCheckRuns(p.owner, p.repo, p.data.Head.SHA))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch check runs of %s: %w", p, err)
	}
	runs := []models.CheckRun{}
	if err := resp.JSONKey("check_runs", &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// Diff returns the unified diff as text.
func (p *PullRequest) Diff(ctx context.Context) (string, error) {
	resp, err := p.send(ctx, requests.GetPullRequestDiff(p.owner, p.repo, p.data.Number))
	if err != nil {
		return "", fmt.Errorf("failed to fetch diff of %s: %w", p, err)
	}
	return resp.Body(), nil
}

// Commits lists every commit, following pages.
func (p *PullRequest) Commits(ctx context.Context) ([]models.Commit, error) {
	if err := p.ensureConnector(); err != nil {
		return nil, err
	}
	commits, err := paginate[models.Commit](ctx, p.conn, p.maxPages, func(page int) requests.Request {
		return requests.GetPullRequestCommits(p.owner, p.repo, p.data.Number, pageSize, page)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commits of %s: %w", p, err)
	}
	return commits, nil
}

// IssueComments lists every conversation comment, following pages.
func (p *PullRequest) IssueComments(ctx context.Context) ([]models.Comment, error) {
	if err := p.ensureConnector(); err != nil {
		return nil, err
	}
	comments, err := paginate[models.Comment](ctx, p.conn, p.maxPages, func(page int) requests.Request {
		return requests.GetIssueComments(p.owner, p.repo, p.data.Number, pageSize, page)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments of %s: %w", p, err)
	}
	return comments, nil
}

// Timeline lists every timeline event, following pages.
func (p *PullRequest) Timeline(ctx context.Context) ([]models.TimelineEvent, error) {
	if err := p.ensureConnector(); err != nil {
		return nil, err
	}
	events, err := paginate[models.TimelineEvent](ctx, p.conn, p.maxPages, func(page int) requests.Request {
		return requests.GetIssueTimeline(p.owner, p.repo, p.data.Number, pageSize, page)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timeline of %s: %w", p, err)
	}
	return events, nil
}
