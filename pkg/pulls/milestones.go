package pulls

import (
	"context"
	"fmt"
	"time"

	"github.com/ryo246912/gh-pulls/pkg/connector"
	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/requests"
)

// MilestoneManager reads and changes the milestone of one pull request.
type MilestoneManager struct {
	conn   connector.Connector
	owner  string
	repo   string
	number int
}

// Get returns the pull request's milestone, or nil when none is set.
func (m *MilestoneManager) Get(ctx context.Context) (*models.Milestone, error) {
	if m.conn == nil {
		return nil, ErrNoConnector
	}
	resp, err := m.conn.Send(ctx, requests.GetPullRequest(m.owner, m.repo, m.number))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch milestone: %w", err)
	}
	var milestone *models.Milestone
	if err := resp.JSONKey("milestone", &milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

// Set attaches milestone number and returns it as GitHub reports it.
func (m *MilestoneManager) Set(ctx context.Context, number int) (*models.Milestone, error) {
	if m.conn == nil {
		return nil, ErrNoConnector
	}
	req := requests.UpdatePullRequest(m.owner, m.repo, m.number, map[string]any{"milestone": number})
	resp, err := m.conn.Send(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to set milestone: %w", err)
	}
	var milestone *models.Milestone
	if err := resp.JSONKey("milestone", &milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

// Remove detaches the milestone.
func (m *MilestoneManager) Remove(ctx context.Context) error {
	if m.conn == nil {
		return ErrNoConnector
	}
	req := requests.UpdatePullRequest(m.owner, m.repo, m.number, map[string]any{"milestone": nil})
	if _, err := m.conn.Send(ctx, req); err != nil {
		return fmt.Errorf("failed to remove milestone: %w", err)
	}
	return nil
}

// MilestoneOptions holds the optional milestone fields. Nil fields are
// not sent.
type MilestoneOptions struct {
	Title       *string
	Description *string
	DueOn       *time.Time
	State       *string
}

func (o MilestoneOptions) payload() map[string]any {
	body := map[string]any{}
	if o.Title != nil {
		body["title"] = *o.Title
	}
	if o.Description != nil {
		body["description"] = *o.Description
	}
	if o.DueOn != nil {
		body["due_on"] = o.DueOn.UTC().Format(time.RFC3339)
	}
	if o.State != nil {
		body["state"] = *o.State
	}
	return body
}

// RepositoryMilestoneManager manages the milestones of a repository.
type RepositoryMilestoneManager struct {
	conn  connector.Connector
	owner string
	repo  string
}

// NewRepositoryMilestoneManager returns a manager for owner/repo.
func NewRepositoryMilestoneManager(conn connector.Connector, owner, repo string) *RepositoryMilestoneManager {
	return &RepositoryMilestoneManager{conn: conn, owner: owner, repo: repo}
}

func (m *RepositoryMilestoneManager) list(ctx context.Context, state string) ([]models.Milestone, error) {
	if m.conn == nil {
		return nil, ErrNoConnector
	}
	resp, err := m.conn.Send(ctx, requests.ListMilestones(m.owner, m.repo, state))
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	milestones := []models.Milestone{}
	if err := resp.JSON(&milestones); err != nil {
		return nil, err
	}
	return milestones, nil
}

func (m *RepositoryMilestoneManager) decode(resp *connector.Response) (*models.Milestone, error) {
	var milestone models.Milestone
	if err := resp.JSON(&milestone); err != nil {
		return nil, err
	}
	return &milestone, nil
}

// List returns open and closed milestones.
func (m *RepositoryMilestoneManager) List(ctx context.Context) ([]models.Milestone, error) {
	return m.list(ctx, models.StateAll)
}

func (m *RepositoryMilestoneManager) WhereOpen(ctx context.Context) ([]models.Milestone, error) {
	return m.list(ctx, models.StateOpen)
}

func (m *RepositoryMilestoneManager) WhereClosed(ctx context.Context) ([]models.Milestone, error) {
	return m.list(ctx, models.StateClosed)
}

func (m *RepositoryMilestoneManager) Find(ctx context.Context, number int) (*models.Milestone, error) {
	if m.conn == nil {
		return nil, ErrNoConnector
	}
	resp, err := m.conn.Send(ctx, requests.GetMilestone(m.owner, m.repo, number))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch milestone %d: %w", number, err)
	}
	return m.decode(resp)
}

// Create creates a milestone. The state defaults to open.
func (m *RepositoryMilestoneManager) Create(ctx context.Context, title string, opts MilestoneOptions) (*models.Milestone, error) {
	if m.conn == nil {
		return nil, ErrNoConnector
	}
	opts.Title = &title
	if opts.State == nil {
		open := models.StateOpen
		opts.State = &open
	}
	resp, err := m.conn.Send(ctx, requests.CreateMilestone(m.owner, m.repo, opts.payload()))
	if err != nil {
		return nil, fmt.Errorf("failed to create milestone: %w", err)
	}
	return m.decode(resp)
}

// Update sends only the fields set in opts.
func (m *RepositoryMilestoneManager) Update(ctx context.Context, number int, opts MilestoneOptions) (*models.Milestone, error) {
	if m.conn == nil {
		return nil, ErrNoConnector
	}
	resp, err := m.conn.Send(ctx, requests.UpdateMilestone(m.owner, m.repo, number, opts.payload()))
	if err != nil {
		return nil, fmt.Errorf("failed to update milestone %d: %w", number, err)
	}
	return m.decode(resp)
}

func (m *RepositoryMilestoneManager) Delete(ctx context.Context, number int) error {
	if m.conn == nil {
		return ErrNoConnector
	}
	if _, err := m.conn.Send(ctx, requests.DeleteMilestone(m.owner, m.repo, number)); err != nil {
		return fmt.Errorf("failed to delete milestone %d: %w", number, err)
	}
	return nil
}
