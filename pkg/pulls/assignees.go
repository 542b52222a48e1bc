package pulls

import (
	"context"
	"fmt"

	"github.com/ryo246912/gh-pulls/pkg/connector"
	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/requests"
)

// AssigneeManager reads and changes the assignees of one pull request.
type AssigneeManager struct {
	conn   connector.Connector
	owner  string
	repo   string
	number int
}

func (m *AssigneeManager) send(ctx context.Context, req requests.Request) (*connector.Response, error) {
	if m.conn == nil {
		return nil, ErrNoConnector
	}
	return m.conn.Send(ctx, req)
}

// Get fetches the pull request and returns its current assignees.
func (m *AssigneeManager) Get(ctx context.Context) ([]models.User, error) {
	resp, err := m.send(ctx, requests.GetPullRequest(m.owner, m.repo, m.number))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignees: %w", err)
	}
	users := []models.User{}
	if err := resp.JSONKey("assignees", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (m *AssigneeManager) Add(ctx context.Context, login string) error {
	return m.AddMany(ctx, []string{login})
}

func (m *AssigneeManager) AddMany(ctx context.Context, logins []string) error {
	if _, err := m.send(ctx, requests.AddAssignees(m.owner, m.repo, m.number, logins)); err != nil {
		return fmt.Errorf("failed to add assignees: %w", err)
	}
	return nil
}

func (m *AssigneeManager) Remove(ctx context.Context, login string) error {
	return m.RemoveMany(ctx, []string{login})
}

func (m *AssigneeManager) RemoveMany(ctx context.Context, logins []string) error {
	if _, err := m.send(ctx, requests.RemoveAssignees(m.owner, m.repo, m.number, logins)); err != nil {
		return fmt.Errorf("failed to remove assignees: %w", err)
	}
	return nil
}

// Replace removes every current assignee and then adds logins. The two
// calls are not atomic; a failed add leaves the pull request unassigned.
func (m *AssigneeManager) Replace(ctx context.Context, logins []string) error {
	if err := m.Clear(ctx); err != nil {
		return err
	}
	if len(logins) == 0 {
		return nil
	}
	return m.AddMany(ctx, logins)
}

// Clear removes every current assignee.
func (m *AssigneeManager) Clear(ctx context.Context) error {
	current, err := m.Get(ctx)
	if err != nil {
		return err
	}
	if len(current) == 0 {
		return nil
	}
	logins := make([]string, 0, len(current))
	for _, u := range current {
		logins = append(logins, u.Login)
	}
	return m.RemoveMany(ctx, logins)
}

func (m *AssigneeManager) Has(ctx context.Context, login string) (bool, error) {
	current, err := m.Get(ctx)
	if err != nil {
		return false, err
	}
	for _, u := range current {
		if u.Login == login {
			return true, nil
		}
	}
	return false, nil
}
