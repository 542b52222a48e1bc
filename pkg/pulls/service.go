package pulls

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ryo246912/gh-pulls/pkg/connector"
	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/requests"
)

// Service is the entry point for pull request operations.
type Service struct {
	conn     connector.Connector
	logger   *slog.Logger
	maxPages int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxPages caps paginated reads. Zero, the default, reads until the
// API returns a short page.
func WithMaxPages(n int) Option {
	return func(s *Service) {
		s.maxPages = n
	}
}

// New returns a Service sending through conn. With a nil conn every
// operation fails with ErrNoConnector.
func New(conn connector.Connector, opts ...Option) *Service {
	s := &Service{conn: conn, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) resolve(fullName string) (string, string, error) {
	if s.conn == nil {
		return "", "", ErrNoConnector
	}
	return splitRepository(fullName)
}

func (s *Service) wrap(owner, repo string, data models.PullRequest) *PullRequest {
	pr := NewPullRequest(s.conn, owner, repo, data)
	pr.logger = s.logger
	pr.maxPages = s.maxPages
	return pr
}

// Wrap binds already decoded data to fullName.
func (s *Service) Wrap(fullName string, data models.PullRequest) (*PullRequest, error) {
	owner, repo, err := s.resolve(fullName)
	if err != nil {
		return nil, err
	}
	return s.wrap(owner, repo, data), nil
}

// Find fetches pull request number of fullName.
func (s *Service) Find(ctx context.Context, fullName string, number int) (*PullRequest, error) {
	owner, repo, err := s.resolve(fullName)
	if err != nil {
		return nil, err
	}
	resp, err := s.conn.Send(ctx, requests.GetPullRequest(owner, repo, number))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s/%s#%d: %w", owner, repo, number, err)
	}
	var data models.PullRequest
	if err := resp.JSON(&data); err != nil {
		return nil, err
	}
	return s.wrap(owner, repo, data), nil
}

// Get is an alias of Find.
func (s *Service) Get(ctx context.Context, fullName string, number int) (*PullRequest, error) {
	return s.Find(ctx, fullName, number)
}

// Create opens a pull request from raw attributes (title, head, base...).
func (s *Service) Create(ctx context.Context, fullName string, attrs map[string]any) (*PullRequest, error) {
	owner, repo, err := s.resolve(fullName)
	if err != nil {
		return nil, err
	}
	resp, err := s.conn.Send(ctx, requests.CreatePullRequest(owner, repo, attrs))
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request in %s/%s: %w", owner, repo, err)
	}
	var data models.PullRequest
	if err := resp.JSON(&data); err != nil {
		return nil, err
	}
	return s.wrap(owner, repo, data), nil
}

// NewPullRequest starts a builder for a pull request in fullName. A bad
// repository surfaces from Create.
func (s *Service) NewPullRequest(fullName string) *PullRequestBuilder {
	owner, repo, err := s.resolve(fullName)
	return &PullRequestBuilder{
		conn:   s.conn,
		logger: s.logger,
		owner:  owner,
		repo:   repo,
		err:    err,
	}
}

// Query returns an empty builder.
func (s *Service) Query() *QueryBuilder {
	q := NewQueryBuilder(s.conn)
	q.logger = s.logger
	return q
}

// For returns a builder scoped to fullName listing open pull requests.
func (s *Service) For(fullName string) *QueryBuilder {
	return s.Query().Repository(fullName).Open()
}

// Update patches pull request number with attrs.
func (s *Service) Update(ctx context.Context, fullName string, number int, attrs map[string]any) (*PullRequest, error) {
	owner, repo, err := s.resolve(fullName)
	if err != nil {
		return nil, err
	}
	return s.wrap(owner, repo, models.PullRequest{Number: number}).Update(ctx, attrs)
}

// Merge merges pull request number and reports GitHub's merge result.
func (s *Service) Merge(ctx context.Context, fullName string, number int, opts MergeOptions) (models.MergeResult, error) {
	owner, repo, err := s.resolve(fullName)
	if err != nil {
		return models.MergeResult{}, err
	}
	return s.wrap(owner, repo, models.PullRequest{Number: number}).merge(ctx, opts)
}

func (s *Service) Close(ctx context.Context, fullName string, number int) (*PullRequest, error) {
	return s.Update(ctx, fullName, number, map[string]any{"state": models.StateClosed})
}

// ListFilters holds the list parameters accepted by List. Zero values are
// left to the query defaults.
type ListFilters struct {
	State     string
	Author    string
	Labels    []string
	AllLabels []string
	Base      string
	Head      string
	Sort      string
	Direction string
	Draft     bool
	Merged    bool
	Limit     int
	Page      int
}

// Apply copies f onto q.
func (f ListFilters) Apply(q *QueryBuilder) *QueryBuilder {
	if f.State != "" {
		q.State(f.State)
	}
	if f.Author != "" {
		q.Author(f.Author)
	}
	if len(f.Labels) > 0 {
		q.WhereLabels(f.Labels...)
	}
	if len(f.AllLabels) > 0 {
		q.WhereAllLabels(f.AllLabels...)
	}
	if f.Base != "" {
		q.WhereBase(f.Base)
	}
	if f.Head != "" {
		q.WhereHead(f.Head)
	}
	if f.Sort != "" || f.Direction != "" {
		sort := f.Sort
		if sort == "" {
			sort = "created"
		}
		q.OrderBy(sort, f.Direction)
	}
	if f.Draft {
		q.WhereDraft()
	}
	if f.Merged {
		q.WhereMerged()
	}
	if f.Limit > 0 {
		q.Take(f.Limit)
	}
	if f.Page > 0 {
		q.Page(f.Page)
	}
	return q
}

// List runs a single list query for fullName.
func (s *Service) List(ctx context.Context, fullName string, filters ListFilters) ([]*PullRequest, error) {
	return filters.Apply(s.Query().Repository(fullName)).Get(ctx)
}

func (s *Service) Open(ctx context.Context, fullName string) ([]*PullRequest, error) {
	return s.Query().Repository(fullName).Open().Get(ctx)
}

func (s *Service) Closed(ctx context.Context, fullName string) ([]*PullRequest, error) {
	return s.Query().Repository(fullName).Closed().Get(ctx)
}

// Milestones returns a manager for the milestones of fullName.
func (s *Service) Milestones(fullName string) (*RepositoryMilestoneManager, error) {
	owner, repo, err := s.resolve(fullName)
	if err != nil {
		return nil, err
	}
	return NewRepositoryMilestoneManager(s.conn, owner, repo), nil
}

// CurrentUser returns the authenticated user.
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	if s.conn == nil {
		return nil, ErrNoConnector
	}
	resp, err := s.conn.Send(ctx, requests.GetAuthenticatedUser())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}
	var user models.User
	if err := resp.JSON(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
