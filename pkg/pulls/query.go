package pulls

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/ryo246912/gh-pulls/pkg/connector"
	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/requests"
)

const defaultPerPage = 30

// ServerFilter is a list parameter the API evaluates.
type ServerFilter struct {
	Key   string
	Value string
}

// ClientPredicate narrows an already fetched page for conditions the list
// endpoint cannot express.
type ClientPredicate struct {
	Name  string
	Match func(models.PullRequest) bool
}

// QueryBuilder accumulates filters for the pull request list endpoint.
// Each terminal call (Get, First, Count, Exists, Pluck) sends exactly one
// list request; results are not cached between calls.
//
// Client predicates only narrow the single requested page, in the order
// they were declared. They do not fetch further pages to fill Take.
type QueryBuilder struct {
	conn    connector.Connector
	logger  *slog.Logger
	owner   string
	repo    string
	repoErr error

	filters    []ServerFilter
	predicates []ClientPredicate

	sort      string
	direction string
	limit     int
	page      int
}

// NewQueryBuilder returns a builder sending through conn.
func NewQueryBuilder(conn connector.Connector) *QueryBuilder {
	return &QueryBuilder{
		conn:      conn,
		logger:    slog.Default(),
		sort:      "created",
		direction: "desc",
		page:      1,
	}
}

// Repository sets the target repository from "owner/repo".
func (q *QueryBuilder) Repository(fullName string) *QueryBuilder {
	owner, repo, err := splitRepository(fullName)
	q.owner, q.repo, q.repoErr = owner, repo, err
	return q
}

// Repo is an alias of Repository.
func (q *QueryBuilder) Repo(fullName string) *QueryBuilder {
	return q.Repository(fullName)
}

func (q *QueryBuilder) State(state string) *QueryBuilder {
	return q.setFilter("state", state)
}

func (q *QueryBuilder) Open() *QueryBuilder   { return q.State(models.StateOpen) }
func (q *QueryBuilder) Closed() *QueryBuilder { return q.State(models.StateClosed) }
func (q *QueryBuilder) All() *QueryBuilder    { return q.State(models.StateAll) }

func (q *QueryBuilder) WhereOpen() *QueryBuilder               { return q.Open() }
func (q *QueryBuilder) WhereClosed() *QueryBuilder             { return q.Closed() }
func (q *QueryBuilder) WhereState(state string) *QueryBuilder  { return q.State(state) }
func (q *QueryBuilder) WhereAuthor(login string) *QueryBuilder { return q.Author(login) }

// Author filters by the pull request creator.
func (q *QueryBuilder) Author(login string) *QueryBuilder {
	return q.setFilter("creator", login)
}

// Label filters by a single label, replacing any earlier label filter.
func (q *QueryBuilder) Label(name string) *QueryBuilder {
	return q.setFilter("labels", name)
}

func (q *QueryBuilder) WhereLabel(name string) *QueryBuilder {
	return q.Label(name)
}

// WhereLabels matches pull requests carrying any of names.
func (q *QueryBuilder) WhereLabels(names ...string) *QueryBuilder {
	return q.setFilter("labels", strings.Join(names, ","))
}

// WhereAllLabels keeps pull requests carrying every one of names.
func (q *QueryBuilder) WhereAllLabels(names ...string) *QueryBuilder {
	required := append([]string(nil), names...)
	return q.addPredicate("all_labels", func(pr models.PullRequest) bool {
		for _, name := range required {
			if !pr.HasLabel(name) {
				return false
			}
		}
		return true
	})
}

func (q *QueryBuilder) WhereMerged() *QueryBuilder {
	return q.addPredicate("merged", models.PullRequest.IsMerged)
}

func (q *QueryBuilder) WhereDraft() *QueryBuilder {
	return q.addPredicate("draft", models.PullRequest.IsDraft)
}

func (q *QueryBuilder) WhereBase(branch string) *QueryBuilder {
	return q.setFilter("base", branch)
}

// WhereHead filters by head, given as "user:branch" or "branch".
func (q *QueryBuilder) WhereHead(branch string) *QueryBuilder {
	return q.setFilter("head", branch)
}

// OrderBy sets sort (created, updated, popularity, long-running) and
// direction (asc, desc). An empty direction means desc.
func (q *QueryBuilder) OrderBy(sort, direction string) *QueryBuilder {
	if direction == "" {
		direction = "desc"
	}
	q.sort, q.direction = sort, direction
	return q
}

func (q *QueryBuilder) OrderByCreated(direction string) *QueryBuilder {
	return q.OrderBy("created", direction)
}

func (q *QueryBuilder) OrderByUpdated(direction string) *QueryBuilder {
	return q.OrderBy("updated", direction)
}

func (q *QueryBuilder) OrderByPopularity() *QueryBuilder {
	return q.OrderBy("popularity", "desc")
}

func (q *QueryBuilder) OrderByLongRunning() *QueryBuilder {
	return q.OrderBy("long-running", "asc")
}

// Take sets the page size.
func (q *QueryBuilder) Take(n int) *QueryBuilder {
	q.limit = n
	return q
}

func (q *QueryBuilder) PerPage(n int) *QueryBuilder {
	return q.Take(n)
}

func (q *QueryBuilder) Page(n int) *QueryBuilder {
	q.page = n
	return q
}

// Filters returns the server side filters in declaration order.
func (q *QueryBuilder) Filters() []ServerFilter {
	return append([]ServerFilter(nil), q.filters...)
}

// Predicates returns the client side predicates in declaration order.
func (q *QueryBuilder) Predicates() []ClientPredicate {
	return append([]ClientPredicate(nil), q.predicates...)
}

func (q *QueryBuilder) setFilter(key, value string) *QueryBuilder {
	for i, f := range q.filters {
		if f.Key == key {
			q.filters[i].Value = value
			return q
		}
	}
	q.filters = append(q.filters, ServerFilter{Key: key, Value: value})
	return q
}

// addPredicate replaces a predicate of the same name in place so that
// repeating a call keeps its first position.
func (q *QueryBuilder) addPredicate(name string, match func(models.PullRequest) bool) *QueryBuilder {
	for i, p := range q.predicates {
		if p.Name == name {
			q.predicates[i].Match = match
			return q
		}
	}
	q.predicates = append(q.predicates, ClientPredicate{Name: name, Match: match})
	return q
}

// Params returns the query parameters Get would send.
func (q *QueryBuilder) Params() url.Values {
	params := url.Values{}
	for _, f := range q.filters {
		params.Set(f.Key, f.Value)
	}
	params.Set("sort", q.sort)
	params.Set("direction", q.direction)
	perPage := q.limit
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(q.page))
	if params.Get("state") == "" {
		params.Set("state", models.StateOpen)
	}
	return params
}

// Get sends the list request and applies client predicates.
func (q *QueryBuilder) Get(ctx context.Context) ([]*PullRequest, error) {
	if q.conn == nil {
		return nil, ErrNoConnector
	}
	if q.repoErr != nil {
		return nil, q.repoErr
	}
	if q.owner == "" || q.repo == "" {
		return nil, ErrRepositoryRequired
	}

	params := q.Params()
	q.logger.DebugContext(ctx, "listing pull requests",
		"repo", q.owner+"/"+q.repo, "params", params.Encode(), "predicates", len(q.predicates))

	resp, err := q.conn.Send(ctx, requests.ListPullRequests(q.owner, q.repo, params))
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}
	var page []models.PullRequest
	if err := resp.JSON(&page); err != nil {
		return nil, err
	}

	for _, pred := range q.predicates {
		kept := make([]models.PullRequest, 0, len(page))
		for _, pr := range page {
			if pred.Match(pr) {
				kept = append(kept, pr)
			}
		}
		page = kept
	}

	results := make([]*PullRequest, 0, len(page))
	for _, data := range page {
		pr := NewPullRequest(q.conn, q.owner, q.repo, data)
		pr.logger = q.logger
		results = append(results, pr)
	}
	return results, nil
}

// First fetches a single pull request, or nil when none match.
func (q *QueryBuilder) First(ctx context.Context) (*PullRequest, error) {
	results, err := q.Take(1).Get(ctx)
	if err != nil || len(results) == 0 {
		return nil, err
	}
	return results[0], nil
}

func (q *QueryBuilder) Count(ctx context.Context) (int, error) {
	results, err := q.Get(ctx)
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

func (q *QueryBuilder) Exists(ctx context.Context) (bool, error) {
	n, err := q.Count(ctx)
	return n > 0, err
}

// Pluck returns one field of every result. Unknown fields yield nil.
func (q *QueryBuilder) Pluck(ctx context.Context, field string) ([]any, error) {
	results, err := q.Get(ctx)
	if err != nil {
		return nil, err
	}
	values := make([]any, 0, len(results))
	for _, pr := range results {
		values = append(values, pluck(pr.Data(), field))
	}
	return values, nil
}

func pluck(pr models.PullRequest, field string) any {
	switch field {
	case "number":
		return pr.Number
	case "title":
		return pr.Title
	case "state":
		return pr.State
	case "body":
		if pr.Body == nil {
			return nil
		}
		return *pr.Body
	case "html_url", "htmlUrl":
		return pr.HTMLURL
	case "user", "author":
		return pr.User.Login
	case "head":
		return pr.Head.Ref
	case "base":
		return pr.Base.Ref
	case "draft":
		return pr.Draft
	case "merged":
		return pr.IsMerged()
	case "labels":
		return pr.LabelNames()
	}
	return nil
}

// splitRepository parses "owner/repo" or "host/owner/repo".
func splitRepository(fullName string) (string, string, error) {
	repo, err := repository.Parse(fullName)
	if err != nil {
		return "", "", fmt.Errorf("%w %q: %v", ErrInvalidRepository, fullName, err)
	}
	if repo.Owner == "" || repo.Name == "" {
		return "", "", fmt.Errorf("%w %q", ErrInvalidRepository, fullName)
	}
	return repo.Owner, repo.Name, nil
}
