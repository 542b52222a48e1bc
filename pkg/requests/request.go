// Package requests builds the outbound REST requests for the pull request
// endpoints. A Request is fixed at construction; accessors hand out copies.
package requests

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Media types the REST API selects on via the Accept header.
const (
	MediaTypeJSON     = "application/vnd.github+json"
	MediaTypeDiff     = "application/vnd.github.v3.diff"
	MediaTypeTimeline = "application/vnd.github.mockingbird-preview+json"
)

// Request describes one REST call.
type Request struct {
	name     string
	method   string
	endpoint string
	query    url.Values
	header   http.Header
	body     any
}

func newRequest(name, method, endpoint string) Request {
	return Request{
		name:     name,
		method:   method,
		endpoint: endpoint,
		query:    url.Values{},
		header:   http.Header{},
	}
}

func (r Request) withQuery(q url.Values) Request {
	r.query = q
	return r
}

func (r Request) withHeader(key, value string) Request {
	h := r.header.Clone()
	h.Set(key, value)
	r.header = h
	return r
}

func (r Request) withBody(body any) Request {
	r.body = body
	return r
}

// Name identifies the endpoint, e.g. "GetPullRequest".
func (r Request) Name() string { return r.name }

func (r Request) Method() string { return r.method }

// Endpoint is the request path without the query string.
func (r Request) Endpoint() string { return r.endpoint }

// Query returns a copy of the query parameters.
func (r Request) Query() url.Values {
	q := make(url.Values, len(r.query))
	for k, v := range r.query {
		q[k] = append([]string(nil), v...)
	}
	return q
}

// Header returns a copy of the request specific headers.
func (r Request) Header() http.Header { return r.header.Clone() }

// Body is the JSON payload, or nil when the request has none.
func (r Request) Body() any { return r.body }

// URL returns the endpoint with its encoded query string.
func (r Request) URL() string {
	if len(r.query) == 0 {
		return r.endpoint
	}
	return r.endpoint + "?" + r.query.Encode()
}

func (r Request) String() string {
	return r.method + " " + r.URL()
}

func repoPath(owner, repo string) string {
	return fmt.Sprintf("/repos/%s/%s", url.PathEscape(owner), url.PathEscape(repo))
}

func pullPath(owner, repo string, number int) string {
	return fmt.Sprintf("%s/pulls/%d", repoPath(owner, repo), number)
}

func issuePath(owner, repo string, number int) string {
	return fmt.Sprintf("%s/issues/%d", repoPath(owner, repo), number)
}

func pageQuery(perPage, page int) url.Values {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))
	return q
}
