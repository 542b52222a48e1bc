// Package connector sends requests built by package requests to the GitHub
// REST API and hands back the raw response.
package connector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/ryo246912/gh-pulls/pkg/requests"
)

// Connector sends a single request. Implementations apply authentication
// and return non-2xx responses as errors.
type Connector interface {
	Send(ctx context.Context, req requests.Request) (*Response, error)
}

// Response is a successful REST response with its body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	body       []byte
}

// NewResponse builds a response from a status code and raw body.
func NewResponse(statusCode int, header http.Header, body []byte) *Response {
	if header == nil {
		header = http.Header{}
	}
	return &Response{StatusCode: statusCode, Header: header, body: body}
}

// Body returns the raw response body.
func (r *Response) Body() string {
	return string(r.body)
}

func (r *Response) Bytes() []byte {
	return r.body
}

// JSON decodes the whole body into v. An empty body leaves v untouched.
func (r *Response) JSON(v any) error {
	if len(r.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// JSONKey decodes a single top-level key of an object body into v.
// A missing key leaves v untouched.
func (r *Response) JSONKey(key string, v any) error {
	var fields map[string]json.RawMessage
	if err := r.JSON(&fields); err != nil {
		return err
	}
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode response key %q: %w", key, err)
	}
	return nil
}

func (r *Response) Successful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusCode extracts the HTTP status from an error returned by Send, or
// 0 when err is not an HTTP error.
func StatusCode(err error) int {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsConflict reports whether err is a 409 response, as returned when a
// merge conflicts with the head sha.
func IsConflict(err error) bool {
	return StatusCode(err) == http.StatusConflict
}

// IsUnprocessable reports whether err is a 422 validation failure.
func IsUnprocessable(err error) bool {
	return StatusCode(err) == http.StatusUnprocessableEntity
}

// IsNotMergeable reports whether err is the 405 a merge returns when the
// pull request cannot be merged.
func IsNotMergeable(err error) bool {
	return StatusCode(err) == http.StatusMethodNotAllowed
}
