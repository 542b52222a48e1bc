package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/ryo246912/gh-pulls/pkg/requests"
)

const apiVersion = "2022-11-28"

// Options configures an HTTPConnector.
type Options struct {
	// Host is the GitHub hostname. Defaults to the gh default host.
	Host string

	// AuthToken overrides the token gh resolves for Host.
	AuthToken string

	// BaseURL overrides the REST root derived from Host.
	BaseURL string

	Timeout time.Duration

	// HTTPClient skips go-gh client construction. Authentication is then
	// the caller's responsibility.
	HTTPClient *http.Client

	// LogWriter receives go-gh's HTTP traffic log when set.
	LogWriter  io.Writer
	LogVerbose bool

	Logger *slog.Logger
}

// HTTPConnector sends requests over go-gh's authenticated HTTP client.
type HTTPConnector struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPConnector creates a connector for opts.Host, resolving the token
// the same way gh does unless one is given.
func NewHTTPConnector(opts Options) (*HTTPConnector, error) {
	host := opts.Host
	if host == "" {
		host, _ = auth.DefaultHost()
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = RESTBaseURL(host)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := opts.HTTPClient
	if client == nil {
		var err error
		client, err = api.NewHTTPClient(api.ClientOptions{
			Host:           host,
			AuthToken:      opts.AuthToken,
			Timeout:        opts.Timeout,
			Log:            opts.LogWriter,
			LogVerboseHTTP: opts.LogVerbose,
			Headers: map[string]string{
				"Accept":               requests.MediaTypeJSON,
				"X-GitHub-Api-Version": apiVersion,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
	}

	return &HTTPConnector{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger.With("host", host),
	}, nil
}

// RESTBaseURL returns the REST API root for a host.
func RESTBaseURL(host string) string {
	host = strings.ToLower(host)
	if host == "" || host == "github.com" || host == "api.github.com" {
		return "https://api.github.com"
	}
	if auth.IsEnterprise(host) {
		return "https://" + host + "/api/v3"
	}
	return "https://api." + host
}

// BaseURL returns the REST root the connector sends to.
func (c *HTTPConnector) BaseURL() string {
	return c.baseURL
}

// Send performs req and reads the whole response. Non-2xx responses are
// returned as *api.HTTPError.
func (c *HTTPConnector) Send(ctx context.Context, req requests.Request) (*Response, error) {
	var body io.Reader
	if payload := req.Body(); payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method(), c.baseURL+req.URL(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request %s: %w", req.Name(), err)
	}
	for key, values := range req.Header() {
		httpReq.Header[key] = values
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", requests.MediaTypeJSON)
	}
	if httpReq.Header.Get("X-GitHub-Api-Version") == "" {
		httpReq.Header.Set("X-GitHub-Api-Version", apiVersion)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed",
			"request", req.Name(), "method", req.Method(), "path", req.Endpoint(), "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "request completed",
		"request", req.Name(),
		"method", req.Method(),
		"path", req.Endpoint(),
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, api.HandleHTTPError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return NewResponse(resp.StatusCode, resp.Header, data), nil
}

var _ Connector = (*HTTPConnector)(nil)
