package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fwsync/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const tokenPath = "/fotoweb/oauth2/token"

// StatusError is returned for any non-2xx API response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// Response represents a raw API response with status and body.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// ConnectionOpts contains configuration options for creating a Connection.
type ConnectionOpts struct {
	ClientID          string
	ClientSecret      string
	RequestsPerSecond float64
	Burst             int
	HTTPClient        *http.Client // bypasses OAuth2 when set; used by tests
	Logger            *log.Logger
}

// Connection proxies authenticated requests to a tenant endpoint.
//
// The token and rate limiter are shared by all calls; per-request concurrency
// control lives here, not in the callers.
type Connection struct {
	host    string
	client  *http.Client
	raw     *http.Client // token-less client for explicit bearer auth
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewConnection connects to a tenant instance, e.g. https://myorg.fotoware.cloud.
//
// Credentials belong to a registered non-interactive application; the token is
// fetched lazily on the first request and refreshed by the underlying client.
func NewConnection(host string, opts ConnectionOpts) *Connection {
	host = strings.TrimSuffix(host, "/")

	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 5.0
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}

	raw := opts.HTTPClient
	if raw == nil {
		raw = http.DefaultClient
	}

	client := opts.HTTPClient
	if client == nil {
		conf := &clientcredentials.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			TokenURL:     host + tokenPath,
			AuthStyle:    oauth2.AuthStyleInParams,
		}
		client = conf.Client(context.Background())
	}

	return &Connection{
		host:    host,
		client:  client,
		raw:     raw,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		logger:  opts.Logger,
	}
}

// Host returns the tenant endpoint URL without a trailing slash.
func (c *Connection) Host() string {
	return c.host
}

// Close releases idle transport connections. The connection must not be used afterwards.
func (c *Connection) Close() {
	c.client.CloseIdleConnections()
}

// do issues one throttled request and materializes the response.
// A non-2xx status yields both the response and a *StatusError.
func (c *Connection) do(ctx context.Context, method, path string, headers map[string]string, body io.Reader) (*Response, error) {
	return c.doWith(ctx, c.client, method, path, headers, body)
}

func (c *Connection) doWith(ctx context.Context, client *http.Client, method, path string, headers map[string]string, body io.Reader) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.host+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}

	var jsonData any
	if err := json.Unmarshal(data, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiResp, &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: data}
	}

	return apiResp, nil
}

// GET performs a GET request against a tenant-local path.
//
// Returns a *StatusError if the status code is not 2xx; the response is still
// returned alongside it for callers that inspect intermediate statuses.
func (c *Connection) GET(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, nil)
}

// POST performs a POST request with the given body against a tenant-local path.
func (c *Connection) POST(ctx context.Context, path string, headers map[string]string, body []byte) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, headers, bytes.NewReader(body))
}

// PATCH performs a PATCH request with the given body against a tenant-local path.
func (c *Connection) PATCH(ctx context.Context, path string, headers map[string]string, body []byte) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, headers, bytes.NewReader(body))
}

// GETWithBearer performs a GET with an explicit bearer token instead of the
// connection's own credentials. Preview downloads authenticate with the
// asset's previewToken this way.
func (c *Connection) GETWithBearer(ctx context.Context, path, token string) (*Response, error) {
	return c.doWith(ctx, c.raw, http.MethodGet, path, map[string]string{"Authorization": "Bearer " + token}, nil)
}
