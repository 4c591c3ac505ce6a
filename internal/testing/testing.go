// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/desertthunder/fwsync/internal/api"
)

// RecordedRequest captures one call made through a [FakeTransport].
type RecordedRequest struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    []byte
}

// FakeTransport is a test double for the change engine's transport boundary.
//
// Every call is recorded; the Handler decides the response. When Handler is
// nil every call answers 200 with an empty JSON object.
type FakeTransport struct {
	Requests []RecordedRequest
	Handler  func(method, path string, body []byte) (*api.Response, error)
}

func (f *FakeTransport) roundTrip(method, path string, headers map[string]string, body []byte) (*api.Response, error) {
	f.Requests = append(f.Requests, RecordedRequest{Method: method, Path: path, Headers: headers, Body: body})
	if f.Handler == nil {
		return JSONResponse(http.StatusOK, map[string]any{}), nil
	}
	return f.Handler(method, path, body)
}

func (f *FakeTransport) GET(ctx context.Context, path string) (*api.Response, error) {
	return f.roundTrip(http.MethodGet, path, nil, nil)
}

func (f *FakeTransport) POST(ctx context.Context, path string, headers map[string]string, body []byte) (*api.Response, error) {
	return f.roundTrip(http.MethodPost, path, headers, body)
}

func (f *FakeTransport) PATCH(ctx context.Context, path string, headers map[string]string, body []byte) (*api.Response, error) {
	return f.roundTrip(http.MethodPatch, path, headers, body)
}

func (f *FakeTransport) GETWithBearer(ctx context.Context, path, token string) (*api.Response, error) {
	return f.roundTrip(http.MethodGet, path, map[string]string{"Authorization": "Bearer " + token}, nil)
}

// Calls returns the recorded requests matching method, in call order.
func (f *FakeTransport) Calls(method string) []RecordedRequest {
	var calls []RecordedRequest
	for _, req := range f.Requests {
		if req.Method == method {
			calls = append(calls, req)
		}
	}
	return calls
}

// JSONResponse builds an *api.Response with a JSON-encoded body.
func JSONResponse(status int, v any) *api.Response {
	body, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("failed to encode test response: %v", err))
	}
	return &api.Response{StatusCode: status, Body: body, IsJSON: true}
}

// ErrorResponse builds the response-plus-StatusError pair the transport
// produces for a non-2xx status. A 2xx, 202 included, never carries an
// error; script those as a plain *api.Response with a nil error.
func ErrorResponse(method, path string, status int) (*api.Response, error) {
	return &api.Response{StatusCode: status},
		&api.StatusError{Method: method, Path: path, StatusCode: status}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// DecodeJSON fails the test when body does not decode into a map.
func DecodeJSON(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("failed to decode request body %q: %v", body, err)
	}
	return decoded
}
