// Package auth implements the authenticated-transport layer of the SDK.
//
// It acquires, caches and refreshes bearer tokens against the per-product
// token endpoints and attaches them to outgoing requests, retrying a request
// exactly once after an authentication rejection.
package auth

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	momoerrors "github.com/wirepay/momo-go/pkg/momo/errors"
)

// Request describes one outgoing API call. Body is held as bytes so the
// request can be replayed unchanged after a token refresh.
type Request struct {
	Method  string
	Path    string
	Body    []byte
	Headers map[string]string
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Success reports whether the response carries a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Transport issues API requests. PlainTransport is the base implementation;
// AuthTransport wraps it with bearer credentials.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// PlainTransport resolves paths against the configured base URL and attaches
// the subscription-key and target-environment headers. It carries no
// per-request state.
type PlainTransport struct {
	baseURL           string
	subscriptionKey   string
	targetEnvironment string
	httpClient        *http.Client
}

// NewPlainTransport creates a transport bound to one product subscription.
func NewPlainTransport(baseURL, subscriptionKey, targetEnvironment string, httpClient *http.Client) *PlainTransport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &PlainTransport{
		baseURL:           strings.TrimRight(baseURL, "/"),
		subscriptionKey:   subscriptionKey,
		targetEnvironment: targetEnvironment,
		httpClient:        httpClient,
	}
}

func (t *PlainTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, t.baseURL+req.Path, body)
	if err != nil {
		return nil, momoerrors.TransportError(err, "create request")
	}

	hreq.Header.Set("Ocp-Apim-Subscription-Key", t.subscriptionKey)
	if t.targetEnvironment != "" {
		hreq.Header.Set("X-Target-Environment", t.targetEnvironment)
	}
	if len(req.Body) > 0 {
		hreq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		hreq.Header.Set(k, v)
	}

	resp, err := t.httpClient.Do(hreq)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, momoerrors.TransportError(err, "call "+req.Path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, momoerrors.TransportError(err, "read response body")
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}
