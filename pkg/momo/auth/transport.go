package auth

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/wirepay/momo-go/internal/metrics"
	momoerrors "github.com/wirepay/momo-go/pkg/momo/errors"
)

// TokenSource supplies valid bearer tokens to the transport.
// Refresher is the production implementation.
type TokenSource interface {
	Token(ctx context.Context) (Token, error)
	Invalidate()
}

// AuthTransport wraps a plain transport and attaches a bearer token to every
// request. On an authentication rejection it invalidates the cached token and
// retries the request exactly once with a freshly obtained one; a second
// rejection is surfaced as a terminal authentication failure.
//
// All other error statuses pass through unmodified.
type AuthTransport struct {
	next    Transport
	tokens  TokenSource
	product string
	logger  *zap.Logger
}

// NewAuthTransport creates an authenticating transport for one product area.
func NewAuthTransport(next Transport, tokens TokenSource, product string, opts ...Option) *AuthTransport {
	s := applyOptions(opts)
	return &AuthTransport{
		next:    next,
		tokens:  tokens,
		product: product,
		logger:  s.logger,
	}
}

func (t *AuthTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()
	defer func() {
		metrics.RequestDuration.WithLabelValues(t.product).Observe(time.Since(start).Seconds())
	}()

	resp, err := t.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.observe(req, resp)
		return resp, nil
	}

	// The token was rejected. Force a refresh and replay the request once
	// with identical method, path and body.
	t.logger.Debug("Authentication rejected, refreshing token",
		zap.String("product", t.product),
		zap.String("path", req.Path),
	)
	metrics.AuthRetriesTotal.WithLabelValues(t.product).Inc()
	t.tokens.Invalidate()

	resp, err = t.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		t.observe(req, resp)
		return nil, momoerrors.AuthenticationRejected(resp.StatusCode, resp.Body,
			"request rejected again after token refresh")
	}

	t.observe(req, resp)
	return resp, nil
}

// send obtains a token and issues one attempt. The caller's header map is
// never mutated; the bearer credential goes on a copy.
func (t *AuthTransport) send(ctx context.Context, req *Request) (*Response, error) {
	tok, err := t.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(req.Headers)+1)
	for k, v := range req.Headers {
		headers[k] = v
	}
	headers["Authorization"] = "Bearer " + tok.Value

	return t.next.Do(ctx, &Request{
		Method:  req.Method,
		Path:    req.Path,
		Body:    req.Body,
		Headers: headers,
	})
}

func (t *AuthTransport) observe(req *Request, resp *Response) {
	metrics.RequestsTotal.WithLabelValues(t.product, req.Method, strconv.Itoa(resp.StatusCode)).Inc()
}
