package auth

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wirepay/momo-go/internal/metrics"
)

// Refresher owns a single cached token and replaces it through its
// Authorizer when it is missing, near expiry, or invalidated.
//
// At most one authorization call is in flight per Refresher at any instant:
// callers that arrive while a refresh is pending attach to it and observe
// its result rather than starting a second one.
type Refresher struct {
	authorizer Authorizer
	product    string
	leeway     time.Duration
	logger     *zap.Logger

	now func() time.Time

	mu       sync.Mutex
	token    Token
	inflight *refreshCall
}

// refreshCall is the pending-completion handle shared by every caller
// waiting on one in-flight authorization.
type refreshCall struct {
	done  chan struct{}
	token Token
	err   error
}

// NewRefresher creates a Refresher around the given authorizer.
func NewRefresher(authorizer Authorizer, product string, opts ...Option) *Refresher {
	s := applyOptions(opts)

	leeway := s.leeway
	if leeway <= 0 {
		leeway = defaultExpiryLeeway
	}

	return &Refresher{
		authorizer: authorizer,
		product:    product,
		leeway:     leeway,
		logger:     s.logger,
		now:        s.now,
	}
}

// Token returns the cached token while it is safely unexpired, otherwise
// joins or starts the single in-flight refresh and returns its result.
func (r *Refresher) Token(ctx context.Context) (Token, error) {
	r.mu.Lock()
	if r.usable() {
		tok := r.token
		r.mu.Unlock()
		return tok, nil
	}

	call := r.inflight
	if call == nil {
		call = &refreshCall{done: make(chan struct{})}
		r.inflight = call
		go r.refresh(call)
	}
	r.mu.Unlock()

	select {
	case <-call.done:
		return call.token, call.err
	case <-ctx.Done():
		// The caller gives up; the refresh itself keeps running so a later
		// call can still use its result.
		return Token{}, ctx.Err()
	}
}

// Invalidate discards the cached token so the next Token call refreshes.
// A refresh already in flight is left to complete; its result satisfies
// subsequent callers.
func (r *Refresher) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = Token{}
}

// usable reports whether the cached token is safely in the future.
// Callers must hold r.mu.
func (r *Refresher) usable() bool {
	return r.token.Value != "" && r.now().Add(r.leeway).Before(r.token.ExpiresAt)
}

// refresh runs detached from any caller context: an abandoned request must
// not cancel a refresh other callers may be waiting on.
func (r *Refresher) refresh(call *refreshCall) {
	tok, err := r.authorizer.Authorize(context.Background())

	r.mu.Lock()
	if err == nil {
		r.token = tok
		metrics.TokenRefreshesTotal.WithLabelValues(r.product, "success").Inc()
		if subject, serr := TokenSubject(tok.Value); serr == nil {
			r.logger.Debug("Token refreshed",
				zap.String("product", r.product),
				zap.String("subject", subject),
				zap.Time("expires_at", tok.ExpiresAt))
		}
	} else {
		// Back to empty so a subsequent call may retry.
		r.token = Token{}
		metrics.TokenRefreshesTotal.WithLabelValues(r.product, "failure").Inc()
		r.logger.Debug("Token refresh failed", zap.String("product", r.product), zap.Error(err))
	}
	if r.inflight == call {
		r.inflight = nil
	}
	r.mu.Unlock()

	call.token = tok
	call.err = err
	close(call.done)
}
