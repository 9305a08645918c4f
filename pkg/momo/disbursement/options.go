package disbursement

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wirepay/momo-go/pkg/momo/auth"
)

// Option configures disbursement client settings using
// the functional options pattern.
type Option func(*settings)

type settings struct {
	logger     *zap.Logger
	httpClient *http.Client

	transport auth.Transport // optional override, primarily for tests
}

// WithLogger sets a custom logger for the disbursement client.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithHTTPClient sets a custom HTTP client for API and token requests.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.httpClient = c }
}

// WithTransport overrides the authenticated transport.
func WithTransport(t auth.Transport) Option {
	return func(s *settings) { s.transport = t }
}

func applyOptions(opts []Option) settings {
	s := settings{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
