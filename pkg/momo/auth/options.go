package auth

import (
	"time"

	"go.uber.org/zap"
)

// Option configures auth components using the functional options pattern.
type Option func(*settings)

type settings struct {
	logger *zap.Logger
	leeway time.Duration

	now func() time.Time // overridable clock, primarily for tests
}

// WithLogger sets a custom logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithExpiryLeeway sets how long before its literal expiry a cached token is
// treated as expired.
func WithExpiryLeeway(d time.Duration) Option {
	return func(s *settings) { s.leeway = d }
}

// WithClock overrides the time source used for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// applyOptions applies the provided options and returns the resulting settings.
// Defaults are applied before user-defined options.
func applyOptions(opts []Option) settings {
	s := settings{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
