package auth

import (
	"errors"
	"time"
)

// Credentials holds the static product-scoped identity used to obtain
// bearer tokens. Immutable for the lifetime of a client instance.
type Credentials struct {
	// UserID is the provisioned API user identifier.
	UserID string
	// APIKey is the secret paired with UserID.
	APIKey string
	// SubscriptionKey is the product subscription key, sent on every request.
	SubscriptionKey string

	// ExpiryLeeway specifies how long before actual token expiry
	// the token should be considered expired. If zero, a default is applied.
	ExpiryLeeway time.Duration
}

func (c *Credentials) validate() error {
	if c == nil {
		return errors.New("nil credentials")
	}
	if c.UserID == "" || c.APIKey == "" || c.SubscriptionKey == "" {
		return errors.New("no auth configured: API user, API key and subscription key are required")
	}
	return nil
}
