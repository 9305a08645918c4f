package client

import (
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	momoerrors "github.com/wirepay/momo-go/pkg/momo/errors"
)

// Config contains the configuration required to initialize the SDK client.
// It is merged once at construction time: built-in defaults first, then the
// caller-supplied global values, then per-product overrides. The merged
// result is immutable.
type Config struct {
	// BaseURL is the API host shared by every product.
	BaseURL string `default:"https://sandbox.momodeveloper.mtn.com" validate:"required,url"`
	// TargetEnvironment selects the remote environment.
	TargetEnvironment string `default:"sandbox" validate:"required"`
	// CallbackHost is the provider callback host registered for new API users.
	CallbackHost string
	// CallbackURL, when set, is sent on resource-creating calls. A product
	// level value takes precedence.
	CallbackURL string `validate:"omitempty,url"`
	// Timeout bounds every HTTP request issued by the SDK.
	Timeout time.Duration `default:"30s"`

	// Collection and Disbursement enable the respective product handles.
	// A nil entry disables that product.
	Collection   *ProductConfig
	Disbursement *ProductConfig
}

// ProductConfig carries the per-product credentials and overrides.
type ProductConfig struct {
	SubscriptionKey string `validate:"required"`
	UserID          string
	APIKey          string

	// CallbackURL overrides the global callback URL for this product.
	CallbackURL string `validate:"omitempty,url"`
	// ExpiryLeeway overrides how early a cached token is treated as expired.
	ExpiryLeeway time.Duration
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// build returns a defaulted, validated copy of cfg. The original is left
// untouched so a caller can reuse it.
func (cfg *Config) build() (*Config, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	merged := *cfg

	if err := defaults.Set(&merged); err != nil {
		return nil, momoerrors.ConfigurationError(err, "apply config defaults")
	}
	if err := configValidator.Struct(&merged); err != nil {
		return nil, momoerrors.ConfigurationError(err, "invalid configuration")
	}
	return &merged, nil
}

// callbackURL resolves the callback URL for one product, product value first.
func (cfg *Config) callbackURL(p *ProductConfig) string {
	if p != nil && p.CallbackURL != "" {
		return p.CallbackURL
	}
	return cfg.CallbackURL
}

// subscriptionKey returns the key used for user provisioning: the collection
// key when present, otherwise the disbursement key.
func (cfg *Config) subscriptionKey() string {
	if cfg.Collection != nil {
		return cfg.Collection.SubscriptionKey
	}
	if cfg.Disbursement != nil {
		return cfg.Disbursement.SubscriptionKey
	}
	return ""
}
