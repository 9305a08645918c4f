package collection

import (
	"errors"

	"github.com/wirepay/momo-go/pkg/momo/auth"
)

// Config contains the settings required to call the collection product.
type Config struct {
	// BaseURL is the API host, without a trailing product path.
	BaseURL string
	// TargetEnvironment selects the remote environment ("sandbox" or a
	// production country environment).
	TargetEnvironment string
	// CallbackURL, when set, is sent as X-Callback-Url on resource-creating
	// calls so the remote side can deliver status callbacks.
	CallbackURL string

	Auth *auth.Credentials
}

func (cfg *Config) validate() error {
	if cfg == nil {
		return errors.New("nil config")
	}
	if cfg.BaseURL == "" {
		return errors.New("base URL is required")
	}
	if cfg.Auth == nil {
		return errors.New("collection credentials are required")
	}
	return nil
}
