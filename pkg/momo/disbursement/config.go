package disbursement

import (
	"errors"

	"github.com/wirepay/momo-go/pkg/momo/auth"
)

// Config contains the settings required to call the disbursement product.
type Config struct {
	BaseURL           string
	TargetEnvironment string
	// CallbackURL, when set, is sent as X-Callback-Url on transfers.
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
		return errors.New("disbursement credentials are required")
	}
	return nil
}
