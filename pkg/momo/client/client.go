// Package client assembles the product handles of the mobile-money SDK.
//
// Each handle constructed here owns an independent authentication
// lifecycle: tokens are cached per product and never shared, even within
// the same process.
package client

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wirepay/momo-go/pkg/momo/auth"
	"github.com/wirepay/momo-go/pkg/momo/collection"
	"github.com/wirepay/momo-go/pkg/momo/disbursement"
	momoerrors "github.com/wirepay/momo-go/pkg/momo/errors"
	"github.com/wirepay/momo-go/pkg/momo/user"
)

// Client aggregates the product handles enabled by the configuration.
// Disabled products are nil.
type Client struct {
	Collections   *collection.Client
	Disbursements *disbursement.Client
	Users         *user.Client
}

// New creates an SDK client from the provided configuration.
func New(cfg *Config, opts ...Option) (*Client, error) {
	merged, err := cfg.build()
	if err != nil {
		return nil, err
	}
	s := applyOptions(opts)

	httpClient := s.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: merged.Timeout}
	}

	c := &Client{}

	if pc := merged.Collection; pc != nil {
		c.Collections, err = collection.New(&collection.Config{
			BaseURL:           merged.BaseURL,
			TargetEnvironment: merged.TargetEnvironment,
			CallbackURL:       merged.callbackURL(pc),
			Auth:              productCredentials(pc),
		},
			collection.WithLogger(s.logger.Named("collection")),
			collection.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, err
		}
	}

	if pc := merged.Disbursement; pc != nil {
		c.Disbursements, err = disbursement.New(&disbursement.Config{
			BaseURL:           merged.BaseURL,
			TargetEnvironment: merged.TargetEnvironment,
			CallbackURL:       merged.callbackURL(pc),
			Auth:              productCredentials(pc),
		},
			disbursement.WithLogger(s.logger.Named("disbursement")),
			disbursement.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, err
		}
	}

	if key := merged.subscriptionKey(); key != "" {
		c.Users, err = user.New(&user.Config{
			BaseURL:         merged.BaseURL,
			SubscriptionKey: key,
		},
			user.WithLogger(s.logger.Named("user")),
			user.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, err
		}
	}

	if c.Collections == nil && c.Disbursements == nil && c.Users == nil {
		return nil, momoerrors.ConfigurationError(nil, "no product configured")
	}

	s.logger.Debug("SDK client initialized",
		zap.String("base_url", merged.BaseURL),
		zap.String("target_environment", merged.TargetEnvironment),
		zap.Bool("collections", c.Collections != nil),
		zap.Bool("disbursements", c.Disbursements != nil),
	)

	return c, nil
}

func productCredentials(pc *ProductConfig) *auth.Credentials {
	return &auth.Credentials{
		UserID:          pc.UserID,
		APIKey:          pc.APIKey,
		SubscriptionKey: pc.SubscriptionKey,
		ExpiryLeeway:    pc.ExpiryLeeway,
	}
}
