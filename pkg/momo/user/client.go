// Package user implements sandbox API-user provisioning.
//
// Provisioning calls do not carry a bearer token; they authenticate with the
// static subscription key alone, so the client talks to the plain transport
// directly.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wirepay/momo-go/pkg/momo/auth"
	momoerrors "github.com/wirepay/momo-go/pkg/momo/errors"
)

// Config contains the settings required for user provisioning.
type Config struct {
	BaseURL         string
	SubscriptionKey string
}

func (cfg *Config) validate() error {
	if cfg == nil {
		return errors.New("nil config")
	}
	if cfg.BaseURL == "" {
		return errors.New("base URL is required")
	}
	if cfg.SubscriptionKey == "" {
		return errors.New("subscription key is required")
	}
	return nil
}

// APIUser is the provisioning record for an API user.
type APIUser struct {
	ProviderCallbackHost string `json:"providerCallbackHost"`
	TargetEnvironment    string `json:"targetEnvironment"`
}

// Option configures user client settings.
type Option func(*settings)

type settings struct {
	logger     *zap.Logger
	httpClient *http.Client
	transport  auth.Transport // optional override, primarily for tests
}

// WithLogger sets a custom logger for the user client.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.httpClient = c }
}

// WithTransport overrides the underlying transport.
func WithTransport(t auth.Transport) Option {
	return func(s *settings) { s.transport = t }
}

func applyOptions(opts []Option) settings {
	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// Client provisions API users and keys.
type Client struct {
	transport auth.Transport
	logger    *zap.Logger
}

// New creates a user-provisioning client.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, momoerrors.ConfigurationError(err, "invalid user config")
	}
	s := applyOptions(opts)

	transport := s.transport
	if transport == nil {
		transport = auth.NewPlainTransport(cfg.BaseURL, cfg.SubscriptionKey, "", s.httpClient)
	}

	return &Client{
		transport: transport,
		logger:    s.logger,
	}, nil
}

// Create provisions a new API user and returns its generated identifier.
func (c *Client) Create(ctx context.Context, providerCallbackHost string) (string, error) {
	body, err := json.Marshal(map[string]string{"providerCallbackHost": providerCallbackHost})
	if err != nil {
		return "", momoerrors.ValidationError(err, "marshal user request")
	}

	userID := uuid.NewString()
	resp, err := c.transport.Do(ctx, &auth.Request{
		Method:  http.MethodPost,
		Path:    "/v1_0/apiuser",
		Body:    body,
		Headers: map[string]string{"X-Reference-Id": userID},
	})
	if err != nil {
		return "", err
	}
	if !resp.Success() {
		return "", momoerrors.RemoteError(resp.StatusCode, resp.Body, "create API user")
	}

	c.logger.Debug("API user created", zap.String("user_id", userID))
	return userID, nil
}

// Get fetches a provisioned API user.
func (c *Client) Get(ctx context.Context, userID string) (*APIUser, error) {
	resp, err := c.transport.Do(ctx, &auth.Request{
		Method: http.MethodGet,
		Path:   "/v1_0/apiuser/" + userID,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, momoerrors.RemoteError(resp.StatusCode, resp.Body, "fetch API user "+userID)
	}

	var u APIUser
	if err := json.Unmarshal(resp.Body, &u); err != nil {
		return nil, momoerrors.RemoteError(resp.StatusCode, resp.Body, "undecodable API user")
	}
	return &u, nil
}

// CreateKey generates the API key paired with a provisioned user.
func (c *Client) CreateKey(ctx context.Context, userID string) (string, error) {
	resp, err := c.transport.Do(ctx, &auth.Request{
		Method: http.MethodPost,
		Path:   "/v1_0/apiuser/" + userID + "/apikey",
	})
	if err != nil {
		return "", err
	}
	if !resp.Success() {
		return "", momoerrors.RemoteError(resp.StatusCode, resp.Body, "create API key")
	}

	var out struct {
		APIKey string `json:"apiKey"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil || out.APIKey == "" {
		return "", momoerrors.RemoteError(resp.StatusCode, resp.Body, "undecodable API key response")
	}
	return out.APIKey, nil
}
