// Package disbursement implements the disbursement product client.
package disbursement

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wirepay/momo-go/pkg/momo/auth"
	momoerrors "github.com/wirepay/momo-go/pkg/momo/errors"
	"github.com/wirepay/momo-go/pkg/momo/model"
)

const product = "disbursement"

// Client is the disbursement product handle. Each Client owns an independent
// authentication lifecycle; tokens are never shared across handles.
type Client struct {
	cfg       *Config
	transport auth.Transport
	logger    *zap.Logger
}

// New creates a disbursement client using the provided configuration.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, momoerrors.ConfigurationError(err, "invalid disbursement config")
	}
	s := applyOptions(opts)

	transport := s.transport
	if transport == nil {
		authorizer := auth.NewBasicAuthorizer(cfg.BaseURL, product, cfg.Auth, s.httpClient)
		refresher := auth.NewRefresher(authorizer, product,
			auth.WithLogger(s.logger),
			auth.WithExpiryLeeway(cfg.Auth.ExpiryLeeway),
		)
		plain := auth.NewPlainTransport(cfg.BaseURL, cfg.Auth.SubscriptionKey, cfg.TargetEnvironment, s.httpClient)
		transport = auth.NewAuthTransport(plain, refresher, product, auth.WithLogger(s.logger))
	}

	return &Client{
		cfg:       cfg,
		transport: transport,
		logger:    s.logger,
	}, nil
}

// Transfer moves money to the payee. The returned reference identifier is
// generated client-side and is the handle for later status lookups.
func (c *Client) Transfer(ctx context.Context, req TransferRequest) (string, error) {
	if err := model.ValidateRequest(req); err != nil {
		return "", err
	}
	if err := model.ValidateParty(req.Payee); err != nil {
		return "", err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", momoerrors.ValidationError(err, "marshal transfer request")
	}

	referenceID := uuid.NewString()
	headers := map[string]string{"X-Reference-Id": referenceID}
	if c.cfg.CallbackURL != "" {
		headers["X-Callback-Url"] = c.cfg.CallbackURL
	}

	resp, err := c.transport.Do(ctx, &auth.Request{
		Method:  http.MethodPost,
		Path:    "/disbursement/v1_0/transfer",
		Body:    body,
		Headers: headers,
	})
	if err != nil {
		return "", err
	}
	if !resp.Success() {
		return "", momoerrors.RemoteError(resp.StatusCode, resp.Body, "transfer rejected")
	}

	c.logger.Debug("Transfer accepted", zap.String("reference_id", referenceID))
	return referenceID, nil
}

// GetTransaction fetches the transfer identified by a previously returned
// reference identifier.
func (c *Client) GetTransaction(ctx context.Context, referenceID string) (*model.Transaction, error) {
	resp, err := c.transport.Do(ctx, &auth.Request{
		Method: http.MethodGet,
		Path:   "/disbursement/v1_0/transfer/" + referenceID,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, momoerrors.RemoteError(resp.StatusCode, resp.Body, "fetch transfer "+referenceID)
	}

	var tx model.Transaction
	if err := json.Unmarshal(resp.Body, &tx); err != nil {
		return nil, momoerrors.RemoteError(resp.StatusCode, resp.Body, "undecodable transfer record")
	}
	return &tx, nil
}

// GetBalance fetches the disbursement account balance.
func (c *Client) GetBalance(ctx context.Context) (*model.Balance, error) {
	resp, err := c.transport.Do(ctx, &auth.Request{
		Method: http.MethodGet,
		Path:   "/disbursement/v1_0/account/balance",
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, momoerrors.RemoteError(resp.StatusCode, resp.Body, "fetch balance")
	}

	var b model.Balance
	if err := json.Unmarshal(resp.Body, &b); err != nil {
		return nil, momoerrors.RemoteError(resp.StatusCode, resp.Body, "undecodable balance")
	}
	return &b, nil
}

// IsPayeeActive reports whether the account holder can receive transfers.
// The endpoint answers with a boolean rendered as a string.
func (c *Client) IsPayeeActive(ctx context.Context, idType, id string) (bool, error) {
	if idType == "" || id == "" {
		return false, momoerrors.ValidationError(nil, "account holder id type and id are required")
	}

	resp, err := c.transport.Do(ctx, &auth.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/disbursement/v1_0/accountholder/%s/%s/active", strings.ToLower(idType), id),
	})
	if err != nil {
		return false, err
	}
	if resp.StatusCode != http.StatusOK {
		return false, momoerrors.RemoteError(resp.StatusCode, resp.Body, "fetch account holder status")
	}

	s := strings.Trim(strings.TrimSpace(string(resp.Body)), `"`)
	active, err := strconv.ParseBool(s)
	if err != nil {
		return false, momoerrors.RemoteError(resp.StatusCode, resp.Body, "undecodable account holder status")
	}
	return active, nil
}
