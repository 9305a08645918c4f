package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	momoerrors "github.com/wirepay/momo-go/pkg/momo/errors"
)

const (
	defaultExpiryLeeway = 60 * time.Second
	defaultHTTPTimeout  = 30 * time.Second

	// If the token endpoint doesn't give expires_in, use a conservative fallback.
	fallbackTokenTTL = 5 * time.Minute

	// Limit error-body reads so we don't accidentally slurp huge responses.
	maxErrBodyBytes = 4096
)

// Token is a bearer credential plus the instant it stops being valid.
// Tokens are replaced wholesale, never edited in place.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Authorizer performs the one-shot exchange of static product credentials
// for a bearer token. One variant exists per product area; each targets a
// different token endpoint but shares this contract.
type Authorizer interface {
	Authorize(ctx context.Context) (Token, error)
}

// BasicAuthorizer implements Authorizer against a product token endpoint,
// presenting the API user and key as HTTP Basic credentials.
type BasicAuthorizer struct {
	baseURL    string
	product    string
	creds      *Credentials
	httpClient *http.Client

	now func() time.Time
}

// NewBasicAuthorizer creates an authorizer for the given product area
// ("collection" or "disbursement").
func NewBasicAuthorizer(baseURL, product string, creds *Credentials, httpClient *http.Client) *BasicAuthorizer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &BasicAuthorizer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		product:    product,
		creds:      creds,
		httpClient: httpClient,
		now:        time.Now,
	}
}

func (a *BasicAuthorizer) Authorize(ctx context.Context) (Token, error) {
	if err := a.creds.validate(); err != nil {
		return Token{}, momoerrors.ConfigurationError(err, "invalid credentials")
	}

	url := fmt.Sprintf("%s/%s/token/", a.baseURL, a.product)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return Token{}, momoerrors.TransportError(err, "create token request")
	}
	req.SetBasicAuth(a.creds.UserID, a.creds.APIKey)
	req.Header.Set("Ocp-Apim-Subscription-Key", a.creds.SubscriptionKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Token{}, err
		}
		return Token{}, momoerrors.TransportError(err, "call token endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBodyBytes))
		return Token{}, momoerrors.AuthenticationRejected(resp.StatusCode, body,
			a.product+" token endpoint rejected credentials")
	}

	tr, err := decodeTokenResponse(resp.Body)
	if err != nil {
		return Token{}, momoerrors.AuthenticationError(err, "undecodable token response")
	}

	return Token{
		Value:     tr.AccessToken,
		ExpiresAt: computeExpiry(a.now(), tr.ExpiresIn),
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func decodeTokenResponse(r io.Reader) (tokenResponse, error) {
	var tr tokenResponse

	dec := json.NewDecoder(r)
	if err := dec.Decode(&tr); err != nil {
		return tokenResponse{}, fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return tokenResponse{}, fmt.Errorf("token response missing access_token")
	}

	return tr, nil
}

func computeExpiry(now time.Time, expiresInSeconds int) time.Time {
	if expiresInSeconds <= 0 {
		return now.Add(fallbackTokenTTL)
	}
	return now.Add(time.Duration(expiresInSeconds) * time.Second)
}
