package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	momoerrors "github.com/wirepay/momo-go/pkg/momo/errors"
)

// mockTokenSource delegates to function fields.
type mockTokenSource struct {
	mu          sync.Mutex
	tokenCalls  int
	invalidates int

	TokenFunc func(ctx context.Context) (Token, error)
}

func (m *mockTokenSource) Token(ctx context.Context) (Token, error) {
	m.mu.Lock()
	m.tokenCalls++
	m.mu.Unlock()
	if m.TokenFunc != nil {
		return m.TokenFunc(ctx)
	}
	return Token{Value: "tok", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (m *mockTokenSource) Invalidate() {
	m.mu.Lock()
	m.invalidates++
	m.mu.Unlock()
}

// mockTransport records requests and replays canned responses.
type mockTransport struct {
	requests  []*Request
	responses []*Response

	DoFunc func(ctx context.Context, req *Request) (*Response, error)
}

func (m *mockTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	m.requests = append(m.requests, req)
	if m.DoFunc != nil {
		return m.DoFunc(ctx, req)
	}
	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp, nil
}

func TestAuthTransport_AttachesBearer(t *testing.T) {
	next := &mockTransport{responses: []*Response{{StatusCode: http.StatusOK}}}
	tokens := &mockTokenSource{}
	tr := NewAuthTransport(next, tokens, "collection")

	resp, err := tr.Do(context.Background(), &Request{
		Method:  http.MethodGet,
		Path:    "/collection/v1_0/account/balance",
		Headers: map[string]string{"X-Reference-Id": "ref"},
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if len(next.requests) != 1 {
		t.Fatalf("expected 1 underlying call, got %d", len(next.requests))
	}
	sent := next.requests[0]
	if got := sent.Headers["Authorization"]; got != "Bearer tok" {
		t.Fatalf("expected bearer header, got %q", got)
	}
	if got := sent.Headers["X-Reference-Id"]; got != "ref" {
		t.Fatalf("caller header lost, got %q", got)
	}
}

func TestAuthTransport_DoesNotMutateCallerHeaders(t *testing.T) {
	next := &mockTransport{responses: []*Response{{StatusCode: http.StatusOK}}}
	tr := NewAuthTransport(next, &mockTokenSource{}, "collection")

	headers := map[string]string{"X-Reference-Id": "ref"}
	if _, err := tr.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/p", Headers: headers}); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if _, ok := headers["Authorization"]; ok {
		t.Fatal("caller header map was mutated")
	}
}

func TestAuthTransport_RetryOnceOnRejection(t *testing.T) {
	next := &mockTransport{responses: []*Response{
		{StatusCode: http.StatusUnauthorized, Body: []byte("expired")},
		{StatusCode: http.StatusOK, Body: []byte("ok")},
	}}
	tokens := &mockTokenSource{}
	tr := NewAuthTransport(next, tokens, "disbursement")

	body := []byte(`{"amount":"2000"}`)
	resp, err := tr.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/disbursement/v1_0/transfer",
		Body:   body,
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after retry, got %d", resp.StatusCode)
	}

	if len(next.requests) != 2 {
		t.Fatalf("expected exactly 2 underlying calls, got %d", len(next.requests))
	}
	if tokens.invalidates != 1 {
		t.Fatalf("expected 1 invalidate, got %d", tokens.invalidates)
	}
	if tokens.tokenCalls != 2 {
		t.Fatalf("expected 2 token fetches, got %d", tokens.tokenCalls)
	}
	// The replay must be byte-identical.
	if string(next.requests[1].Body) != string(body) {
		t.Fatalf("retried body differs: %s", next.requests[1].Body)
	}
	if next.requests[1].Method != http.MethodPost || next.requests[1].Path != "/disbursement/v1_0/transfer" {
		t.Fatalf("retried request differs: %s %s", next.requests[1].Method, next.requests[1].Path)
	}
}

func TestAuthTransport_RetryExhaustion(t *testing.T) {
	next := &mockTransport{responses: []*Response{
		{StatusCode: http.StatusUnauthorized, Body: []byte("expired")},
		{StatusCode: http.StatusUnauthorized, Body: []byte("still expired")},
	}}
	tokens := &mockTokenSource{}
	tr := NewAuthTransport(next, tokens, "collection")

	_, err := tr.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/p"})
	if err == nil {
		t.Fatal("expected a terminal failure")
	}
	if !momoerrors.Is(err, momoerrors.CategoryAuthentication) {
		t.Fatalf("expected authentication category, got %v", err)
	}
	if len(next.requests) != 2 {
		t.Fatalf("expected no third attempt, got %d calls", len(next.requests))
	}
	if tokens.invalidates != 1 {
		t.Fatalf("expected 1 invalidate, got %d", tokens.invalidates)
	}
}

func TestAuthTransport_OtherStatusesPassThrough(t *testing.T) {
	for _, status := range []int{
		http.StatusBadRequest,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusConflict,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
	} {
		next := &mockTransport{responses: []*Response{{StatusCode: status, Body: []byte("body")}}}
		tokens := &mockTokenSource{}
		tr := NewAuthTransport(next, tokens, "collection")

		resp, err := tr.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/p"})
		if err != nil {
			t.Fatalf("status %d: unexpected error %v", status, err)
		}
		if resp.StatusCode != status {
			t.Fatalf("status %d surfaced as %d", status, resp.StatusCode)
		}
		if len(next.requests) != 1 {
			t.Fatalf("status %d: expected no retry, got %d calls", status, len(next.requests))
		}
		if tokens.invalidates != 0 {
			t.Fatalf("status %d: unexpected invalidate", status)
		}
	}
}

func TestAuthTransport_TokenFailureSurfaces(t *testing.T) {
	next := &mockTransport{}
	tokens := &mockTokenSource{
		TokenFunc: func(ctx context.Context) (Token, error) {
			return Token{}, momoerrors.AuthenticationError(nil, "credentials rejected")
		},
	}
	tr := NewAuthTransport(next, tokens, "collection")

	_, err := tr.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/p"})
	if !momoerrors.Is(err, momoerrors.CategoryAuthentication) {
		t.Fatalf("expected authentication category, got %v", err)
	}
	if len(next.requests) != 0 {
		t.Fatalf("expected no underlying call, got %d", len(next.requests))
	}
}

// Full-stack check: real refresher and plain transport against an httptest
// server whose first business response is a 401. The retry must trigger
// exactly one additional token call.
func TestAuthTransport_EndToEndRefreshOnRejection(t *testing.T) {
	var (
		mu            sync.Mutex
		tokenCalls    int
		businessCalls int
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/collection/token/":
			mu.Lock()
			tokenCalls++
			n := tokenCalls
			mu.Unlock()
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": map[int]string{1: "stale", 2: "fresh"}[n],
				"expires_in":   3600,
			})
		case "/collection/v1_0/account/balance":
			mu.Lock()
			businessCalls++
			mu.Unlock()
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{
				"availableBalance": "2000", "currency": "UGX",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	authorizer := NewBasicAuthorizer(server.URL, "collection", testCredentials(), server.Client())
	refresher := NewRefresher(authorizer, "collection")
	plain := NewPlainTransport(server.URL, "sub-key", "sandbox", server.Client())
	tr := NewAuthTransport(plain, refresher, "collection")

	resp, err := tr.Do(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/collection/v1_0/account/balance",
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if businessCalls != 2 {
		t.Fatalf("expected 2 business calls, got %d", businessCalls)
	}
	if tokenCalls != 2 {
		t.Fatalf("expected exactly one additional token call, got %d total", tokenCalls)
	}
}
