package sandbox

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wirepay/momo-go/pkg/config"
	"github.com/wirepay/momo-go/pkg/momo/model"
)

const maxBodyBytes = 1 << 20 // 1MB limit

// Handlers implements the sandbox HTTP endpoints.
type Handlers struct {
	store   *Store
	issuer  *Issuer
	account config.AccountConfig
	logger  *zap.Logger
}

// NewHandlers creates the sandbox handlers.
func NewHandlers(store *Store, issuer *Issuer, account config.AccountConfig, logger *zap.Logger) *Handlers {
	return &Handlers{
		store:   store,
		issuer:  issuer,
		account: account,
		logger:  logger,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			h.logger.Error("Failed to encode response", zap.Error(err))
		}
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// Token handles POST /{product}/token/ and exchanges basic credentials for
// a signed bearer token.
func (h *Handlers) Token(w http.ResponseWriter, r *http.Request) {
	userID, apiKey, ok := r.BasicAuth()
	if !ok || !h.store.VerifyCredentials(userID, apiKey) {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
		return
	}

	token, expiresIn, err := h.issuer.Issue(userID)
	if err != nil {
		h.logger.Error("Failed to issue token", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "INTERNAL", "token issuance failed")
		return
	}

	h.logger.Debug("Issued token", zap.String("user_id", userID))
	h.writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "access_token",
		"expires_in":   expiresIn,
	})
}

// requireBearer verifies the Authorization header and returns false after
// writing a 401 when the token is missing or invalid.
func (h *Handlers) requireBearer(w http.ResponseWriter, r *http.Request) bool {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
		return false
	}
	if _, err := h.issuer.Verify(header[len(prefix):]); err != nil {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid bearer token")
		return false
	}
	return true
}

// Initiate handles POST /collection/v1_0/requesttopay and
// POST /disbursement/v1_0/transfer. The transaction completes instantly.
func (h *Handlers) Initiate(product string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.requireBearer(w, r) {
			return
		}

		referenceID := r.Header.Get("X-Reference-Id")
		if _, err := uuid.Parse(referenceID); err != nil {
			h.writeError(w, http.StatusBadRequest, "INVALID_REFERENCE", "X-Reference-Id must be a UUID")
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "failed to read request")
			return
		}

		var tx model.Transaction
		if err := json.Unmarshal(body, &tx); err != nil {
			h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON")
			return
		}
		tx.FinancialTransactionID = uuid.NewString()
		tx.Status = model.StatusSuccessful

		if err := h.store.PutTransaction(product, referenceID, &tx); err != nil {
			h.writeError(w, http.StatusConflict, "RESOURCE_ALREADY_EXIST", "reference id already used")
			return
		}

		h.logger.Debug("Transaction recorded",
			zap.String("product", product),
			zap.String("reference_id", referenceID),
		)
		w.WriteHeader(http.StatusCreated)
	}
}

// GetTransaction handles the per-reference status lookups.
func (h *Handlers) GetTransaction(product string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.requireBearer(w, r) {
			return
		}

		referenceID := chi.URLParam(r, "referenceId")
		tx, err := h.store.GetTransaction(product, referenceID)
		if err != nil {
			h.writeError(w, http.StatusNotFound, "RESOURCE_NOT_FOUND", "no transaction for reference "+referenceID)
			return
		}
		h.writeJSON(w, http.StatusOK, tx)
	}
}

// Balance handles GET /{product}/v1_0/account/balance.
func (h *Handlers) Balance(w http.ResponseWriter, r *http.Request) {
	if !h.requireBearer(w, r) {
		return
	}
	h.writeJSON(w, http.StatusOK, model.Balance{
		AvailableBalance: h.account.Balance,
		Currency:         h.account.Currency,
	})
}

// AccountHolderActive handles GET /{product}/v1_0/accountholder/{idType}/{id}/active.
// Every account holder is active in the sandbox.
func (h *Handlers) AccountHolderActive(w http.ResponseWriter, r *http.Request) {
	if !h.requireBearer(w, r) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("true")); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateAPIUser handles POST /v1_0/apiuser.
func (h *Handlers) CreateAPIUser(w http.ResponseWriter, r *http.Request) {
	referenceID := r.Header.Get("X-Reference-Id")
	if _, err := uuid.Parse(referenceID); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_REFERENCE", "X-Reference-Id must be a UUID")
		return
	}

	var req struct {
		ProviderCallbackHost string `json:"providerCallbackHost"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON")
		return
	}

	if err := h.store.CreateUser(referenceID, req.ProviderCallbackHost); err != nil {
		h.writeError(w, http.StatusConflict, "RESOURCE_ALREADY_EXIST", "user already exists")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// GetAPIUser handles GET /v1_0/apiuser/{userId}.
func (h *Handlers) GetAPIUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	callbackHost, err := h.store.GetUser(userID)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "RESOURCE_NOT_FOUND", "no API user "+userID)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"providerCallbackHost": callbackHost,
		"targetEnvironment":    "sandbox",
	})
}

// CreateAPIKey handles POST /v1_0/apiuser/{userId}/apikey.
func (h *Handlers) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	key, err := h.store.CreateKey(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "RESOURCE_NOT_FOUND", "no API user "+userID)
			return
		}
		h.writeError(w, http.StatusInternalServerError, "INTERNAL", "key generation failed")
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"apiKey": key})
}
