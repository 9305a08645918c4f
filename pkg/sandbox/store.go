// Package sandbox implements a local emulation of the mobile-money API for
// development and integration testing. State lives in memory and is lost on
// restart.
package sandbox

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/wirepay/momo-go/pkg/momo/model"
)

var (
	// ErrNotFound is returned when a user or transaction does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a reference identifier is reused.
	ErrConflict = errors.New("already exists")
)

type apiUser struct {
	CallbackHost string
	APIKey       string
}

// Store holds the in-memory sandbox state.
type Store struct {
	mu           sync.Mutex
	users        map[string]*apiUser
	transactions map[string]*model.Transaction
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]*apiUser),
		transactions: make(map[string]*model.Transaction),
	}
}

// CreateUser provisions an API user under the given reference identifier.
func (s *Store) CreateUser(id, callbackHost string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; ok {
		return ErrConflict
	}
	s.users[id] = &apiUser{CallbackHost: callbackHost}
	return nil
}

// GetUser returns the callback host registered for an API user.
func (s *Store) GetUser(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return "", ErrNotFound
	}
	return u.CallbackHost, nil
}

// CreateKey generates and stores a fresh API key for an existing user.
func (s *Store) CreateKey(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return "", ErrNotFound
	}
	u.APIKey = uuid.NewString()
	return u.APIKey, nil
}

// VerifyCredentials checks a user id / API key pair.
func (s *Store) VerifyCredentials(id, apiKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return ok && u.APIKey != "" && u.APIKey == apiKey
}

// PutTransaction records a transaction under product+reference.
func (s *Store) PutTransaction(product, referenceID string, tx *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := product + "/" + referenceID
	if _, ok := s.transactions[key]; ok {
		return ErrConflict
	}
	s.transactions[key] = tx
	return nil
}

// GetTransaction looks up a transaction by product and reference.
func (s *Store) GetTransaction(product, referenceID string) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.transactions[product+"/"+referenceID]
	if !ok {
		return nil, ErrNotFound
	}
	return tx, nil
}
