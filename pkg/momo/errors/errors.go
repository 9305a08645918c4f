// Package errors contains helper functions and types to work with errors
// returned by the mobile-money API client.
package errors

import (
	"errors"
	"fmt"
)

// Category defines error category
type Category int

const (
	// CategoryNone means no error occurred.
	CategoryNone Category = iota
	// CategoryConfiguration The client was constructed with invalid or missing
	// configuration or credentials. Raised before any network call.
	CategoryConfiguration
	// CategoryValidation A request payload failed shape/format checks.
	// Raised before any network call.
	CategoryValidation
	// CategoryAuthentication The token endpoint rejected the credentials, or a
	// business call was rejected twice in a row after a forced token refresh.
	CategoryAuthentication
	// CategoryRemote Any other non-success response from a business endpoint.
	// Carries the remote status and undecoded error body.
	CategoryRemote
	// CategoryTransport A network-level failure (timeout, connection reset)
	// from the underlying transport. No response was received.
	CategoryTransport
)

func (c Category) String() string {
	switch c {
	case CategoryConfiguration:
		return "CategoryConfiguration"
	case CategoryValidation:
		return "CategoryValidation"
	case CategoryAuthentication:
		return "CategoryAuthentication"
	case CategoryRemote:
		return "CategoryRemote"
	case CategoryTransport:
		return "CategoryTransport"
	default:
		return "CategoryNone"
	}
}

// Error represents the client specific error type that is
// returned by every exported operation of the SDK.
type Error struct {
	Category Category
	Message  string
	Err      error

	// StatusCode and Body are set for remote and authentication failures
	// that received an HTTP response.
	StatusCode int
	Body       []byte
}

// Error method to comply with error interface
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Message, e.StatusCode, string(e.Body))
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks that the provided error is an Error with the desired Category
func Is(err error, cat Category) bool {
	var cerr *Error
	if errors.As(err, &cerr) && cerr.Category == cat {
		return true
	}
	return false
}

// ConfigurationError returns an error with category Configuration
func ConfigurationError(err error, message string) error {
	if err == nil {
		err = errors.New("invalid configuration: " + message)
	}
	return &Error{
		Category: CategoryConfiguration,
		Message:  message,
		Err:      err,
	}
}

// ValidationError returns an error with category Validation
func ValidationError(err error, message string) error {
	if err == nil {
		err = errors.New("invalid request: " + message)
	}
	return &Error{
		Category: CategoryValidation,
		Message:  message,
		Err:      err,
	}
}

// AuthenticationError returns an error with category Authentication
func AuthenticationError(err error, message string) error {
	if err == nil {
		err = errors.New("authentication failed: " + message)
	}
	return &Error{
		Category: CategoryAuthentication,
		Message:  message,
		Err:      err,
	}
}

// AuthenticationRejected returns an Authentication error that carries the
// rejecting HTTP status and response body.
func AuthenticationRejected(status int, body []byte, message string) error {
	return &Error{
		Category:   CategoryAuthentication,
		Message:    message,
		StatusCode: status,
		Body:       body,
	}
}

// RemoteError returns an error with category Remote carrying the remote
// status code and the raw error body, unmodified.
func RemoteError(status int, body []byte, message string) error {
	return &Error{
		Category:   CategoryRemote,
		Message:    message,
		StatusCode: status,
		Body:       body,
	}
}

// TransportError returns an error with category Transport
func TransportError(err error, message string) error {
	if err == nil {
		err = errors.New("transport failure: " + message)
	}
	return &Error{
		Category: CategoryTransport,
		Message:  message,
		Err:      err,
	}
}
