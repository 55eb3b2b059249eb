package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrNoSession means no credential is stored. Callers redirect to login.
	ErrNoSession = errors.New("no session")
	// ErrMalformedCredential means the stored credential could not be decoded.
	// Callers redirect to login; the resolver has already cleared the credential.
	ErrMalformedCredential = errors.New("malformed credential")
	// ErrIncompleteIdentity means the credential decoded but lacks a required field.
	ErrIncompleteIdentity = errors.New("incomplete identity")

	ErrValidation = errors.New("validation failed")
)

// NewValidationError wraps ErrValidation with a human-readable reason.
func NewValidationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// NeedsReauthentication reports whether err must send the user back to login.
func NeedsReauthentication(err error) bool {
	return errors.Is(err, ErrNoSession) || errors.Is(err, ErrMalformedCredential)
}

// RemoteErrorKind classifies failures of calls to the bookstore API.
type RemoteErrorKind int

const (
	// RemoteMutationFailed covers transport failures and non-success statuses.
	RemoteMutationFailed RemoteErrorKind = iota
	// RemoteConflict signals that the target of a create already exists.
	RemoteConflict
)

func (k RemoteErrorKind) String() string {
	switch k {
	case RemoteConflict:
		return "conflict"
	default:
		return "failed"
	}
}

// DefaultRemoteMessage is reported when the remote response carries no message.
const DefaultRemoteMessage = "bookstore request failed"

// RemoteError is returned for every unsuccessful bookstore API call.
type RemoteError struct {
	Kind       RemoteErrorKind
	Operation  string
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Operation, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsConflict reports whether err is a RemoteConflict.
func IsConflict(err error) bool {
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr) && remoteErr.Kind == RemoteConflict
}

// RemoteMessage returns the user-facing message of a RemoteError in err's chain.
func RemoteMessage(err error) (string, bool) {
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		return "", false
	}
	return remoteErr.Message, true
}
