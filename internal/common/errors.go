// Package common defines shared constants and sentinel errors used across
// the server layers of investkeeper. Callers should use errors.Is to match
// these values, or Kind to classify an arbitrary error.
package common

import "errors"

var (
	// Input errors.
	ErrInvalidInput = errors.New("invalid input")

	// Credential errors.
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token errors.
	ErrTokenMissing  = errors.New("missing token")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrSecretMissing = errors.New("signing secret is not configured")

	// Repository errors.
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// Storage errors.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrCorruptDocument    = errors.New("corrupt document")
	ErrPersistenceFailure = errors.New("persistence failure")
)

// ErrorKind names the class an error belongs to.
type ErrorKind string

const (
	KindUnknown            ErrorKind = "unknown"
	KindInvalidInput       ErrorKind = "invalid_input"
	KindUsernameTaken      ErrorKind = "username_taken"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindTokenMissing       ErrorKind = "token_missing"
	KindTokenInvalid       ErrorKind = "token_invalid"
	KindTokenExpired       ErrorKind = "token_expired"
	KindNotFound           ErrorKind = "not_found"
	KindForbidden          ErrorKind = "forbidden"
	KindStorageUnavailable ErrorKind = "storage_unavailable"
	KindCorruptDocument    ErrorKind = "corrupt_document"
	KindPersistenceFailure ErrorKind = "persistence_failure"
)

// kinds is checked in order; PersistenceFailure wraps a storage error,
// so it must be matched first.
var kinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrInvalidInput, KindInvalidInput},
	{ErrUsernameTaken, KindUsernameTaken},
	{ErrInvalidCredentials, KindInvalidCredentials},
	{ErrTokenMissing, KindTokenMissing},
	{ErrTokenExpired, KindTokenExpired},
	{ErrTokenInvalid, KindTokenInvalid},
	{ErrNotFound, KindNotFound},
	{ErrForbidden, KindForbidden},
	{ErrPersistenceFailure, KindPersistenceFailure},
	{ErrCorruptDocument, KindCorruptDocument},
	{ErrStorageUnavailable, KindStorageUnavailable},
}

// Kind reports the ErrorKind of err, or KindUnknown if err does not wrap
// any of the sentinel errors of this package.
func Kind(err error) ErrorKind {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}

// IsStorage reports whether err is one of the storage error kinds.
func IsStorage(err error) bool {
	switch Kind(err) {
	case KindStorageUnavailable, KindCorruptDocument, KindPersistenceFailure:
		return true
	}
	return false
}
