package session

import "errors"

// ErrAuthFailed is wrapped by every AuthError.
var ErrAuthFailed = errors.New("session: authentication failed")

// AuthError is a login or register failure: invalid credentials or a
// malformed platform response. The persisted session is left untouched.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return "session: " + e.Reason }

func (e *AuthError) Unwrap() error { return ErrAuthFailed }
