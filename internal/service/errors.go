package service

import "errors"

var (
	// ErrInvalidKind is returned when an approval targets neither "donor" nor "needy".
	ErrInvalidKind = errors.New("invalid input")
	// ErrUserExists is returned by Register when the email is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAmount      = errors.New("invalid amount")
	// ErrNoDocument is returned when a needy record exists but carries no document.
	ErrNoDocument = errors.New("no document")
)

// ValidationError reports bad client input. Message is safe to return to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
