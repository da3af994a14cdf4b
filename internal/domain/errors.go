package domain

import "errors"

var (
	ErrRequiredField   = errors.New("required field missing")
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPassword = errors.New("invalid password")
)

// Reasons attached to a ValidationError.
const (
	ReasonEmpty         = "empty"
	ReasonTooLong       = "too-long"
	ReasonBadCharacters = "bad-characters"
	ReasonSyntax        = "syntax"
	ReasonTooShort      = "too-short"
	ReasonNoDigit       = "no-digit"
	ReasonNoLowercase   = "no-lowercase"
	ReasonNoUppercase   = "no-uppercase"
	ReasonNoSymbol      = "no-symbol"
)

// ValidationError is a user-correctable input problem. Message is safe to
// return to clients.
type ValidationError struct {
	Kind    error
	Field   string
	Reason  string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Kind }
