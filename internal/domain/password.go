package domain

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

const PasswordMinLength = 8

var (
	digit     = regexp.MustCompile(`\d`)
	lowercase = regexp.MustCompile(`[a-z]`)
	uppercase = regexp.MustCompile(`[A-Z]`)
	symbol    = regexp.MustCompile(`\W`)
)

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Password holds only the one-way hash of a validated plaintext.
type Password struct {
	hash string
}

func NewPassword(raw string, hasher PasswordHasher) (Password, error) {
	if err := ValidatePassword(raw); err != nil {
		return Password{}, err
	}
	h, err := hasher.HashPassword(raw)
	if err != nil {
		return Password{}, fmt.Errorf("hash password: %w", err)
	}
	return Password{hash: h}, nil
}

func (p Password) Hash() string { return p.hash }

func ValidatePassword(raw string) error {
	switch {
	case utf8.RuneCountInString(raw) < PasswordMinLength:
		return passwordError(ReasonTooShort, fmt.Sprintf("Password must be at least %d characters long", PasswordMinLength))
	case !digit.MatchString(raw):
		return passwordError(ReasonNoDigit, "Password must contain at least one digit")
	case !lowercase.MatchString(raw):
		return passwordError(ReasonNoLowercase, "Password must contain at least one lowercase letter")
	case !uppercase.MatchString(raw):
		return passwordError(ReasonNoUppercase, "Password must contain at least one uppercase letter")
	case !symbol.MatchString(raw):
		return passwordError(ReasonNoSymbol, "Password must contain at least one special character")
	}
	return nil
}

func passwordError(reason, msg string) error {
	return &ValidationError{Kind: ErrInvalidPassword, Field: "password", Reason: reason, Message: msg}
}
