package domain

import (
	"net/mail"
	"strings"
)

const emailMaxLength = 254

type Email struct {
	value string
}

// NewEmail accepts a bare addr-spec ("user@example.com"); display names,
// angle brackets and dotless domains are rejected.
func NewEmail(raw string) (Email, error) {
	if !validEmail(raw) {
		return Email{}, &ValidationError{Kind: ErrInvalidEmail, Field: "email", Reason: ReasonSyntax, Message: "Invalid email"}
	}
	return Email{value: raw}, nil
}

func (e Email) String() string { return e.value }

func validEmail(raw string) bool {
	if raw == "" || len(raw) > emailMaxLength || strings.TrimSpace(raw) != raw {
		return false
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Name != "" || addr.Address != raw {
		return false
	}
	at := strings.LastIndex(raw, "@")
	domain := raw[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return !strings.Contains(domain, "..")
}
