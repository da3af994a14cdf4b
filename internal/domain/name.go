package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const NameMaxLength = 100

var nameChars = regexp.MustCompile(`^[\p{L}\p{M}\s'-]+$`)

type Name struct {
	value string
}

func NewName(raw string) (Name, error) {
	if strings.TrimSpace(raw) == "" {
		return Name{}, nameError(ReasonEmpty, "Name cannot be empty")
	}
	if utf8.RuneCountInString(raw) > NameMaxLength {
		return Name{}, nameError(ReasonTooLong, fmt.Sprintf("Name cannot be longer than %d characters", NameMaxLength))
	}
	if !nameChars.MatchString(raw) {
		return Name{}, nameError(ReasonBadCharacters,
			"Name contains invalid characters. Only letters, spaces, apostrophes, and hyphens are allowed")
	}
	return Name{value: raw}, nil
}

func (n Name) String() string { return n.value }

func nameError(reason, msg string) error {
	return &ValidationError{Kind: ErrInvalidName, Field: "name", Reason: reason, Message: msg}
}
