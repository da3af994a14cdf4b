package domain

import (
	"fmt"
	"strings"
)

type Field struct {
	Name  string
	Value string
}

// RequireFields fails on the first field that is blank after trimming.
func RequireFields(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return &ValidationError{
				Kind:    ErrRequiredField,
				Field:   f.Name,
				Reason:  ReasonEmpty,
				Message: fmt.Sprintf("Field '%s' is required", f.Name),
			}
		}
	}
	return nil
}
