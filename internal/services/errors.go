package services

import (
	"errors"
	"strings"
)

var (
	ErrInvalidIdentity      = errors.New("identity number must be exactly 12 digits")
	ErrDuplicateIdentity    = errors.New("identity number already registered")
	ErrAuthenticationFailed = errors.New("invalid identity number or secret")
	ErrInvalidRole          = errors.New("role must be patient or provider")
	ErrOwnerRequired        = errors.New("record owner is required")
)

// ErrAccountNotFound is returned for lookups that miss. Authentication uses
// the same value so a wrong identity and a wrong secret look alike.
var ErrAccountNotFound = ErrAuthenticationFailed

type MissingRequiredFieldError struct {
	Field string
}

func (err *MissingRequiredFieldError) Error() string {
	return "missing required field: " + err.Field
}

// ValidationError lists every record field that failed validation.
type ValidationError struct {
	Fields []string
}

func (err *ValidationError) Error() string {
	return "invalid record fields: " + strings.Join(err.Fields, ", ")
}

func (err *ValidationError) Has(field string) bool {
	for _, candidate := range err.Fields {
		if candidate == field {
			return true
		}
	}
	return false
}
