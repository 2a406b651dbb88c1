package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/shashiranjanraj/foodhub/app/pricing"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrPersistence        = errors.New("could not save")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrValidation         = errors.New("validation failed")
	ErrIncompleteFeedback = errors.New("all fields required")
)

// ValidationError carries per-field messages. It matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// QuantityError rejects an order whose quantity is not a positive integer.
// It carries what the form needs to be shown again at the same price.
type QuantityError struct {
	Input  string
	Food   PricedFood
	Coupon *pricing.Coupon
}

func (e *QuantityError) Error() string {
	return "invalid quantity " + `"` + e.Input + `"`
}

func (e *QuantityError) Is(target error) bool { return target == ErrInvalidQuantity }
