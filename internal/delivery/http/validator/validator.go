// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound request structs.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator wraps a shared validator instance.
type RequestValidator struct {
	validate *validator.Validate
}

// New creates the request validator.
func New() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

// Validate runs struct-tag validation on the bound request.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
