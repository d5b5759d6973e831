// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	domainerrors "invoicer/internal/domain/errors"
	"invoicer/internal/errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator validates bound request DTOs by their struct tags.
type RequestValidator struct {
	validate *validator.Validate
}

// New creates a RequestValidator backed by a shared validator instance.
func New() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator. Tag violations surface as a 400
// validation error carrying the first failed field.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]

		return domainerrors.ErrValidationFailed.WithDetails(
			"field " + first.Field() + " failed on the " + first.Tag() + " rule",
		)
	}

	return domainerrors.ErrValidationFailed.WithDetails(err.Error())
}
