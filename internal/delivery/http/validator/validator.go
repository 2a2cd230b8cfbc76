// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	domainerrors "passport/internal/domain/errors"

	validatorlib "github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground validator for echo.
type CustomValidator struct {
	validate *validatorlib.Validate
}

// New creates the echo validator.
func New() *CustomValidator {
	return &CustomValidator{validate: validatorlib.New()}
}

// Validate implements echo.Validator. Struct tag violations surface as the
// validation AppError so the error middleware maps them to a 400.
func (v *CustomValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
