// Package validator adapts go-playground/validator to echo.
package validator

import (
	domainerrors "bizdir/internal/domain/errors"
	"bizdir/internal/errors"

	"github.com/go-playground/validator/v10"
)

// EchoValidator implements echo.Validator.
type EchoValidator struct {
	validate *validator.Validate
}

// New returns a validator ready to be set on an echo instance.
func New() *EchoValidator {
	return &EchoValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks i against its `validate` tags. Failures become an InvalidRequest
// naming the first offending field.
func (v *EchoValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return domainerrors.ErrInvalidRequest.WithDetails(fieldErrs[0].Field() + " failed on " + fieldErrs[0].Tag())
	}

	return errors.Wrap(err, "request validation failed")
}
