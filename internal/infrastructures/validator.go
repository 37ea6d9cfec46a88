package infrastructures

import (
	"errors"

	"github.com/go-playground/validator/v10"
	appError "github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/pkg"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *Validator) Validate(i interface{}) error {
	if i == nil {
		return appError.NewBadRequestError("Invalid request body")
	}

	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return appError.NewBadRequestError("Validation failed", pkg.ValidationMessages(validationErrs)...)
	}
	return appError.NewBadRequestError(err.Error())
}
