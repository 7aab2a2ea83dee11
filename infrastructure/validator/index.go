package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	validate.RegisterValidation("password", validatePasswordStrength)
	validate.RegisterValidation("name_spacial_char", validateNameWithSpecialChars)
	validate.RegisterValidation("account_number", validateAccountNumber)
	validate.RegisterValidation("decimal_amount", validateDecimalAmount)
}

type Validator struct{}

func (v *Validator) ValidateStruct(payload interface{}) *[]error {
	return validateStruct(payload)
}

func (v *Validator) ValidateValue(value any, rules string) error {
	return validateField(value, rules)
}

var ValidatorInstance = Validator{}

func validateStruct(payload interface{}) *[]error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &[]error{err}
	}
	errs := make([]error, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		errs = append(errs, errors.New(formatFieldError(fieldError)))
	}
	return &errs
}

func validateField(value any, rules string) error {
	err := validate.Var(value, rules)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return errors.New(formatFieldError(validationErrors[0]))
	}
	return err
}

func formatFieldError(fieldError validator.FieldError) string {
	field := fieldError.Field()
	if field == "" {
		field = "value"
	}
	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fieldError.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fieldError.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldError.Param())
	case "password":
		return fmt.Sprintf("%s must be at least 8 characters and contain a letter and a digit", field)
	case "name_spacial_char":
		return fmt.Sprintf("%s may only contain letters, apostrophes and hyphens", field)
	case "account_number":
		return fmt.Sprintf("%s must be a 10 digit account number", field)
	case "decimal_amount":
		return fmt.Sprintf("%s must be a positive amount with at most 2 decimal places", field)
	default:
		return fmt.Sprintf("%s failed the %s check", field, fieldError.Tag())
	}
}
