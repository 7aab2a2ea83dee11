package validator

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	nameRegex          = regexp.MustCompile(`^[\p{L}'\-]+$`)
	accountNumberRegex = regexp.MustCompile(`^[0-9]{10}$`)
	amountRegex        = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,2})?$`)
)

func validatePasswordStrength(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 {
		return false
	}

	hasDigit := false
	hasLetter := false

	for _, char := range password {
		if unicode.IsDigit(char) {
			hasDigit = true
		} else if unicode.IsLetter(char) {
			hasLetter = true
		}
	}

	return hasDigit && hasLetter
}

func validateNameWithSpecialChars(fl validator.FieldLevel) bool {
	return nameRegex.MatchString(fl.Field().String())
}

func validateAccountNumber(fl validator.FieldLevel) bool {
	return accountNumberRegex.MatchString(fl.Field().String())
}

// amounts travel as strings so they can be stored as Decimal128 without
// going through a float.
func validateDecimalAmount(fl validator.FieldLevel) bool {
	amount := fl.Field().String()
	if !amountRegex.MatchString(amount) {
		return false
	}
	for _, char := range amount {
		if char != '0' && char != '.' {
			return true
		}
	}
	return false
}
