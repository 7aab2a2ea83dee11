package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUp struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,password"`
	FirstName string `validate:"required,name_spacial_char"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidatorInstance.ValidateStruct(signUp{Email: "ada@example.com", Password: "abcdefg1", FirstName: "O'Neil"}))

	errs := ValidatorInstance.ValidateStruct(signUp{Email: "nope", Password: "short1", FirstName: "R2D2"})
	require.NotNil(t, errs)
	require.Len(t, *errs, 3)
	assert.EqualError(t, (*errs)[0], "Email must be a valid email")
}

func TestValidateValue(t *testing.T) {
	tests := []struct {
		value   string
		rules   string
		wantErr bool
	}{
		{value: "0123456789", rules: "account_number"},
		{value: "012345678", rules: "account_number", wantErr: true},
		{value: "12a4567890", rules: "account_number", wantErr: true},
		{value: "100", rules: "decimal_amount"},
		{value: "0.5", rules: "decimal_amount"},
		{value: "12.25", rules: "decimal_amount"},
		{value: "0.00", rules: "decimal_amount", wantErr: true},
		{value: "-4", rules: "decimal_amount", wantErr: true},
		{value: "1.255", rules: "decimal_amount", wantErr: true},
		{value: "password", rules: "password", wantErr: true},
		{value: "passw0rd", rules: "password"},
	}
	for _, tt := range tests {
		t.Run(tt.rules+"/"+tt.value, func(t *testing.T) {
			err := ValidatorInstance.ValidateValue(tt.value, tt.rules)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
