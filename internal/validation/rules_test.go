package validation

import (
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/idvault/internal/errors"
)

func TestNationalID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "twelve digits", input: "123456789012"},
		{name: "surrounding whitespace", input: " 123456789012\t"},
		{name: "empty is left to Required", input: ""},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "too short", input: "12345678901", wantErr: true},
		{name: "too long", input: "1234567890123", wantErr: true},
		{name: "letters", input: "ABCDEFGHIJKL", wantErr: true},
		{name: "separators", input: "1234-5678-90", wantErr: true},
		{name: "full-width digits", input: "１２３４５６７８９０１２", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NationalID.Validate(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, "12-digit national identifier")
		})
	}
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("customer-1"))
	assert.NoError(t, NotBlank.Validate(" customer 1 "))
	assert.NoError(t, NotBlank.Validate(""), "empty is left to Required")
	assert.ErrorContains(t, NotBlank.Validate(" \t\n"), "must not be blank")
}

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := validation.Validate("", validation.Required, NationalID)
	assert.Error(t, err)

	wrapped := WrapValidationError(err)
	assert.ErrorIs(t, wrapped, apperrors.ErrInvalidInput)
	assert.Contains(t, wrapped.Error(), err.Error())
}
