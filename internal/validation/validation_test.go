package validation_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairdesk/internal/validation"
)

func TestIsGSTIN(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"37AADCB2230M1ZV", true},
		{"29ABCDE1234F1Z5", true},
		{"37aadcb2230m1zv", false},
		{"37AADCB2230M1Z", false},
		{"99AADCB2230M1ZV", false},
		{"00AADCB2230M1ZV", false},
		{"37AADCB2230M0ZV", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.IsGSTIN(tt.in))
		})
	}
}

func TestIsPhoneAndPincode(t *testing.T) {
	assert.True(t, validation.IsPhone("9876543210"))
	assert.True(t, validation.IsPhone("+91 9876543210"))
	assert.False(t, validation.IsPhone("98765"))
	assert.True(t, validation.IsPincode("520001"))
	assert.False(t, validation.IsPincode("020001"))
	assert.False(t, validation.IsPincode("5200"))
}

type sample struct {
	GSTIN string `validate:"omitempty,gstin"`
	Phone string `validate:"required,phone"`
	Pin   string `validate:"pincode"`
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, validation.Register(v))

	assert.NoError(t, v.Struct(sample{Phone: "9876543210"}))
	assert.NoError(t, v.Struct(sample{GSTIN: "37AADCB2230M1ZV", Phone: "9876543210", Pin: "520001"}))

	err := v.Struct(sample{GSTIN: "BAD", Phone: "9876543210"})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "gstin", verrs[0].Tag())

	assert.Error(t, v.Struct(sample{Phone: "123"}))
}
