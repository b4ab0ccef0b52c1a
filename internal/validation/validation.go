// Package validation registers the shop-specific struct tags used in request
// bindings: gstin, phone and pincode.
package validation

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var (
	gstinPattern   = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	phonePattern   = regexp.MustCompile(`^(\+91[- ]?)?[0-9]{10}$`)
	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

// IsGSTIN reports whether s is a well-formed 15-character GSTIN with a
// valid state code prefix (01-38).
func IsGSTIN(s string) bool {
	if !gstinPattern.MatchString(s) {
		return false
	}
	code, err := strconv.Atoi(s[:2])
	return err == nil && code >= 1 && code <= 38
}

// IsPhone reports whether s is a 10-digit Indian phone number, optionally
// prefixed with +91.
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsPincode reports whether s is a 6-digit postal code.
func IsPincode(s string) bool {
	return pincodePattern.MatchString(s)
}

// Register installs the custom tags on v. Empty values pass so the tags can
// be combined with omitempty or required as needed.
func Register(v *validator.Validate) error {
	tags := map[string]func(string) bool{
		"gstin":   IsGSTIN,
		"phone":   IsPhone,
		"pincode": IsPincode,
	}
	for tag, check := range tags {
		check := check
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || check(s)
		}); err != nil {
			return err
		}
	}
	return nil
}
