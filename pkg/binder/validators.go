package binder

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	indianPhoneRE = regexp.MustCompile(`^\+91[1-9][0-9]{9}$`)
	otpCodeRE     = regexp.MustCompile(`^[0-9]{6}$`)
)

// indianPhoneValidator checks the fixed regional phone format: +91 followed
// by a non-zero digit and nine more digits.
func indianPhoneValidator(fl validator.FieldLevel) bool {
	return indianPhoneRE.MatchString(fl.Field().String())
}

// otpValidator checks for a 6-digit one-time code.
func otpValidator(fl validator.FieldLevel) bool {
	return otpCodeRE.MatchString(fl.Field().String())
}
