package models

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^$|^[+]?[0-9\s\-()]{7,20}$`)

// RegisterValidators adds the profile rules used in binding tags. gin's
// engine and NewValidator both go through here so the HTTP layer and the
// services agree.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("displayname", func(fl validator.FieldLevel) bool {
		name := strings.TrimSpace(fl.Field().String())
		n := utf8.RuneCountInString(name)
		return n == 0 || (n >= 2 && n <= 50)
	})
}

// NewValidator returns a validator that reads the same `binding` tags gin does.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterValidators(v); err != nil {
		panic(err)
	}
	return v
}

// ValidationFailure converts validator output into a ValidationError naming
// the first offending field.
func ValidationFailure(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return NewValidationError(errs[0].Field(), "failed "+errs[0].Tag()+" rule")
	}
	return NewValidationError("request", err.Error())
}
