// Package validation provides custom validators for the application
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MsgMissingFields is returned for any missing registration field
const MsgMissingFields = "Please provide all required fields"

var minPasswordLength = 6

// Initialize registers all custom validators on gin's binding engine
func Initialize(passwordMinLength int) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	return Register(v, passwordMinLength)
}

// Register installs the custom tags on v
func Register(v *validator.Validate, passwordMinLength int) error {
	if passwordMinLength > 0 {
		minPasswordLength = passwordMinLength
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validators := map[string]validator.Func{
		"notblank":    validateNotBlank,
		"passwordlen": validatePasswordLength,
		"pastdate":    validatePastDate,
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

// MinPasswordLength returns the length enforced by the passwordlen tag
func MinPasswordLength() int {
	return minPasswordLength
}

// validateNotBlank checks if a string contains non-space characters
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validatePasswordLength(fl validator.FieldLevel) bool {
	return utf8.RuneCountInString(fl.Field().String()) >= minPasswordLength
}

func validatePastDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.IsZero() && t.Before(time.Now())
}

// Message turns a binding error into the first user-facing message
func Message(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldMessage(fieldErrs[0])
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var timeErr *time.ParseError
	switch {
	case errors.Is(err, io.EOF), errors.As(err, &syntaxErr):
		return "Invalid request body"
	case errors.As(err, &timeErr):
		return "Please provide a valid date of birth"
	case errors.As(err, &typeErr):
		return fmt.Sprintf("Invalid value for %s", typeErr.Field)
	}
	return "Invalid request"
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return MsgMissingFields
	case "email":
		return "Please provide a valid email address"
	case "passwordlen":
		return fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
	case "pastdate":
		return "Date of birth must be in the past"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
