package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Letters, spaces, and common name punctuation: . ' - /
	nameRegex = regexp.MustCompile(`^[\p{L} .'/-]+$`)

	// E164-like phone: optional +, digits 7-15 length
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("not_past", NotPast)
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(val)
}

// NotPast validates that a date is today or later
func NotPast(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(time.Time)
	if !ok || val.IsZero() {
		return true
	}
	today := time.Now().Truncate(24 * time.Hour)
	return !val.Before(today)
}
