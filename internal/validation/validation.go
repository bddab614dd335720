// Package validation checks sign-up form fields.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Limits for sign-up fields.
const (
	MinPasswordLength = 6
	MinChildAge       = 3
	MaxChildAge       = 12
	MaxNameLength     = 40
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < MinPasswordLength {
		return ValidationError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength)}
	}
	return nil
}

// ValidateName checks a child's display name
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "childName", Message: "name is required"}
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ValidationError{Field: "childName", Message: fmt.Sprintf("name must be at most %d characters", MaxNameLength)}
	}
	return nil
}

// ValidateAge checks the child's age is in the supported range
func ValidateAge(age int) error {
	if age < MinChildAge || age > MaxChildAge {
		return ValidationError{Field: "childAge", Message: fmt.Sprintf("age must be between %d and %d", MinChildAge, MaxChildAge)}
	}
	return nil
}

// ValidateAvatar checks an avatar was picked
func ValidateAvatar(avatar string) error {
	if strings.TrimSpace(avatar) == "" {
		return ValidationError{Field: "avatar", Message: "please choose an avatar"}
	}
	return nil
}
