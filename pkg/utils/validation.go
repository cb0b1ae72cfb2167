package utils

import (
	"errors"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateName checks a display name for signup and profile updates.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("Name is required")
	}
	if len(name) > 100 {
		return errors.New("Name must be at most 100 characters")
	}
	return nil
}

// ValidateEmail checks basic email shape; real verification is out of scope.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("Email is required")
	}
	if len(email) > 255 || !emailRegex.MatchString(email) {
		return errors.New("Email is not valid")
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return errors.New("Password must be at most 128 characters")
	}
	return nil
}
