package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Priya Sharma"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName(strings.Repeat("a", 101)))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("student@university.edu"))
	assert.NoError(t, ValidateEmail("a.b+tag@example.co"))

	for _, bad := range []string{"", "plainaddress", "missing@tld", "@nodomain.com", "spaces in@mail.com"} {
		assert.Error(t, ValidateEmail(bad), "email %q", bad)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
}
