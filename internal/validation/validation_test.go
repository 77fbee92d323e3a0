package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateName("Jane Doe"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName(strings.Repeat("x", 101)))
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"jane@example.com", "a.b+c@sub.example.co"}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{"", "plain", "no@tld", "two@@example.com", "spaces in@example.com"}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePassword("secret123"))
	assert.NoError(t, ValidatePassword("abcdef"))
	assert.Error(t, ValidatePassword("abcde"))
	assert.Error(t, ValidatePassword(""))
}
