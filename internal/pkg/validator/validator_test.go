package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsEmpty(c.input), "IsEmpty(%q)", c.input)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidEmployeeID(t *testing.T) {
	assert.True(t, IsValidEmployeeID("EMP-0042"))
	assert.False(t, IsValidEmployeeID("emp/42"))
	assert.False(t, IsValidEmployeeID(""))
}

func TestIsValidMonth(t *testing.T) {
	m, ok := IsValidMonth("2024-02")
	assert.True(t, ok)
	assert.Equal(t, 2024, m.Year())

	for _, s := range []string{"2024-13", "2024-2", "202402", ""} {
		_, ok := IsValidMonth(s)
		assert.False(t, ok, s)
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	assert.True(t, IsValidPhoneNumber("+91 98765 43210"))
	assert.True(t, IsValidPhoneNumber("0987-654-3210"))
	assert.False(t, IsValidPhoneNumber("12345"))
	assert.False(t, IsValidPhoneNumber("phone"))
}
