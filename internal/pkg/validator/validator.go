package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/timemath"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

var employeeIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// IsValidEmployeeID checks an employee key as used in store paths.
func IsValidEmployeeID(id string) bool {
	return employeeIDRegex.MatchString(id)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidMonth checks a "YYYY-MM" month key.
func IsValidMonth(monthStr string) (time.Time, bool) {
	month, err := timemath.ParseMonth(monthStr)
	return month, err == nil
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// Phone number validation
func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phoneRegex.MatchString(phone)
}
