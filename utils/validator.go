// utils/validator.go - Input validation
package utils

import (
	"os"
	"regexp"
	"strings"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	upperRegex   = regexp.MustCompile(`[A-Z]`)
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex   = regexp.MustCompile(`[0-9]`)
	specialRegex = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// ValidateEmail checks the address shape and, when EMAIL_DOMAIN is set,
// restricts registration to college addresses.
func ValidateEmail(email string) (bool, string) {
	if !emailRegex.MatchString(email) {
		return false, "Invalid email address"
	}
	domain := os.Getenv("EMAIL_DOMAIN")
	if domain != "" && !strings.HasSuffix(email, "@"+domain) {
		return false, "Only college emails allowed"
	}
	return true, ""
}

// ValidatePassword checks password strength: at least 8 characters with
// uppercase, lowercase, number, and special character.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 ||
		!upperRegex.MatchString(password) ||
		!lowerRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return false, "Password must be at least 8 characters and include uppercase, lowercase, number, and special character"
	}
	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}
