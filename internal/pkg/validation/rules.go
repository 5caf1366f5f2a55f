package validation

import (
	"regexp"
	"time"
)

// Validation rule patterns
var (
	// Username: letters, digits, dot, underscore, hyphen
	UsernamePattern = `^[a-zA-Z0-9._\-]{3,50}$`

	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Password min length
	PasswordMinLength = 8
)

// DateLayout is the wire format for form date fields
const DateLayout = "2006-01-02"

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Username *regexp.Regexp
	Email    *regexp.Regexp
}{
	Username: regexp.MustCompile(UsernamePattern),
	Email:    regexp.MustCompile(EmailPattern),
}

// ValidUsername reports whether a username matches the accepted pattern
func ValidUsername(username string) bool {
	return CompiledPatterns.Username.MatchString(username)
}

// ValidEmail reports whether an email address has an acceptable shape
func ValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// ParseDate parses a form date value in DateLayout
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ParseOptionalDate parses a form date value, returning nil for empty input
func ParseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
