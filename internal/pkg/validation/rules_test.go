package validation

import (
	"testing"
	"time"
)

func TestValidUsername(t *testing.T) {
	valid := []string{"admin", "j.doe", "user_42", "a-b-c", "abc"}
	for _, u := range valid {
		if !ValidUsername(u) {
			t.Errorf("Expected username '%s' to be valid", u)
		}
	}

	invalid := []string{"", "ab", "has space", "bad!char", "name@host"}
	for _, u := range invalid {
		if ValidUsername(u) {
			t.Errorf("Expected username '%s' to be invalid", u)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"admin@school.edu", "j.doe+tag@example.co.uk", "user_42@host.org"}
	for _, e := range valid {
		if !ValidEmail(e) {
			t.Errorf("Expected email '%s' to be valid", e)
		}
	}

	invalid := []string{"", "plain", "missing@tld", "@host.com", "user@.com"}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Errorf("Expected email '%s' to be invalid", e)
		}
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2025-09-01")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}

	want := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Errorf("Expected %v, got %v", want, parsed)
	}

	if _, err := ParseDate("01/09/2025"); err == nil {
		t.Errorf("Expected error for wrong date layout")
	}
}

func TestParseOptionalDate(t *testing.T) {
	parsed, err := ParseOptionalDate("")
	if err != nil {
		t.Fatalf("ParseOptionalDate failed on empty input: %v", err)
	}
	if parsed != nil {
		t.Errorf("Expected nil for empty input, got %v", parsed)
	}

	parsed, err = ParseOptionalDate("2000-01-15")
	if err != nil {
		t.Fatalf("ParseOptionalDate failed: %v", err)
	}
	if parsed == nil || parsed.Day() != 15 {
		t.Errorf("Expected parsed date with day 15, got %v", parsed)
	}

	if _, err := ParseOptionalDate("not-a-date"); err == nil {
		t.Errorf("Expected error for malformed date")
	}
}
