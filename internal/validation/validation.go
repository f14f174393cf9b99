// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	usernameAlnum = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	slugStrip     = regexp.MustCompile(`[^a-z0-9-]`)
)

// SlugFromTitle derives a URL slug from a post title: split on single
// spaces, join with hyphens, lowercase, then strip everything that is not
// alphanumeric or a hyphen. Runs of spaces are intentionally NOT collapsed
// ("  A   B  " becomes "--a---b--"); clients depend on the literal form.
func SlugFromTitle(title string) string {
	joined := strings.Join(strings.Split(title, " "), "-")
	return slugStrip.ReplaceAllString(strings.ToLower(joined), "")
}

// ValidateUsername checks the account-name invariant: 7-20 characters,
// no spaces, lowercase, letters and digits only. Rules are checked in this
// order and each failure has its own message.
func ValidateUsername(username string) error {
	if len(username) < 7 || len(username) > 20 {
		return fmt.Errorf("Username must be between 7 and 20 characters")
	}
	if strings.Contains(username, " ") {
		return fmt.Errorf("Username cannot contain spaces")
	}
	if username != strings.ToLower(username) {
		return fmt.Errorf("Username must be lowercase")
	}
	if !usernameAlnum.MatchString(username) {
		return fmt.Errorf("Username can only contain letters and numbers")
	}
	return nil
}

// ValidatePassword checks if a password meets the minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("Password must be at least 6 characters")
	}
	if len(password) > 128 {
		return fmt.Errorf("Password must not exceed 128 characters")
	}
	return nil
}

// ValidateEmail checks basic email shape. Deliverability is not verified.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("Email is required")
	}
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return fmt.Errorf("Invalid email address")
	}
	return nil
}
