package utils

import (
	"fmt"
	"regexp"
)

// emailRegex mirrors the service's own check: something@something.something.
var emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// IsValidEmail checks if the given string is a valid email address format.
func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}
	return emailRegex.MatchString(email)
}

// Pluralize returns "1 secret" or "3 secrets".
func Pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
