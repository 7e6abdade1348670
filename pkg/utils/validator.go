package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	alphaRegex = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// IsAlphabetic returns true if s is non-empty and contains only letters.
func IsAlphabetic(s string) bool {
	return alphaRegex.MatchString(s)
}

// IsEmailOrLocalhost returns true for a syntactically valid email address.
// Addresses at the literal host "localhost" are accepted as well; this is a
// deliberate relaxation for local and test delivery.
func IsEmailOrLocalhost(addr string) bool {
	if emailRegex.MatchString(addr) {
		return true
	}
	at := strings.LastIndex(addr, "@")
	return at > 0 && addr[at+1:] == "localhost"
}
