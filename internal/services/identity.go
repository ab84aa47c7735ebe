package services

import (
	"regexp"
	"strings"
)

var identityNumberRegex = regexp.MustCompile(`^[0-9]{12}$`)

func IsValidIdentity(value string) bool {
	return identityNumberRegex.MatchString(value)
}

func NormalizeIdentityInput(raw string) string {
	return strings.TrimSpace(raw)
}

// MaskIdentity keeps only the last four digits, formatted ****-****-1234.
func MaskIdentity(identity string) string {
	if len(identity) < 4 {
		return "****-****-****"
	}
	return "****-****-" + identity[len(identity)-4:]
}
