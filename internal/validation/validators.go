package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()
}

// SanitizeName sanitizes an item name by trimming whitespace and removing
// control characters.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)

	var sanitized strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		sanitized.WriteRune(r)
	}
	return strings.TrimSpace(sanitized.String())
}
