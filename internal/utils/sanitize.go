package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeContent strips all HTML from user-submitted message text and trims
// surrounding whitespace. Runs before length validation so limits apply to
// what gets stored.
func SanitizeContent(content string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(content))
}
