package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeText strips every HTML tag, unescapes the entities the policy
// produced and trims surrounding whitespace and NUL bytes.
func SanitizeText(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	cleaned := html.UnescapeString(htmlPolicy.Sanitize(input))
	return strings.TrimSpace(cleaned)
}
