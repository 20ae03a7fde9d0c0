// internal/service/template_service.go
package service

import (
	"regexp"
	"strings"
)

// RenderTemplate substitutes {name} placeholders into a template string.
// Unknown placeholders are left in place.
func RenderTemplate(template string, values map[string]string) string {
	result := template
	for k, v := range values {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}

var (
	lineBreakRe = regexp.MustCompile(`(?i)<br\s*/?>|</p>`)
	htmlTagRe   = regexp.MustCompile(`<[^>]*>?`)
)

// StripHTML reduces rendered markup to plain text for SMS bodies: <br> and
// </p> become newlines, every other tag is removed.
func StripHTML(html string) string {
	s := lineBreakRe.ReplaceAllString(html, "\n")
	s = htmlTagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// SplitRecipients splits a comma separated recipients expression and
// substitutes placeholders into each entry. Empty entries are dropped.
func SplitRecipients(recipients string, values map[string]string) []string {
	parts := strings.Split(recipients, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		rendered := RenderTemplate(strings.TrimSpace(p), values)
		if rendered == "" {
			continue
		}
		out = append(out, rendered)
	}
	return out
}
