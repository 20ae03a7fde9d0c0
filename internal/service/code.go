package service

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

var (
	customerCodeRe = regexp.MustCompile(`\((\d{6})\)`)
	freqRe         = regexp.MustCompile(`FREQ=([^;]+)`)
)

// GenerateCustomerCode returns a random 6-digit access code.
func GenerateCustomerCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// ExtractCustomerCode pulls a parenthesized 6-digit code out of an event
// title, e.g. "(482913) Deep Tissue Massage" -> "482913". Returns "" when
// the title carries no code.
func ExtractCustomerCode(title string) string {
	m := customerCodeRe.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return m[1]
}

// GenerateEventTitle prefixes the service title with the access code.
func GenerateEventTitle(originalTitle, customerCode string) string {
	return fmt.Sprintf("(%s) %s", customerCode, originalTitle)
}

// GenerateEventDescription builds the booking description carrying the
// access code; it doubles as the booking success message.
func GenerateEventDescription(customerCode string) string {
	return fmt.Sprintf("Welcome! Your access code is: %s", customerCode)
}

// ExtractFreq pulls the FREQ token out of a recurrence rule, "None" when
// the rule carries no FREQ part.
func ExtractFreq(rrule string) string {
	m := freqRe.FindStringSubmatch(rrule)
	if m == nil {
		return "None"
	}
	return m[1]
}

var icelandicMap = map[rune]string{
	'É': "E", 'Í': "I", 'Ó': "O", 'Ú': "U", 'Ý': "Y", 'Ð': "D", 'Þ': "Th",
	'á': "a", 'é': "e", 'í': "i", 'ó': "o", 'ú': "u", 'ý': "y", 'ð': "d", 'þ': "th",
	'Æ': "Ae", 'æ': "ae", 'Ö': "O", 'ö': "o",
}

// Transliterate maps Icelandic characters to ASCII so SMS and mail bridges
// that mangle them still deliver readable text.
func Transliterate(s string) string {
	var b strings.Builder
	for _, r := range s {
		if repl, ok := icelandicMap[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
