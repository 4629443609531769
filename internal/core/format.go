package core

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// FormatShortDate renders an ISO date as "Jan 2". Unparsable input is
// returned unchanged.
func FormatShortDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2")
}

// Initials returns up to two uppercase initials of name.
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
