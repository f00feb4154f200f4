package logging

import "strings"

// Sanitize strips newline, carriage-return and other control characters from
// a user-supplied value so it cannot forge extra lines in a log sink.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
