package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsHangul reports whether r belongs to the Hangul script.
func IsHangul(r rune) bool {
	return unicode.Is(unicode.Hangul, r)
}

// KeepHangul drops every rune outside the Hangul script, keeping the rest in order.
// A string without any Hangul yields "".
func KeepHangul(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if IsHangul(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ContainsHangul checks if a string has at least one Hangul rune
func ContainsHangul(s string) bool {
	for _, r := range s {
		if IsHangul(r) {
			return true
		}
	}
	return false
}

// RuneLen counts characters rather than bytes.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// IsValidInput checks if a search text should be sent upstream.
// Control characters and invalid UTF-8 are rejected, empty text is allowed.
func IsValidInput(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
