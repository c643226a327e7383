package utils

import "strings"

// NormalizeSpace trims s and collapses every whitespace run into one space,
// the same shape a DOM text() accessor hands back.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
