// Package stringutil provides small string utilities shared by the
// check-ai and check-lua validators for cleaning up external output
// before it is embedded in a violation message.
package stringutil

// Truncate truncates a string to a maximum length, adding "..." if
// truncated. If maxLen is 3 or less, the string is truncated without
// "...".
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
