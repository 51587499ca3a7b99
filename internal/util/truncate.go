// ABOUTME: String helpers shared by the engine, CLI and API
// ABOUTME: Truncation is rune-aware so multilingual text is never split mid-character
package util

// TruncateRunes returns at most maxLen runes of s
func TruncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// Truncate shortens s to maxLen runes, ending with "..." when shortened
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
