// Package textutil has small text helpers shared across the pipeline.
package textutil

// Truncate shortens s to at most maxRunes runes, appending "..." when cut.
// Rune-based so Cyrillic and emoji content never gets split mid-character.
func Truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}
