package common

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"unicode"
)

// ContentHash computes the SHA256 hash of content and returns a hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// CountWords counts whitespace-separated tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// NormalizeWhitespace collapses runs of whitespace into single spaces while
// preserving paragraph breaks (blank lines become exactly one blank line).
func NormalizeWhitespace(text string) string {
	var sb strings.Builder
	lastSpace := false
	newlines := 0
	for _, r := range text {
		if r == '\n' {
			newlines++
			lastSpace = false
			continue
		}
		if unicode.IsSpace(r) {
			if newlines == 0 {
				lastSpace = true
			}
			continue
		}
		if newlines >= 2 {
			sb.WriteString("\n\n")
		} else if newlines == 1 {
			sb.WriteByte('\n')
		} else if lastSpace && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		newlines = 0
		lastSpace = false
		sb.WriteRune(r)
	}
	return sb.String()
}
