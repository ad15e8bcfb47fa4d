package memory

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTokenLength is the shortest token kept by Tokenize. Shorter words are
// mostly function words and are dropped instead of using a stop-word list.
const MinTokenLength = 3

// Tokenize lowercases text, replaces everything except letters and digits
// with spaces, and returns the remaining words of at least MinTokenLength
// characters in their original order.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	fields := strings.Fields(cleaned)
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= MinTokenLength {
			out = append(out, f)
		}
	}
	return out
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
