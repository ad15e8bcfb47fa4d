package memory

import (
	"regexp"
	"strings"
)

// chronoRules flag queries that ask about earlier turns rather than a topic.
var chronoRules = []*regexp.Regexp{
	regexp.MustCompile(`\b(previous|previously|prior)\b`),
	regexp.MustCompile(`\b(last|latest|recent|recently|earlier)\b`),
	regexp.MustCompile(`\bremind\s+me\b`),
	regexp.MustCompile(`\bwhat\s+(did|have)\s+(we|i|you)\b`),
	regexp.MustCompile(`\b(we|you|i)\s+(discussed|talked\s+about|said|told|mentioned|wrote)\b`),
	regexp.MustCompile(`\b(ago|yesterday|history)\b`),
	regexp.MustCompile(`\bgo\s+back\s+to\b`),
}

// DetectChronologicalQuery reports whether query refers to past turns by
// time ("previous", "last", "earlier", "remind me", ...).
func DetectChronologicalQuery(query string) bool {
	q := strings.ToLower(query)
	for _, re := range chronoRules {
		if re.MatchString(q) {
			return true
		}
	}
	return false
}
