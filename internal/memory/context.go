package memory

import (
	"fmt"
	"strings"

	"github.com/rcliao/text-assist/internal/model"
)

// ContextHeader starts every non-empty context string.
const ContextHeader = "RELEVANT CONVERSATION CONTEXT:"

// FormatContext renders retrieved entries as a prompt context block, or ""
// when there are none.
func FormatContext(items []model.Retrieved) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(ContextHeader)
	b.WriteString("\n")
	for _, it := range items {
		b.WriteString("\nQ: ")
		b.WriteString(it.Query)
		b.WriteString("\nA: ")
		b.WriteString(it.Content)
		if it.RetrievalType == model.RetrievalChronological {
			b.WriteString("\n(Recent)\n")
		} else {
			fmt.Fprintf(&b, "\n(Score: %.2f)\n", it.Score)
		}
	}
	return b.String()
}

// GetRelevantContextString retrieves context for query and formats it.
func (s *Store) GetRelevantContextString(query string, topK int) string {
	return FormatContext(s.Retrieve(query, topK))
}
