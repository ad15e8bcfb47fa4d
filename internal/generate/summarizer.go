package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/rcliao/text-assist/internal/chunker"
	"github.com/rcliao/text-assist/internal/router"
)

// Summarizer condenses long text with a Generator. Text longer than one
// chunk is summarized chunk by chunk and the partial summaries are joined.
type Summarizer struct {
	Gen   Generator
	Chunk chunker.Options
}

func NewSummarizer(g Generator) *Summarizer {
	return &Summarizer{Gen: g, Chunk: chunker.DefaultOptions()}
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	chunks := chunker.Split(text, s.Chunk)
	if len(chunks) == 0 {
		return "", &Error{Backend: s.Gen.Name(), Op: "summarize", Err: ErrEmptyOutput}
	}
	opts := Options{
		Intent:      router.IntentSummarize,
		SummaryType: router.SummaryTLDR,
		Length:      router.LengthShort,
	}

	parts := make([]string, 0, len(chunks))
	for i, c := range chunks {
		out, err := s.Gen.Generate(ctx, c, opts)
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, "\n"), nil
}
