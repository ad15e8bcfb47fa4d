// Package generate is the text generation capability: one interface over
// OpenAI-compatible and Ollama backends.
package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/text-assist/internal/router"
	"github.com/rcliao/text-assist/internal/telemetry"
)

var (
	// ErrUnavailable means the backend could not be reached or is disabled.
	ErrUnavailable = errors.New("generation backend unavailable")
	// ErrEmptyOutput means the backend answered with no text.
	ErrEmptyOutput = errors.New("generation returned empty output")
)

// Error is a failed generation call.
type Error struct {
	Backend string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Options carries the per-request hints derived by the router.
type Options struct {
	Intent         router.Intent
	Instructions   string
	Context        string
	Tones          []router.Tone
	Format         router.OutputType
	Length         router.Length
	SummaryType    router.SummaryType
	TargetLanguage string
}

// Generator produces text for a request. Implementations never return an
// empty string with a nil error.
type Generator interface {
	Generate(ctx context.Context, text string, opts Options) (string, error)
	Name() string
}

// Unavailable is the Generator used when no provider is configured.
type Unavailable struct{}

func (Unavailable) Name() string { return "none" }

func (Unavailable) Generate(context.Context, string, Options) (string, error) {
	return "", &Error{Backend: "none", Op: "generate", Err: fmt.Errorf("%w: no provider configured", ErrUnavailable)}
}

type instrumented struct {
	Generator
	metrics *telemetry.Metrics
}

// Instrument records call counts and latency of g on m.
func Instrument(g Generator, m *telemetry.Metrics) Generator {
	if m == nil {
		return g
	}
	return &instrumented{Generator: g, metrics: m}
}

func (g *instrumented) Generate(ctx context.Context, text string, opts Options) (string, error) {
	start := time.Now()
	out, err := g.Generator.Generate(ctx, text, opts)
	status := "ok"
	switch {
	case errors.Is(err, ErrUnavailable):
		status = "unavailable"
	case errors.Is(err, ErrEmptyOutput):
		status = "empty"
	case err != nil:
		status = "error"
	}
	g.metrics.RecordGeneration(g.Name(), string(opts.Intent), status, time.Since(start))
	return out, err
}
