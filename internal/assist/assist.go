// Package assist ties routing, memory and generation together: it classifies
// a request, gathers context from memory, generates the result and records
// the exchange.
package assist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/rcliao/text-assist/internal/generate"
	"github.com/rcliao/text-assist/internal/memory"
	"github.com/rcliao/text-assist/internal/model"
	"github.com/rcliao/text-assist/internal/router"
	"github.com/rcliao/text-assist/internal/telemetry"
)

// Input is one user request. Instruction is what the user asked for and is
// what gets routed; Text is the content to act on. Either may be empty but
// not both.
type Input struct {
	Text        string `json:"text"`
	Instruction string `json:"instruction"`
	Intent      string `json:"intent,omitempty"`
	UseMemory   bool   `json:"useMemory"`
	TopK        int    `json:"topK,omitempty"`
}

// Output is the outcome of Handle.
type Output struct {
	Routing     router.Result  `json:"routing"`
	Request     router.Request `json:"request"`
	Result      string         `json:"result"`
	EntryID     string         `json:"entryId,omitempty"`
	ContextUsed bool           `json:"contextUsed"`
}

type Config struct {
	Generator generate.Generator
	Memory    *memory.Store
	TopK      int
	Logger    *slog.Logger
	Metrics   *telemetry.Metrics
}

// Assistant handles requests end to end.
type Assistant struct {
	gen     generate.Generator
	mem     *memory.Store
	log     *slog.Logger
	metrics *telemetry.Metrics
	topK    atomic.Int64
}

func New(cfg Config) *Assistant {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	gen := cfg.Generator
	if gen == nil {
		gen = generate.Unavailable{}
	}
	a := &Assistant{
		gen:     gen,
		mem:     cfg.Memory,
		log:     log.With("component", "assist"),
		metrics: cfg.Metrics,
	}
	a.SetTopK(cfg.TopK)
	return a
}

// SetTopK changes the number of memory entries used as context when a
// request does not set its own.
func (a *Assistant) SetTopK(n int) {
	if n <= 0 {
		n = 3
	}
	a.topK.Store(int64(n))
}

// Route classifies in without generating anything.
func (a *Assistant) Route(in Input) (router.Result, router.Request, error) {
	instruction := in.Instruction
	if strings.TrimSpace(instruction) == "" {
		instruction = in.Text
	}
	if strings.TrimSpace(instruction) == "" {
		return router.Result{}, nil, fmt.Errorf("%w: instruction and text are both empty", memory.ErrInvalidInput)
	}

	var res router.Result
	if in.Intent != "" {
		intent, ok := router.ParseIntent(in.Intent)
		if !ok {
			return router.Result{}, nil, fmt.Errorf("%w: unknown intent %q", memory.ErrInvalidInput, in.Intent)
		}
		res = router.RouteAs(instruction, intent)
	} else {
		res = router.Route(instruction)
	}
	a.metrics.RecordRoute(string(res.Intent), string(res.Via))
	return res, router.Normalize(res, instruction, in.Text), nil
}

// Handle routes, generates and, when in.UseMemory is set, uses and updates
// the conversation memory. A failure to record the exchange is logged and
// does not fail the request.
func (a *Assistant) Handle(ctx context.Context, in Input) (*Output, error) {
	res, req, err := a.Route(in)
	if err != nil {
		return nil, err
	}
	out := &Output{Routing: res, Request: req}

	instruction := in.Instruction
	if strings.TrimSpace(instruction) == "" {
		instruction = in.Text
	}

	text, opts := Options(req)
	if strings.TrimSpace(in.Text) != "" && in.Instruction != "" && opts.Intent != router.IntentRewrite {
		opts.Instructions = in.Instruction
	}

	useMemory := in.UseMemory && a.mem != nil
	if useMemory {
		topK := in.TopK
		if topK <= 0 {
			topK = int(a.topK.Load())
		}
		opts.Context = a.mem.GetRelevantContextString(instruction, topK)
		out.ContextUsed = opts.Context != ""
	}

	result, err := a.gen.Generate(ctx, text, opts)
	if err != nil {
		return out, fmt.Errorf("generate %s: %w", res.Intent, err)
	}
	if strings.TrimSpace(result) == "" {
		return out, fmt.Errorf("generate %s: %w", res.Intent, generate.ErrEmptyOutput)
	}
	out.Result = result

	if useMemory {
		e, err := a.mem.AddConversation(ctx, instruction, result, Metadata(res))
		if err != nil {
			a.log.Warn("failed to record conversation", "err", err)
		} else {
			out.EntryID = e.ID
		}
	}
	return out, nil
}

// Options maps a request variant to the text to send and the generation
// options.
func Options(req router.Request) (string, generate.Options) {
	opts := generate.Options{Intent: req.Intent()}
	switch r := req.(type) {
	case router.ProofreadRequest:
		return r.Text, opts
	case router.RewriteRequest:
		opts.Instructions = r.Goal
		opts.Format = r.Format
		opts.Tones = r.Tones
		return r.Text, opts
	case router.WriteRequest:
		opts.Format = r.Format
		opts.Tones = r.Tones
		opts.Length = r.Length
		return r.Text, opts
	case router.SummarizeRequest:
		opts.SummaryType = r.SummaryType
		opts.Length = r.Length
		return r.Text, opts
	case router.TranslateRequest:
		opts.TargetLanguage = r.TargetLanguage
		return r.Text, opts
	case router.PromptRequest:
		return r.Text, opts
	default:
		panic(fmt.Sprintf("assist: unhandled request type %T", req))
	}
}

// Metadata is what gets stored alongside a remembered exchange.
func Metadata(res router.Result) map[string]string {
	meta := map[string]string{
		model.MetaIntent: string(res.Intent),
		model.MetaVia:    string(res.Via),
	}
	if res.OutputType != "" {
		meta[model.MetaFormat] = string(res.OutputType)
	}
	if len(res.Tones) > 0 {
		tones := make([]string, len(res.Tones))
		for i, t := range res.Tones {
			tones[i] = string(t)
		}
		meta[model.MetaTone] = strings.Join(tones, ",")
	}
	if res.TargetLanguage != "" {
		meta[model.MetaTargetLanguage] = res.TargetLanguage
	}
	return meta
}
