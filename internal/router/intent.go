// Package router classifies free-text requests into an intent plus the
// parameters the generation backends need (output format, tone, language).
package router

import "strings"

// Intent is the action a request maps to.
type Intent string

const (
	IntentProofread Intent = "proofread"
	IntentRewrite   Intent = "rewrite"
	IntentWrite     Intent = "write"
	IntentSummarize Intent = "summarize"
	IntentTranslate Intent = "translate"
	// IntentPrompt passes the request through unchanged. Pattern evaluation
	// never produces it; callers select it explicitly.
	IntentPrompt Intent = "prompt"
)

// Intents lists every intent in routing priority order, followed by IntentPrompt.
var Intents = []Intent{
	IntentTranslate,
	IntentSummarize,
	IntentWrite,
	IntentProofread,
	IntentRewrite,
	IntentPrompt,
}

// ParseIntent maps an explicit intent name to an Intent.
func ParseIntent(s string) (Intent, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, in := range Intents {
		if string(in) == s {
			return in, true
		}
	}
	if s == "other" {
		return IntentPrompt, true
	}
	return "", false
}

// OutputType is the kind of document a request asks for.
type OutputType string

const (
	OutputEmail        OutputType = "email"
	OutputLetter       OutputType = "letter"
	OutputPost         OutputType = "post"
	OutputDocument     OutputType = "document"
	OutputList         OutputType = "list"
	OutputScript       OutputType = "script"
	OutputSummary      OutputType = "summary"
	OutputResponse     OutputType = "response"
	OutputAnnouncement OutputType = "announcement"
	OutputTutorial     OutputType = "tutorial"
)

// Tone is a stylistic register requested for the output.
type Tone string

const (
	ToneFormal     Tone = "formal"
	ToneCasual     Tone = "casual"
	TonePersuasive Tone = "persuasive"
	ToneUrgent     Tone = "urgent"
	ToneDiplomatic Tone = "diplomatic"
	ToneConfident  Tone = "confident"
	ToneEmpathetic Tone = "empathetic"
)

// Via records whether a pattern matched or the router fell back.
type Via string

const (
	ViaPatterns Via = "patterns"
	ViaFallback Via = "fallback"
	ViaExplicit Via = "explicit"
)

// Confidence scores attached to a routing result.
const (
	PatternScore  = 0.9
	FallbackScore = 0.7
	ExplicitScore = 1.0
)

// Result is the output of Route.
type Result struct {
	Intent         Intent     `json:"intent"`
	OutputType     OutputType `json:"outputType,omitempty"`
	Tones          []Tone     `json:"tones"`
	Score          float64    `json:"score"`
	Via            Via        `json:"via"`
	TargetLanguage string     `json:"targetLanguage,omitempty"`
}

// HasTone reports whether t was detected.
func (r Result) HasTone(t Tone) bool {
	for _, x := range r.Tones {
		if x == t {
			return true
		}
	}
	return false
}
