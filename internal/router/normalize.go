package router

import "strings"

// Request is the per-intent normalized form of a routed request. The set of
// implementations is closed; switch on the concrete type.
type Request interface {
	Intent() Intent
	isRequest()
}

// SummaryType selects the summarization style.
type SummaryType string

const (
	SummaryTLDR      SummaryType = "tldr"
	SummaryKeyPoints SummaryType = "key-points"
	SummaryTeaser    SummaryType = "teaser"
	SummaryHeadline  SummaryType = "headline"
)

// Length is a coarse output-length hint.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

type ProofreadRequest struct {
	Text string `json:"text"`
}

type RewriteRequest struct {
	Text   string     `json:"text"`
	Goal   string     `json:"goal"`
	Format OutputType `json:"format,omitempty"`
	Tones  []Tone     `json:"tones"`
}

type WriteRequest struct {
	Text   string     `json:"text"`
	Format OutputType `json:"format,omitempty"`
	Tones  []Tone     `json:"tones"`
	Length Length     `json:"length"`
}

type SummarizeRequest struct {
	Text        string      `json:"text"`
	SummaryType SummaryType `json:"summaryType"`
	Length      Length      `json:"length"`
}

type TranslateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage,omitempty"`
}

// PromptRequest forwards text to the generator as-is.
type PromptRequest struct {
	Text string `json:"text"`
}

func (ProofreadRequest) Intent() Intent { return IntentProofread }
func (RewriteRequest) Intent() Intent   { return IntentRewrite }
func (WriteRequest) Intent() Intent     { return IntentWrite }
func (SummarizeRequest) Intent() Intent { return IntentSummarize }
func (TranslateRequest) Intent() Intent { return IntentTranslate }
func (PromptRequest) Intent() Intent    { return IntentPrompt }

func (ProofreadRequest) isRequest() {}
func (RewriteRequest) isRequest()   {}
func (WriteRequest) isRequest()     {}
func (SummarizeRequest) isRequest() {}
func (TranslateRequest) isRequest() {}
func (PromptRequest) isRequest()    {}

var summaryTypeRules = []Rule[SummaryType]{
	rule(SummaryHeadline, `\b(headlines?|titles?)\b`),
	rule(SummaryTeaser, `\b(teasers?|hooks?|blurbs?)\b`),
	rule(SummaryKeyPoints, `\b(key|main)[\s-]+(points|takeaways|ideas)\b|\bbullet(s|ed)?\b`),
}

var lengthRules = []Rule[Length]{
	rule(LengthShort, `\b(short|shorter|brief|briefly|quick|concise|one[\s-]line|tl;?dr)\b`),
	rule(LengthLong, `\b(long|longer|detailed|thorough|in-depth|comprehensive|elaborate)\b`),
}

var outputPhrases = map[OutputType]string{
	OutputEmail:        "a professional email",
	OutputLetter:       "a formal letter",
	OutputPost:         "a social media post",
	OutputDocument:     "a structured document",
	OutputList:         "a clear list",
	OutputScript:       "a script",
	OutputSummary:      "a concise summary",
	OutputResponse:     "a reply",
	OutputAnnouncement: "an announcement",
	OutputTutorial:     "a step-by-step tutorial",
}

// Normalize builds the request variant for r. instruction is the text that
// was routed; text is the content to act on and defaults to instruction.
func Normalize(r Result, instruction, text string) Request {
	if strings.TrimSpace(text) == "" {
		text = instruction
	}
	lower := strings.ToLower(instruction)

	switch r.Intent {
	case IntentProofread:
		return ProofreadRequest{Text: text}
	case IntentWrite:
		return WriteRequest{
			Text:   text,
			Format: r.OutputType,
			Tones:  tonesOrEmpty(r.Tones),
			Length: detectLength(lower),
		}
	case IntentSummarize:
		st, ok := firstMatch(summaryTypeRules, lower)
		if !ok {
			st = SummaryTLDR
		}
		return SummarizeRequest{Text: text, SummaryType: st, Length: detectLength(lower)}
	case IntentTranslate:
		return TranslateRequest{Text: text, TargetLanguage: r.TargetLanguage}
	case IntentPrompt:
		return PromptRequest{Text: text}
	default:
		return RewriteRequest{
			Text:   text,
			Goal:   Goal(r.OutputType, r.Tones),
			Format: r.OutputType,
			Tones:  tonesOrEmpty(r.Tones),
		}
	}
}

// Goal describes a rewrite target in words, e.g.
// "Rewrite as a professional email in a formal tone".
func Goal(format OutputType, tones []Tone) string {
	var b strings.Builder
	b.WriteString("Rewrite")
	if p, ok := outputPhrases[format]; ok {
		b.WriteString(" as ")
		b.WriteString(p)
	}
	if len(tones) > 0 {
		names := make([]string, len(tones))
		for i, t := range tones {
			names[i] = string(t)
		}
		b.WriteString(" in a ")
		b.WriteString(strings.Join(names, " and "))
		b.WriteString(" tone")
	}
	if b.Len() == len("Rewrite") {
		return "Rewrite to improve clarity and flow"
	}
	return b.String()
}

func detectLength(s string) Length {
	if l, ok := firstMatch(lengthRules, s); ok {
		return l
	}
	return LengthMedium
}

func tonesOrEmpty(t []Tone) []Tone {
	if t == nil {
		return []Tone{}
	}
	return t
}
