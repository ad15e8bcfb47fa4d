package generate

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/rcliao/text-assist/internal/router"
)

var formatNames = map[router.OutputType]string{
	router.OutputEmail:        "an email",
	router.OutputLetter:       "a letter",
	router.OutputPost:         "a social media post",
	router.OutputDocument:     "a document",
	router.OutputList:         "a list",
	router.OutputScript:       "a script",
	router.OutputSummary:      "a summary",
	router.OutputResponse:     "a reply",
	router.OutputAnnouncement: "an announcement",
	router.OutputTutorial:     "a tutorial",
}

// LanguageName returns the English name of a BCP-47 code, or the code
// itself when it cannot be parsed.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}

// SystemPrompt builds the system instruction for opts.
func SystemPrompt(opts Options) string {
	var parts []string

	switch opts.Intent {
	case router.IntentProofread:
		parts = append(parts, "Correct the spelling, grammar and punctuation of the user's text. Keep its meaning and voice.")
	case router.IntentRewrite:
		goal := opts.Instructions
		if goal == "" {
			goal = router.Goal(opts.Format, opts.Tones)
		}
		parts = append(parts, goal+".")
	case router.IntentWrite:
		what := "the requested text"
		if f, ok := formatNames[opts.Format]; ok {
			what = f
		}
		parts = append(parts, fmt.Sprintf("Write %s based on the user's request.", what))
	case router.IntentSummarize:
		parts = append(parts, summaryInstruction(opts.SummaryType))
	case router.IntentTranslate:
		lang := opts.TargetLanguage
		if lang == "" {
			lang = "en"
		}
		parts = append(parts, fmt.Sprintf("Translate the user's text into %s.", LanguageName(lang)))
	}

	if opts.Intent != router.IntentRewrite && opts.Instructions != "" {
		parts = append(parts, "Request: "+opts.Instructions)
	}
	if opts.Intent != router.IntentRewrite && len(opts.Tones) > 0 {
		names := make([]string, len(opts.Tones))
		for i, t := range opts.Tones {
			names[i] = string(t)
		}
		parts = append(parts, "Use a "+strings.Join(names, " and ")+" tone.")
	}
	switch opts.Length {
	case router.LengthShort:
		parts = append(parts, "Keep it short.")
	case router.LengthLong:
		parts = append(parts, "Be thorough and detailed.")
	}
	if opts.Intent != router.IntentPrompt && opts.Intent != "" {
		parts = append(parts, "Return only the resulting text.")
	}
	out := strings.Join(parts, " ")
	if opts.Context != "" {
		out = strings.TrimSpace(out + "\n\n" + opts.Context)
	}
	return out
}

func summaryInstruction(t router.SummaryType) string {
	switch t {
	case router.SummaryKeyPoints:
		return "Summarize the user's text as a bulleted list of its key points."
	case router.SummaryTeaser:
		return "Write a short teaser that makes the reader want to read the user's text."
	case router.SummaryHeadline:
		return "Write a single headline for the user's text."
	default:
		return "Summarize the user's text in a few sentences."
	}
}
