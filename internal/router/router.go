package router

import "strings"

// Route classifies input. It never fails: empty or unmatched input routes to
// IntentRewrite with FallbackScore.
func Route(input string) Result {
	s := strings.ToLower(strings.TrimSpace(input))

	res := Result{
		Intent: IntentRewrite,
		Score:  FallbackScore,
		Via:    ViaFallback,
		Tones:  []Tone{},
	}
	if s == "" {
		return res
	}

	if in, ok := firstMatch(IntentRules, s); ok {
		res.Intent = in
		res.Score = PatternScore
		res.Via = ViaPatterns
	}
	if ot, ok := firstMatch(OutputRules, s); ok {
		res.OutputType = ot
	}
	if tones := allMatches(ToneRules, s); len(tones) > 0 {
		res.Tones = tones
	}
	if res.Intent == IntentTranslate {
		res.TargetLanguage = ExtractTargetLanguage(s)
	}
	return res
}

// RouteAs classifies input with a caller-chosen intent. Output type, tones
// and target language are still derived from the text.
func RouteAs(input string, intent Intent) Result {
	res := Route(input)
	res.Intent = intent
	res.Score = ExplicitScore
	res.Via = ViaExplicit
	res.TargetLanguage = ""
	if intent == IntentTranslate {
		res.TargetLanguage = ExtractTargetLanguage(input)
	}
	return res
}
