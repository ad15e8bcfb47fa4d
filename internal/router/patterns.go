package router

import "regexp"

// Rule pairs a tag with the pattern that detects it. Tables of rules are
// evaluated in slice order.
type Rule[T ~string] struct {
	Tag   T
	Regex *regexp.Regexp
}

func rule[T ~string](tag T, expr string) Rule[T] {
	return Rule[T]{Tag: tag, Regex: regexp.MustCompile(expr)}
}

// IntentRules is ordered most-specific first. Token sets overlap ("revise the
// email draft" has a rewrite verb and a write-ish noun), so the order is the
// only tie-break and must not change. Rewrite is last because its verbs are
// the most generic.
var IntentRules = []Rule[Intent]{
	// translate
	rule(IntentTranslate, `\btranslat(e|es|ed|ing|ion|or)\b`),
	rule(IntentTranslate, `\b(in|into)\s+(another|a\s+different|other)\s+language\b`),
	rule(IntentTranslate, `\b(say|put|convert|render)\b.*\b(in|into)\s+`+languageAlternation+`\b`),

	// summarize
	rule(IntentSummarize, `\bsummar(y|ies|ize|ise|ized|ised|izing|ising)\b`),
	rule(IntentSummarize, `\b(tl;?dr|recap|gist|condense|synopsis)\b`),
	rule(IntentSummarize, `\b(key|main)\s+(points|takeaways|ideas)\b`),
	rule(IntentSummarize, `\bsum\s+(it|this|that)\s+up\b`),

	// write
	rule(IntentWrite, `\b(write|compose|author)\b`),
	rule(IntentWrite, `^\s*(please\s+)?(draft|create|generate)\b`),
	rule(IntentWrite, `\b(draft|create|generate)\s+(me\s+|us\s+)?(a|an|the|some|my|our)\b`),
	rule(IntentWrite, `\b(reply|respond)\s+to\b`),

	// proofread
	rule(IntentProofread, `\bproof-?read(ing)?\b`),
	rule(IntentProofread, `\bspell(ing)?[\s-]?check\b`),
	rule(IntentProofread, `\b(grammar|grammatical|typos?|misspell(ed|ing|ings)?)\b`),
	rule(IntentProofread, `\b(fix|correct|check)\s+(the\s+|my\s+|any\s+)?(spelling|punctuation|mistakes|errors)\b`),

	// rewrite
	rule(IntentRewrite, `\b(rewrite|re-write|rephrase|reword|paraphrase|revise|edit|polish|refine)\b`),
	rule(IntentRewrite, `\b(improve|shorten|lengthen|simplify|tighten|clarify)\b`),
	rule(IntentRewrite, `\bmake\s+(it|this|that)\s+(more|less|sound|shorter|longer|better|clearer|simpler)\b`),
	rule(IntentRewrite, `\b(more|less)\s+(formal|casual|professional|friendly|concise)\b`),
}

// OutputRules detect the requested document type; the first match wins.
var OutputRules = []Rule[OutputType]{
	rule(OutputEmail, `\b(e-?mails?)\b`),
	rule(OutputLetter, `\b(letters?)\b`),
	rule(OutputPost, `\b(posts?|tweets?|linkedin|blog|social\s+media)\b`),
	rule(OutputDocument, `\b(documents?|docs?|reports?|memos?|proposals?|essays?|articles?)\b`),
	rule(OutputList, `\b(lists?|checklists?|bullets|bullet(ed)?(\s+points)?)\b`),
	rule(OutputScript, `\b(scripts?|speech|dialogue|screenplay)\b`),
	rule(OutputSummary, `\b(summary|summaries|abstract|synopsis)\b`),
	rule(OutputResponse, `\b(responses?|reply|replies|answer)\b`),
	rule(OutputAnnouncement, `\b(announcements?|press\s+release)\b`),
	rule(OutputTutorial, `\b(tutorials?|guide|how-to|walkthrough)\b`),
}

// ToneRules detect tones; every match is collected.
var ToneRules = []Rule[Tone]{
	rule(ToneFormal, `\b(formal|professional|polite|businesslike)\b`),
	rule(ToneCasual, `\b(casual|informal|friendly|relaxed|conversational)\b`),
	rule(TonePersuasive, `\b(persuasive|convincing|compelling|persuade)\b`),
	rule(ToneUrgent, `\b(urgent|urgently|asap|immediately|time-sensitive)\b`),
	rule(ToneDiplomatic, `\b(diplomatic|tactful|gentle|gently|soften|softer)\b`),
	rule(ToneConfident, `\b(confident|assertive|bold|decisive)\b`),
	rule(ToneEmpathetic, `\b(empathetic|empathic|compassionate|caring|supportive|warm)\b`),
}

// firstMatch returns the tag of the first rule matching s.
func firstMatch[T ~string](rules []Rule[T], s string) (T, bool) {
	for _, r := range rules {
		if r.Regex.MatchString(s) {
			return r.Tag, true
		}
	}
	var zero T
	return zero, false
}

// allMatches returns the distinct tags matching s, in table order.
func allMatches[T ~string](rules []Rule[T], s string) []T {
	var out []T
	seen := map[T]bool{}
	for _, r := range rules {
		if seen[r.Tag] {
			continue
		}
		if r.Regex.MatchString(s) {
			seen[r.Tag] = true
			out = append(out, r.Tag)
		}
	}
	return out
}
