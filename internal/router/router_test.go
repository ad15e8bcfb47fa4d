package router

import (
	"reflect"
	"testing"
)

func TestRoute_Intents(t *testing.T) {
	tests := []struct {
		input string
		want  Intent
	}{
		{"translate this to Spanish", IntentTranslate},
		{"say good morning in Japanese", IntentTranslate},
		{"summarize this article", IntentSummarize},
		{"give me the TL;DR", IntentSummarize},
		{"write an email to my landlord", IntentWrite},
		{"Draft a LinkedIn post about our launch", IntentWrite},
		{"reply to this message", IntentWrite},
		{"proofread this email draft", IntentProofread},
		{"check the grammar please", IntentProofread},
		{"fix the spelling", IntentProofread},
		{"rephrase this paragraph", IntentRewrite},
		{"make it more concise", IntentRewrite},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Route(tt.input)
			if got.Intent != tt.want {
				t.Fatalf("Route(%q).Intent = %q, want %q", tt.input, got.Intent, tt.want)
			}
			if got.Via != ViaPatterns || got.Score != PatternScore {
				t.Errorf("via=%q score=%v, want patterns/%v", got.Via, got.Score, PatternScore)
			}
		})
	}
}

func TestRoute_PriorityProofreadOverRewrite(t *testing.T) {
	got := Route("proofread this email draft")
	if got.Intent != IntentProofread {
		t.Errorf("intent = %q, want proofread", got.Intent)
	}
	if got.OutputType != OutputEmail {
		t.Errorf("outputType = %q, want email", got.OutputType)
	}
}

func TestRoute_Fallback(t *testing.T) {
	for _, in := range []string{"", "   ", "hmm", "do something with this"} {
		got := Route(in)
		if got.Intent != IntentRewrite {
			t.Errorf("Route(%q).Intent = %q, want rewrite", in, got.Intent)
		}
		if got.Score != FallbackScore || got.Via != ViaFallback {
			t.Errorf("Route(%q) score=%v via=%q, want %v/fallback", in, got.Score, got.Via, FallbackScore)
		}
		if got.Tones == nil {
			t.Errorf("Route(%q).Tones is nil, want empty", in)
		}
	}
}

func TestRoute_OutputTypeIgnoresCaseAndPunctuation(t *testing.T) {
	for _, in := range []string{
		"revise the email",
		"Revise the EMAIL!!!",
		"(email) revise it.",
		"rewrite this, as an Email?",
	} {
		if got := Route(in).OutputType; got != OutputEmail {
			t.Errorf("Route(%q).OutputType = %q, want email", in, got)
		}
	}
}

func TestRoute_OutputTypes(t *testing.T) {
	tests := map[string]OutputType{
		"write a cover letter":            OutputLetter,
		"write a tweet":                   OutputPost,
		"write a report on sales":         OutputDocument,
		"write a checklist for moving":    OutputList,
		"write a speech for the wedding":  OutputScript,
		"write an announcement":           OutputAnnouncement,
		"write a tutorial on git rebase":  OutputTutorial,
		"write a response to this review": OutputResponse,
		"rewrite this paragraph":          "",
	}
	for in, want := range tests {
		if got := Route(in).OutputType; got != want {
			t.Errorf("Route(%q).OutputType = %q, want %q", in, got, want)
		}
	}
}

func TestRoute_CollectsAllTones(t *testing.T) {
	got := Route("write an urgent but polite email, be empathetic")
	want := []Tone{ToneFormal, ToneUrgent, ToneEmpathetic}
	if !reflect.DeepEqual(got.Tones, want) {
		t.Errorf("tones = %v, want %v", got.Tones, want)
	}
	if !got.HasTone(ToneUrgent) || got.HasTone(ToneCasual) {
		t.Errorf("HasTone mismatch for %v", got.Tones)
	}
}

func TestRoute_TargetLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"translate this to Spanish", "es"},
		{"Translate into simplified Chinese", "zh-Hans"},
		{"translate this French paragraph to German", "de"},
		{"translate to brazilian portuguese", "pt-BR"},
		{"translate this email written in French into Spanish", "es"},
		{"translate this paragraph in German to English", "en"},
		{"Translate the text in Japanese to Korean", "ko"},
		{"translate the greeting in Japanese", "ja"},
		{"translate this Italian menu", "it"},
		{"translate this", ""},
		{"write an email", ""},
		{"write a letter in Spanish", ""},
	}
	for _, tt := range tests {
		if got := Route(tt.input).TargetLanguage; got != tt.want {
			t.Errorf("Route(%q).TargetLanguage = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRoute_Deterministic(t *testing.T) {
	inputs := []string{
		"write a formal email to the team",
		"translate into french",
		"summarize the key points briefly",
		"",
	}
	for _, in := range inputs {
		a, b := Route(in), Route(in)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Route(%q) not deterministic: %+v vs %+v", in, a, b)
		}
	}
}

func TestRouteAs(t *testing.T) {
	got := RouteAs("please handle this to French", IntentTranslate)
	if got.Intent != IntentTranslate || got.Via != ViaExplicit || got.Score != ExplicitScore {
		t.Errorf("got %+v", got)
	}
	if got.TargetLanguage != "fr" {
		t.Errorf("targetLanguage = %q, want fr", got.TargetLanguage)
	}

	got = RouteAs("translate to french", IntentPrompt)
	if got.TargetLanguage != "" {
		t.Errorf("prompt override kept targetLanguage %q", got.TargetLanguage)
	}
}

func TestParseIntent(t *testing.T) {
	for _, in := range Intents {
		got, ok := ParseIntent(" " + string(in) + " ")
		if !ok || got != in {
			t.Errorf("ParseIntent(%q) = %q, %v", in, got, ok)
		}
	}
	if got, ok := ParseIntent("OTHER"); !ok || got != IntentPrompt {
		t.Errorf("ParseIntent(other) = %q, %v", got, ok)
	}
	if _, ok := ParseIntent("dance"); ok {
		t.Error("ParseIntent(dance) should fail")
	}
}

func TestNormalize_Variants(t *testing.T) {
	tests := []struct {
		instruction string
		want        Request
	}{
		{"proofread this", ProofreadRequest{Text: "body"}},
		{"translate this to Spanish", TranslateRequest{Text: "body", TargetLanguage: "es"}},
		{"write a short formal email", WriteRequest{Text: "body", Format: OutputEmail, Tones: []Tone{ToneFormal}, Length: LengthShort}},
		{"summarize the key points", SummarizeRequest{Text: "body", SummaryType: SummaryKeyPoints, Length: LengthMedium}},
		{"give me a headline summary", SummarizeRequest{Text: "body", SummaryType: SummaryHeadline, Length: LengthMedium}},
		{"summarize in detailed form", SummarizeRequest{Text: "body", SummaryType: SummaryTLDR, Length: LengthLong}},
		{"rewrite as a formal email", RewriteRequest{Text: "body", Goal: "Rewrite as a professional email in a formal tone", Format: OutputEmail, Tones: []Tone{ToneFormal}}},
	}
	for _, tt := range tests {
		t.Run(tt.instruction, func(t *testing.T) {
			got := Normalize(Route(tt.instruction), tt.instruction, "body")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
			if got.Intent() != tt.want.Intent() {
				t.Errorf("Intent() = %q", got.Intent())
			}
		})
	}
}

func TestNormalize_TextDefaultsToInstruction(t *testing.T) {
	got := Normalize(RouteAs("tell me a joke", IntentPrompt), "tell me a joke", "  ")
	if got != (PromptRequest{Text: "tell me a joke"}) {
		t.Errorf("got %#v", got)
	}
}

func TestGoal(t *testing.T) {
	tests := []struct {
		format OutputType
		tones  []Tone
		want   string
	}{
		{OutputEmail, []Tone{ToneFormal}, "Rewrite as a professional email in a formal tone"},
		{OutputAnnouncement, nil, "Rewrite as an announcement"},
		{"", []Tone{ToneCasual, ToneConfident}, "Rewrite in a casual and confident tone"},
		{"", nil, "Rewrite to improve clarity and flow"},
	}
	for _, tt := range tests {
		if got := Goal(tt.format, tt.tones); got != tt.want {
			t.Errorf("Goal(%q, %v) = %q, want %q", tt.format, tt.tones, got, tt.want)
		}
	}
}
