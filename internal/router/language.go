package router

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// languageNames maps lowercase language names to BCP-47 tags.
var languageNames = map[string]language.Tag{
	"arabic":               language.Arabic,
	"bengali":              language.Bengali,
	"brazilian portuguese": language.BrazilianPortuguese,
	"bulgarian":            language.Bulgarian,
	"cantonese":            language.Make("yue"),
	"catalan":              language.Catalan,
	"chinese":              language.Chinese,
	"croatian":             language.Croatian,
	"czech":                language.Czech,
	"danish":               language.Danish,
	"dutch":                language.Dutch,
	"english":              language.English,
	"finnish":              language.Finnish,
	"french":               language.French,
	"german":               language.German,
	"greek":                language.Greek,
	"hebrew":               language.Hebrew,
	"hindi":                language.Hindi,
	"hungarian":            language.Hungarian,
	"indonesian":           language.Indonesian,
	"italian":              language.Italian,
	"japanese":             language.Japanese,
	"korean":               language.Korean,
	"malay":                language.Malay,
	"mandarin":             language.Chinese,
	"norwegian":            language.Norwegian,
	"persian":              language.Persian,
	"polish":               language.Polish,
	"portuguese":           language.Portuguese,
	"romanian":             language.Romanian,
	"russian":              language.Russian,
	"simplified chinese":   language.SimplifiedChinese,
	"spanish":              language.Spanish,
	"swahili":              language.Swahili,
	"swedish":              language.Swedish,
	"tagalog":              language.Filipino,
	"tamil":                language.Tamil,
	"thai":                 language.Thai,
	"traditional chinese":  language.TraditionalChinese,
	"turkish":              language.Turkish,
	"ukrainian":            language.Ukrainian,
	"urdu":                 language.Urdu,
	"vietnamese":           language.Vietnamese,
}

// languageAlternation is a regexp group matching any known language name.
// Longer names come first so "simplified chinese" wins over "chinese".
var languageAlternation = func() string {
	names := make([]string, 0, len(languageNames))
	for n := range languageNames {
		names = append(names, regexp.QuoteMeta(n))
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return "(" + strings.ReplaceAll(strings.Join(names, "|"), " ", `\s+`) + ")"
}()

var (
	targetPhraseRe = regexp.MustCompile(`\b(?:to|into)\s+` + languageAlternation + `\b`)
	inPhraseRe     = regexp.MustCompile(`\bin\s+` + languageAlternation + `\b`)
	anyLanguageRe  = regexp.MustCompile(`\b` + languageAlternation + `\b`)
	spaceRunRe     = regexp.MustCompile(`\s+`)
)

// ExtractTargetLanguage returns the BCP-47 code of the language a request
// asks to translate into, or "" when none is named. A "to/into <language>"
// phrase wins; "in <language>" often names the source ("written in French")
// and only counts when no such phrase exists, then a bare mention.
func ExtractTargetLanguage(s string) string {
	s = strings.ToLower(s)
	for _, re := range []*regexp.Regexp{targetPhraseRe, inPhraseRe} {
		if m := re.FindStringSubmatch(s); m != nil {
			return lookupLanguage(m[1])
		}
	}
	if m := anyLanguageRe.FindStringSubmatch(s); m != nil {
		return lookupLanguage(m[1])
	}
	return ""
}

func lookupLanguage(name string) string {
	tag, ok := languageNames[spaceRunRe.ReplaceAllString(name, " ")]
	if !ok {
		return ""
	}
	return tag.String()
}
