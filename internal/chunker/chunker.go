// Package chunker splits plain text into pieces small enough to send to a
// generation backend in one call.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	DefaultTargetSize = 1500
	DefaultMaxSize    = 2000
)

// Options configures chunking. Sizes are in characters.
type Options struct {
	TargetSize int
	MaxSize    int
}

// DefaultOptions returns default chunking options.
func DefaultOptions() Options {
	return Options{
		TargetSize: DefaultTargetSize,
		MaxSize:    DefaultMaxSize,
	}
}

// Split breaks text into chunks of roughly TargetSize characters. Text of at
// most MaxSize characters is returned as a single chunk. Paragraph breaks are
// preferred over sentence breaks, which are preferred over word breaks.
func Split(text string, opts Options) []string {
	if opts.TargetSize <= 0 || opts.MaxSize <= 0 {
		opts = DefaultOptions()
	}
	if opts.MaxSize < opts.TargetSize {
		opts.MaxSize = opts.TargetSize
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if size(text) <= opts.MaxSize {
		return []string{text}
	}

	var pieces []string
	for _, p := range paragraphs(text) {
		if size(p) <= opts.TargetSize {
			pieces = append(pieces, p)
			continue
		}
		for _, s := range sentences(p) {
			if size(s) <= opts.MaxSize {
				pieces = append(pieces, s)
				continue
			}
			pieces = append(pieces, hardSplit(s, opts.TargetSize)...)
		}
	}
	return merge(pieces, opts.TargetSize)
}

func size(s string) int { return utf8.RuneCountInString(s) }

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

func paragraphs(text string) []string {
	var out []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// sentenceEnd matches terminal punctuation followed by whitespace.
var sentenceEnd = regexp.MustCompile(`[.!?。！？]+["')\]]*\s+`)

func sentences(p string) []string {
	var out []string
	last := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(p, -1) {
		if s := strings.TrimSpace(p[last:loc[1]]); s != "" {
			out = append(out, s)
		}
		last = loc[1]
	}
	if s := strings.TrimSpace(p[last:]); s != "" {
		out = append(out, s)
	}
	return out
}

// hardSplit breaks a run without sentence boundaries on word boundaries,
// and mid-word only when a single word exceeds target.
func hardSplit(s string, target int) []string {
	var out []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
			curLen = 0
		}
	}
	for _, w := range strings.Fields(s) {
		for size(w) > target {
			flush()
			r := []rune(w)
			out = append(out, string(r[:target]))
			w = string(r[target:])
		}
		wl := size(w)
		if curLen > 0 && curLen+1+wl > target {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += wl
	}
	flush()
	return out
}

// merge joins consecutive pieces while the result stays within target.
func merge(pieces []string, target int) []string {
	var out []string
	var accum string
	for _, p := range pieces {
		if accum == "" {
			accum = p
			continue
		}
		if size(accum)+2+size(p) <= target {
			accum += "\n\n" + p
			continue
		}
		out = append(out, accum)
		accum = p
	}
	if accum != "" {
		out = append(out, accum)
	}
	return out
}
