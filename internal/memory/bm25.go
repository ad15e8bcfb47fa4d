package memory

import (
	"math"

	"github.com/rcliao/text-assist/internal/model"
)

// BM25 parameters.
const (
	BM25K1 = 1.5
	BM25B  = 0.75
)

// Corpus holds the term statistics BM25 needs. It is rebuilt from the whole
// store on every retrieval, so scores are relative to current contents.
type Corpus struct {
	Docs      int
	AvgDocLen float64
	DocFreq   map[string]int
}

// document returns the indexed text of an entry: its query and content.
func document(e model.Entry) []string {
	return Tokenize(e.Query + " " + e.Content)
}

// NewCorpus computes statistics over the tokenized documents.
func NewCorpus(docs [][]string) Corpus {
	c := Corpus{Docs: len(docs), DocFreq: map[string]int{}}
	total := 0
	for _, d := range docs {
		total += len(d)
		seen := map[string]bool{}
		for _, t := range d {
			if !seen[t] {
				seen[t] = true
				c.DocFreq[t]++
			}
		}
	}
	if len(docs) > 0 {
		c.AvgDocLen = float64(total) / float64(len(docs))
	}
	return c
}

// CorpusOf builds a Corpus from entries.
func CorpusOf(entries []model.Entry) Corpus {
	docs := make([][]string, len(entries))
	for i, e := range entries {
		docs[i] = document(e)
	}
	return NewCorpus(docs)
}

// IDF is the BM25 inverse document frequency, floored at zero by the +1.
func (c Corpus) IDF(term string) float64 {
	n := float64(c.Docs)
	df := float64(c.DocFreq[term])
	return math.Log(1 + (n-df+0.5)/(df+0.5))
}

// Score returns the BM25 score of doc for the query terms. Repeated query
// terms count once. A doc sharing no term with the query scores exactly 0.
func (c Corpus) Score(query, doc []string) float64 {
	if len(query) == 0 || len(doc) == 0 {
		return 0
	}
	tf := map[string]int{}
	for _, t := range doc {
		tf[t]++
	}
	avg := c.AvgDocLen
	if avg == 0 {
		avg = float64(len(doc))
	}
	norm := BM25K1 * (1 - BM25B + BM25B*float64(len(doc))/avg)

	score := 0.0
	seen := map[string]bool{}
	for _, q := range query {
		if seen[q] {
			continue
		}
		seen[q] = true
		f := float64(tf[q])
		if f == 0 {
			continue
		}
		score += c.IDF(q) * f * (BM25K1 + 1) / (f + norm)
	}
	return score
}

// ScoreEntry scores e against a raw query string.
func (c Corpus) ScoreEntry(query string, e model.Entry) float64 {
	return c.Score(Tokenize(query), document(e))
}
