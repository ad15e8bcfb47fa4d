// Package model defines the core memory data types.
package model

import "time"

// Entry is one remembered interaction: the user's request and the text that
// was produced for it.
//
// Content is always the text usable as context, summarized or not.
// OriginalContentLength is the character count before any summarization and
// equals the length of Content when IsSummarized is false.
type Entry struct {
	ID                    string            `json:"id"`
	Query                 string            `json:"query"`
	Content               string            `json:"content"`
	IsSummarized          bool              `json:"isSummarized"`
	OriginalContentLength int               `json:"originalContentLength"`
	Timestamp             time.Time         `json:"timestamp"`
	Metadata              map[string]string `json:"metadata,omitempty"`
}

// Well-known metadata keys written by the orchestrator.
const (
	MetaIntent         = "intent"
	MetaFormat         = "format"
	MetaTone           = "tone"
	MetaTargetLanguage = "target_language"
	MetaVia            = "via"
)

// RetrievalType tells how an entry was selected for a query.
type RetrievalType string

const (
	RetrievalChronological RetrievalType = "chronological"
	RetrievalSemantic      RetrievalType = "semantic"
)

// Retrieved wraps an entry with how and how well it matched.
type Retrieved struct {
	Entry
	RetrievalType RetrievalType `json:"retrievalType"`
	Score         float64       `json:"score,omitempty"`
}

// Stats holds aggregate counters over the memory store. CompressionRatio is
// summarized content length over original length, counting only summarized
// entries; 0 means no entry was summarized.
type Stats struct {
	TotalEntries     int            `json:"total_entries"`
	SummarizedCount  int            `json:"summarized_count"`
	Intents          map[string]int `json:"intents"`
	CompressionRatio float64        `json:"compression_ratio"`
	MaxItems         int            `json:"max_items"`
	Oldest           *time.Time     `json:"oldest,omitempty"`
	Newest           *time.Time     `json:"newest,omitempty"`
}
