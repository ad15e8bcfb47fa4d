// Package memory keeps a bounded history of past interactions and retrieves
// the entries most relevant to a new request, by recency or by BM25.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/text-assist/internal/kv"
	"github.com/rcliao/text-assist/internal/model"
	"github.com/rcliao/text-assist/internal/telemetry"
)

// ErrInvalidInput is returned for empty queries or content.
var ErrInvalidInput = errors.New("invalid input")

// Summarizer condenses long content before it is stored.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Options configures a Store.
type Options struct {
	MaxItems           int
	SummarizeThreshold int
	StorageKey         string
	SummarizeTimeout   time.Duration
	DefaultTopK        int
	PersistTimeout     time.Duration
}

// DefaultOptions returns the stock limits.
func DefaultOptions() Options {
	return Options{
		MaxItems:           50,
		SummarizeThreshold: 500,
		StorageKey:         "conversationMemory",
		SummarizeTimeout:   30 * time.Second,
		DefaultTopK:        3,
		PersistTimeout:     10 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxItems <= 0 {
		o.MaxItems = d.MaxItems
	}
	if o.SummarizeThreshold <= 0 {
		o.SummarizeThreshold = d.SummarizeThreshold
	}
	if o.StorageKey == "" {
		o.StorageKey = d.StorageKey
	}
	if o.SummarizeTimeout <= 0 {
		o.SummarizeTimeout = d.SummarizeTimeout
	}
	if o.DefaultTopK <= 0 {
		o.DefaultTopK = d.DefaultTopK
	}
	if o.PersistTimeout <= 0 {
		o.PersistTimeout = d.PersistTimeout
	}
	return o
}

// Config holds the collaborators of a Store. KV and Summarizer may be nil:
// without KV nothing is persisted, without Summarizer long content is kept
// as is.
type Config struct {
	KV         kv.Store
	Summarizer Summarizer
	Options    Options
	Logger     *slog.Logger
	Metrics    *telemetry.Metrics
}

// Store is the bounded, insertion-ordered memory. It is the only owner of
// its entries; the KV snapshot is a mirror rewritten after every mutation.
type Store struct {
	mu      sync.Mutex
	entries []model.Entry
	entropy *rand.Rand
	seq     uint64

	kv         kv.Store
	summarizer Summarizer
	opts       Options
	log        *slog.Logger
	metrics    *telemetry.Metrics
	now        func() time.Time

	persistMu sync.Mutex
	written   uint64
	pending   sync.WaitGroup
}

// NewStore creates a Store and loads the previous snapshot from cfg.KV.
// A corrupted snapshot is discarded; only a failing KV read is an error.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		entries:    []model.Entry{},
		entropy:    rand.New(rand.NewSource(time.Now().UnixNano())),
		kv:         cfg.KV,
		summarizer: cfg.Summarizer,
		opts:       cfg.Options.withDefaults(),
		log:        log.With("component", "memory"),
		metrics:    cfg.Metrics,
		now:        time.Now,
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	s.metrics.SetMemoryEntries(len(s.entries))
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	data, err := s.kv.Get(ctx, s.opts.StorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load memory snapshot: %w", err)
	}
	entries, err := decodeEntries(data)
	if err != nil {
		s.log.Warn("discarding corrupted memory snapshot", "key", s.opts.StorageKey, "err", err)
		return nil
	}
	if len(entries) > s.opts.MaxItems {
		entries = entries[len(entries)-s.opts.MaxItems:]
	}
	s.entries = entries
	s.log.Debug("memory loaded", "entries", len(entries))
	return nil
}

// Options returns the effective options.
func (s *Store) Options() Options { return s.opts }

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String()
}

// AddConversation stores one exchange and returns the created entry.
// Content longer than SummarizeThreshold characters is summarized first; if
// summarization fails the original content is kept. Persistence runs in the
// background and its failures are only logged.
func (s *Store) AddConversation(ctx context.Context, query, content string, metadata map[string]string) (model.Entry, error) {
	if strings.TrimSpace(query) == "" {
		return model.Entry{}, fmt.Errorf("%w: query is empty", ErrInvalidInput)
	}
	if strings.TrimSpace(content) == "" {
		return model.Entry{}, fmt.Errorf("%w: content is empty", ErrInvalidInput)
	}

	original := utf8.RuneCountInString(content)
	stored, summarized := content, false
	if original > s.opts.SummarizeThreshold && s.summarizer != nil {
		stored, summarized = s.summarize(ctx, content)
	}

	var meta map[string]string
	if len(metadata) > 0 {
		meta = make(map[string]string, len(metadata))
		for k, v := range metadata {
			meta[k] = v
		}
	}

	s.mu.Lock()
	e := model.Entry{
		ID:                    s.newID(),
		Query:                 query,
		Content:               stored,
		IsSummarized:          summarized,
		OriginalContentLength: original,
		Timestamp:             s.now().UTC(),
		Metadata:              meta,
	}
	s.entries = append(s.entries, e)
	if over := len(s.entries) - s.opts.MaxItems; over > 0 {
		s.log.Debug("evicting oldest entries", "count", over)
		s.entries = append([]model.Entry(nil), s.entries[over:]...)
	}
	n := len(s.entries)
	s.persistLocked()
	s.mu.Unlock()

	s.metrics.RecordMemoryOp("add", "ok")
	s.metrics.SetMemoryEntries(n)
	return e, nil
}

func (s *Store) summarize(ctx context.Context, content string) (string, bool) {
	sctx, cancel := context.WithTimeout(ctx, s.opts.SummarizeTimeout)
	defer cancel()

	out, err := s.summarizer.Summarize(sctx, content)
	if err == nil && strings.TrimSpace(out) == "" {
		err = errors.New("empty summary")
	}
	if err != nil {
		s.log.Warn("summarization failed, storing original content", "err", err)
		s.metrics.RecordMemoryOp("summarize", "error")
		return content, false
	}
	s.metrics.RecordMemoryOp("summarize", "ok")
	if out == content {
		return content, false
	}
	return out, true
}

// persistLocked writes a snapshot of the current entries in the background.
// Writes are serialized; a snapshot older than one already written is
// dropped. Callers hold s.mu.
func (s *Store) persistLocked() {
	if s.kv == nil {
		return
	}
	s.seq++
	seq := s.seq
	data, err := json.Marshal(s.entries)
	if err != nil {
		s.log.Error("encode memory snapshot", "err", err)
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.persistMu.Lock()
		defer s.persistMu.Unlock()
		if seq <= s.written {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.PersistTimeout)
		defer cancel()
		if err := s.kv.Set(ctx, s.opts.StorageKey, data); err != nil {
			s.log.Error("persist memory snapshot", "key", s.opts.StorageKey, "err", err)
			s.metrics.RecordMemoryOp("persist", "error")
			return
		}
		s.written = seq
		s.metrics.RecordMemoryOp("persist", "ok")
	}()
}

// Flush blocks until every scheduled snapshot write has finished.
func (s *Store) Flush() {
	s.pending.Wait()
}

// Close flushes pending writes. The KV store is owned by the caller.
func (s *Store) Close() error {
	s.Flush()
	return nil
}

// Retrieve returns up to topK entries for query. Queries with temporal cues
// get the newest entries, newest first. Others are ranked by BM25 over the
// current store, highest score first. A semantic result only holds entries
// with a positive score, so it is shorter than topK when fewer entries share
// a term with the query, and empty when none do.
func (s *Store) Retrieve(query string, topK int) []model.Retrieved {
	if topK <= 0 {
		topK = s.opts.DefaultTopK
	}
	entries := s.Entries()
	if len(entries) == 0 {
		return []model.Retrieved{}
	}

	if DetectChronologicalQuery(query) {
		s.metrics.RecordRetrieval(string(model.RetrievalChronological))
		out := make([]model.Retrieved, 0, topK)
		for i := len(entries) - 1; i >= 0 && len(out) < topK; i-- {
			out = append(out, model.Retrieved{Entry: entries[i], RetrievalType: model.RetrievalChronological})
		}
		return out
	}

	s.metrics.RecordRetrieval(string(model.RetrievalSemantic))
	corpus := CorpusOf(entries)
	terms := Tokenize(query)
	out := make([]model.Retrieved, 0, len(entries))
	for _, e := range entries {
		score := corpus.Score(terms, document(e))
		if score <= 0 {
			continue
		}
		out = append(out, model.Retrieved{Entry: e, RetrievalType: model.RetrievalSemantic, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > topK {
		out = out[:topK]
	}
	return out
}

// Clear removes every entry and persists the empty store.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = []model.Entry{}
	s.persistLocked()
	s.mu.Unlock()
	s.metrics.RecordMemoryOp("clear", "ok")
	s.metrics.SetMemoryEntries(0)
}

// Delete removes the entry with id and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	idx := -1
	for i, e := range s.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		s.metrics.RecordMemoryOp("delete", "not_found")
		return false
	}
	s.entries = append(s.entries[:idx:idx], s.entries[idx+1:]...)
	n := len(s.entries)
	s.persistLocked()
	s.mu.Unlock()

	s.metrics.RecordMemoryOp("delete", "ok")
	s.metrics.SetMemoryEntries(n)
	return true
}

// Get returns the entry with id.
func (s *Store) Get(id string) (model.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return model.Entry{}, false
}

// Entries returns a copy of all entries, oldest first.
func (s *Store) Entries() []model.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
