package memory

import "github.com/rcliao/text-assist/internal/model"

// Stats returns aggregate counters over the current entries.
// CompressionRatio covers summarized entries only: their stored characters
// over their original characters. It is 0 when nothing was summarized.
func (s *Store) Stats() model.Stats {
	entries := s.Entries()
	st := model.Stats{
		TotalEntries: len(entries),
		Intents:      map[string]int{},
		MaxItems:     s.opts.MaxItems,
	}
	if len(entries) == 0 {
		return st
	}

	stored, original := 0, 0
	for _, e := range entries {
		if e.IsSummarized {
			st.SummarizedCount++
			stored += runeLen(e.Content)
			original += e.OriginalContentLength
		}
		if in := e.Metadata[model.MetaIntent]; in != "" {
			st.Intents[in]++
		}
	}
	if original > 0 {
		st.CompressionRatio = float64(stored) / float64(original)
	}

	oldest, newest := entries[0].Timestamp, entries[0].Timestamp
	for _, e := range entries[1:] {
		if e.Timestamp.Before(oldest) {
			oldest = e.Timestamp
		}
		if e.Timestamp.After(newest) {
			newest = e.Timestamp
		}
	}
	st.Oldest, st.Newest = &oldest, &newest
	return st
}
