package memory

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rcliao/text-assist/internal/model"
)

// ErrInvalidImport is returned when import data is not a valid entry array.
var ErrInvalidImport = errors.New("invalid import")

// Export returns all entries as an indented JSON array, oldest first.
func (s *Store) Export() ([]byte, error) {
	data, err := json.MarshalIndent(s.Entries(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return data, nil
}

// Import replaces the store with the entries in data and returns how many
// were kept. Only the newest MaxItems entries are kept. On any error the
// store is left untouched.
func (s *Store) Import(data []byte) (int, error) {
	entries, err := decodeEntries(data)
	if err != nil {
		s.metrics.RecordMemoryOp("import", "error")
		return 0, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			s.metrics.RecordMemoryOp("import", "error")
			return 0, fmt.Errorf("%w: duplicate id %s", ErrInvalidImport, e.ID)
		}
		seen[e.ID] = true
	}
	if over := len(entries) - s.opts.MaxItems; over > 0 {
		entries = entries[over:]
	}

	s.mu.Lock()
	s.entries = append([]model.Entry{}, entries...)
	s.persistLocked()
	s.mu.Unlock()

	s.metrics.RecordMemoryOp("import", "ok")
	s.metrics.SetMemoryEntries(len(entries))
	return len(entries), nil
}
