package memory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/rcliao/text-assist/internal/model"
)

// entriesSchema describes the snapshot and export format: a JSON array of
// entries.
const entriesSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "query", "content", "timestamp"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"query": {"type": "string", "pattern": "\\S"},
			"content": {"type": "string", "pattern": "\\S"},
			"isSummarized": {"type": "boolean"},
			"originalContentLength": {"type": "integer", "minimum": 0},
			"timestamp": {"type": "string", "minLength": 1},
			"metadata": {
				"type": "object",
				"additionalProperties": {"type": "string"}
			}
		}
	}
}`

var entriesValidator = jsonschema.MustCompileString("entries.schema.json", entriesSchema)

// decodeEntries validates data against entriesSchema and decodes it.
func decodeEntries(data []byte) ([]model.Entry, error) {
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := entriesValidator.Validate(raw); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	var entries []model.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	for i := range entries {
		if entries[i].OriginalContentLength == 0 {
			entries[i].OriginalContentLength = utf8.RuneCountInString(entries[i].Content)
		}
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	return entries, nil
}
