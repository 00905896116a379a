package output

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"addizionali/internal/model"
)

// EncodeJSON writes ds as an indented JSON object sorted by key. Non-ASCII
// characters are written literally.
func EncodeJSON(w io.Writer, ds model.Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// DecodeJSON reads a document written by EncodeJSON. Entries that do not
// decode or validate are returned as EntryErrors and left out of the dataset.
func DecodeJSON(r io.Reader) (model.Dataset, []EntryError, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("decode json: %w", err)
	}

	ds := make(model.Dataset, len(raw))
	var bad []EntryError
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		var entry model.Entry
		if err := json.Unmarshal(raw[key], &entry); err != nil {
			bad = append(bad, EntryError{Key: key, Err: err})
			continue
		}
		if entry.ID == "" {
			entry.ID = key
		}
		if entry.ID != key {
			bad = append(bad, EntryError{Key: key, Err: fmt.Errorf("id %q does not match key", entry.ID)})
			continue
		}
		if err := entry.Validate(); err != nil {
			bad = append(bad, EntryError{Key: key, Err: err})
			continue
		}
		ds[key] = entry
	}
	return ds, bad, nil
}
