package fuzzy

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBadIndex signals a serialized index that cannot be parsed or fails
// shape validation.
var ErrBadIndex = errors.New("fuzzy: malformed index")

// Field holds the precomputed matching view of one record field: the
// normalized text and its tokens. Building these once at index time lets a
// matcher restored from a serialized index skip re-tokenizing the corpus.
type Field struct {
	Text   string   `json:"text"`
	Tokens []string `json:"tokens"`
}

// Entry maps an indexed key to its field view for one record. Entries keep
// the insertion order of the records they were built from; the matcher
// relies on that order for stable tie-breaking.
type Entry map[string]Field

// Index is the serializable search structure. It stores only the keyed
// fields of each record, never the full records.
type Index struct {
	Keys    []string `json:"keys"`
	Records []Entry  `json:"records"`
}

// CreateIndex builds an index over the given keys from a sequence of
// key-to-value records.
func CreateIndex(keys []string, records []map[string]string) *Index {
	idx := &Index{
		Keys:    keys,
		Records: make([]Entry, 0, len(records)),
	}
	for _, rec := range records {
		entry := make(Entry, len(keys))
		for _, k := range keys {
			text := Normalize(rec[k])
			entry[k] = Field{Text: text, Tokens: Tokenize(text)}
		}
		idx.Records = append(idx.Records, entry)
	}
	return idx
}

// Marshal serializes the index as JSON.
func (x *Index) Marshal() ([]byte, error) {
	data, err := json.Marshal(x)
	if err != nil {
		return nil, fmt.Errorf("marshal index: %w", err)
	}
	return data, nil
}

// ParseIndex restores a serialized index and validates its shape.
func ParseIndex(data []byte) (*Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadIndex, err)
	}
	if len(idx.Keys) == 0 {
		return nil, fmt.Errorf("%w: no keys", ErrBadIndex)
	}
	for i, entry := range idx.Records {
		for _, k := range idx.Keys {
			if _, ok := entry[k]; !ok {
				return nil, fmt.Errorf("%w: record %d missing key %q", ErrBadIndex, i, k)
			}
		}
	}
	return &idx, nil
}

// Len returns the number of indexed records.
func (x *Index) Len() int {
	return len(x.Records)
}
