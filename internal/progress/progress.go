// internal/progress/progress.go
//
// Date-scoped, version-tagged progress persistence.
//
// Two records live in the KV store, both keyed to the current calendar day:
//   - the puzzle assignment (pattern, index, thresholds), and
//   - the found-word list.
//
// A stored record counts only if its date equals today's reference-zone day
// string and its version equals the current schema tag. Absent, malformed,
// date-mismatched and version-mismatched records are all the same miss:
// discarded wholesale and recomputed, never partially trusted or merged.

package progress

import (
	"context"
	"encoding/json"

	"github.com/shadowgrams/go-server/internal/store"
	"github.com/shadowgrams/go-server/internal/tier"
	"github.com/shadowgrams/go-server/internal/tiles"
)

// SchemaVersion tags persisted assignment records; bumping it invalidates
// every installation's cache on next load.
const SchemaVersion = "server-v1"

// Storage keys carried over from the original client.
const (
	stateKey      = "shadowgrams_current_pattern"
	foundWordsKey = "shadowgrams_found_words"
)

// State is the persisted daily assignment for one installation.
type State struct {
	Version        string          `json:"version"`
	Date           string          `json:"date"`
	Pattern        tiles.Pattern   `json:"pattern"`
	PuzzleIndex    int             `json:"puzzleIndex"` // 1-indexed
	WordCount      int             `json:"wordCount"`
	Thresholds     tier.Thresholds `json:"thresholds"`
	BestModalShown bool            `json:"bestModalShown"`
}

// foundRecord is the persisted found-word list, scoped to its date.
type foundRecord struct {
	Date  string   `json:"date"`
	Words []string `json:"words"`
}

// Store reads and writes progress records through a KV backend.
type Store struct {
	kv      store.KV
	version string
}

// NewStore returns a Store tagged with the current schema version.
func NewStore(kv store.KV) *Store {
	return &Store{kv: kv, version: SchemaVersion}
}

// Load returns the stored assignment if it is fresh for today. ok is false
// on any miss; I/O and decode failures are treated as misses, never
// surfaced as errors.
func (s *Store) Load(ctx context.Context, today string) (*State, bool) {
	raw, ok, err := s.kv.Get(ctx, stateKey)
	if err != nil || !ok {
		return nil, false
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, false
	}
	if st.Version != s.version || st.Date != today {
		return nil, false
	}
	if len(st.Pattern) == 0 || st.WordCount <= 0 || st.PuzzleIndex <= 0 {
		return nil, false
	}
	return &st, true
}

// Save overwrites the single live assignment record. The record is
// marshaled first and written with one Set, so a later Load observes it
// all-or-nothing.
func (s *Store) Save(ctx context.Context, st *State) error {
	st.Version = s.version
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, stateKey, raw)
}

// LoadFoundWords returns the found-word list stored for today, or nil on
// any miss. A list stored under a different date is ignored: a new day
// starts with zero found words.
func (s *Store) LoadFoundWords(ctx context.Context, today string) []string {
	raw, ok, err := s.kv.Get(ctx, foundWordsKey)
	if err != nil || !ok {
		return nil
	}
	var rec foundRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil
	}
	if rec.Date != today {
		return nil
	}
	return rec.Words
}

// SaveFoundWords overwrites the found-word list for date.
func (s *Store) SaveFoundWords(ctx context.Context, date string, found []string) error {
	raw, err := json.Marshal(foundRecord{Date: date, Words: found})
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, foundWordsKey, raw)
}
