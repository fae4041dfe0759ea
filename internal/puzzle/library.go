// internal/puzzle/library.go
//
// Puzzle library: the ordered pattern rotation plus per-pattern metadata
// (solution-set size and score-tier thresholds), loaded once at startup.
//
// Data sources:
//   - PUZZLE_PATTERNS_FILE / PUZZLE_DATA_FILE env paths, or
//   - the embedded defaults in the assets package.
//
// Shapes are validated here, at the load boundary: pattern lengths, tile
// class ids, threshold ordering, and library/metadata parity. Downstream
// code trusts a loaded Library.

package puzzle

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shadowgrams/go-server/assets"
	"github.com/shadowgrams/go-server/internal/tier"
	"github.com/shadowgrams/go-server/internal/tiles"
)

// Metadata describes one pattern's solution set.
type Metadata struct {
	WordCount  int             `json:"wordCount"`
	Thresholds tier.Thresholds `json:"thresholds"`
}

// Library is the fixed ordered pattern rotation with its metadata table.
// Its length is the sole bound on valid puzzle indices.
type Library struct {
	patterns []tiles.Pattern
	meta     map[string]Metadata
}

// puzzleData mirrors the puzzle-data.json deploy artifact.
type puzzleData struct {
	Puzzles []struct {
		Pattern    []int            `json:"pattern"`
		WordCount  int              `json:"wordCount"`
		Thresholds *tier.Thresholds `json:"thresholds"`
	} `json:"puzzles"`
}

// LoadLibrary parses and validates the pattern rotation and metadata table.
// Metadata entries without thresholds get the computed fallback. Every
// rotation pattern must have a metadata entry; a gap is a deployment error.
func LoadLibrary(patternsJSON, dataJSON []byte, a *tiles.Alphabet) (*Library, error) {
	var rawPatterns [][]int
	if err := json.Unmarshal(patternsJSON, &rawPatterns); err != nil {
		return nil, fmt.Errorf("puzzle: parse patterns: %w", err)
	}
	if len(rawPatterns) == 0 {
		return nil, fmt.Errorf("puzzle: pattern rotation is empty")
	}

	var data puzzleData
	if err := json.Unmarshal(dataJSON, &data); err != nil {
		return nil, fmt.Errorf("puzzle: parse puzzle data: %w", err)
	}

	lib := &Library{meta: make(map[string]Metadata, len(data.Puzzles))}

	for _, entry := range data.Puzzles {
		p := tiles.Pattern(entry.Pattern)
		if err := p.Validate(a); err != nil {
			return nil, fmt.Errorf("puzzle: metadata pattern %s: %w", p.Key(), err)
		}
		if entry.WordCount <= 0 {
			return nil, fmt.Errorf("puzzle: pattern %s: wordCount %d", p.Key(), entry.WordCount)
		}
		th := tier.Fallback(entry.WordCount)
		if entry.Thresholds != nil {
			th = *entry.Thresholds
		}
		if err := th.Validate(entry.WordCount); err != nil {
			return nil, fmt.Errorf("puzzle: pattern %s: %w", p.Key(), err)
		}
		lib.meta[p.Key()] = Metadata{WordCount: entry.WordCount, Thresholds: th}
	}

	for i, raw := range rawPatterns {
		p := tiles.Pattern(raw)
		if err := p.Validate(a); err != nil {
			return nil, fmt.Errorf("puzzle: rotation index %d: %w", i, err)
		}
		if _, ok := lib.meta[p.Key()]; !ok {
			return nil, fmt.Errorf("puzzle: rotation index %d: no metadata for pattern %s", i, p.Key())
		}
		lib.patterns = append(lib.patterns, p)
	}
	return lib, nil
}

// LoadLibraryFromEnv loads from PUZZLE_PATTERNS_FILE / PUZZLE_DATA_FILE if
// set, otherwise from the embedded defaults.
func LoadLibraryFromEnv(a *tiles.Alphabet) (*Library, error) {
	patternsJSON, err := readOr(os.Getenv("PUZZLE_PATTERNS_FILE"), assets.DailyPatterns)
	if err != nil {
		return nil, err
	}
	dataJSON, err := readOr(os.Getenv("PUZZLE_DATA_FILE"), assets.PuzzleData)
	if err != nil {
		return nil, err
	}
	return LoadLibrary(patternsJSON, dataJSON, a)
}

func readOr(path string, fallback func() ([]byte, error)) ([]byte, error) {
	if path == "" {
		return fallback()
	}
	return os.ReadFile(path)
}

// Len returns the rotation length.
func (l *Library) Len() int { return len(l.patterns) }

// Pattern returns the rotation entry at 0-indexed i.
func (l *Library) Pattern(i int) (tiles.Pattern, bool) {
	if i < 0 || i >= len(l.patterns) {
		return nil, false
	}
	return l.patterns[i], true
}

// Lookup returns the metadata for a pattern key.
func (l *Library) Lookup(key string) (Metadata, bool) {
	m, ok := l.meta[key]
	return m, ok
}
