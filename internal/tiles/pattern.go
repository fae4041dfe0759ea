// internal/tiles/pattern.go
//
// Pattern type: the ordered tile-class sequence that defines one day's
// puzzle shape and per-position letter constraints.

package tiles

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinPatternLen and MaxPatternLen bound valid puzzle sizes.
	MinPatternLen = 3
	MaxPatternLen = 6
)

// Pattern is an ordered sequence of tile-class ids.
type Pattern []int

// Key serializes the pattern as a comma-joined id string ("1,1,1,1,3").
// This is the lookup key for puzzle metadata.
func (p Pattern) Key() string {
	parts := make([]string, len(p))
	for i, id := range p {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// ParseKey parses a comma-joined id string back into a Pattern.
func ParseKey(key string) (Pattern, error) {
	parts := strings.Split(key, ",")
	p := make(Pattern, 0, len(parts))
	for _, s := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("tiles: bad pattern key %q: %w", key, err)
		}
		p = append(p, id)
	}
	return p, nil
}

// Validate checks pattern length bounds and that every class id exists
// in the alphabet.
func (p Pattern) Validate(a *Alphabet) error {
	if len(p) < MinPatternLen || len(p) > MaxPatternLen {
		return fmt.Errorf("tiles: pattern length %d outside %d-%d", len(p), MinPatternLen, MaxPatternLen)
	}
	for i, id := range p {
		if _, ok := a.classes[id]; !ok {
			return fmt.Errorf("tiles: pattern position %d: unknown class %d", i, id)
		}
	}
	return nil
}

// Equal reports whether two patterns are identical.
func (p Pattern) Equal(q Pattern) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}
