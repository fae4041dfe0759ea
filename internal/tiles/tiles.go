// internal/tiles/tiles.go
//
// Tile alphabet for the Shadowgrams puzzle.
// Responsibilities:
//   - Map tile-class ids to their permitted letter sets.
//   - Maintain the reverse letter → class index (wildcard excluded).
//   - Answer the pattern-match predicate for candidate words.
//
// Notes:
//   - Class 0 is the wildcard and permits all 26 letters.
//   - Non-wildcard letter sets must be pairwise disjoint; this is validated
//     once at construction.
//   - An Alphabet is immutable after construction.
package tiles

import (
	"fmt"
	"sort"
)

// Wildcard is the tile class that accepts any letter.
const Wildcard = 0

// Alphabet holds the tile-class → letter-set table and its reverse index.
type Alphabet struct {
	classes map[int]map[rune]struct{}
	reverse map[rune]int
}

// NewAlphabet builds an Alphabet from a class → letters table.
// The wildcard entry may be omitted; it is always present implicitly.
// Returns an error if a class id is negative, a letter is outside a–z,
// or two non-wildcard classes claim the same letter.
func NewAlphabet(table map[int]string) (*Alphabet, error) {
	a := &Alphabet{
		classes: make(map[int]map[rune]struct{}, len(table)+1),
		reverse: make(map[rune]int, 26),
	}

	wild := make(map[rune]struct{}, 26)
	for r := 'a'; r <= 'z'; r++ {
		wild[r] = struct{}{}
	}
	a.classes[Wildcard] = wild

	ids := make([]int, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		if id < 0 {
			return nil, fmt.Errorf("tiles: negative class id %d", id)
		}
		if id == Wildcard {
			continue // wildcard is fixed, ignore any supplied set
		}
		set := make(map[rune]struct{}, len(table[id]))
		for _, r := range table[id] {
			if r < 'a' || r > 'z' {
				return nil, fmt.Errorf("tiles: class %d: letter %q outside a-z", id, r)
			}
			if prev, ok := a.reverse[r]; ok {
				return nil, fmt.Errorf("tiles: letter %q claimed by classes %d and %d", r, prev, id)
			}
			set[r] = struct{}{}
			a.reverse[r] = id
		}
		a.classes[id] = set
	}
	return a, nil
}

// Default returns the production tile table.
func Default() *Alphabet {
	a, err := NewAlphabet(map[int]string{
		1: "bdfhiklt",
		2: "acemnorsuvwxz",
		3: "gpqy",
		4: "j",
	})
	if err != nil {
		panic(err) // static table, cannot fail
	}
	return a
}

// Permits reports whether class id accepts letter r.
// Unknown class ids permit nothing.
func (a *Alphabet) Permits(id int, r rune) bool {
	set, ok := a.classes[id]
	if !ok {
		return false
	}
	_, ok = set[r]
	return ok
}

// ClassOf returns the non-wildcard class that claims r.
// ok is false if no non-wildcard class claims the letter.
func (a *Alphabet) ClassOf(r rune) (id int, ok bool) {
	id, ok = a.reverse[r]
	return id, ok
}

// Letters returns the sorted letters permitted by class id.
func (a *Alphabet) Letters(id int) []rune {
	set, ok := a.classes[id]
	if !ok {
		return nil
	}
	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Matches reports whether word satisfies the pattern position-by-position.
// Fails closed on any length mismatch. Callers must lowercase word first;
// the predicate performs no normalization.
func (a *Alphabet) Matches(word string, p Pattern) bool {
	runes := []rune(word)
	if len(runes) != len(p) {
		return false
	}
	for i, r := range runes {
		if !a.Permits(p[i], r) {
			return false
		}
	}
	return true
}
