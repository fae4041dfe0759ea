// internal/entry/entry.go
//
// Typed-entry buffer for the puzzle tiles.
// The buffer has one slot per pattern position. Filled slots are always a
// contiguous prefix from the left: Insert writes the leftmost empty slot and
// RemoveLast clears the rightmost filled one, so the buffer behaves as a
// bounded stack even though slots are addressed by position. That contiguity
// is an invariant of this type, not an emergent property of the callers.

package entry

import (
	"strings"

	"github.com/shadowgrams/go-server/internal/tiles"
)

// Buffer holds the letters typed so far and per-position validity flags.
type Buffer struct {
	alphabet *tiles.Alphabet
	pattern  tiles.Pattern
	slots    []rune
	invalid  map[int]struct{}
}

// NewBuffer returns an empty buffer sized to pattern.
func NewBuffer(a *tiles.Alphabet, p tiles.Pattern) *Buffer {
	return &Buffer{
		alphabet: a,
		pattern:  p,
		slots:    make([]rune, len(p)),
		invalid:  make(map[int]struct{}),
	}
}

// Len returns the buffer (and pattern) length.
func (b *Buffer) Len() int { return len(b.slots) }

// Filled returns the number of occupied slots.
func (b *Buffer) Filled() int {
	n := 0
	for _, r := range b.slots {
		if r != 0 {
			n++
		}
	}
	return n
}

// Complete reports whether every slot holds a letter.
func (b *Buffer) Complete() bool { return b.Filled() == len(b.slots) }

// At returns the letter in slot i, or 0 if empty.
func (b *Buffer) At(i int) rune {
	if i < 0 || i >= len(b.slots) {
		return 0
	}
	return b.slots[i]
}

// IsInvalid reports whether slot i holds a letter that violates its tile
// class. Flags reflect typed state only; Submit re-checks authoritatively.
func (b *Buffer) IsInvalid(i int) bool {
	_, ok := b.invalid[i]
	return ok
}

// Invalid returns the currently flagged slot indices, unordered.
func (b *Buffer) Invalid() []int {
	out := make([]int, 0, len(b.invalid))
	for i := range b.invalid {
		out = append(out, i)
	}
	return out
}

// Word joins the filled slots into the candidate word.
func (b *Buffer) Word() string {
	var sb strings.Builder
	for _, r := range b.slots {
		if r != 0 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Insert writes ch into the leftmost empty slot. It is a no-op if the
// buffer is complete or ch is not a lowercase a-z letter. The slot is
// flagged invalid iff its class is non-wildcard and ch belongs to a
// different class.
func (b *Buffer) Insert(ch rune) bool {
	if ch < 'a' || ch > 'z' {
		return false
	}
	for i, r := range b.slots {
		if r != 0 {
			continue
		}
		b.slots[i] = ch
		want := b.pattern[i]
		got, _ := b.alphabet.ClassOf(ch)
		if want != tiles.Wildcard && got != want {
			b.invalid[i] = struct{}{}
		} else {
			delete(b.invalid, i)
		}
		return true
	}
	return false
}

// RemoveLast clears the rightmost filled slot and its invalid flag.
// No-op on an empty buffer.
func (b *Buffer) RemoveLast() bool {
	for i := len(b.slots) - 1; i >= 0; i-- {
		if b.slots[i] != 0 {
			b.slots[i] = 0
			delete(b.invalid, i)
			return true
		}
	}
	return false
}

// Reset clears all slots and flags; called after every submission attempt.
func (b *Buffer) Reset() {
	for i := range b.slots {
		b.slots[i] = 0
	}
	b.invalid = make(map[int]struct{})
}
