// internal/words/words.go
//
// Reference word list for submission validation.
//
// Responsibilities:
//   - Load the validation list from an environment-provided file or fall
//     back to the embedded default.
//   - Normalize to lowercase and keep only 3-6 letter alphabetic words.
//   - Derive the per-pattern valid word set used by the engine.
//
// The list is loaded once per session and owned by its caller; there is no
// package-level state.
//
// Environment variables:
//   WORDLIST_FILE=/path/to/wordlist.txt

package words

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/shadowgrams/go-server/assets"
	"github.com/shadowgrams/go-server/internal/tiles"
)

// List is an immutable validation word list.
type List struct {
	words []string
	set   map[string]struct{}
}

// NewList builds a List from raw words, normalizing to lowercase and
// dropping anything that is not 3-6 ASCII letters.
func NewList(raw []string) *List {
	l := &List{set: make(map[string]struct{}, len(raw))}
	for _, w := range raw {
		w = strings.TrimSpace(strings.ToLower(w))
		if len(w) < tiles.MinPatternLen || len(w) > tiles.MaxPatternLen || !isAlpha(w) {
			continue
		}
		if _, dup := l.set[w]; dup {
			continue
		}
		l.set[w] = struct{}{}
		l.words = append(l.words, w)
	}
	return l
}

// Load reads one word per line from path.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		raw = append(raw, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return newNonEmpty(raw)
}

// LoadFromEnv loads the list from WORDLIST_FILE if set, otherwise from the
// embedded default.
func LoadFromEnv() (*List, error) {
	if path := os.Getenv("WORDLIST_FILE"); path != "" {
		return Load(path)
	}
	raw, err := assets.WordList()
	if err != nil {
		return nil, err
	}
	return newNonEmpty(raw)
}

func newNonEmpty(raw []string) (*List, error) {
	l := NewList(raw)
	if l.Len() == 0 {
		return nil, errors.New("words: list is empty")
	}
	return l, nil
}

// Contains reports whether w is in the list. Callers lowercase input.
func (l *List) Contains(w string) bool {
	_, ok := l.set[w]
	return ok
}

// Len returns the number of loaded words.
func (l *List) Len() int { return len(l.words) }

// Matching returns the subset of the list that satisfies pattern p.
// This is the valid word set for one day's puzzle.
func (l *List) Matching(a *tiles.Alphabet, p tiles.Pattern) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range l.words {
		if a.Matches(w, p) {
			out[w] = struct{}{}
		}
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
