// internal/puzzle/resolve.go
//
// Deterministic date → puzzle assignment.
// The assignment is a pure function of the calendar date in the reference
// timezone: daysSinceLaunch mod rotation length. Two installations asking on
// the same calendar day always get the same pattern.

package puzzle

import (
	"errors"
	"fmt"
	"time"

	"github.com/shadowgrams/go-server/internal/daily"
	"github.com/shadowgrams/go-server/internal/tier"
	"github.com/shadowgrams/go-server/internal/tiles"
)

// DefaultTimezone is the reference timezone defining "today" and midnight.
const DefaultTimezone = "America/Chicago"

// DefaultLaunch is the calendar date puzzle #1 appeared.
func DefaultLaunch() time.Time {
	return time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
}

var (
	// ErrBeforeLaunch means today precedes the launch date: a configuration
	// error, never silently wrapped into the rotation.
	ErrBeforeLaunch = errors.New("puzzle: today is before launch date")

	// ErrPuzzleIndex means the rotation has no pattern at the computed index.
	ErrPuzzleIndex = errors.New("puzzle: no pattern at index")

	// ErrMetadataMissing means the rotation and the metadata table are out of
	// sync: a deployment invariant violation, not a transient failure.
	ErrMetadataMissing = errors.New("puzzle: metadata missing for pattern")
)

// Assignment is one day's resolved puzzle.
type Assignment struct {
	Date        string          `json:"date"`        // YYYY-MM-DD in the reference zone
	Pattern     tiles.Pattern   `json:"pattern"`     //
	PuzzleIndex int             `json:"puzzleIndex"` // 1-indexed for display
	WordCount   int             `json:"wordCount"`   //
	Thresholds  tier.Thresholds `json:"thresholds"`  //
}

// Resolver maps calendar dates to library entries.
type Resolver struct {
	lib    *Library
	launch time.Time
	loc    *time.Location
}

// NewResolver constructs a Resolver for the given library, launch date and
// reference timezone.
func NewResolver(lib *Library, launch time.Time, loc *time.Location) *Resolver {
	return &Resolver{lib: lib, launch: launch, loc: loc}
}

// Location returns the reference timezone.
func (r *Resolver) Location() *time.Location { return r.loc }

// Library returns the resolver's puzzle library.
func (r *Resolver) Library() *Library { return r.lib }

// Resolve returns the assignment for now's calendar date.
func (r *Resolver) Resolve(now time.Time) (Assignment, error) {
	if r.lib.Len() == 0 {
		return Assignment{}, fmt.Errorf("%w 0 (empty rotation)", ErrPuzzleIndex)
	}
	days := daily.DaysBetween(r.launch, now, r.loc)
	if days < 0 {
		return Assignment{}, fmt.Errorf("%w (launch %s, today %s)",
			ErrBeforeLaunch, r.launch.Format("2006-01-02"), daily.DateKey(now, r.loc))
	}
	idx := days % r.lib.Len()

	p, ok := r.lib.Pattern(idx)
	if !ok {
		return Assignment{}, fmt.Errorf("%w %d", ErrPuzzleIndex, idx)
	}
	meta, ok := r.lib.Lookup(p.Key())
	if !ok {
		return Assignment{}, fmt.Errorf("%w %s", ErrMetadataMissing, p.Key())
	}
	return Assignment{
		Date:        daily.DateKey(now, r.loc),
		Pattern:     p,
		PuzzleIndex: idx + 1,
		WordCount:   meta.WordCount,
		Thresholds:  meta.Thresholds,
	}, nil
}
