// internal/tier/tier.go
//
// Score tiers for a daily puzzle.
// A puzzle exposes three ordered thresholds (good/better/best) over the
// found-word count; the player's tier is the highest threshold reached.
// Puzzle metadata normally supplies thresholds; Fallback covers data files
// built without them.

package tier

import (
	"fmt"
	"math"
)

// Tier is one of the four ordered achievement levels.
type Tier string

const (
	Base   Tier = "base"
	Good   Tier = "good"
	Better Tier = "better"
	Best   Tier = "best"
)

// Thresholds holds the found-word counts required for each tier.
// Invariant: 1 <= Good <= Better <= Best <= word count.
type Thresholds struct {
	Good   int `json:"good"`
	Better int `json:"better"`
	Best   int `json:"best"`
}

// Validate checks threshold ordering against the puzzle's word count.
func (th Thresholds) Validate(wordCount int) error {
	if th.Good < 1 || th.Good > th.Better || th.Better > th.Best || th.Best > wordCount {
		return fmt.Errorf("tier: bad thresholds %+v for wordCount %d", th, wordCount)
	}
	return nil
}

// Fallback derives thresholds from the word count when metadata supplies
// none: 30% / 50% / 80%, rounded up. wordCount == 2 is special-cased so the
// good tier does not collapse onto better.
func Fallback(wordCount int) Thresholds {
	if wordCount == 2 {
		return Thresholds{Good: 1, Better: 2, Best: 2}
	}
	return Thresholds{
		Good:   int(math.Ceil(0.30 * float64(wordCount))),
		Better: int(math.Ceil(0.50 * float64(wordCount))),
		Best:   int(math.Ceil(0.80 * float64(wordCount))),
	}
}

// Current returns the highest tier whose threshold does not exceed score.
func Current(score int, th Thresholds) Tier {
	switch {
	case score >= th.Best:
		return Best
	case score >= th.Better:
		return Better
	case score >= th.Good:
		return Good
	default:
		return Base
	}
}

// Next returns the next tier above score and how many words remain to reach
// it. When better == best the intermediate step is skipped so the caller is
// never shown a zero-remaining target. ok is false once best is reached.
func Next(score int, th Thresholds) (remaining int, next Tier, ok bool) {
	switch {
	case score >= th.Best:
		return 0, Best, false
	case score >= th.Better:
		return th.Best - score, Best, true
	case score >= th.Good:
		if th.Better == th.Best {
			return th.Best - score, Best, true
		}
		return th.Better - score, Better, true
	default:
		return th.Good - score, Good, true
	}
}
