// internal/engine/engine.go
//
// Daily puzzle engine: one instance per session, owning the tile alphabet,
// resolver, word list, typed-entry buffer and progress store. All methods
// are invoked from the caller's serialized event stream; the engine takes
// no internal locks. The rollover timer is the only autonomous trigger and
// hands control back to the caller through its callback.
//
// Responsibilities:
//   - Resolve today's assignment, preferring fresh persisted state.
//   - Drive the typed-entry buffer and the submission pipeline.
//   - Persist found words per date and report accepted submissions to the
//     log sink without letting sink failures touch game state.

package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shadowgrams/go-server/internal/daily"
	"github.com/shadowgrams/go-server/internal/entry"
	"github.com/shadowgrams/go-server/internal/logsink"
	"github.com/shadowgrams/go-server/internal/progress"
	"github.com/shadowgrams/go-server/internal/puzzle"
	"github.com/shadowgrams/go-server/internal/tier"
	"github.com/shadowgrams/go-server/internal/tiles"
	"github.com/shadowgrams/go-server/internal/words"
)

// SubmissionResult classifies one submission attempt. Rejections are
// expected and frequent; they are values, never errors.
type SubmissionResult string

const (
	ResultTooShort        SubmissionResult = "too_short"
	ResultDuplicate       SubmissionResult = "duplicate"
	ResultPatternMismatch SubmissionResult = "invalid_pattern"
	ResultNotInWordList   SubmissionResult = "not_in_list"
	ResultAccepted        SubmissionResult = "accepted"
)

// Clock supplies the current instant; swapped out in tests.
type Clock func() time.Time

// Config wires an Engine's collaborators.
type Config struct {
	Alphabet *tiles.Alphabet
	Resolver *puzzle.Resolver
	Words    *words.List // nil if the word-list load failed
	Progress *progress.Store
	Sink     logsink.Sink // optional remote sink
	UserID   string
	Now      Clock // defaults to time.Now
	Logger   zerolog.Logger
}

// Engine is the per-session puzzle engine.
type Engine struct {
	alphabet *tiles.Alphabet
	resolver *puzzle.Resolver
	words    *words.List
	progress *progress.Store
	sink     logsink.Sink
	userID   string
	now      Clock
	log      zerolog.Logger
	sched    *daily.Scheduler

	state    *progress.State
	current  puzzle.Assignment
	validSet map[string]struct{}
	found    map[string]struct{}
	order    []string // found words in acceptance order
	buf      *entry.Buffer
	resolved bool
}

// New constructs an Engine. ResolveToday must be called before submissions.
func New(cfg Config) *Engine {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		alphabet: cfg.Alphabet,
		resolver: cfg.Resolver,
		words:    cfg.Words,
		progress: cfg.Progress,
		sink:     cfg.Sink,
		userID:   cfg.UserID,
		now:      now,
		log:      cfg.Logger,
		sched:    daily.NewScheduler(),
	}
}

// ResolveToday loads or computes today's assignment. Fresh persisted state
// for today's date and the current schema version wins; anything stale is
// superseded wholesale. Found words persisted for the same date are
// restored; a new day starts from zero.
func (e *Engine) ResolveToday(ctx context.Context) (puzzle.Assignment, error) {
	nowT := e.now()
	loc := e.resolver.Location()
	today := daily.DateKey(nowT, loc)

	if st, ok := e.progress.Load(ctx, today); ok {
		e.state = st
		e.current = puzzle.Assignment{
			Date:        st.Date,
			Pattern:     st.Pattern,
			PuzzleIndex: st.PuzzleIndex,
			WordCount:   st.WordCount,
			Thresholds:  st.Thresholds,
		}
	} else {
		a, err := e.resolver.Resolve(nowT)
		if err != nil {
			return puzzle.Assignment{}, err
		}
		e.current = a
		e.state = &progress.State{
			Date:        a.Date,
			Pattern:     a.Pattern,
			PuzzleIndex: a.PuzzleIndex,
			WordCount:   a.WordCount,
			Thresholds:  a.Thresholds,
		}
		if err := e.progress.Save(ctx, e.state); err != nil {
			e.log.Warn().Err(err).Msg("save assignment")
		}
	}

	if e.words != nil {
		e.validSet = e.words.Matching(e.alphabet, e.current.Pattern)
	} else {
		// Word-list load failed earlier: no submission can be accepted this
		// session. Reported here once, not retried.
		e.validSet = map[string]struct{}{}
		e.log.Error().Msg("word list unavailable; submissions will be rejected")
	}

	e.found = make(map[string]struct{})
	e.order = nil
	for _, w := range e.progress.LoadFoundWords(ctx, today) {
		if _, ok := e.validSet[w]; !ok {
			continue // stale or unknown entries are dropped
		}
		if _, dup := e.found[w]; dup {
			continue
		}
		e.found[w] = struct{}{}
		e.order = append(e.order, w)
	}

	e.buf = entry.NewBuffer(e.alphabet, e.current.Pattern)
	e.resolved = true
	return e.current, nil
}

// Assignment returns the current assignment.
func (e *Engine) Assignment() puzzle.Assignment { return e.current }

// Entry exposes the typed-entry buffer for rendering.
func (e *Engine) Entry() *entry.Buffer { return e.buf }

// InsertLetter types one letter into the leftmost empty slot.
func (e *Engine) InsertLetter(ch rune) bool {
	if !e.resolved {
		return false
	}
	return e.buf.Insert(ch)
}

// RemoveLastLetter clears the rightmost filled slot.
func (e *Engine) RemoveLastLetter() bool {
	if !e.resolved {
		return false
	}
	return e.buf.RemoveLast()
}

// ResetEntry clears the buffer.
func (e *Engine) ResetEntry() {
	if e.resolved {
		e.buf.Reset()
	}
}

// Submit runs the submission pipeline on the current buffer contents.
// Outcomes are checked in order: too_short, duplicate, invalid_pattern,
// not_in_list, accepted. The buffer resets after every outcome. Only an
// accepted word mutates found-word state.
func (e *Engine) Submit(ctx context.Context) SubmissionResult {
	if !e.resolved {
		return ResultTooShort
	}
	defer e.buf.Reset()

	if !e.buf.Complete() {
		return ResultTooShort
	}
	w := e.buf.Word()

	if _, dup := e.found[w]; dup {
		return ResultDuplicate
	}
	// Authoritative check: the per-letter invalid flags only reflect typed
	// state, not the final word.
	if !e.alphabet.Matches(w, e.current.Pattern) {
		return ResultPatternMismatch
	}
	if _, ok := e.validSet[w]; !ok {
		return ResultNotInWordList
	}

	e.found[w] = struct{}{}
	e.order = append(e.order, w)
	if err := e.progress.SaveFoundWords(ctx, e.current.Date, e.order); err != nil {
		e.log.Warn().Err(err).Str("word", w).Msg("save found words")
	}
	e.logInteraction()
	return ResultAccepted
}

// logInteraction reports an accepted submission to the sink. One attempt,
// asynchronous, result discarded; failure never reaches the caller.
func (e *Engine) logInteraction() {
	if e.sink == nil {
		return
	}
	ev := logsink.Entry{
		UserID:      e.userID,
		PuzzleIndex: e.current.PuzzleIndex,
		Date:        e.current.Date,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.sink.Log(ctx, ev); err != nil {
			e.log.Debug().Err(err).Msg("interaction log failed (non-critical)")
		}
	}()
}

// Score returns the number of found words.
func (e *Engine) Score() int { return len(e.order) }

// FoundWords returns the found words in acceptance order.
func (e *Engine) FoundWords() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// CurrentTier returns the tier reached by the current score.
func (e *Engine) CurrentTier() tier.Tier {
	return tier.Current(e.Score(), e.current.Thresholds)
}

// NextTier returns the next target tier and the words remaining to reach
// it; ok is false once best is reached.
func (e *Engine) NextTier() (remaining int, next tier.Tier, ok bool) {
	return tier.Next(e.Score(), e.current.Thresholds)
}

// BestModalShown reports whether the best-tier celebration was already
// shown today.
func (e *Engine) BestModalShown() bool {
	return e.state != nil && e.state.BestModalShown
}

// MarkBestModalShown persists the best-tier celebration flag.
func (e *Engine) MarkBestModalShown(ctx context.Context) {
	if e.state == nil || e.state.BestModalShown {
		return
	}
	e.state.BestModalShown = true
	if err := e.progress.Save(ctx, e.state); err != nil {
		e.log.Warn().Err(err).Msg("save best modal flag")
	}
}

// ScheduleRollover arms fn to fire at the next reference-zone midnight and
// returns the armed delay. Re-arming replaces any pending trigger.
func (e *Engine) ScheduleRollover(fn func()) time.Duration {
	delay := daily.UntilMidnight(e.now(), e.resolver.Location())
	e.sched.Schedule(delay, fn)
	return delay
}

// Close cancels any pending rollover trigger.
func (e *Engine) Close() { e.sched.Stop() }
