package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowgrams/go-server/internal/logsink"
	"github.com/shadowgrams/go-server/internal/progress"
	"github.com/shadowgrams/go-server/internal/puzzle"
	"github.com/shadowgrams/go-server/internal/store"
	"github.com/shadowgrams/go-server/internal/tier"
	"github.com/shadowgrams/go-server/internal/tiles"
	"github.com/shadowgrams/go-server/internal/words"
)

const enginePatterns = `[[1,1,1,1,3],[2,2,1]]`

const engineData = `{"puzzles":[
  {"pattern":[1,1,1,1,3],"wordCount":5,"thresholds":{"good":2,"better":3,"best":4}},
  {"pattern":[2,2,1],"wordCount":4,"thresholds":{"good":2,"better":3,"best":3}}
]}`

type captureSink struct {
	mu      sync.Mutex
	entries []logsink.Entry
}

func (c *captureSink) Log(ctx context.Context, e logsink.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, e)
	return nil
}

func (c *captureSink) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

type fixture struct {
	eng  *Engine
	kv   store.KV
	sink *captureSink
	now  time.Time
}

// newFixture builds an engine pinned to 2026-02-14 09:00 Chicago, whose
// first puzzle is pattern 1,1,1,1,3.
func newFixture(t *testing.T, wordList []string, kv store.KV) *fixture {
	t.Helper()

	a := tiles.Default()
	lib, err := puzzle.LoadLibrary([]byte(enginePatterns), []byte(engineData), a)
	require.NoError(t, err)
	loc, err := time.LoadLocation(puzzle.DefaultTimezone)
	require.NoError(t, err)

	if kv == nil {
		kv = store.NewMemoryKV()
	}
	f := &fixture{
		kv:   kv,
		sink: &captureSink{},
		now:  time.Date(2026, 2, 14, 9, 0, 0, 0, loc),
	}

	var list *words.List
	if wordList != nil {
		list = words.NewList(wordList)
	}
	f.eng = New(Config{
		Alphabet: a,
		Resolver: puzzle.NewResolver(lib, puzzle.DefaultLaunch(), loc),
		Words:    list,
		Progress: progress.NewStore(kv),
		Sink:     f.sink,
		UserID:   "user_abc123def",
		Now:      func() time.Time { return f.now },
		Logger:   zerolog.Nop(),
	})
	return f
}

func (f *fixture) typeWord(w string) {
	for _, r := range w {
		f.eng.InsertLetter(r)
	}
}

func TestResolveToday(t *testing.T) {
	f := newFixture(t, []string{"hilly", "filly", "dilly", "billy", "fitly"}, nil)

	a, err := f.eng.ResolveToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-02-14", a.Date)
	assert.Equal(t, 1, a.PuzzleIndex)
	assert.True(t, a.Pattern.Equal(tiles.Pattern{1, 1, 1, 1, 3}))
	assert.Equal(t, 0, f.eng.Score())
}

func TestSubmitPipeline(t *testing.T) {
	f := newFixture(t, []string{"hilly", "filly"}, nil)
	ctx := context.Background()
	_, err := f.eng.ResolveToday(ctx)
	require.NoError(t, err)

	// Incomplete buffer.
	f.typeWord("hil")
	assert.Equal(t, ResultTooShort, f.eng.Submit(ctx))
	assert.Equal(t, 0, f.eng.Entry().Filled(), "buffer resets after every outcome")

	// Pattern mismatch: "happy" fails class checks.
	f.typeWord("happy")
	assert.Equal(t, ResultPatternMismatch, f.eng.Submit(ctx))

	// Fits the pattern but not in the word list.
	f.typeWord("dilly")
	assert.Equal(t, ResultNotInWordList, f.eng.Submit(ctx))
	assert.Equal(t, 0, f.eng.Score())

	// Accepted.
	f.typeWord("hilly")
	assert.Equal(t, ResultAccepted, f.eng.Submit(ctx))
	assert.Equal(t, 1, f.eng.Score())
	assert.Equal(t, []string{"hilly"}, f.eng.FoundWords())

	// Duplicate: no state mutation.
	f.typeWord("hilly")
	assert.Equal(t, ResultDuplicate, f.eng.Submit(ctx))
	assert.Equal(t, 1, f.eng.Score())
}

func TestAcceptedSubmissionHitsSink(t *testing.T) {
	f := newFixture(t, []string{"hilly"}, nil)
	ctx := context.Background()
	_, err := f.eng.ResolveToday(ctx)
	require.NoError(t, err)

	f.typeWord("hilly")
	require.Equal(t, ResultAccepted, f.eng.Submit(ctx))

	// The sink is notified asynchronously.
	require.Eventually(t, func() bool { return f.sink.count() == 1 },
		time.Second, 5*time.Millisecond)

	f.sink.mu.Lock()
	defer f.sink.mu.Unlock()
	assert.Equal(t, logsink.Entry{
		UserID:      "user_abc123def",
		PuzzleIndex: 1,
		Date:        "2026-02-14",
	}, f.sink.entries[0])
}

func TestProgressSurvivesReload(t *testing.T) {
	kv := store.NewMemoryKV()
	list := []string{"hilly", "filly"}
	ctx := context.Background()

	f1 := newFixture(t, list, kv)
	_, err := f1.eng.ResolveToday(ctx)
	require.NoError(t, err)
	f1.typeWord("hilly")
	require.Equal(t, ResultAccepted, f1.eng.Submit(ctx))

	// Fresh engine over the same store, same day: found words restored.
	f2 := newFixture(t, list, kv)
	_, err = f2.eng.ResolveToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f2.eng.Score())
	assert.Equal(t, []string{"hilly"}, f2.eng.FoundWords())

	// Restored duplicate is still rejected.
	f2.typeWord("hilly")
	assert.Equal(t, ResultDuplicate, f2.eng.Submit(ctx))
}

func TestProgressDiscardedOnNewDay(t *testing.T) {
	kv := store.NewMemoryKV()
	list := []string{"hilly", "cat"}
	ctx := context.Background()

	f1 := newFixture(t, list, kv)
	_, err := f1.eng.ResolveToday(ctx)
	require.NoError(t, err)
	f1.typeWord("hilly")
	require.Equal(t, ResultAccepted, f1.eng.Submit(ctx))

	// Next day: new assignment, zero found words.
	f2 := newFixture(t, list, kv)
	f2.now = f2.now.Add(24 * time.Hour)
	a, err := f2.eng.ResolveToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, a.PuzzleIndex)
	assert.Equal(t, 0, f2.eng.Score())

	// The second pattern (2,2,1) accepts "cat".
	f2.typeWord("cat")
	assert.Equal(t, ResultAccepted, f2.eng.Submit(ctx))
}

func TestMissingWordListRejectsEverything(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	_, err := f.eng.ResolveToday(ctx)
	require.NoError(t, err)

	f.typeWord("hilly")
	assert.Equal(t, ResultNotInWordList, f.eng.Submit(ctx))
}

func TestTierProgression(t *testing.T) {
	f := newFixture(t, []string{"hilly", "filly", "dilly", "billy", "fitly"}, nil)
	ctx := context.Background()
	_, err := f.eng.ResolveToday(ctx)
	require.NoError(t, err)

	assert.Equal(t, tier.Base, f.eng.CurrentTier())
	remaining, next, ok := f.eng.NextTier()
	assert.True(t, ok)
	assert.Equal(t, tier.Good, next)
	assert.Equal(t, 2, remaining)

	for _, w := range []string{"hilly", "filly", "dilly", "billy"} {
		f.typeWord(w)
		require.Equal(t, ResultAccepted, f.eng.Submit(ctx))
	}

	assert.Equal(t, tier.Best, f.eng.CurrentTier())
	_, _, ok = f.eng.NextTier()
	assert.False(t, ok)
}

func TestBestModalFlagPersists(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()

	f1 := newFixture(t, []string{"hilly"}, kv)
	_, err := f1.eng.ResolveToday(ctx)
	require.NoError(t, err)
	assert.False(t, f1.eng.BestModalShown())
	f1.eng.MarkBestModalShown(ctx)
	assert.True(t, f1.eng.BestModalShown())

	f2 := newFixture(t, []string{"hilly"}, kv)
	_, err = f2.eng.ResolveToday(ctx)
	require.NoError(t, err)
	assert.True(t, f2.eng.BestModalShown())
}

func TestScheduleRolloverDelay(t *testing.T) {
	f := newFixture(t, []string{"hilly"}, nil)
	_, err := f.eng.ResolveToday(context.Background())
	require.NoError(t, err)
	defer f.eng.Close()

	// 09:00 Chicago → 15 hours to midnight.
	delay := f.eng.ScheduleRollover(func() {})
	assert.Equal(t, 15*time.Hour, delay)
}
