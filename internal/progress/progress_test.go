package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowgrams/go-server/internal/store"
	"github.com/shadowgrams/go-server/internal/tier"
	"github.com/shadowgrams/go-server/internal/tiles"
)

func testState(date string) *State {
	return &State{
		Date:        date,
		Pattern:     tiles.Pattern{1, 1, 1, 1, 3},
		PuzzleIndex: 1,
		WordCount:   40,
		Thresholds:  tier.Thresholds{Good: 12, Better: 20, Best: 32},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(store.NewMemoryKV())

	in := testState("2026-02-14")
	require.NoError(t, s.Save(ctx, in))

	out, ok := s.Load(ctx, "2026-02-14")
	require.True(t, ok)
	assert.Equal(t, in, out)
	assert.Equal(t, SchemaVersion, out.Version)
}

func TestLoadMissWhenAbsent(t *testing.T) {
	s := NewStore(store.NewMemoryKV())
	_, ok := s.Load(context.Background(), "2026-02-14")
	assert.False(t, ok)
}

func TestLoadMissOnDateMismatch(t *testing.T) {
	ctx := context.Background()
	s := NewStore(store.NewMemoryKV())
	require.NoError(t, s.Save(ctx, testState("2026-02-14")))

	_, ok := s.Load(ctx, "2026-02-15")
	assert.False(t, ok)
}

func TestLoadMissOnVersionMismatch(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	s := NewStore(kv)
	require.NoError(t, s.Save(ctx, testState("2026-02-14")))

	// Simulate a record written by an older schema.
	old := NewStore(kv)
	old.version = "server-v0"
	require.NoError(t, old.Save(ctx, testState("2026-02-14")))

	_, ok := s.Load(ctx, "2026-02-14")
	assert.False(t, ok)
}

func TestLoadMissOnMalformedRecord(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, stateKey, []byte(`{not json`)))

	s := NewStore(kv)
	_, ok := s.Load(ctx, "2026-02-14")
	assert.False(t, ok)

	// Well-formed JSON with a nonsense shape is equally a miss.
	require.NoError(t, kv.Set(ctx, stateKey, []byte(`{"version":"server-v1","date":"2026-02-14"}`)))
	_, ok = s.Load(ctx, "2026-02-14")
	assert.False(t, ok)
}

func TestFoundWordsScopedToDate(t *testing.T) {
	ctx := context.Background()
	s := NewStore(store.NewMemoryKV())

	require.NoError(t, s.SaveFoundWords(ctx, "2026-02-14", []string{"hilly", "filly"}))

	assert.Equal(t, []string{"hilly", "filly"}, s.LoadFoundWords(ctx, "2026-02-14"))
	assert.Nil(t, s.LoadFoundWords(ctx, "2026-02-15"))
}

func TestFoundWordsMissOnCorruption(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, foundWordsKey, []byte(`42`)))

	s := NewStore(kv)
	assert.Nil(t, s.LoadFoundWords(ctx, "2026-02-14"))
}
