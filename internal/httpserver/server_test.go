package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowgrams/go-server/internal/puzzle"
	"github.com/shadowgrams/go-server/internal/tiles"
	"github.com/shadowgrams/go-server/internal/words"
)

const testSchema = `
CREATE TABLE users (
    id             TEXT PRIMARY KEY,
    username       TEXT NOT NULL UNIQUE,
    password_hash  TEXT NOT NULL,
    created_at     TEXT NOT NULL,
    puzzles_played INTEGER NOT NULL DEFAULT 0,
    best_count     INTEGER NOT NULL DEFAULT 0,
    streak         INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE daily_results (
    user_id      TEXT NOT NULL,
    date         TEXT NOT NULL,
    puzzle_index INTEGER NOT NULL,
    words_found  INTEGER NOT NULL,
    tier         TEXT NOT NULL,
    created_at   TEXT NOT NULL DEFAULT (datetime('now')),
    UNIQUE(user_id, date)
);
CREATE TABLE puzzle_logs (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    date         TEXT NOT NULL,
    puzzle_index INTEGER NOT NULL,
    user_id      TEXT NOT NULL,
    created_at   TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE TABLE kv (
    key   TEXT PRIMARY KEY,
    value BLOB NOT NULL
);`

// newTestServer wires a Server over an in-memory database and the embedded
// puzzle assets.
func newTestServer(t *testing.T) (*Server, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1) // each :memory: connection is its own database
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	a := tiles.Default()
	lib, err := puzzle.LoadLibraryFromEnv(a)
	require.NoError(t, err)
	loc, err := time.LoadLocation(puzzle.DefaultTimezone)
	require.NoError(t, err)
	resolver := puzzle.NewResolver(lib, puzzle.DefaultLaunch(), loc)

	list, err := words.LoadFromEnv()
	require.NoError(t, err)

	return New(resolver, list, db), db
}

func doJSON(t *testing.T, s *Server, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestPuzzleToday(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/puzzle/today", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Date                string `json:"date"`
		PuzzleIndex         int    `json:"puzzleIndex"`
		Pattern             []int  `json:"pattern"`
		WordCount           int    `json:"wordCount"`
		MsUntilNextMidnight int64  `json:"msUntilNextMidnight"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	_, err := time.Parse("2006-01-02", res.Date)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, res.PuzzleIndex, 1)
	assert.LessOrEqual(t, res.PuzzleIndex, s.resolver.Library().Len())
	assert.NotEmpty(t, res.Pattern)
	assert.Greater(t, res.WordCount, 0)
	assert.Greater(t, res.MsUntilNextMidnight, int64(0))
	assert.LessOrEqual(t, res.MsUntilNextMidnight, int64(24*time.Hour/time.Millisecond))
}

func TestLogInteraction(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/log/interaction", map[string]any{
		"userId": "user_abc123def", "puzzleIndex": 1, "puzzleDate": "2026-02-14",
	}, nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	// Out-of-range index and malformed date are rejected.
	rec = doJSON(t, s, http.MethodPost, "/api/log/interaction", map[string]any{
		"userId": "user_abc123def", "puzzleIndex": 0, "puzzleDate": "2026-02-14",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/log/interaction", map[string]any{
		"userId": "user_abc123def", "puzzleIndex": 1, "puzzleDate": "14/02/2026",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Aggregates reflect the single accepted row.
	rec = doJSON(t, s, http.MethodGet, "/api/logs", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats []struct {
		Date             string `json:"date"`
		UniqueUsers      int    `json:"uniqueUsers"`
		TotalSubmissions int    `json:"totalSubmissions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Len(t, stats, 1)
	assert.Equal(t, "2026-02-14", stats[0].Date)
	assert.Equal(t, 1, stats[0].UniqueUsers)
	assert.Equal(t, 1, stats[0].TotalSubmissions)
}

func TestDailyResultAndLeaderboard(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/daily/result", map[string]any{
		"wordsFound": 7, "tier": "better",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Date       string `json:"date"`
		WordsFound int    `json:"wordsFound"`
		Recorded   bool   `json:"recorded"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Recorded)
	assert.Equal(t, 7, res.WordsFound)

	// Guest identity comes back as an anon cookie.
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Re-submitting with fewer words does not lower the stored row.
	rec = doJSON(t, s, http.MethodPost, "/daily/result", map[string]any{
		"wordsFound": 3, "tier": "good",
	}, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/daily/leaderboard", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var lb struct {
		Date string `json:"date"`
		Top  []struct {
			WordsFound int    `json:"wordsFound"`
			Tier       string `json:"tier"`
		} `json:"top"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lb))
	require.Len(t, lb.Top, 1)
	assert.Equal(t, 7, lb.Top[0].WordsFound)
	assert.Equal(t, "better", lb.Top[0].Tier)

	// Unknown tier is rejected.
	rec = doJSON(t, s, http.MethodPost, "/daily/result", map[string]any{
		"wordsFound": 1, "tier": "legendary",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupLoginAndStats(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/auth/signup", map[string]string{
		"username": "robin", "password": "hunter2hunter2",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	rec = doJSON(t, s, http.MethodGet, "/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "robin", me.Username)

	rec = doJSON(t, s, http.MethodGet, "/stats/me", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		PuzzlesPlayed int `json:"puzzlesPlayed"`
		BestCount     int `json:"bestCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 0, stats.PuzzlesPlayed)

	// An authed best-tier result bumps profile stats once.
	rec = doJSON(t, s, http.MethodPost, "/daily/result", map[string]any{
		"wordsFound": 12, "tier": "best",
	}, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, s, http.MethodPost, "/daily/result", map[string]any{
		"wordsFound": 13, "tier": "best",
	}, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/stats/me", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.PuzzlesPlayed)
	assert.Equal(t, 1, stats.BestCount)

	// Wrong password is rejected; unauthenticated /auth/me is rejected.
	rec = doJSON(t, s, http.MethodPost, "/auth/login", map[string]string{
		"username": "robin", "password": "wrong-password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
