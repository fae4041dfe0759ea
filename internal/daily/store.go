// internal/daily/store.go
//
// SQLite-backed daily results: one row per user per date recording how the
// day's puzzle went (words found, tier reached). Backs the leaderboard.

package daily

import (
	"context"
	"database/sql"
)

// Result is a user's recorded outcome for one date.
type Result struct {
	UserID      string `json:"userId"`
	Date        string `json:"date"`
	PuzzleIndex int    `json:"puzzleIndex"`
	WordsFound  int    `json:"wordsFound"`
	Tier        string `json:"tier"`
}

// Store persists daily results.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// HasResult reports whether a row already exists for user and date.
func (s *Store) HasResult(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// UpsertResult inserts the user's result for the date, or raises an
// existing row when the new word count is higher. Players keep finding
// words all day, so later reports may supersede earlier ones.
func (s *Store) UpsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_results(user_id, date, puzzle_index, words_found, tier)
		 VALUES(?,?,?,?,?)
		 ON CONFLICT(user_id, date) DO UPDATE SET
		   words_found=excluded.words_found, tier=excluded.tier
		 WHERE excluded.words_found > daily_results.words_found`,
		r.UserID, r.Date, r.PuzzleIndex, r.WordsFound, r.Tier,
	)
	return err
}

// LBRow is one leaderboard entry.
type LBRow struct {
	UserID     string `json:"userId"`
	WordsFound int    `json:"wordsFound"`
	Tier       string `json:"tier"`
}

// Leaderboard returns the top results for a date, most words first.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, words_found, tier
		 FROM daily_results
		 WHERE date=?
		 ORDER BY words_found DESC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.WordsFound, &r.Tier); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
