package logsink

import (
	"context"
	"database/sql"
)

// DayStats aggregates one date's submission activity.
type DayStats struct {
	Date             string `json:"date"`
	PuzzleIndex      int    `json:"puzzleIndex"`
	UniqueUsers      int    `json:"uniqueUsers"`
	TotalSubmissions int    `json:"totalSubmissions"`
}

// Store persists submissions in the puzzle_logs table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Log inserts one submission row.
func (s *Store) Log(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO puzzle_logs(date, puzzle_index, user_id) VALUES(?,?,?)`,
		e.Date, e.PuzzleIndex, e.UserID,
	)
	return err
}

// Stats returns per-date aggregates, newest first.
func (s *Store) Stats(ctx context.Context) ([]DayStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, MAX(puzzle_index), COUNT(DISTINCT user_id), COUNT(1)
		 FROM puzzle_logs
		 GROUP BY date
		 ORDER BY date DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DayStats
	for rows.Next() {
		var d DayStats
		if err := rows.Scan(&d.Date, &d.PuzzleIndex, &d.UniqueUsers, &d.TotalSubmissions); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
