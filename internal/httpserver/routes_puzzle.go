// internal/httpserver/routes_puzzle.go
//
// HTTP routes for the puzzle itself:
//   - GET  /api/puzzle/today     → today's assignment (pattern, index, thresholds)
//   - POST /api/log/interaction  → record one accepted submission (fire-and-forget client side)
//   - GET  /api/logs             → per-date submission aggregates
//
// Interaction logging is best effort from the client's point of view, but the
// server still validates the payload shape so the table stays clean.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shadowgrams/go-server/internal/daily"
	"github.com/shadowgrams/go-server/internal/logsink"
	"github.com/shadowgrams/go-server/internal/puzzle"
)

// todayRes is returned by /api/puzzle/today.
type todayRes struct {
	puzzle.Assignment
	MsUntilNextMidnight int64 `json:"msUntilNextMidnight"`
}

// handlePuzzleToday resolves and returns today's assignment in the reference
// timezone, plus the time remaining until it rolls over.
func (s *Server) handlePuzzleToday(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	a, err := s.resolver.Resolve(now)
	if err != nil {
		log.Error().Err(err).Msg("resolve today")
		http.Error(w, `{"error":"no_puzzle"}`, http.StatusServiceUnavailable)
		return
	}
	ms := daily.UntilMidnight(now, s.resolver.Location()).Milliseconds()
	_ = json.NewEncoder(w).Encode(todayRes{Assignment: a, MsUntilNextMidnight: ms})
}

// handleLogInteraction records one accepted submission. The authenticated
// user id wins over whatever the body claims; guests fall back to the anon
// cookie, then to the body's id.
func (s *Server) handleLogInteraction(w http.ResponseWriter, r *http.Request) {
	var e logsink.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		e.UserID = me.ID
	} else if e.UserID == "" {
		e.UserID = s.ensureAnonID(w, r)
	}

	if !validUserID(e.UserID) {
		http.Error(w, `{"error":"invalid_user"}`, http.StatusBadRequest)
		return
	}
	if e.PuzzleIndex < 1 || e.PuzzleIndex > s.resolver.Library().Len() {
		http.Error(w, `{"error":"invalid_index"}`, http.StatusBadRequest)
		return
	}
	if !validDate(e.Date) {
		http.Error(w, `{"error":"invalid_date"}`, http.StatusBadRequest)
		return
	}

	if err := s.logs.Log(r.Context(), e); err != nil {
		log.Warn().Err(err).Msg("insert puzzle log")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write([]byte(`{"ok":true}`))
}

// handleLogs returns per-date submission aggregates, newest first.
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	stats, err := s.logs.Stats(r.Context())
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if stats == nil {
		stats = []logsink.DayStats{}
	}
	_ = json.NewEncoder(w).Encode(stats)
}

// validUserID accepts the ids this service mints plus short opaque client ids.
func validUserID(id string) bool {
	if len(id) < 4 || len(id) > 64 {
		return false
	}
	for _, r := range id {
		if !(r == '_' || r == '-' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// validDate accepts YYYY-MM-DD only.
func validDate(d string) bool {
	_, err := time.Parse("2006-01-02", d)
	return err == nil
}
