// internal/httpserver/routes_daily.go
//
// HTTP routes for daily results.
// Exposes two endpoints under /daily:
//   - POST /daily/result      → record (or improve) the caller's result for today
//   - GET  /daily/leaderboard → top 20 results for today (or a given date)
//
// One row per user per day; re-submitting only ever raises the word count.
// Guests report under their anon cookie id; authenticated users also get
// their profile stats bumped the first time they report a given date.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/shadowgrams/go-server/internal/daily"
	"github.com/shadowgrams/go-server/internal/tier"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv   *Server
	store *daily.Store
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{srv: s, store: daily.NewStore(s.db)}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/result", dd.handleResult)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// dateKeyNow returns today's date key in the reference timezone.
func (d *dailyServer) dateKeyNow() string {
	return daily.DateKey(time.Now(), d.srv.resolver.Location())
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) (string, bool) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, true
	}
	return d.srv.ensureAnonID(w, r), false
}

// -----------------------------------------------------------------------------
// /daily/result

// resultReq is the request payload for /daily/result.
type resultReq struct {
	WordsFound int    `json:"wordsFound"`
	Tier       string `json:"tier"`
}

// resultRes is returned by /daily/result.
type resultRes struct {
	Date       string `json:"date"`
	WordsFound int    `json:"wordsFound"`
	Tier       string `json:"tier"`
	Recorded   bool   `json:"recorded"`
}

// handleResult validates and records the caller's result for today.
// The submitted tier must be one of the four known tiers and the word count
// non-negative; the server trusts the client's scoring beyond that, the same
// way the interaction log does.
func (d *dailyServer) handleResult(w http.ResponseWriter, r *http.Request) {
	uid, authed := d.userIDWithAnon(w, r)

	var p resultReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if p.WordsFound < 0 || !validTier(p.Tier) {
		http.Error(w, `{"error":"invalid"}`, http.StatusBadRequest)
		return
	}

	date := d.dateKeyNow()
	a, err := d.srv.resolver.Resolve(time.Now())
	if err != nil {
		http.Error(w, `{"error":"no_puzzle"}`, http.StatusServiceUnavailable)
		return
	}

	first := false
	if authed {
		had, err := d.store.HasResult(r.Context(), uid, date)
		if err == nil && !had {
			first = true
		}
	}

	if err := d.store.UpsertResult(r.Context(), daily.Result{
		UserID: uid, Date: date, PuzzleIndex: a.PuzzleIndex,
		WordsFound: p.WordsFound, Tier: p.Tier,
	}); err != nil {
		log.Warn().Err(err).Str("user", uid).Msg("upsert daily result")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}

	// Profile stats bump once per date, on the first report.
	if first {
		tx, err := d.srv.db.Begin()
		if err == nil {
			if err := d.srv.bumpStats(tx, uid, p.Tier == string(tier.Best)); err != nil {
				log.Warn().Err(err).Str("user", uid).Msg("bump stats")
			}
			_ = tx.Commit()
		}
	}

	_ = json.NewEncoder(w).Encode(resultRes{
		Date: date, WordsFound: p.WordsFound, Tier: p.Tier, Recorded: true,
	})
}

// validTier accepts the four score tiers.
func validTier(t string) bool {
	switch tier.Tier(t) {
	case tier.Base, tier.Good, tier.Better, tier.Best:
		return true
	}
	return false
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = d.dateKeyNow()
	} else if !validDate(date) {
		http.Error(w, `{"error":"invalid_date"}`, http.StatusBadRequest)
		return
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
