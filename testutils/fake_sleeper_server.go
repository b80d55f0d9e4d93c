// Package testutils provides a fake sleeper API backed by canned JSON so
// tests never touch the network.
package testutils

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

//go:embed sleeperdata
var sleeperdata embed.FS

// Well-known ids served by the fake server. Tests reference these instead
// of repeating string literals.
const (
	LeagueID    = "111222333"
	UserAlice   = "alice"
	UserAliceID = "u1"
	DraftID     = "draft-new"

	// PlayerIDMahomes and friends match the ids in the fixture files.
	PlayerIDMahomes   = "4046"
	PlayerIDJefferson = "6794"
	PlayerIDKelce     = "4866"
	PlayerIDAllen     = "4984"
	PlayerIDHurts     = "6904"
	PlayerIDFallback  = "9999"
)

type FakeSleeperServer struct {
	s *httptest.Server

	mu       sync.Mutex
	requests int
}

func NewFakeSleeperServer() *FakeSleeperServer {
	f := &FakeSleeperServer{}

	r := chi.NewRouter()
	r.Use(f.countRequests)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state/nfl", func(w http.ResponseWriter, r *http.Request) {
			serveFile(w, "state.json")
		})

		r.Route("/league/{leagueID}", func(r chi.Router) {
			r.Get("/", leagueHandler)
			r.Get("/users", leagueHandler2("league_users.json"))
			r.Get("/rosters", leagueHandler2("league_rosters.json"))
			r.Get("/matchups/{week}", leagueHandler2("matchups.json"))
			r.Get("/drafts", leagueHandler2("drafts.json"))
			r.Get("/transactions/{week}", leagueHandler2("transactions.json"))
		})

		r.Get("/draft/{draftID}/picks", draftPicksHandler)

		r.Route("/user", func(r chi.Router) {
			r.Get("/{userID}/leagues/nfl/{year}", userLeaguesHandler)
			r.Get("/{username}", sleeperUserHandler)
		})
	})

	r.Get("/projections/nfl/player/{playerID}", playerWeeklyProjectionsHandler)
	r.Get("/projections/nfl/{season}/{week}", func(w http.ResponseWriter, r *http.Request) {
		serveFile(w, "weekly_projections.json")
	})
	r.Get("/projections/nfl/{season}", func(w http.ResponseWriter, r *http.Request) {
		serveFile(w, "season_projections.json")
	})

	r.Get("/stats/nfl/player/{playerID}", playerStatsHandler)
	r.Get("/stats/nfl/{season}", func(w http.ResponseWriter, r *http.Request) {
		serveFile(w, "season_stats.json")
	})

	r.Post("/graphql", graphqlHandler)

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

// RequestCount reports how many HTTP requests the server has seen. Cache
// tests use it to prove a repeat fetch never reached the network.
func (f *FakeSleeperServer) RequestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func (f *FakeSleeperServer) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests++
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func leagueHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueID") != LeagueID {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	serveFile(w, "league.json")
}

// leagueHandler2 serves a league sub-resource for the known league and an
// empty list for any other.
func leagueHandler2(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "leagueID") != LeagueID {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("[]"))
			return
		}
		serveFile(w, name)
	}
}

func draftPicksHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "draftID") != DraftID {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
		return
	}
	serveFile(w, "draft_picks.json")
}

func userLeaguesHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	year := chi.URLParam(r, "year")

	if userID == UserAliceID && year == "2024" {
		serveFile(w, "user_leagues.json")
	} else {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
	}
}

func sleeperUserHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "username") == UserAlice {
		serveFile(w, "sleeper_user_alice.json")
	} else {
		// Requesting a user that doesn't exist returns a 200 with "null"
		// as the response body as of 2024-08-12.
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("null"))
	}
}

// playerStatsHandler serves both forms of the player stats endpoint: the
// per-week grouping used for score history and the season summary used
// for single player lookups.
func playerStatsHandler(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	if r.URL.Query().Get("grouping") == "week" {
		if playerID == PlayerIDMahomes {
			serveFile(w, "player_weekly_stats.json")
		} else {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("{}"))
		}
		return
	}

	if playerID == PlayerIDFallback {
		serveFile(w, "player_fallback.json")
	} else {
		// Unknown players come back as a JSON null body.
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("null"))
	}
}

func playerWeeklyProjectionsHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "player_weekly_projections.json")
}

// graphqlHandler dispatches on the operationName in the request body, the
// same way sleeper's real graphql endpoint distinguishes queries.
func graphqlHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OperationName string `json:"operationName"`
		Query         string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch req.OperationName {
	case "get_player_news_for_ids":
		if strings.Contains(req.Query, fmt.Sprintf("player_id: %q", PlayerIDMahomes)) {
			serveFile(w, "player_news.json")
		} else {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"data":{"news":[]}}`))
		}
	case "metadata":
		serveFile(w, "league_standings.json")
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		log.Printf("error reading sleeperdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
