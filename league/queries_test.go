package league

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/mww/fantasy_assistant/model"
)

func TestStandingsTable(t *testing.T) {
	l, _ := newTestLeague(t)

	table, err := l.StandingsTable()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := [][]string{
		{"1", "alice", "Alice's Aces", "2-0", "250", "180.5", "1"},
		{"2", "bob", "Team bob", "1-1", "210.5", "201.25", "3"},
	}
	if !reflect.DeepEqual(table.Rows, expected) {
		t.Errorf("expected: %v, got %v", expected, table.Rows)
	}
}

func TestStatus(t *testing.T) {
	l, _ := newTestLeague(t)

	status, err := l.Status()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"League Name: Test League",
		"Current NFL Week: 3",
		"Fantasy Playoffs Start Week: 15",
		"Number of Playoff Teams: 4 (out of 2)",
		"Standings:",
		"alice",
	} {
		if !strings.Contains(status, want) {
			t.Errorf("status missing '%s':\n%s", want, status)
		}
	}
}

func TestPlayerStatsTable(t *testing.T) {
	l, _ := newTestLeague(t)

	table, canonical, err := l.PlayerStatsTable("Mahomes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if canonical != "Patrick Mahomes" {
		t.Errorf("expected 'Patrick Mahomes', got '%s'", canonical)
	}

	// Every completed week gets a row, zero-filled when the player had no
	// recorded game.
	expected := [][]string{
		{"1", "CIN", "25.5"},
		{"2", "", "0"},
	}
	if !reflect.DeepEqual(table.Rows, expected) {
		t.Errorf("expected: %v, got %v", expected, table.Rows)
	}
}

func TestPlayerStats(t *testing.T) {
	l, _ := newTestLeague(t)

	out, err := l.PlayerStats("Mahomes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "2024 Stats for Patrick Mahomes") {
		t.Errorf("missing header:\n%s", out)
	}
}

func TestPlayerNews(t *testing.T) {
	l, _ := newTestLeague(t)

	out, err := l.PlayerNews("Mahomes", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Recent news about Patrick Mahomes",
		"**Mahomes throws four touchdowns**",
		"Analysis:\nStart him with confidence every week.",
		"[Rotowire](https://example.com/news/mahomes-four-tds)",
		"**Mahomes limited in Wednesday practice**",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("news missing '%s':\n%s", want, out)
		}
	}

	// The second item has no url, so no attribution link for it.
	if strings.Count(out, "](") != 1 {
		t.Errorf("expected exactly one source link:\n%s", out)
	}
}

func TestPlayerOwner(t *testing.T) {
	l, _ := newTestLeague(t)

	tests := map[string]struct {
		query    string
		expected string
	}{
		"owned":      {query: "Justin Jefferson", expected: "Current owner of Justin Jefferson is alice"},
		"owned bob":  {query: "Kelce", expected: "Current owner of Travis Kelce is bob"},
		"free agent": {query: "Josh Allen", expected: "Current owner of Josh Allen is Free Agent"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			a, err := l.PlayerOwner(tc.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a != tc.expected {
				t.Errorf("expected: '%s', got '%s'", tc.expected, a)
			}
		})
	}
}

func TestPlayerDraftPosition(t *testing.T) {
	l, _ := newTestLeague(t)

	a, err := l.PlayerDraftPosition("Mahomes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != "Patrick Mahomes: Round 1 Pick 1" {
		t.Errorf("unexpected result: '%s'", a)
	}

	a, err = l.PlayerDraftPosition("Josh Allen")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != "Josh Allen: Undrafted" {
		t.Errorf("unexpected result: '%s'", a)
	}
}

func TestPlayerRankingsTable(t *testing.T) {
	l, _ := newTestLeague(t)

	table, err := l.PlayerRankingsTable("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 7 {
		t.Fatalf("expected 7 ranked players, got %d", len(table.Rows))
	}
	if table.Rows[0][0] != "Justin Jefferson" || table.Rows[1][0] != "Patrick Mahomes" {
		t.Errorf("unexpected order: %v", table.Rows)
	}
	// The draft position rides along for keeper conversations.
	if table.Rows[0][6] != "Round 1 Pick 2" {
		t.Errorf("expected Jefferson's draft position, got '%s'", table.Rows[0][6])
	}
}

func TestPlayerRankingsByPosition(t *testing.T) {
	l, _ := newTestLeague(t)

	table, err := l.PlayerRankingsTable(model.POS_QB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		names = append(names, row[0])
	}
	expected := []string{"Patrick Mahomes", "Josh Allen", "Jalen Hurts"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("expected: %v, got %v", expected, names)
	}
}

func TestPlayerRankingsCap(t *testing.T) {
	l := &League{}
	for i := 1; i <= 40; i++ {
		l.universe = append(l.universe, &model.Player{
			ID:         fmt.Sprintf("wr%d", i),
			FirstName:  "Receiver",
			LastName:   fmt.Sprintf("Number%d", i),
			Position:   model.POS_WR,
			Team:       model.TEAM_FA,
			RankPPR:    i,
			PosRankPPR: i,
		})
	}

	table, err := l.PlayerRankingsTable("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(table.Rows) != rankingsLimit {
		t.Fatalf("expected %d rows, got %d", rankingsLimit, len(table.Rows))
	}
	if table.Rows[0][4] != "1" || table.Rows[29][4] != "30" {
		t.Errorf("expected ranks 1..30 ascending, got first '%s', last '%s'",
			table.Rows[0][4], table.Rows[29][4])
	}
}

func TestPlayerRankingsInvalidPosition(t *testing.T) {
	l, _ := newTestLeague(t)

	if _, err := l.PlayerRankingsTable(model.POS_UNKNOWN); err == nil {
		t.Errorf("expected an error for an invalid position")
	}
}

func TestRosterTable(t *testing.T) {
	l, _ := newTestLeague(t)

	table, err := l.RosterTable("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 roster rows, got %d", len(table.Rows))
	}

	// Starters come first.
	starter := table.Rows[0]
	if starter[0] != "Patrick Mahomes" || starter[5] != "true" {
		t.Errorf("unexpected starter row: %v", starter)
	}
	if starter[6] != "18.6" || starter[7] != "ATL" {
		t.Errorf("unexpected projection columns: %v", starter)
	}

	bench := table.Rows[1]
	if bench[0] != "Justin Jefferson" || bench[5] != "false" {
		t.Errorf("unexpected bench row: %v", bench)
	}
}

func TestRosterTableFallbackPlayer(t *testing.T) {
	l, _ := newTestLeague(t)

	// One of bob's players is outside the bounded universe and is loaded
	// with an individual request instead.
	table, err := l.RosterTable("bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 roster rows, got %d", len(table.Rows))
	}
	if table.Rows[1][0] != "Practice Squad" {
		t.Errorf("expected the fallback player, got '%s'", table.Rows[1][0])
	}
}

func TestRosterForOwnerNotFound(t *testing.T) {
	l, _ := newTestLeague(t)

	out, err := l.RosterForOwner("charlie")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Owner charlie not found") {
		t.Errorf("missing not-found message: %s", out)
	}
	if !strings.Contains(out, "alice, bob") {
		t.Errorf("missing the list of valid owners: %s", out)
	}
}

func TestBestAvailable(t *testing.T) {
	l, _ := newTestLeague(t)

	table, err := l.BestAvailableTable(model.POS_QB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := [][]string{
		{"Josh Allen", "QB", "BUF", "JAX", "25.3"},
		{"Jalen Hurts", "QB", "PHI", "NO", "20.1"},
	}
	if !reflect.DeepEqual(table.Rows, expected) {
		t.Errorf("expected: %v, got %v", expected, table.Rows)
	}

	// A position with no available players renders an empty table, not an
	// error.
	table, err = l.BestAvailableTable(model.POS_K)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("expected no rows, got %v", table.Rows)
	}

	if _, err := l.BestAvailableTable(model.POS_UNKNOWN); err == nil {
		t.Errorf("expected an error for an invalid position")
	}
}

func TestRecentTransactions(t *testing.T) {
	l, _ := newTestLeague(t)

	out, err := l.RecentTransactions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Transactions for week 3",
		"Josh Allen (alice)",
		"Justin Jefferson (alice)",
		"Jalen Hurts (bob)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("transactions missing '%s':\n%s", want, out)
		}
	}
}
