package sleeper

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mww/fantasy_assistant/model"
	"github.com/mww/fantasy_assistant/testutils"
)

func TestGetNFLState(t *testing.T) {
	server := testutils.NewFakeSleeperServer()
	defer server.Close()
	c := NewForTest(server.URL())

	state, err := c.GetNFLState()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := &model.NFLState{Season: "2024", Week: 3, DisplayWeek: 3}
	if !reflect.DeepEqual(state, expected) {
		t.Errorf("expected: %v, got %v", expected, state)
	}
}

func TestGetLeague(t *testing.T) {
	server := testutils.NewFakeSleeperServer()
	defer server.Close()
	c := NewForTest(server.URL())

	league, err := c.GetLeague(testutils.LeagueID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if league.Name != "Test League" {
		t.Errorf("expected 'Test League', got '%s'", league.Name)
	}
	if league.Settings.PlayoffTeams != 4 || league.Settings.PlayoffWeekStart != 15 {
		t.Errorf("unexpected settings: %+v", league.Settings)
	}
}

func TestGetLeagueUsers(t *testing.T) {
	server := testutils.NewFakeSleeperServer()
	defer server.Close()
	c := NewForTest(server.URL())

	users, err := c.GetLeagueUsers(testutils.LeagueID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []model.User{
		{ID: "u1", DisplayName: "alice", TeamName: "Alice's Aces"},
		{ID: "u2", DisplayName: "bob"},
	}
	if !reflect.DeepEqual(users, expected) {
		t.Errorf("expected: %v, got %v", expected, users)
	}
}

func TestGetPlayers(t *testing.T) {
	server := testutils.NewFakeSleeperServer()
	defer server.Close()
	c := NewForTest(server.URL())

	players, err := c.GetPlayers("2024", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(players) != 5 {
		t.Fatalf("expected 5 players, got %d", len(players))
	}

	// The feed is ordered by projected points, and the season ranks come
	// from a second request merged by player id.
	first := players[0]
	if first.FullName() != "Justin Jefferson" {
		t.Errorf("expected 'Justin Jefferson' first, got '%s'", first.FullName())
	}
	if first.RankPPR != 1 || first.PosRankPPR != 1 {
		t.Errorf("unexpected ranks for %s: %d/%d", first.FullName(), first.RankPPR, first.PosRankPPR)
	}

	second := players[1]
	if second.FullName() != "Patrick Mahomes" || second.RankPPR != 2 {
		t.Errorf("unexpected second player: %s rank %d", second.FullName(), second.RankPPR)
	}
	if second.Position != model.POS_QB || second.Team != model.TEAM_KC {
		t.Errorf("unexpected position/team: %s %s", second.Position, second.Team)
	}
}

func TestGetPlayersNoLimit(t *testing.T) {
	server := testutils.NewFakeSleeperServer()
	defer server.Close()
	c := NewForTest(server.URL())

	players, err := c.GetPlayers("2024", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(players) != 7 {
		t.Errorf("expected the full feed of 7 players, got %d", len(players))
	}
}

func TestGetPlayer(t *testing.T) {
	server := testutils.NewFakeSleeperServer()
	defer server.Close()
	c := NewForTest(server.URL())

	p, err := c.GetPlayer(testutils.PlayerIDFallback, "2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FullName() != "Practice Squad" || p.RankPPR != 150 {
		t.Errorf("unexpected player: %s rank %d", p.FullName(), p.RankPPR)
	}

	// Sleeper reports unknown players as a null body, not a 404.
	if _, err := c.GetPlayer("does-not-exist", "2024"); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestGetPlayerWeeklyStats(t *testing.T) {
	server := testutils.NewFakeSleeperServer()
	defer server.Close()
	c := NewForTest(server.URL())

	stats, err := c.GetPlayerWeeklyStats(testutils.PlayerIDMahomes, "2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Weeks with a null entry are dropped entirely.
	if len(stats) != 1 {
		t.Fatalf("expected 1 week of stats, got %d", len(stats))
	}

	expected := model.WeekStat{Week: 1, Opponent: "CIN", Points: 25.5}
	if !reflect.DeepEqual(stats[1], expected) {
		t.Errorf("expected: %v, got %v", expected, stats[1])
	}
}

func TestGetLeagueStandings(t *testing.T) {
	server := testutils.NewFakeSleeperServer()
	defer server.Close()
	c := NewForTest(server.URL())

	standings, err := c.GetLeagueStandings(testutils.LeagueID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("expected 2 standings, got %d", len(standings))
	}

	// The raw feed is unordered; the client sorts by wins, then points.
	if standings[0].RosterID != 1 || standings[1].RosterID != 2 {
		t.Errorf("standings out of order: %v", standings)
	}
}

func TestGetPlayerNews(t *testing.T) {
	server := testutils.NewFakeSleeperServer()
	defer server.Close()
	c := NewForTest(server.URL())

	news, err := c.GetPlayerNews(testutils.PlayerIDMahomes, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(news) != 2 {
		t.Fatalf("expected 2 news items, got %d", len(news))
	}

	if news[0].Title != "Mahomes throws four touchdowns" || news[0].Source != "rotowire" {
		t.Errorf("unexpected first item: %+v", news[0])
	}
	if news[1].URL != "" || news[1].Analysis != "" {
		t.Errorf("expected second item to have no url or analysis: %+v", news[1])
	}
}

func TestGetUser(t *testing.T) {
	server := testutils.NewFakeSleeperServer()
	defer server.Close()
	c := NewForTest(server.URL())

	user, err := c.GetUser(testutils.UserAlice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != testutils.UserAliceID {
		t.Errorf("expected user id '%s', got '%s'", testutils.UserAliceID, user.ID)
	}

	if _, err := c.GetUser("nobody"); err == nil {
		t.Errorf("expected an error for an unknown user")
	}
}

func TestGetLeaguesForUser(t *testing.T) {
	server := testutils.NewFakeSleeperServer()
	defer server.Close()
	c := NewForTest(server.URL())

	leagues, err := c.GetLeaguesForUser(testutils.UserAliceID, "2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leagues) != 1 || leagues[0].ID != testutils.LeagueID {
		t.Errorf("unexpected leagues: %v", leagues)
	}
}

func TestResponseCaching(t *testing.T) {
	server := testutils.NewFakeSleeperServer()
	defer server.Close()
	c := NewForTest(server.URL())

	for i := 0; i < 3; i++ {
		if _, err := c.GetNFLState(); err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
	}

	if n := server.RequestCount(); n != 1 {
		t.Errorf("expected 1 request to reach the server, got %d", n)
	}
}

func TestGraphQLNotCached(t *testing.T) {
	server := testutils.NewFakeSleeperServer()
	defer server.Close()
	c := NewForTest(server.URL())

	for i := 0; i < 2; i++ {
		if _, err := c.GetLeagueStandings(testutils.LeagueID); err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
	}

	if n := server.RequestCount(); n != 2 {
		t.Errorf("expected 2 requests to reach the server, got %d", n)
	}
}
