package model

import "fmt"

type League struct {
	ID       string
	Name     string
	Season   string
	Settings LeagueSettings
}

type LeagueSettings struct {
	PlayoffTeams     int
	PlayoffWeekStart int
}

type User struct {
	ID          string
	DisplayName string
	TeamName    string
}

// FriendlyTeamName falls back to a name derived from the owner when the
// user never set a team name, matching how sleeper renders such teams.
func (u *User) FriendlyTeamName() string {
	if u.TeamName == "" {
		return fmt.Sprintf("Team %s", u.DisplayName)
	}
	return u.TeamName
}

// Roster is the season-long player list for one owner. Starters is always
// a subset of Players. The weekly Matchup is the authority for current
// lineups because this object can lag behind weekly moves.
type Roster struct {
	ID       int
	OwnerID  string
	Players  []string
	Starters []string
}

// Matchup is the per-week snapshot of one roster: which players it held
// that week and which of them started.
type Matchup struct {
	RosterID int
	Players  []string
	Starters []string
	Points   float64
}

// Bench returns the players that are on the matchup roster but not in the
// starting lineup, preserving roster order.
func (m *Matchup) Bench() []string {
	starters := make(map[string]bool, len(m.Starters))
	for _, s := range m.Starters {
		starters[s] = true
	}

	bench := make([]string, 0, len(m.Players)-len(m.Starters))
	for _, p := range m.Players {
		if !starters[p] {
			bench = append(bench, p)
		}
	}
	return bench
}

type Standing struct {
	RosterID      int
	Wins          int
	Losses        int
	PointsFor     float64
	PointsAgainst float64
	Transactions  int
}

func (s *Standing) Record() string {
	return fmt.Sprintf("%d-%d", s.Wins, s.Losses)
}

type Draft struct {
	ID        string
	StartTime int64
}

type DraftPick struct {
	PlayerID string
	Round    int
	PickNo   int
}

// Label is the display form used for keeper-value conversations.
func (p *DraftPick) Label() string {
	return fmt.Sprintf("Round %d Pick %d", p.Round, p.PickNo)
}

// Transaction is a weekly roster move. Adds and Drops map player ids to
// the roster id making the move.
type Transaction struct {
	Type   string
	Status string
	Adds   map[string]int
	Drops  map[string]int
}

// NFLState is the league-wide clock: what season it is and which week is
// currently being played/displayed.
type NFLState struct {
	Season      string
	Week        int
	DisplayWeek int
}
