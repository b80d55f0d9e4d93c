package sleeper

import (
	"time"

	"github.com/mww/fantasy_assistant/model"
)

type nflStateJSON struct {
	Season      string `json:"season"`
	Week        int    `json:"week"`
	DisplayWeek int    `json:"display_week"`
}

func (s *nflStateJSON) toState() *model.NFLState {
	return &model.NFLState{
		Season:      s.Season,
		Week:        s.Week,
		DisplayWeek: s.DisplayWeek,
	}
}

type leagueJSON struct {
	LeagueID string             `json:"league_id"`
	Name     string             `json:"name"`
	Season   string             `json:"season"`
	Settings leagueSettingsJSON `json:"settings"`
}

type leagueSettingsJSON struct {
	PlayoffTeams     int `json:"playoff_teams"`
	PlayoffWeekStart int `json:"playoff_week_start"`
}

func (l *leagueJSON) toLeague() *model.League {
	return &model.League{
		ID:     l.LeagueID,
		Name:   l.Name,
		Season: l.Season,
		Settings: model.LeagueSettings{
			PlayoffTeams:     l.Settings.PlayoffTeams,
			PlayoffWeekStart: l.Settings.PlayoffWeekStart,
		},
	}
}

type userJSON struct {
	UserID      string        `json:"user_id"`
	DisplayName string        `json:"display_name"`
	Metadata    *userMetadata `json:"metadata"`
}

type userMetadata struct {
	TeamName string `json:"team_name"`
}

func (u *userJSON) toUser() *model.User {
	user := &model.User{
		ID:          u.UserID,
		DisplayName: u.DisplayName,
	}
	if u.Metadata != nil {
		user.TeamName = u.Metadata.TeamName
	}
	return user
}

type rosterJSON struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
	Starters []string `json:"starters"`
}

func (r *rosterJSON) toRoster() *model.Roster {
	return &model.Roster{
		ID:       r.RosterID,
		OwnerID:  r.OwnerID,
		Players:  r.Players,
		Starters: r.Starters,
	}
}

type matchupJSON struct {
	RosterID int      `json:"roster_id"`
	Players  []string `json:"players"`
	Starters []string `json:"starters"`
	Points   float64  `json:"points"`
}

func (m *matchupJSON) toMatchup() *model.Matchup {
	return &model.Matchup{
		RosterID: m.RosterID,
		Players:  m.Players,
		Starters: m.Starters,
		Points:   m.Points,
	}
}

type draftJSON struct {
	DraftID   string `json:"draft_id"`
	StartTime int64  `json:"start_time"`
}

type draftPickJSON struct {
	PlayerID string `json:"player_id"`
	Round    int    `json:"round"`
	PickNo   int    `json:"pick_no"`
}

type transactionJSON struct {
	Type   string         `json:"type"`
	Status string         `json:"status"`
	Adds   map[string]int `json:"adds"`
	Drops  map[string]int `json:"drops"`
}

// playerJSON is the player object embedded in the stats and projections
// feeds. It is a small slice of what sleeper returns; the rest is unused.
type playerJSON struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Position     string `json:"position"`
	Team         string `json:"team"`
	InjuryStatus string `json:"injury_status"`
}

// projectionRowJSON is one row of a projections or stats feed. Stats is a
// loose map because sleeper reports dozens of stat columns; only the PPR
// ones are read.
type projectionRowJSON struct {
	PlayerID string             `json:"player_id"`
	Player   playerJSON         `json:"player"`
	Opponent string             `json:"opponent"`
	Stats    map[string]float64 `json:"stats"`
}

type rankPair struct {
	rank    int
	posRank int
}

func (r *projectionRowJSON) toPlayer(ranks rankPair) *model.Player {
	return &model.Player{
		ID:           r.PlayerID,
		FirstName:    r.Player.FirstName,
		LastName:     r.Player.LastName,
		Position:     model.ParsePosition(r.Player.Position),
		Team:         model.ParseTeam(r.Player.Team),
		RankPPR:      ranks.rank,
		PosRankPPR:   ranks.posRank,
		InjuryStatus: r.Player.InjuryStatus,
	}
}

func (r *projectionRowJSON) toProjectedPlayer() *model.ProjectedPlayer {
	return &model.ProjectedPlayer{
		PlayerID:        r.PlayerID,
		FirstName:       r.Player.FirstName,
		LastName:        r.Player.LastName,
		Position:        model.ParsePosition(r.Player.Position),
		Team:            model.ParseTeam(r.Player.Team),
		Opponent:        r.Opponent,
		ProjectedPoints: r.Stats["pts_ppr"],
	}
}

// weekEntryJSON is one week in a grouped-by-week stats or projections
// response. Weeks with no game come back as JSON null.
type weekEntryJSON struct {
	Opponent string             `json:"opponent"`
	Stats    map[string]float64 `json:"stats"`
}

type standingJSON struct {
	RosterID          int     `json:"roster_id"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	Fpts              float64 `json:"fpts"`
	FptsAgainst       float64 `json:"fpts_against"`
	TotalTransactions int     `json:"total_transactions"`
}

func (s *standingJSON) toStanding() *model.Standing {
	return &model.Standing{
		RosterID:      s.RosterID,
		Wins:          s.Wins,
		Losses:        s.Losses,
		PointsFor:     s.Fpts,
		PointsAgainst: s.FptsAgainst,
		Transactions:  s.TotalTransactions,
	}
}

type newsJSON struct {
	Metadata  newsMetadataJSON `json:"metadata"`
	Source    string           `json:"source"`
	Published int64            `json:"published"`
}

type newsMetadataJSON struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Analysis    string `json:"analysis"`
	URL         string `json:"url"`
}

func (n *newsJSON) toNewsItem() *model.NewsItem {
	return &model.NewsItem{
		Title:       n.Metadata.Title,
		Description: n.Metadata.Description,
		Analysis:    n.Metadata.Analysis,
		URL:         n.Metadata.URL,
		Source:      n.Source,
		Published:   time.UnixMilli(n.Published),
	}
}
