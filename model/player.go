package model

import (
	"fmt"
	"strings"
	"time"
)

// Player is one entry in the bounded player universe. The universe comes
// from the season projections feed ordered by projected PPR points, so
// only the top-N realistic fantasy players are present. RankPPR and
// PosRankPPR are the season scoring ranks from the stats feed.
type Player struct {
	ID           string
	FirstName    string
	LastName     string
	Position     Position
	Team         *NFLTeam
	RankPPR      int
	PosRankPPR   int
	InjuryStatus string
}

// FullName is the canonical display name used for name lookups.
func (p *Player) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", p.FirstName, p.LastName))
}

// ProjectedPlayer is one row of a weekly projections feed. The feed is
// ordered by ProjectedPoints descending, and the waiver board preserves
// that order.
type ProjectedPlayer struct {
	PlayerID        string
	FirstName       string
	LastName        string
	Position        Position
	Team            *NFLTeam
	Opponent        string
	ProjectedPoints float64
}

func (p *ProjectedPlayer) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", p.FirstName, p.LastName))
}

// WeekStat is a single week of scoring for one player. Weeks where the
// player had no recorded game have zero Points and an empty Opponent.
type WeekStat struct {
	Week     int
	Opponent string
	Points   float64
}

// WeekProjection is the projected scoring for one player in one week.
type WeekProjection struct {
	Opponent        string
	ProjectedPoints float64
}

type NewsItem struct {
	Title       string
	Description string
	Analysis    string
	URL         string
	Source      string
	Published   time.Time
}

// Take a full name, like "Deebo Samuel Sr." and return "Deebo Samuel".
func TrimNameSuffix(fullName string) string {
	suffixList := []string{
		"Jr.",
		"Sr.",
		"II",
		"IV",
	}

	for _, s := range suffixList {
		fullName = strings.TrimSuffix(fullName, s)
	}

	return strings.TrimSpace(fullName)
}
