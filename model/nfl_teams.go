package model

import (
	"fmt"
	"strings"
)

// NFLTeam is identified by the abbreviation sleeper uses in its feeds,
// e.g. "KC" or "SF". The location, mascot, and nicknames are alternate
// spellings accepted by ParseTeam.
type NFLTeam struct {
	abbr   string
	loc    string
	mascot string
	nick   []string // other names in common use, e.g. Philly for PHI
}

func (t *NFLTeam) String() string {
	return t.abbr
}

func (t *NFLTeam) Friendly() string {
	if t.loc == "" {
		return t.abbr
	}
	return fmt.Sprintf("%s %s", t.loc, t.mascot)
}

var (
	TEAM_FA *NFLTeam = &NFLTeam{abbr: "FA", nick: []string{"FA*"}}

	// NFC
	TEAM_ARI *NFLTeam = &NFLTeam{abbr: "ARI", loc: "Arizona", mascot: "Cardinals", nick: []string{"Cards"}}
	TEAM_ATL *NFLTeam = &NFLTeam{abbr: "ATL", loc: "Atlanta", mascot: "Falcons"}
	TEAM_CAR *NFLTeam = &NFLTeam{abbr: "CAR", loc: "Carolina", mascot: "Panthers"}
	TEAM_CHI *NFLTeam = &NFLTeam{abbr: "CHI", loc: "Chicago", mascot: "Bears"}
	TEAM_DAL *NFLTeam = &NFLTeam{abbr: "DAL", loc: "Dallas", mascot: "Cowboys"}
	TEAM_DET *NFLTeam = &NFLTeam{abbr: "DET", loc: "Detroit", mascot: "Lions"}
	TEAM_GB  *NFLTeam = &NFLTeam{abbr: "GB", loc: "Green Bay", mascot: "Packers", nick: []string{"GBP"}}
	TEAM_LAR *NFLTeam = &NFLTeam{abbr: "LAR", loc: "Los Angeles", mascot: "Rams"}
	TEAM_MIN *NFLTeam = &NFLTeam{abbr: "MIN", loc: "Minnesota", mascot: "Vikings"}
	TEAM_NO  *NFLTeam = &NFLTeam{abbr: "NO", loc: "New Orleans", mascot: "Saints", nick: []string{"NOS"}}
	TEAM_NYG *NFLTeam = &NFLTeam{abbr: "NYG", loc: "New York", mascot: "Giants"}
	TEAM_PHI *NFLTeam = &NFLTeam{abbr: "PHI", loc: "Philadelphia", mascot: "Eagles", nick: []string{"Philly"}}
	TEAM_SF  *NFLTeam = &NFLTeam{abbr: "SF", loc: "San Francisco", mascot: "49ers", nick: []string{"SFO", "Niners", "9ers"}}
	TEAM_SEA *NFLTeam = &NFLTeam{abbr: "SEA", loc: "Seattle", mascot: "Seahawks", nick: []string{"Hawks"}}
	TEAM_TB  *NFLTeam = &NFLTeam{abbr: "TB", loc: "Tampa Bay", mascot: "Buccaneers", nick: []string{"TBB", "Bucs"}}
	TEAM_WAS *NFLTeam = &NFLTeam{abbr: "WAS", loc: "Washington", mascot: "Commanders"}

	// AFC
	TEAM_BAL *NFLTeam = &NFLTeam{abbr: "BAL", loc: "Baltimore", mascot: "Ravens"}
	TEAM_BUF *NFLTeam = &NFLTeam{abbr: "BUF", loc: "Buffalo", mascot: "Bills"}
	TEAM_CIN *NFLTeam = &NFLTeam{abbr: "CIN", loc: "Cincinnati", mascot: "Bengals"}
	TEAM_CLE *NFLTeam = &NFLTeam{abbr: "CLE", loc: "Cleveland", mascot: "Browns"}
	TEAM_DEN *NFLTeam = &NFLTeam{abbr: "DEN", loc: "Denver", mascot: "Broncos"}
	TEAM_HOU *NFLTeam = &NFLTeam{abbr: "HOU", loc: "Houston", mascot: "Texans"}
	TEAM_IND *NFLTeam = &NFLTeam{abbr: "IND", loc: "Indianapolis", mascot: "Colts", nick: []string{"Indy"}}
	TEAM_JAX *NFLTeam = &NFLTeam{abbr: "JAX", loc: "Jacksonville", mascot: "Jaguars", nick: []string{"JAC", "Jags"}}
	TEAM_KC  *NFLTeam = &NFLTeam{abbr: "KC", loc: "Kansas City", mascot: "Chiefs", nick: []string{"KCC"}}
	TEAM_LV  *NFLTeam = &NFLTeam{abbr: "LV", loc: "Las Vegas", mascot: "Raiders", nick: []string{"LVR"}}
	TEAM_LAC *NFLTeam = &NFLTeam{abbr: "LAC", loc: "Los Angeles", mascot: "Chargers"}
	TEAM_MIA *NFLTeam = &NFLTeam{abbr: "MIA", loc: "Miami", mascot: "Dolphins"}
	TEAM_NE  *NFLTeam = &NFLTeam{abbr: "NE", loc: "New England", mascot: "Patriots", nick: []string{"NEP", "Pats"}}
	TEAM_NYJ *NFLTeam = &NFLTeam{abbr: "NYJ", loc: "New York", mascot: "Jets"}
	TEAM_PIT *NFLTeam = &NFLTeam{abbr: "PIT", loc: "Pittsburgh", mascot: "Steelers", nick: []string{"Pitt"}}
	TEAM_TEN *NFLTeam = &NFLTeam{abbr: "TEN", loc: "Tennessee", mascot: "Titans"}

	teamMap map[string]*NFLTeam = buildTeamMap()
)

// ParseTeam maps any of the accepted spellings to a team. Unknown names,
// including the empty string, map to TEAM_FA since that is how sleeper
// reports players without a team.
func ParseTeam(name string) *NFLTeam {
	t := teamMap[strings.ToLower(name)]
	if t == nil {
		return TEAM_FA
	}
	return t
}

func buildTeamMap() map[string]*NFLTeam {
	teams := []*NFLTeam{
		// NFC
		TEAM_ARI, TEAM_ATL, TEAM_CAR, TEAM_CHI, TEAM_DAL, TEAM_DET, TEAM_GB, TEAM_LAR,
		TEAM_MIN, TEAM_NO, TEAM_NYG, TEAM_PHI, TEAM_SF, TEAM_SEA, TEAM_TB, TEAM_WAS,
		// AFC
		TEAM_BAL, TEAM_BUF, TEAM_CIN, TEAM_CLE, TEAM_DEN, TEAM_HOU, TEAM_IND, TEAM_JAX,
		TEAM_KC, TEAM_LV, TEAM_LAC, TEAM_MIA, TEAM_NE, TEAM_NYJ, TEAM_PIT, TEAM_TEN,
		// Other
		TEAM_FA,
	}

	teamMap := make(map[string]*NFLTeam)
	for _, t := range teams {
		teamMap[strings.ToLower(t.abbr)] = t

		if t.loc != "" {
			teamMap[strings.ToLower(t.loc)] = t
		}

		if t.mascot != "" {
			teamMap[strings.ToLower(t.mascot)] = t
		}

		for _, n := range t.nick {
			teamMap[strings.ToLower(n)] = t
		}
	}
	return teamMap
}
