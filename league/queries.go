package league

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/mww/fantasy_assistant/model"
)

// rankingsLimit caps ranking reports so they stay readable in a chat
// response.
const rankingsLimit = 30

var rosterColumns = []string{
	"name",
	"position",
	"team",
	"position_rank",
	"overall_rank",
	"is_current_starter",
	"projected_points",
	"opponent",
	"injury_status",
	"draft_position",
}

// StandingsTable fetches the league standings and assigns rank numbers in
// the order the client returns them (wins, then points for). Standings
// change as games complete, so they are fetched at query time rather than
// held in the snapshot.
func (l *League) StandingsTable() (*model.Table, error) {
	standings, err := l.client.GetLeagueStandings(l.leagueID)
	if err != nil {
		return nil, err
	}

	t := &model.Table{Columns: []string{
		"rank", "team_owner", "team_name", "record",
		"points_for", "points_against", "num_transactions",
	}}
	for i, s := range standings {
		ownerName := "unknown"
		teamName := "unknown"
		if owner := l.users[l.rosterOwner[s.RosterID]]; owner != nil {
			ownerName = owner.DisplayName
			teamName = owner.FriendlyTeamName()
		}
		t.Append(
			strconv.Itoa(i+1),
			ownerName,
			teamName,
			s.Record(),
			formatPoints(s.PointsFor),
			formatPoints(s.PointsAgainst),
			strconv.Itoa(s.Transactions),
		)
	}
	return t, nil
}

// Status reports the league-wide picture: where the season is, when the
// playoffs start, and the current standings.
func (l *League) Status() (string, error) {
	table, err := l.StandingsTable()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "League Name: %s\n", l.league.Name)
	fmt.Fprintf(&b, "Current NFL Week: %d\n", l.state.Week)
	fmt.Fprintf(&b, "Fantasy Playoffs Start Week: %d\n", l.league.Settings.PlayoffWeekStart)
	fmt.Fprintf(&b, "Number of Playoff Teams: %d (out of %d)\n", l.league.Settings.PlayoffTeams, len(table.Rows))
	fmt.Fprintf(&b, "Standings:\n%s", table.Markdown())
	return b.String(), nil
}

// PlayerStatsTable returns one row per completed week of the season for
// the named player, zero-filled for bye weeks and missed games. The
// canonical name of the resolved player is returned alongside the table.
func (l *League) PlayerStatsTable(playerName string) (*model.Table, string, error) {
	playerID, canonical, err := l.resolvePlayer(playerName)
	if err != nil {
		return nil, "", err
	}

	stats, err := l.client.GetPlayerWeeklyStats(playerID, l.state.Season)
	if err != nil {
		return nil, "", err
	}

	t := &model.Table{Columns: []string{"week", "opponent", "points"}}
	for week := 1; week < l.state.DisplayWeek; week++ {
		s := stats[week]
		t.Append(strconv.Itoa(week), s.Opponent, formatPoints(s.Points))
	}
	return t, canonical, nil
}

func (l *League) PlayerStats(playerName string) (string, error) {
	table, canonical, err := l.PlayerStatsTable(playerName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s Stats for %s\n%s", l.state.Season, canonical, table.Markdown()), nil
}

// PlayerNews returns recent news items about the named player as markdown.
// Items without a source link get no attribution line.
func (l *League) PlayerNews(playerName string, limit int) (string, error) {
	if limit <= 0 {
		limit = 3
	}

	playerID, canonical, err := l.resolvePlayer(playerName)
	if err != nil {
		return "", err
	}

	news, err := l.client.GetPlayerNews(playerID, limit)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent news about %s:\n\n", canonical)
	for _, n := range news {
		fmt.Fprintf(&b, "**%s**\n%s\n", n.Title, n.Description)
		if n.Analysis != "" {
			fmt.Fprintf(&b, "\nAnalysis:\n%s\n", n.Analysis)
		}
		if n.URL != "" {
			fmt.Fprintf(&b, "[%s](%s)\n", capitalize(n.Source), n.URL)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// PlayerOwner reports which team owner currently holds the named player.
func (l *League) PlayerOwner(playerName string) (string, error) {
	playerID, canonical, err := l.resolvePlayer(playerName)
	if err != nil {
		return "", err
	}

	owner := l.playerOwner[playerID]
	if owner == "" {
		owner = "Free Agent"
	}
	return fmt.Sprintf("Current owner of %s is %s", canonical, owner), nil
}

// PlayerDraftPosition reports where the named player was taken in the
// league's most recent draft.
func (l *League) PlayerDraftPosition(playerName string) (string, error) {
	playerID, canonical, err := l.resolvePlayer(playerName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %s", canonical, l.draftLabel(playerID)), nil
}

func (l *League) draftLabel(playerID string) string {
	if label, ok := l.draftLabels[playerID]; ok {
		return label
	}
	return "Undrafted"
}

// PlayerRankingsTable lists the top ranked players, optionally filtered to
// one position. With a position the sort key is the positional rank,
// otherwise the overall rank. Unranked players are excluded.
func (l *League) PlayerRankingsTable(position model.Position) (*model.Table, error) {
	byPosition := position != ""
	if byPosition && !validPosition(position) {
		return nil, fmt.Errorf("%s is not a valid position", position)
	}

	ranked := make([]*model.Player, 0, len(l.universe))
	for _, p := range l.universe {
		if byPosition && p.Position != position {
			continue
		}
		if rankOf(p, byPosition) == 0 {
			continue
		}
		ranked = append(ranked, p)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return rankOf(ranked[i], byPosition) < rankOf(ranked[j], byPosition)
	})
	if len(ranked) > rankingsLimit {
		ranked = ranked[:rankingsLimit]
	}

	t := &model.Table{Columns: []string{
		"name", "position", "team", "pos_rank_ppr", "rank_ppr",
		"injury_status", "draft_position",
	}}
	for _, p := range ranked {
		t.Append(
			p.FullName(),
			p.Position.String(),
			p.Team.String(),
			strconv.Itoa(p.PosRankPPR),
			strconv.Itoa(p.RankPPR),
			p.InjuryStatus,
			l.draftLabel(p.ID),
		)
	}
	return t, nil
}

func (l *League) PlayerRankings(position model.Position) (string, error) {
	table, err := l.PlayerRankingsTable(position)
	if err != nil {
		return "", err
	}

	header := "Top ranked players"
	if position != "" {
		header = fmt.Sprintf("Top ranked players at %s", position)
	}
	return fmt.Sprintf("%s:\n\n%s", header, table.Markdown()), nil
}

func rankOf(p *model.Player, byPosition bool) int {
	if byPosition {
		return p.PosRankPPR
	}
	return p.RankPPR
}

func validPosition(position model.Position) bool {
	for _, pos := range model.RosterPositions {
		if pos == position {
			return true
		}
	}
	return false
}

// RosterTable returns the week's roster for the named owner, starters
// first and bench after, each group in lineup order. The owner name must
// match a display name exactly; a nil table means the owner was not
// found. Players outside the bounded universe are fetched individually; a
// player that cannot be loaded at all is logged and skipped rather than
// failing the whole roster.
func (l *League) RosterTable(owner string) (*model.Table, error) {
	userID, ok := l.nameToUser[owner]
	if !ok {
		return nil, nil
	}

	t := &model.Table{Columns: rosterColumns}

	matchup := l.matchups[userID]
	if matchup == nil {
		return t, nil
	}

	lineup := make([]string, 0, len(matchup.Players))
	lineup = append(lineup, matchup.Starters...)
	lineup = append(lineup, matchup.Bench()...)

	for i, playerID := range lineup {
		p := l.players[playerID]
		if p == nil {
			var err error
			p, err = l.client.GetPlayer(playerID, l.state.Season)
			if err != nil {
				log.Printf("error loading roster player %s: %v", playerID, err)
				continue
			}
		}

		var proj model.WeekProjection
		if weekly, err := l.client.GetPlayerWeeklyProjections(playerID, l.state.Season); err != nil {
			log.Printf("error loading projections for %s: %v", playerID, err)
		} else {
			proj = weekly[l.week]
		}

		t.Append(
			p.FullName(),
			p.Position.String(),
			p.Team.String(),
			strconv.Itoa(p.PosRankPPR),
			strconv.Itoa(p.RankPPR),
			strconv.FormatBool(i < len(matchup.Starters)),
			formatPoints(proj.ProjectedPoints),
			proj.Opponent,
			p.InjuryStatus,
			l.draftLabel(playerID),
		)
	}
	return t, nil
}

// RosterForOwner renders RosterTable as markdown. An unknown owner gets a
// help message listing the valid names instead of an error, so a caller
// relaying the response can self-correct.
func (l *League) RosterForOwner(owner string) (string, error) {
	table, err := l.RosterTable(owner)
	if err != nil {
		return "", err
	}
	if table == nil {
		return fmt.Sprintf("Owner %s not found. Available owners: %s",
			owner, strings.Join(l.OwnerNames(), ", ")), nil
	}
	return fmt.Sprintf("Roster for %s:\n\n%s", owner, table.Markdown()), nil
}

// BestAvailableTable returns the precomputed waiver board for one
// position: the top unrostered players by this week's projected points.
func (l *League) BestAvailableTable(position model.Position) (*model.Table, error) {
	entries, ok := l.waiverBoard[position]
	if !ok {
		return nil, fmt.Errorf("%s is not a valid position", position)
	}

	t := &model.Table{Columns: []string{
		"name", "position", "team", "opponent", "projected_points",
	}}
	for _, e := range entries {
		t.Append(
			e.FullName(),
			e.Position.String(),
			e.Team.String(),
			e.Opponent,
			formatPoints(e.ProjectedPoints),
		)
	}
	return t, nil
}

func (l *League) BestAvailable(position model.Position) (string, error) {
	table, err := l.BestAvailableTable(position)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Best available at %s for week %d:\n\n%s",
		position, l.week, table.Markdown()), nil
}

// RecentTransactions summarizes the week's roster moves with player and
// owner names substituted for their ids.
func (l *League) RecentTransactions() (string, error) {
	txns, err := l.client.GetTransactions(l.leagueID, l.week)
	if err != nil {
		return "", err
	}

	t := &model.Table{Columns: []string{"type", "status", "added", "dropped"}}
	for i := range txns {
		t.Append(
			txns[i].Type,
			txns[i].Status,
			l.describeMoves(txns[i].Adds),
			l.describeMoves(txns[i].Drops),
		)
	}
	return fmt.Sprintf("Transactions for week %d:\n\n%s", l.week, t.Markdown()), nil
}

// describeMoves renders an adds or drops map as "Player (owner)" pairs,
// sorted because map order is not stable.
func (l *League) describeMoves(moves map[string]int) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, 0, len(moves))
	for playerID, rosterID := range moves {
		name := playerID
		if p := l.players[playerID]; p != nil {
			name = p.FullName()
		}

		owner := "unknown"
		if u := l.users[l.rosterOwner[rosterID]]; u != nil {
			owner = u.DisplayName
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", name, owner))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// formatPoints trims trailing zeros so whole numbers render without a
// decimal point.
func formatPoints(points float64) string {
	return strconv.FormatFloat(points, 'f', -1, 64)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
