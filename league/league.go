// Package league builds read-only snapshots of a sleeper league and
// answers questions about them. A snapshot is created once per league and
// week, loads everything it needs eagerly, and never mutates afterwards.
package league

import (
	"fmt"
	"sort"

	"github.com/mww/fantasy_assistant/model"
	"github.com/mww/fantasy_assistant/sleeper"
)

const (
	// DefaultPlayerLimit bounds the player universe to the top players by
	// season projected points. Players outside the window are not
	// resolvable by name; roster queries fall back to per-player fetches
	// for them.
	DefaultPlayerLimit = 800

	// waiverBoardSize is how many free agents are kept per position.
	waiverBoardSize = 10
)

// League is a snapshot of one sleeper league for one week. Construction
// either fully succeeds or fails; there is no partially-built snapshot
// and no in-place refresh. Build a new one to see newer data. Queries
// never mutate the snapshot, so concurrent use is safe as long as the
// client is concurrency-safe.
type League struct {
	client sleeper.Client

	leagueID string
	week     int
	state    *model.NFLState
	league   *model.League

	universe []*model.Player           // bounded player universe, feed order
	players  map[string]*model.Player  // universe keyed by player id
	users    map[string]*model.User    // keyed by user id
	matchups map[string]*model.Matchup // keyed by owner user id

	nameToUser  map[string]string // display name -> user id
	rosterOwner map[int]string    // roster id -> owner user id
	playerOwner map[string]string // player id -> owner display name

	playerNames  []string          // canonical names, universe feed order
	nameToPlayer map[string]string // canonical name -> player id

	draftLabels map[string]string // player id -> "Round R Pick P"
	waiverBoard map[model.Position][]model.ProjectedPlayer
}

type options struct {
	week        int
	playerLimit int
}

type Option func(*options)

// WithWeek pins the snapshot to a specific week instead of the league's
// current display week. It controls which matchups and projections are
// loaded; season stat history is unaffected.
func WithWeek(week int) Option {
	return func(o *options) {
		o.week = week
	}
}

func WithPlayerLimit(limit int) Option {
	return func(o *options) {
		o.playerLimit = limit
	}
}

// New fetches everything the snapshot needs, in a fixed order, and builds
// the derived indexes. Any fetch failure aborts construction; the error
// names the fetch that failed. Retry policy belongs to the client, not
// here.
func New(client sleeper.Client, leagueID string, opts ...Option) (*League, error) {
	o := options{playerLimit: DefaultPlayerLimit}
	for _, opt := range opts {
		opt(&o)
	}

	state, err := client.GetNFLState()
	if err != nil {
		return nil, err
	}

	week := o.week
	if week == 0 {
		week = state.DisplayWeek
	}

	l := &League{
		client:   client,
		leagueID: leagueID,
		week:     week,
		state:    state,
	}

	if l.league, err = client.GetLeague(leagueID); err != nil {
		return nil, err
	}

	players, err := client.GetPlayers(state.Season, o.playerLimit)
	if err != nil {
		return nil, err
	}

	users, err := client.GetLeagueUsers(leagueID)
	if err != nil {
		return nil, err
	}

	rosters, err := client.GetLeagueRosters(leagueID)
	if err != nil {
		return nil, err
	}

	matchups, err := client.GetLeagueMatchups(leagueID, week)
	if err != nil {
		return nil, err
	}

	picks, err := latestDraftPicks(client, leagueID)
	if err != nil {
		return nil, err
	}

	projections, err := client.GetWeeklyProjections(state.Season, week)
	if err != nil {
		return nil, err
	}

	l.buildUserIndexes(users, rosters)
	l.buildMatchupIndexes(matchups)
	l.buildNameIndex(players)
	l.buildDraftIndex(picks)
	l.buildWaiverBoard(projections)

	return l, nil
}

// FromUserDefaultLeague builds a snapshot of the first league sleeper
// lists for a username. Callers whose users are in several leagues should
// let them pick a league id and call New directly.
func FromUserDefaultLeague(client sleeper.Client, username string, opts ...Option) (*League, error) {
	state, err := client.GetNFLState()
	if err != nil {
		return nil, err
	}

	user, err := client.GetUser(username)
	if err != nil {
		return nil, err
	}

	leagues, err := client.GetLeaguesForUser(user.ID, state.Season)
	if err != nil {
		return nil, err
	}
	if len(leagues) == 0 {
		return nil, fmt.Errorf("no leagues found for user %s", username)
	}

	return New(client, leagues[0].ID, opts...)
}

// latestDraftPicks returns the picks of the league's most recent draft.
// Older drafts (previous keeper seasons) are ignored. A league with no
// draft simply has no picks.
func latestDraftPicks(client sleeper.Client, leagueID string) ([]model.DraftPick, error) {
	drafts, err := client.GetLeagueDrafts(leagueID)
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, nil
	}

	latest := drafts[0]
	for _, d := range drafts[1:] {
		if d.StartTime > latest.StartTime {
			latest = d
		}
	}

	return client.GetDraftPicks(latest.ID)
}

func (l *League) buildUserIndexes(users []model.User, rosters []model.Roster) {
	l.users = make(map[string]*model.User, len(users))
	l.nameToUser = make(map[string]string, len(users))
	for i := range users {
		u := &users[i]
		l.users[u.ID] = u
		// Display names are assumed unique within a league.
		l.nameToUser[u.DisplayName] = u.ID
	}

	l.rosterOwner = make(map[int]string, len(rosters))
	for _, r := range rosters {
		l.rosterOwner[r.ID] = r.OwnerID
	}
}

// buildMatchupIndexes keys the week's matchups by owner and records who
// owns each rostered player. A player in no matchup is a free agent.
func (l *League) buildMatchupIndexes(matchups []model.Matchup) {
	l.matchups = make(map[string]*model.Matchup, len(matchups))
	l.playerOwner = make(map[string]string)
	for i := range matchups {
		m := &matchups[i]
		ownerID, ok := l.rosterOwner[m.RosterID]
		if !ok {
			continue
		}
		l.matchups[ownerID] = m

		owner := l.users[ownerID]
		if owner == nil {
			continue
		}
		for _, playerID := range m.Players {
			l.playerOwner[playerID] = owner.DisplayName
		}
	}
}

// buildNameIndex indexes the full player universe by canonical name.
// When two players share a name, the one with the better season rank
// keeps it; an unranked player never shadows a ranked one.
func (l *League) buildNameIndex(players []model.Player) {
	l.universe = make([]*model.Player, 0, len(players))
	l.players = make(map[string]*model.Player, len(players))
	l.nameToPlayer = make(map[string]string, len(players))
	l.playerNames = make([]string, 0, len(players))

	for i := range players {
		p := &players[i]
		l.universe = append(l.universe, p)
		l.players[p.ID] = p

		name := p.FullName()
		if existingID, ok := l.nameToPlayer[name]; ok {
			if betterRank(p, l.players[existingID]) {
				l.nameToPlayer[name] = p.ID
			}
			continue
		}
		l.nameToPlayer[name] = p.ID
		l.playerNames = append(l.playerNames, name)
	}
}

func betterRank(a, b *model.Player) bool {
	if a.RankPPR == 0 {
		return false
	}
	if b.RankPPR == 0 {
		return true
	}
	return a.RankPPR < b.RankPPR
}

func (l *League) buildDraftIndex(picks []model.DraftPick) {
	l.draftLabels = make(map[string]string, len(picks))
	for i := range picks {
		l.draftLabels[picks[i].PlayerID] = picks[i].Label()
	}
}

// buildWaiverBoard walks the weekly projections, which arrive sorted by
// projected points descending, and keeps the top unowned players per
// position. Positions outside the recognized set are skipped.
func (l *League) buildWaiverBoard(projections []model.ProjectedPlayer) {
	l.waiverBoard = make(map[model.Position][]model.ProjectedPlayer, len(model.RosterPositions))
	for _, pos := range model.RosterPositions {
		l.waiverBoard[pos] = []model.ProjectedPlayer{}
	}

	for _, row := range projections {
		if l.playerOwner[row.PlayerID] != "" {
			continue
		}
		entries, ok := l.waiverBoard[row.Position]
		if !ok || len(entries) >= waiverBoardSize {
			continue
		}
		l.waiverBoard[row.Position] = append(entries, row)
	}
}

func (l *League) Name() string {
	return l.league.Name
}

func (l *League) Week() int {
	return l.week
}

func (l *League) Season() string {
	return l.state.Season
}

// OwnerNames lists every owner display name, sorted for stable output.
func (l *League) OwnerNames() []string {
	names := make([]string, 0, len(l.nameToUser))
	for name := range l.nameToUser {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
