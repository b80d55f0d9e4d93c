package sleeper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/itbasis/go-clock"
	gocache "github.com/patrickmn/go-cache"

	"github.com/mww/fantasy_assistant/model"
)

const (
	// SleeperURL serves league, user, roster, draft, and transaction data.
	SleeperURL = "https://api.sleeper.app"
	// StatsURL serves the stats and projections feeds.
	StatsURL = "https://api.sleeper.com"
	// GraphQLURL serves player news and the league standings history.
	GraphQLURL = "https://sleeper.com/graphql"

	// positionFilter limits feeds to fantasy-relevant positions and orders
	// rows by projected PPR points descending.
	positionFilter = "season_type=regular&position[]=DEF&position[]=K&position[]=QB&position[]=RB&position[]=TE&position[]=WR&order_by=pts_ppr"

	cacheTTL = 24 * time.Hour
)

// ErrPlayerNotFound is returned when sleeper has no record of a player id.
var ErrPlayerNotFound = errors.New("player not found")

// Client wraps the sleeper REST and GraphQL APIs. All calls are idempotent
// reads. REST responses are cached in-process with a TTL so that building
// several league snapshots in a row stays cheap; the cache and any
// retry/backoff policy live here, never in the callers.
type Client interface {
	GetNFLState() (*model.NFLState, error)
	GetLeague(leagueID string) (*model.League, error)
	GetLeagueUsers(leagueID string) ([]model.User, error)
	GetLeagueRosters(leagueID string) ([]model.Roster, error)
	GetLeagueMatchups(leagueID string, week int) ([]model.Matchup, error)
	GetLeagueDrafts(leagueID string) ([]model.Draft, error)
	GetDraftPicks(draftID string) ([]model.DraftPick, error)
	GetLeagueStandings(leagueID string) ([]model.Standing, error)
	GetTransactions(leagueID string, week int) ([]model.Transaction, error)

	// GetPlayers returns the player universe: the top players of the season
	// projections feed, merged with season PPR ranks. A limit <= 0 means no
	// limit.
	GetPlayers(season string, limit int) ([]model.Player, error)
	GetPlayer(playerID, season string) (*model.Player, error)
	GetPlayerWeeklyStats(playerID, season string) (map[int]model.WeekStat, error)
	GetPlayerWeeklyProjections(playerID, season string) (map[int]model.WeekProjection, error)
	GetWeeklyProjections(season string, week int) ([]model.ProjectedPlayer, error)
	GetPlayerNews(playerID string, limit int) ([]model.NewsItem, error)

	GetUser(username string) (*model.User, error)
	GetLeaguesForUser(userID, season string) ([]model.League, error)
}

type client struct {
	url        string
	statsURL   string
	graphqlURL string
	httpClient *http.Client
	cache      *gocache.Cache
	clock      clock.Clock
	pause      time.Duration
}

func New(clk clock.Clock) (Client, error) {
	c := &client{
		url:        SleeperURL,
		statsURL:   StatsURL,
		graphqlURL: GraphQLURL,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
		cache: gocache.New(cacheTTL, time.Hour),
		clock: clk,
		pause: 100 * time.Millisecond,
	}
	return c, nil
}

// NewForTest returns a client where every host, including the stats and
// graphql ones, points at url. There is no pause between requests.
func NewForTest(url string) Client {
	return &client{
		url:        url,
		statsURL:   url,
		graphqlURL: url + "/graphql",
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
		cache: gocache.New(time.Minute, time.Minute),
		clock: clock.New(),
	}
}

func (c *client) GetNFLState() (*model.NFLState, error) {
	var state nflStateJSON
	if err := c.getJSON(fmt.Sprintf("%s/v1/state/nfl", c.url), &state); err != nil {
		return nil, fmt.Errorf("error loading nfl state: %w", err)
	}
	return state.toState(), nil
}

func (c *client) GetLeague(leagueID string) (*model.League, error) {
	var league leagueJSON
	if err := c.getJSON(fmt.Sprintf("%s/v1/league/%s", c.url, leagueID), &league); err != nil {
		return nil, fmt.Errorf("error loading league %s: %w", leagueID, err)
	}
	return league.toLeague(), nil
}

func (c *client) GetLeagueUsers(leagueID string) ([]model.User, error) {
	var users []userJSON
	if err := c.getJSON(fmt.Sprintf("%s/v1/league/%s/users", c.url, leagueID), &users); err != nil {
		return nil, fmt.Errorf("error loading users for league %s: %w", leagueID, err)
	}

	result := make([]model.User, 0, len(users))
	for _, u := range users {
		result = append(result, *u.toUser())
	}
	return result, nil
}

func (c *client) GetLeagueRosters(leagueID string) ([]model.Roster, error) {
	var rosters []rosterJSON
	if err := c.getJSON(fmt.Sprintf("%s/v1/league/%s/rosters", c.url, leagueID), &rosters); err != nil {
		return nil, fmt.Errorf("error loading rosters for league %s: %w", leagueID, err)
	}

	result := make([]model.Roster, 0, len(rosters))
	for _, r := range rosters {
		result = append(result, *r.toRoster())
	}
	return result, nil
}

func (c *client) GetLeagueMatchups(leagueID string, week int) ([]model.Matchup, error) {
	var matchups []matchupJSON
	if err := c.getJSON(fmt.Sprintf("%s/v1/league/%s/matchups/%d", c.url, leagueID, week), &matchups); err != nil {
		return nil, fmt.Errorf("error loading matchups for league %s week %d: %w", leagueID, week, err)
	}

	result := make([]model.Matchup, 0, len(matchups))
	for _, m := range matchups {
		result = append(result, *m.toMatchup())
	}
	return result, nil
}

func (c *client) GetLeagueDrafts(leagueID string) ([]model.Draft, error) {
	var drafts []draftJSON
	if err := c.getJSON(fmt.Sprintf("%s/v1/league/%s/drafts", c.url, leagueID), &drafts); err != nil {
		return nil, fmt.Errorf("error loading drafts for league %s: %w", leagueID, err)
	}

	result := make([]model.Draft, 0, len(drafts))
	for _, d := range drafts {
		result = append(result, model.Draft{ID: d.DraftID, StartTime: d.StartTime})
	}
	return result, nil
}

func (c *client) GetDraftPicks(draftID string) ([]model.DraftPick, error) {
	var picks []draftPickJSON
	if err := c.getJSON(fmt.Sprintf("%s/v1/draft/%s/picks", c.url, draftID), &picks); err != nil {
		return nil, fmt.Errorf("error loading picks for draft %s: %w", draftID, err)
	}

	result := make([]model.DraftPick, 0, len(picks))
	for _, p := range picks {
		result = append(result, model.DraftPick{PlayerID: p.PlayerID, Round: p.Round, PickNo: p.PickNo})
	}
	return result, nil
}

func (c *client) GetTransactions(leagueID string, week int) ([]model.Transaction, error) {
	var txns []transactionJSON
	if err := c.getJSON(fmt.Sprintf("%s/v1/league/%s/transactions/%d", c.url, leagueID, week), &txns); err != nil {
		return nil, fmt.Errorf("error loading transactions for league %s week %d: %w", leagueID, week, err)
	}

	result := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		result = append(result, model.Transaction{Type: t.Type, Status: t.Status, Adds: t.Adds, Drops: t.Drops})
	}
	return result, nil
}

func (c *client) GetPlayers(season string, limit int) ([]model.Player, error) {
	var rows []projectionRowJSON
	if err := c.getJSON(fmt.Sprintf("%s/projections/nfl/%s?%s", c.statsURL, season, positionFilter), &rows); err != nil {
		return nil, fmt.Errorf("error loading season projections: %w", err)
	}

	ranks, err := c.getRanks(season)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	result := make([]model.Player, 0, len(rows))
	for _, r := range rows {
		result = append(result, *r.toPlayer(ranks[r.PlayerID]))
	}
	return result, nil
}

// getRanks maps player id to season PPR ranks from the stats feed.
func (c *client) getRanks(season string) (map[string]rankPair, error) {
	var rows []projectionRowJSON
	if err := c.getJSON(fmt.Sprintf("%s/stats/nfl/%s?%s", c.statsURL, season, positionFilter), &rows); err != nil {
		return nil, fmt.Errorf("error loading season ranks: %w", err)
	}

	ranks := make(map[string]rankPair, len(rows))
	for _, r := range rows {
		ranks[r.PlayerID] = rankPair{
			rank:    int(r.Stats["rank_ppr"]),
			posRank: int(r.Stats["pos_rank_ppr"]),
		}
	}
	return ranks, nil
}

func (c *client) GetPlayer(playerID, season string) (*model.Player, error) {
	var row struct {
		Player *playerJSON        `json:"player"`
		Stats  map[string]float64 `json:"stats"`
	}
	if err := c.getJSON(fmt.Sprintf("%s/stats/nfl/player/%s?season_type=regular&season=%s", c.statsURL, playerID, season), &row); err != nil {
		return nil, fmt.Errorf("error loading player %s: %w", playerID, err)
	}
	if row.Player == nil {
		// Sleeper reports unknown players as a JSON null body.
		return nil, ErrPlayerNotFound
	}

	pr := projectionRowJSON{PlayerID: playerID, Player: *row.Player, Stats: row.Stats}
	return pr.toPlayer(rankPair{
		rank:    int(row.Stats["rank_ppr"]),
		posRank: int(row.Stats["pos_rank_ppr"]),
	}), nil
}

func (c *client) GetPlayerWeeklyStats(playerID, season string) (map[int]model.WeekStat, error) {
	var weeks map[string]*weekEntryJSON
	if err := c.getJSON(fmt.Sprintf("%s/stats/nfl/player/%s?season_type=regular&season=%s&grouping=week", c.statsURL, playerID, season), &weeks); err != nil {
		return nil, fmt.Errorf("error loading weekly stats for player %s: %w", playerID, err)
	}

	result := make(map[int]model.WeekStat, len(weeks))
	for wk, entry := range weeks {
		if entry == nil {
			continue
		}
		week, err := strconv.Atoi(wk)
		if err != nil {
			continue
		}
		result[week] = model.WeekStat{
			Week:     week,
			Opponent: entry.Opponent,
			Points:   entry.Stats["pts_ppr"],
		}
	}
	return result, nil
}

func (c *client) GetPlayerWeeklyProjections(playerID, season string) (map[int]model.WeekProjection, error) {
	var weeks map[string]*weekEntryJSON
	if err := c.getJSON(fmt.Sprintf("%s/projections/nfl/player/%s?season_type=regular&season=%s&grouping=week", c.statsURL, playerID, season), &weeks); err != nil {
		return nil, fmt.Errorf("error loading weekly projections for player %s: %w", playerID, err)
	}

	result := make(map[int]model.WeekProjection, len(weeks))
	for wk, entry := range weeks {
		if entry == nil {
			continue
		}
		week, err := strconv.Atoi(wk)
		if err != nil {
			continue
		}
		result[week] = model.WeekProjection{
			Opponent:        entry.Opponent,
			ProjectedPoints: entry.Stats["pts_ppr"],
		}
	}
	return result, nil
}

func (c *client) GetWeeklyProjections(season string, week int) ([]model.ProjectedPlayer, error) {
	var rows []projectionRowJSON
	if err := c.getJSON(fmt.Sprintf("%s/projections/nfl/%s/%d?%s", c.statsURL, season, week, positionFilter), &rows); err != nil {
		return nil, fmt.Errorf("error loading weekly projections: %w", err)
	}

	result := make([]model.ProjectedPlayer, 0, len(rows))
	for _, r := range rows {
		result = append(result, *r.toProjectedPlayer())
	}
	return result, nil
}

func (c *client) GetPlayerNews(playerID string, limit int) ([]model.NewsItem, error) {
	query := fmt.Sprintf(`query get_player_news_for_ids {
		news: get_player_news(sport: "nfl", player_id: "%s", limit: %d){
			metadata
			player_id
			published
			source
			source_key
			sport
		}
	}`, playerID, limit)

	var resp struct {
		Data struct {
			News []newsJSON `json:"news"`
		} `json:"data"`
	}
	if err := c.graphql("get_player_news_for_ids", query, &resp); err != nil {
		return nil, fmt.Errorf("error loading news for player %s: %w", playerID, err)
	}

	result := make([]model.NewsItem, 0, len(resp.Data.News))
	for _, n := range resp.Data.News {
		result = append(result, *n.toNewsItem())
	}
	return result, nil
}

// GetLeagueStandings returns standings sorted by wins descending, then
// points-for descending.
func (c *client) GetLeagueStandings(leagueID string) ([]model.Standing, error) {
	query := fmt.Sprintf(`query metadata {
		metadata(type: "league_history", key: "%s"){
			key
			type
			data
			last_updated
			created
		}
	}`, leagueID)

	var resp struct {
		Data struct {
			Metadata struct {
				Data struct {
					Standings []standingJSON `json:"standings"`
				} `json:"data"`
			} `json:"metadata"`
		} `json:"data"`
	}
	if err := c.graphql("metadata", query, &resp); err != nil {
		return nil, fmt.Errorf("error loading standings for league %s: %w", leagueID, err)
	}

	standings := resp.Data.Metadata.Data.Standings
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].Fpts > standings[j].Fpts
	})

	result := make([]model.Standing, 0, len(standings))
	for _, s := range standings {
		result = append(result, *s.toStanding())
	}
	return result, nil
}

func (c *client) GetUser(username string) (*model.User, error) {
	var user userJSON
	if err := c.getJSON(fmt.Sprintf("%s/v1/user/%s", c.url, username), &user); err != nil {
		return nil, fmt.Errorf("error loading user %s: %w", username, err)
	}
	if user.UserID == "" {
		// An unknown user comes back as a 200 with a null body.
		return nil, errors.New("user not found")
	}
	return user.toUser(), nil
}

func (c *client) GetLeaguesForUser(userID, season string) ([]model.League, error) {
	var leagues []leagueJSON
	if err := c.getJSON(fmt.Sprintf("%s/v1/user/%s/leagues/nfl/%s", c.url, userID, season), &leagues); err != nil {
		return nil, fmt.Errorf("error loading leagues for user %s: %w", userID, err)
	}

	result := make([]model.League, 0, len(leagues))
	for _, l := range leagues {
		result = append(result, *l.toLeague())
	}
	return result, nil
}

// getJSON fetches url and decodes the body into out, consulting the TTL
// cache first. The full URL, query string included, is the cache key.
func (c *client) getJSON(url string, out any) error {
	if cached, ok := c.cache.Get(url); ok {
		return json.Unmarshal(cached.([]byte), out)
	}

	if c.pause > 0 {
		c.clock.Sleep(c.pause)
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response from sleeper: %w", err)
	}

	c.cache.Set(url, body, gocache.DefaultExpiration)
	return json.Unmarshal(body, out)
}

// graphql posts a query to the graphql endpoint. News and standings change
// throughout the day, so these responses are never cached.
func (c *client) graphql(operationName, query string, out any) error {
	payload, err := json.Marshal(map[string]any{
		"operationName": operationName,
		"variables":     map[string]any{},
		"query":         query,
	})
	if err != nil {
		return fmt.Errorf("error encoding graphql request: %w", err)
	}

	resp, err := c.httpClient.Post(c.graphqlURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("error sending graphql request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error parsing graphql response: %w", err)
	}
	return nil
}
