// Package agent exposes the league query surface as MCP tools so an LLM
// agent can call it during a conversation.
package agent

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mww/fantasy_assistant/league"
	"github.com/mww/fantasy_assistant/model"
	"github.com/mww/fantasy_assistant/sleeper"
)

// ToolInfo is what the /tools endpoint reports about a registered tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type LeagueArgs struct {
	LeagueID string `json:"league_id" jsonschema:"Sleeper league id (required)"`
	Week     int    `json:"week,omitempty" jsonschema:"Week to inspect (0 = current week)"`
}

type PlayerArgs struct {
	LeagueID string `json:"league_id" jsonschema:"Sleeper league id (required)"`
	Week     int    `json:"week,omitempty" jsonschema:"Week to inspect (0 = current week)"`
	Name     string `json:"name" jsonschema:"Player name, free text, misspellings tolerated"`
}

type NewsArgs struct {
	LeagueID string `json:"league_id" jsonschema:"Sleeper league id (required)"`
	Name     string `json:"name" jsonschema:"Player name, free text, misspellings tolerated"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max news items (default 3)"`
}

type OwnerArgs struct {
	LeagueID string `json:"league_id" jsonschema:"Sleeper league id (required)"`
	Week     int    `json:"week,omitempty" jsonschema:"Week to inspect (0 = current week)"`
	Owner    string `json:"owner" jsonschema:"Team owner username, exact match"`
}

type PositionArgs struct {
	LeagueID string `json:"league_id" jsonschema:"Sleeper league id (required)"`
	Week     int    `json:"week,omitempty" jsonschema:"Week to inspect (0 = current week)"`
	Position string `json:"position" jsonschema:"One of QB, RB, WR, TE, K, DEF"`
}

type RankingsArgs struct {
	LeagueID string `json:"league_id" jsonschema:"Sleeper league id (required)"`
	Position string `json:"position,omitempty" jsonschema:"Optional position filter, empty = overall rankings"`
}

type UserArgs struct {
	Username string `json:"username" jsonschema:"Sleeper username (required)"`
}

// Tools holds the sleeper client the tool handlers share. Every call
// builds a fresh league snapshot for the league id the agent passes in;
// the client's response cache keeps repeat builds cheap.
type Tools struct {
	client   sleeper.Client
	registry []ToolInfo
}

// Register adds every assistant tool to the MCP server.
func Register(server *mcp.Server, client sleeper.Client) *Tools {
	t := &Tools{client: client}

	addTool(server, &t.registry, &mcp.Tool{
		Name:        "league_status",
		Description: "League standings, current week, and playoff details",
	}, t.leagueStatus)

	addTool(server, &t.registry, &mcp.Tool{
		Name:        "roster_for_team_owner",
		Description: "The current roster for one team owner, starters first",
	}, t.rosterForOwner)

	addTool(server, &t.registry, &mcp.Tool{
		Name:        "player_news",
		Description: "Recent news stories about a player",
	}, t.playerNews)

	addTool(server, &t.registry, &mcp.Tool{
		Name:        "player_stats",
		Description: "Week by week scoring for a player this season",
	}, t.playerStats)

	addTool(server, &t.registry, &mcp.Tool{
		Name:        "player_current_owner",
		Description: "Which team owner currently holds a player",
	}, t.playerOwner)

	addTool(server, &t.registry, &mcp.Tool{
		Name:        "player_draft_position",
		Description: "Where a player was taken in the league draft",
	}, t.playerDraftPosition)

	addTool(server, &t.registry, &mcp.Tool{
		Name:        "player_rankings",
		Description: "Top ranked players this season, optionally by position",
	}, t.playerRankings)

	addTool(server, &t.registry, &mcp.Tool{
		Name:        "best_available_at_position",
		Description: "Best unrostered players at a position by this week's projections",
	}, t.bestAvailable)

	addTool(server, &t.registry, &mcp.Tool{
		Name:        "league_transactions",
		Description: "Waiver and trade activity for the week",
	}, t.leagueTransactions)

	addTool(server, &t.registry, &mcp.Tool{
		Name:        "leagues_for_user",
		Description: "The leagues a sleeper user belongs to this season",
	}, t.leaguesForUser)

	return t
}

// Registry lists the registered tools for the /tools endpoint.
func (t *Tools) Registry() []ToolInfo {
	return t.registry
}

func addTool[T any](server *mcp.Server, registry *[]ToolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, ToolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func (t *Tools) snapshot(leagueID string, week int) (*league.League, error) {
	if leagueID == "" {
		return nil, fmt.Errorf("league_id is required")
	}

	var opts []league.Option
	if week > 0 {
		opts = append(opts, league.WithWeek(week))
	}
	return league.New(t.client, leagueID, opts...)
}

func (t *Tools) leagueStatus(ctx context.Context, req *mcp.CallToolRequest, args LeagueArgs) (*mcp.CallToolResult, any, error) {
	l, err := t.snapshot(args.LeagueID, args.Week)
	if err != nil {
		return toolError(err), nil, nil
	}

	out, err := l.Status()
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(out), nil, nil
}

func (t *Tools) rosterForOwner(ctx context.Context, req *mcp.CallToolRequest, args OwnerArgs) (*mcp.CallToolResult, any, error) {
	l, err := t.snapshot(args.LeagueID, args.Week)
	if err != nil {
		return toolError(err), nil, nil
	}

	out, err := l.RosterForOwner(args.Owner)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(out), nil, nil
}

func (t *Tools) playerNews(ctx context.Context, req *mcp.CallToolRequest, args NewsArgs) (*mcp.CallToolResult, any, error) {
	l, err := t.snapshot(args.LeagueID, 0)
	if err != nil {
		return toolError(err), nil, nil
	}

	out, err := l.PlayerNews(args.Name, args.Limit)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(out), nil, nil
}

func (t *Tools) playerStats(ctx context.Context, req *mcp.CallToolRequest, args PlayerArgs) (*mcp.CallToolResult, any, error) {
	l, err := t.snapshot(args.LeagueID, args.Week)
	if err != nil {
		return toolError(err), nil, nil
	}

	out, err := l.PlayerStats(args.Name)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(out), nil, nil
}

func (t *Tools) playerOwner(ctx context.Context, req *mcp.CallToolRequest, args PlayerArgs) (*mcp.CallToolResult, any, error) {
	l, err := t.snapshot(args.LeagueID, args.Week)
	if err != nil {
		return toolError(err), nil, nil
	}

	out, err := l.PlayerOwner(args.Name)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(out), nil, nil
}

func (t *Tools) playerDraftPosition(ctx context.Context, req *mcp.CallToolRequest, args PlayerArgs) (*mcp.CallToolResult, any, error) {
	l, err := t.snapshot(args.LeagueID, args.Week)
	if err != nil {
		return toolError(err), nil, nil
	}

	out, err := l.PlayerDraftPosition(args.Name)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(out), nil, nil
}

func (t *Tools) playerRankings(ctx context.Context, req *mcp.CallToolRequest, args RankingsArgs) (*mcp.CallToolResult, any, error) {
	l, err := t.snapshot(args.LeagueID, 0)
	if err != nil {
		return toolError(err), nil, nil
	}

	var pos model.Position
	if args.Position != "" {
		pos = model.ParsePosition(args.Position)
	}

	out, err := l.PlayerRankings(pos)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(out), nil, nil
}

func (t *Tools) bestAvailable(ctx context.Context, req *mcp.CallToolRequest, args PositionArgs) (*mcp.CallToolResult, any, error) {
	l, err := t.snapshot(args.LeagueID, args.Week)
	if err != nil {
		return toolError(err), nil, nil
	}

	out, err := l.BestAvailable(model.ParsePosition(args.Position))
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(out), nil, nil
}

func (t *Tools) leagueTransactions(ctx context.Context, req *mcp.CallToolRequest, args LeagueArgs) (*mcp.CallToolResult, any, error) {
	l, err := t.snapshot(args.LeagueID, args.Week)
	if err != nil {
		return toolError(err), nil, nil
	}

	out, err := l.RecentTransactions()
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(out), nil, nil
}

func (t *Tools) leaguesForUser(ctx context.Context, req *mcp.CallToolRequest, args UserArgs) (*mcp.CallToolResult, any, error) {
	if args.Username == "" {
		return toolError(fmt.Errorf("username is required")), nil, nil
	}

	state, err := t.client.GetNFLState()
	if err != nil {
		return toolError(err), nil, nil
	}

	user, err := t.client.GetUser(args.Username)
	if err != nil {
		return toolError(err), nil, nil
	}

	leagues, err := t.client.GetLeaguesForUser(user.ID, state.Season)
	if err != nil {
		return toolError(err), nil, nil
	}

	table := &model.Table{Columns: []string{"name", "league_id", "season"}}
	for _, l := range leagues {
		table.Append(l.Name, l.ID, l.Season)
	}
	return toolText(fmt.Sprintf("Leagues for %s:\n\n%s", args.Username, table.Markdown())), nil, nil
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// toolError reports the failure inside the result so the agent turn can
// recover; tool handlers never return Go errors for expected failures.
func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
