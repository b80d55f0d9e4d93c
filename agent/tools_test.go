package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mww/fantasy_assistant/sleeper"
	"github.com/mww/fantasy_assistant/testutils"
)

func newTestTools(t *testing.T) *Tools {
	t.Helper()

	server := testutils.NewFakeSleeperServer()
	t.Cleanup(server.Close)

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0.0.1"}, nil)
	return Register(mcpServer, sleeper.NewForTest(server.URL()))
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()

	if len(res.Content) != 1 {
		t.Fatalf("expected 1 content block, got %d", len(res.Content))
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestRegistry(t *testing.T) {
	tools := newTestTools(t)

	expected := []string{
		"league_status",
		"roster_for_team_owner",
		"player_news",
		"player_stats",
		"player_current_owner",
		"player_draft_position",
		"player_rankings",
		"best_available_at_position",
		"league_transactions",
		"leagues_for_user",
	}

	registry := tools.Registry()
	if len(registry) != len(expected) {
		t.Fatalf("expected %d tools, got %d", len(expected), len(registry))
	}
	for i, name := range expected {
		if registry[i].Name != name {
			t.Errorf("tool %d: expected '%s', got '%s'", i, name, registry[i].Name)
		}
		if registry[i].Description == "" {
			t.Errorf("tool '%s' has no description", name)
		}
	}
}

func TestLeagueStatusTool(t *testing.T) {
	tools := newTestTools(t)

	res, _, err := tools.leagueStatus(context.Background(), nil, LeagueArgs{LeagueID: testutils.LeagueID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if out := resultText(t, res); !strings.Contains(out, "League Name: Test League") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestMissingLeagueID(t *testing.T) {
	tools := newTestTools(t)

	res, _, err := tools.leagueStatus(context.Background(), nil, LeagueArgs{})
	if err != nil {
		t.Fatalf("tool handlers report failures in the result, got: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected an error result")
	}
	if out := resultText(t, res); !strings.Contains(out, "league_id is required") {
		t.Errorf("unexpected error text: %s", out)
	}
}

func TestPlayerOwnerTool(t *testing.T) {
	tools := newTestTools(t)

	res, _, err := tools.playerOwner(context.Background(), nil, PlayerArgs{
		LeagueID: testutils.LeagueID,
		Name:     "Mahomz",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out := resultText(t, res); out != "Current owner of Patrick Mahomes is alice" {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestBestAvailableTool(t *testing.T) {
	tools := newTestTools(t)

	res, _, err := tools.bestAvailable(context.Background(), nil, PositionArgs{
		LeagueID: testutils.LeagueID,
		Position: "qb",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out := resultText(t, res); !strings.Contains(out, "Josh Allen") {
		t.Errorf("unexpected output:\n%s", out)
	}

	res, _, err = tools.bestAvailable(context.Background(), nil, PositionArgs{
		LeagueID: testutils.LeagueID,
		Position: "nope",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Errorf("expected an error result for a bad position")
	}
}

func TestLeaguesForUserTool(t *testing.T) {
	tools := newTestTools(t)

	res, _, err := tools.leaguesForUser(context.Background(), nil, UserArgs{Username: testutils.UserAlice})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out := resultText(t, res); !strings.Contains(out, "Test League") {
		t.Errorf("unexpected output:\n%s", out)
	}

	res, _, err = tools.leaguesForUser(context.Background(), nil, UserArgs{Username: "nobody"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Errorf("expected an error result for an unknown user")
	}
}
