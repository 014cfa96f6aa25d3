package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/dicedelve/game/engine"
	"github.com/wricardo/mcp-training/dicedelve/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"DiceDelve",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`DiceDelve - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Run a party of hero dice through three delves of a dice dungeon. Bank
experience by retiring at depth, defeat monsters one-for-one, loot chests,
quaff potions and fight the dragon for treasure. Highest score wins.

AVAILABLE TOOLS:
- create_session: Create a new game session (ruleset, character, seed)
- get_session: Get session details
- list_sessions: List all active sessions
- game_state: Get current game state with legal commands
- command: Send any game command (hero actions, lifecycle verbs) - requires intent explanation
- descend / retire / retreat / use_ability: Lifecycle shortcuts
- score: Get the current score breakdown
- list_rulesets: List available rulesets
- list_characters: List selectable characters
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on the command tool serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional ruleset, character and seed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ruleset_id": map[string]interface{}{
					"type":        "string",
					"description": "Name of the ruleset to use (optional, defaults to standard)",
				},
				"character": map[string]interface{}{
					"type":        "string",
					"description": "Character to play: adventurer, knight or minstrel (optional)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Seed for a reproducible run (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state including the legal commands",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "command",
		Description: "Send a game command. Hero actions name a party die or treasure token plus targets, e.g. command=fighter args=[goblin] or command=champion args=[skeleton,skeleton]. To fight the dragon, commit a hero against 'dragon' plus the extra dice, e.g. command=fighter args=[dragon,cleric,mage]. Lifecycle verbs (descend, retire, retreat, ability) take their own arguments.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"command": map[string]interface{}{
					"type":        "string",
					"description": "The command name (a hero face, a treasure kind, or a lifecycle verb)",
				},
				"args": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
					},
					"description": "Command targets, e.g. the dungeon faces to resolve",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this command (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "command"},
		},
	}, c.handleCommand)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "descend",
		Description: "Descend one level and roll dungeon dice equal to the new depth",
		InputSchema: sessionOnlySchema(),
	}, c.lifecycleHandler("descend"))

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "retire",
		Description: "Retire the delve, banking depth plus surviving heroes as experience",
		InputSchema: sessionOnlySchema(),
	}, c.lifecycleHandler("retire"))

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "retreat",
		Description: "Abandon the delve with nothing banked. Only legal while monsters remain",
		InputSchema: sessionOnlySchema(),
	}, c.lifecycleHandler("retreat"))

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "use_ability",
		Description: "Use the character's once-per-delve ability on a target face",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"target": map[string]interface{}{
					"type":        "string",
					"description": "Target face for the ability, e.g. a monster face to convert",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleUseAbility)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "score",
		Description: "Get the current score breakdown for a session",
		InputSchema: sessionOnlySchema(),
	}, c.handleScore)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rulesets",
		Description: "List available rulesets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRulesets)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_characters",
		Description: "List the selectable characters",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListCharacters)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

func sessionOnlySchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"session_id": map[string]interface{}{
				"type":        "string",
				"description": "Session ID",
			},
		},
		Required: []string{"session_id"},
	}
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	rulesetID, _ := args["ruleset_id"].(string)
	character, _ := args["character"].(string)

	body := map[string]interface{}{}
	if rulesetID != "" {
		body["ruleset_id"] = rulesetID
	}
	if character != "" {
		body["character"] = character
	}
	if seed, ok := args["seed"].(float64); ok {
		body["seed"] = int64(seed)
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nRuleset: %s\nCharacter: %s\n\n%s",
		session.ID, session.RulesetName, session.Character, formatStateView(session.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Ruleset: %s, Character: %s, Created: %s)\n",
			s.ID, s.RulesetName, s.Character, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state service.StateView
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatStateView(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	command, _ := args["command"].(string)
	intent, _ := args["intent"].(string)
	targetsRaw, _ := args["args"].([]interface{})

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	targets := make([]string, 0, len(targetsRaw))
	for _, t := range targetsRaw {
		if target, ok := t.(string); ok {
			targets = append(targets, target)
		}
	}

	return c.sendCommand(sessionID, command, targets)
}

func (c *Client) lifecycleHandler(verb string) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.Params.Arguments.(map[string]interface{})
		sessionID, _ := args["session_id"].(string)
		return c.sendCommand(sessionID, verb, nil)
	}
}

func (c *Client) handleUseAbility(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	target, _ := args["target"].(string)

	var targets []string
	if target != "" {
		targets = []string{target}
	}
	return c.sendCommand(sessionID, "ability", targets)
}

func (c *Client) sendCommand(sessionID, command string, targets []string) (*mcp.CallToolResult, error) {
	body := map[string]interface{}{
		"command": command,
	}
	if len(targets) > 0 {
		body["args"] = targets
	}

	var result service.CommandResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/command", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCommandResult(&result)), nil
}

func (c *Client) handleScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var score service.ScoreResult
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/score", sessionID), nil, &score)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatScore(&score)), nil
}

func (c *Client) handleListRulesets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var rulesets []service.RulesetInfo
	err := c.apiCall("GET", "/api/rulesets", nil, &rulesets)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Rulesets:\n\n"
	for _, rs := range rulesets {
		result += fmt.Sprintf("• %s\n  %s\n  Delves: %d, Dungeon dice cap: %d\n\n",
			rs.RulesetID, rs.Description, rs.Delves, rs.DungeonDiceCap)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListCharacters(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Characters []string `json:"characters"`
		Default    string   `json:"default"`
	}
	err := c.apiCall("GET", "/api/characters", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Selectable Characters:\n\n"
	for _, name := range response.Characters {
		marker := ""
		if name == response.Default {
			marker = " (default)"
		}
		result += fmt.Sprintf("• %s%s\n", name, marker)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🎲 DiceDelve - Complete Instructions

GAME OBJECTIVE:
Run three delves into a dice dungeon and bank as much experience and
treasure as you can. Final score = experience + treasure values.

GAME FLOW:
• A run is three delves. Each delve starts with a fresh party rolled from
  your character's party dice.
• descend: go one level deeper and roll dungeon dice equal to the new
  depth (capped by the ruleset). Dragon faces go to the lair and stay
  there across descents.
• Clear what you rolled, then descend again, retire to bank, or retreat.

FIGHTING MONSTERS (goblin, skeleton, ooze):
• A hero die is spent to defeat monsters, one die per monster, exact count:
  fighter goblin goblin defeats exactly two goblins and requires two
  goblins on the table.
• Any hero can fight any monster. The champion defeats any number of one
  monster face and is NOT spent.
• Targets must all be the same face and must match the table exactly.

CHESTS AND POTIONS:
• Only a thief (or tools) opens chests: each chest opened draws one
  treasure token from the reserve.
• Any hero can quaff a potion: spend one die, quaff exactly one potion,
  and revive one party die of your choice.

SCROLLS:
• A scroll die rerolls any number of dungeon dice you name (not potions,
  not dragons). Use it to turn a bad roll into a fightable one.

THE DRAGON:
• When the lair holds enough dragon dice (3 under the standard rules) and
  all monsters are cleared, you may fight it by committing a hero against
  'dragon' plus the extra dice (e.g. 'fighter dragon cleric'), exactly the
  number your character requires. Composition does not matter but a
  scroll cannot be committed.
• Victory takes the whole lair off the table and draws a treasure token.

LIFECYCLE:
• retire: banks depth + surviving heroes (scrolls bank nothing) as
  experience and ends the delve. Blocked while monsters remain unless you
  spend a town portal token.
• retreat: ends the delve banking NOTHING. Only legal while monsters
  remain; it is the escape hatch for an unclearable roll.
• After the third delve ends the run is over and the score is final.

TREASURE TOKENS (drawn face-down from a shared reserve):
• sword - acts as a fighter
• talisman - acts as a cleric
• sceptre - acts as a mage
• tools - acts as a thief (opens chests)
• scroll - acts as a scroll die
• portal - retire past monsters (worth 2 points unspent)
• bait - pulls the dragon lair down by one die
• elixir - revive one party die
• scale - no use, worth 2 points
• ring - revive one scroll
Spent tokens go back into the reserve.

CHARACTERS:
• adventurer - no ability, the baseline
• knight - once per delve, convert all of one monster face to potions;
  promotes to dragonslayer at 5 experience (fights the dragon with 2 dice)
• minstrel - once per delve, discard all dragon dice from the lair;
  promotes to bard at 5 experience (a fighter is refunded for each goblin
  it defeats)

EXPERIENCE AND PARTY SIZE:
Banked experience strengthens later delves: tiers at 0/5/10/15/20
experience upgrade the party a fresh delve starts with, trading scrolls
for a champion at 5 and adding extra heroes beyond.

🤖 AI AGENTS - STRATEGY NOTES:
• Always check game_state first: the legal_commands list tells you what
  the engine will accept right now.
• Target counts are EXACT: "fighter goblin" with two goblins on the table
  is rejected. Count the table before acting.
• The champion is free: spend it on the largest monster cluster.
• Save the thief for chests; a thief spent on a skeleton cannot loot.
• Watch the lair: descending past 2 dragons without a plan to fight or
  bait them wastes treasure opportunities.
• Retire at depth 3+ when clear; retreating throws the delve away.

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and ruleset
- Pass a seed at creation for a reproducible run

Good luck in the dungeon! 🎲🐉`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nRuleset: %s\nCharacter: %s\nCreated: %s\n\n%s",
		session.ID, session.RulesetName, session.Character,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatStateView(session.State))
}

func formatStateView(state *service.StateView) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	w := state.World

	b.WriteString(fmt.Sprintf("Delve: %d | Depth: %d | Experience: %d | Score: %d\n",
		w.Delve, w.Depth, w.Experience, state.Score))
	b.WriteString(fmt.Sprintf("Character: %s | Ability available: %v\n\n", state.Character, w.Ability))

	b.WriteString("Dungeon:\n")
	if w.Dungeon.Total() == 0 {
		b.WriteString("  (empty)\n")
	}
	for _, face := range engine.DungeonFaces {
		if n := w.Dungeon.Count(face); n > 0 {
			b.WriteString(fmt.Sprintf("  %s x%d\n", face, n))
		}
	}

	b.WriteString("Party:\n")
	if w.Party.Total() == 0 {
		b.WriteString("  (spent)\n")
	}
	for _, face := range engine.HeroFaces {
		if n := w.Party.Count(face); n > 0 {
			b.WriteString(fmt.Sprintf("  %s x%d\n", face, n))
		}
	}

	if w.Treasure.Total() > 0 {
		b.WriteString("Treasure:\n")
		for _, kind := range engine.TreasureKinds {
			if n := w.Treasure.Count(kind); n > 0 {
				b.WriteString(fmt.Sprintf("  %s x%d\n", kind, n))
			}
		}
	}

	if len(state.LegalCommands) > 0 {
		b.WriteString(fmt.Sprintf("\nLegal commands: %s\n", strings.Join(state.LegalCommands, ", ")))
	}

	if state.GameOver {
		b.WriteString(fmt.Sprintf("\n🏁 GAME OVER - final score %d", state.Score))
	}

	return b.String()
}

func formatCommandResult(result *service.CommandResult) string {
	var b strings.Builder

	if result.Success {
		b.WriteString(fmt.Sprintf("✓ %s", result.Command))
	} else {
		b.WriteString(fmt.Sprintf("✗ %s rejected", result.Command))
	}
	if len(result.Args) > 0 {
		b.WriteString(" " + strings.Join(result.Args, " "))
	}
	b.WriteString("\n")

	if result.Message != "" {
		b.WriteString(result.Message + "\n")
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	b.WriteString("\n" + formatStateView(result.State))
	return b.String()
}

func formatScore(score *service.ScoreResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Score: %d\n", score.Score))
	b.WriteString(fmt.Sprintf("Experience: %d\n", score.Experience))

	if score.Treasure.Total() > 0 {
		b.WriteString("Treasure:\n")
		for _, kind := range engine.TreasureKinds {
			if n := score.Treasure.Count(kind); n > 0 {
				b.WriteString(fmt.Sprintf("  %s x%d\n", kind, n))
			}
		}
	}

	if score.GameOver {
		b.WriteString("The run is over; the score is final.\n")
	} else {
		b.WriteString("The run is still in progress.\n")
	}
	return b.String()
}
