// Package mcp provides the Model Context Protocol surface for DiceDelve.
//
// The package is a thin client: every tool call is proxied to the REST API
// server and the JSON response is rendered as text for the agent. It holds
// no game state of its own.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_session: Create a new game session (ruleset, character, seed)
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - game_state: Get current game state with legal commands
//   - command: Send any game command (hero actions and lifecycle verbs)
//   - descend, retire, retreat, use_ability: Lifecycle shortcuts
//   - score: Get the current score breakdown
//   - list_rulesets: List available rulesets
//   - list_characters: List selectable characters
//   - game_instructions: Get comprehensive game instructions and rules
//
// Rule violations are not tool errors. A command the engine rejects comes
// back as a normal text result marked rejected, with the reason and the
// unchanged state, so agents can read the refusal and try something legal.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
