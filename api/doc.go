// Package api provides HTTP REST API handlers for the dungeon dice game.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Ruleset listing, loading, and creation
//   - WebSocket upgrade handling for the spectator feed
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a new session (ruleset, character, seed)
//   - GET /api/sessions - List all sessions (sort, order, limit)
//   - GET /api/sessions/{id} - Get a specific session
//   - DELETE /api/sessions/{id} - End a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current state snapshot with projection
//   - POST /api/sessions/{id}/command - Execute one command
//   - GET /api/sessions/{id}/score - Score breakdown
//
// Rulesets and Characters:
//   - GET /api/rulesets - List available rulesets
//   - GET /api/rulesets/{name} - Get full ruleset tables
//   - POST /api/rulesets - Save a new ruleset
//   - GET /api/characters - List selectable characters
//
// Commands are sent as POST with JSON body:
//
//	{
//	  "command": "descend",              // or retire, retreat, ability,
//	                                      // a hero face, or a treasure kind
//	  "args": ["goblin", "goblin"]       // targets, when the command takes them
//	}
//
// Rule violations return HTTP 200 with success:false and the violation
// message in the result; HTTP error codes are reserved for unknown sessions
// and malformed requests.
//
// Usage:
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
