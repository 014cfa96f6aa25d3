// Package websocket provides the spectator transport for the dungeon dice game.
//
// The websocket package implements:
//   - Real-time state broadcasting to session watchers
//   - Session-aware WebSocket connections
//   - Connection lifecycle management
//   - Message routing and fanout
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded state updates carrying the full
// service.StateView (structured world, textual projection, score, legal
// commands) plus the events extracted from the command that caused the
// change. Incoming messages are ignored; commands travel over the REST and
// MCP surfaces, the WebSocket is a one-way spectator feed.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=abc1) when
// establishing the connection. State updates are broadcast only to clients
// watching the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a successful command
//	hub.BroadcastToSession(sessionID, result.State, result.Events)
//
// Connection Lifecycle:
//
// 1. Client connects with session ID
// 2. Connection registered with hub
// 3. Client receives state updates as commands resolve
// 4. Disconnection triggers cleanup
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive broadcasts
// simultaneously without blocking each other.
package websocket
