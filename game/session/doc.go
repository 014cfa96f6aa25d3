// Package session provides session management for the dungeon dice game.
//
// The session package implements:
//   - Thread-safe in-memory session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session wraps an independent engine.Game carrying its own world,
// character and roller, plus metadata like creation time and last access
// time.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference in conversational
// clients. IDs are matched case-insensitively and generated with
// cryptographic randomness.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and delete different
// sessions simultaneously. The games themselves are not concurrency-safe;
// the service layer serializes commands per call.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new session with the default ruleset and character
//	sess, err := manager.Create("", nil, nil, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve an existing session
//	sess, err = manager.Get(sessionID)
//
// Sessions are held in memory only. A deleted session's run is gone; there
// is no persistence across restarts.
package session
