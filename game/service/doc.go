// Package service provides the business logic layer for the dungeon dice game.
//
// The service package implements:
//   - Multi-session run management
//   - Ruleset resolution and loading
//   - Command processing with event extraction
//   - Session lifecycle management
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// RulesetManager manages ruleset loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP/CLI)
// and the game engine, providing session isolation, ruleset management, and
// business logic orchestration. Each session owns its own engine.Game with an
// independent world and roller.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	rulesetMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, rulesetMgr)
//
//	// Create a new session
//	info, err := gameService.CreateSession(ctx, service.CreateOptions{Character: "knight"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Execute commands
//	result, err := gameService.Command(ctx, info.ID, "descend", nil)
//
// Command Semantics:
//
// Rule violations are reported inside the CommandResult with Success false
// and the violation message, never as an error return. Errors are reserved
// for unknown sessions and infrastructure failures, so conversational
// clients can always relay why a move was rejected.
package service
