package service

import (
	"context"
	"time"

	"github.com/wricardo/mcp-training/dicedelve/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, opts CreateOptions) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Command(ctx context.Context, sessionID, name string, args []string) (*CommandResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*StateView, error)
	GetScore(ctx context.Context, sessionID string) (*ScoreResult, error)

	// Rulesets
	ListRulesets(ctx context.Context) ([]*RulesetInfo, error)
	LoadRuleset(ctx context.Context, name string) (*engine.Ruleset, error)
	SaveRuleset(ctx context.Context, name string, rules *engine.Ruleset) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, rules *engine.Ruleset, ch *engine.Character, seed *int64) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// RulesetManager handles ruleset loading
type RulesetManager interface {
	LoadRuleset(name string) (*engine.Ruleset, error)
	ListRulesets() ([]*RulesetInfo, error)
	GetDefault() *engine.Ruleset
	SaveRuleset(name string, rules *engine.Ruleset) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Game           *engine.Game
	RulesetName    string
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
