package service

import (
	"time"

	"github.com/wricardo/mcp-training/dicedelve/game/engine"
)

// StateView is the snapshot of a run returned to every driver surface. It
// pairs the structured world with the canonical textual projection so both
// programmatic and conversational clients read the same state.
type StateView struct {
	World         engine.World `json:"world"`
	Brief         string       `json:"brief"`
	Character     string       `json:"character"`
	Score         int          `json:"score"`
	GameOver      bool         `json:"game_over"`
	LegalCommands []string     `json:"legal_commands,omitempty"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string     `json:"id"`
	RulesetName    string     `json:"ruleset_name"`
	Character      string     `json:"character"`
	Seed           *int64     `json:"seed,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAccessedAt time.Time  `json:"last_accessed_at"`
	State          *StateView `json:"state"`
}

// CommandResult contains the result of a command execution
type CommandResult struct {
	Success bool        `json:"success"`
	Command string      `json:"command"`
	Args    []string    `json:"args,omitempty"`
	Message string      `json:"message"`
	State   *StateView  `json:"state"`
	Events  []GameEvent `json:"events,omitempty"`
}

// ScoreResult reports the score of a run together with its breakdown.
type ScoreResult struct {
	Score      int             `json:"score"`
	Experience int             `json:"experience"`
	Treasure   engine.Treasure `json:"treasure"`
	GameOver   bool            `json:"game_over"`
}

// GameEvent represents a notable occurrence during play
type GameEvent struct {
	Type      string    `json:"type"` // "descend", "retire", "retreat", "ability", "action", "promotion", "game_over"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// RulesetInfo provides information about an available ruleset
type RulesetInfo struct {
	Filename       string `json:"filename"`
	RulesetID      string `json:"ruleset_id"` // The identifier to use for session creation
	Name           string `json:"name"`       // Display name
	Description    string `json:"description"`
	Delves         int    `json:"delves"`
	DungeonDiceCap int    `json:"dungeon_dice_cap"`
}

// CreateOptions selects the ruleset, character and seed for a new session.
// Zero values mean the defaults: the default ruleset, the default character,
// and a clock-seeded roller.
type CreateOptions struct {
	RulesetName string `json:"ruleset_name,omitempty"`
	Character   string `json:"character,omitempty"`
	Seed        *int64 `json:"seed,omitempty"`
}
