package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/dicedelve/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	rulesets RulesetManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, rulesets RulesetManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		rulesets: rulesets,
	}
}

// CreateSession starts a new run and returns its session info
func (s *gameServiceImpl) CreateSession(ctx context.Context, opts CreateOptions) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Resolve the ruleset
	var rules *engine.Ruleset
	if opts.RulesetName != "" {
		loaded, err := s.rulesets.LoadRuleset(opts.RulesetName)
		if err != nil {
			if available, listErr := s.rulesets.ListRulesets(); listErr == nil && len(available) > 0 {
				var ids []string
				for _, info := range available {
					ids = append(ids, info.RulesetID)
				}
				return nil, fmt.Errorf("ruleset %q not found. Available rulesets: %v", opts.RulesetName, ids)
			}
			return nil, fmt.Errorf("failed to load ruleset %s: %w", opts.RulesetName, err)
		}
		rules = loaded
	} else {
		rules = s.rulesets.GetDefault()
	}

	// Resolve the character
	ch, err := engine.CharacterByName(opts.Character)
	if err != nil {
		return nil, fmt.Errorf("%v. Available characters: %v", err, engine.CharacterNames())
	}

	// Let the session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", rules, ch, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Command executes one game command for a session. Rule violations are
// reported as an unsuccessful result rather than an error so conversational
// clients can relay the explanation; errors are reserved for unknown
// sessions.
func (s *gameServiceImpl) Command(ctx context.Context, sessionID, name string, args []string) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	before := sess.Game.World()
	characterBefore := sess.Game.Character().Name

	result := &CommandResult{
		Command: name,
		Args:    args,
	}

	next, cmdErr := sess.Game.Command(name, args...)
	if cmdErr != nil {
		result.Success = false
		result.Message = cmdErr.Error()
		result.State = stateView(sess.Game)
		return result, nil
	}

	result.Success = true
	result.Message = describeOutcome(name, before, next)
	result.Events = extractEvents(name, before, next, characterBefore, sess.Game.Character().Name)
	result.State = stateView(sess.Game)
	return result, nil
}

// GetGameState retrieves the current state snapshot
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*StateView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return stateView(sess.Game), nil
}

// GetScore reports the score of a run with its breakdown
func (s *gameServiceImpl) GetScore(ctx context.Context, sessionID string) (*ScoreResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	w := sess.Game.World()
	return &ScoreResult{
		Score:      sess.Game.Score(),
		Experience: w.Experience,
		Treasure:   w.Treasure,
		GameOver:   w.GameOver,
	}, nil
}

// ListRulesets returns the available rulesets
func (s *gameServiceImpl) ListRulesets(ctx context.Context) ([]*RulesetInfo, error) {
	return s.rulesets.ListRulesets()
}

// LoadRuleset loads a specific ruleset
func (s *gameServiceImpl) LoadRuleset(ctx context.Context, name string) (*engine.Ruleset, error) {
	return s.rulesets.LoadRuleset(name)
}

// SaveRuleset saves a ruleset to disk
func (s *gameServiceImpl) SaveRuleset(ctx context.Context, name string, rules *engine.Ruleset) error {
	return s.rulesets.SaveRuleset(name, rules)
}

// sessionInfo builds the SessionInfo view of a session
func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	info := &SessionInfo{
		ID:             sess.ID,
		RulesetName:    sess.RulesetName,
		Character:      sess.Game.Character().Name,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		State:          stateView(sess.Game),
	}
	if seed, seeded := sess.Game.Seed(); seeded {
		info.Seed = &seed
	}
	return info
}

// stateView builds the snapshot every surface returns
func stateView(g *engine.Game) *StateView {
	return &StateView{
		World:         g.World(),
		Brief:         g.Brief(),
		Character:     g.Character().Name,
		Score:         g.Score(),
		GameOver:      g.IsOver(),
		LegalCommands: g.LegalCommands(),
	}
}

// describeOutcome renders a short human-readable summary of a successful
// command for conversational clients.
func describeOutcome(name string, before, after engine.World) string {
	switch name {
	case engine.CmdDescend:
		return fmt.Sprintf("Descended to depth %d: %s", after.Depth, after.Dungeon.Brief())
	case engine.CmdRetire:
		return fmt.Sprintf("Retired with %d experience banked", after.Experience)
	case engine.CmdRetreat:
		return "Retreated with nothing banked"
	case engine.CmdAbility:
		return fmt.Sprintf("Ability used: dungeon is now %s", after.Dungeon.Brief())
	default:
		return fmt.Sprintf("%s resolved: dungeon %s, party %s", name, after.Dungeon.Brief(), after.Party.Brief())
	}
}

// extractEvents derives the notable occurrences of a transition
func extractEvents(name string, before, after engine.World, characterBefore, characterAfter string) []GameEvent {
	now := time.Now()
	events := []GameEvent{}

	eventType := "action"
	switch name {
	case engine.CmdDescend, engine.CmdRetire, engine.CmdRetreat:
		eventType = name
	case engine.CmdAbility:
		eventType = "ability"
	}
	events = append(events, GameEvent{
		Type:      eventType,
		Message:   fmt.Sprintf("%s executed", name),
		Timestamp: now,
	})

	if after.Experience > before.Experience {
		events = append(events, GameEvent{
			Type:      "experience",
			Message:   fmt.Sprintf("Experience rose to %d", after.Experience),
			Timestamp: now,
		})
	}
	if after.Treasure.Total() > before.Treasure.Total() {
		events = append(events, GameEvent{
			Type:      "treasure",
			Message:   fmt.Sprintf("Treasure drawn: now holding %s", after.Treasure.Brief()),
			Timestamp: now,
		})
	}
	if characterAfter != characterBefore {
		events = append(events, GameEvent{
			Type:      "promotion",
			Message:   fmt.Sprintf("Promoted from %s to %s", characterBefore, characterAfter),
			Timestamp: now,
		})
	}
	if after.GameOver && !before.GameOver {
		events = append(events, GameEvent{
			Type:      "game_over",
			Message:   "The run has ended",
			Timestamp: now,
		})
	}
	return events
}

// IsRuleViolation reports whether an engine error names a rule violation
// rather than an infrastructure failure. Drivers use it to choose status
// codes.
func IsRuleViolation(err error) bool {
	return errors.Is(err, engine.ErrUnknownActor) ||
		errors.Is(err, engine.ErrUnknownTarget) ||
		errors.Is(err, engine.ErrCountMismatch) ||
		errors.Is(err, engine.ErrInvalidAction) ||
		errors.Is(err, engine.ErrIllegalPhase)
}

// ParseCommandLine splits a raw command line into the command name and its
// arguments, e.g. "fighter goblin goblin" or "descend".
func ParseCommandLine(line string) (string, []string, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("empty command")
	}
	return fields[0], fields[1:], nil
}
