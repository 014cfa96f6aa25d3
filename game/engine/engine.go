package engine

import "fmt"

// Lifecycle command names accepted by Game.Command alongside hero and
// treasure actors.
const (
	CmdDescend = "descend"
	CmdRetire  = "retire"
	CmdRetreat = "retreat"
	CmdAbility = "ability"
)

// Game tracks all state of a programmatically driven run: the current
// world, the selected character (which may advance between delves), the
// ruleset, and the private roller. Every transition goes through the pure
// functions in this package; Game just threads the pieces together and
// records the outcome. A Game is not safe for concurrent use; independent
// runs use independent Games.
type Game struct {
	world     World
	rules     *Ruleset
	character *Character
	roller    *Roller
	seed      int64
	seeded    bool
}

// NewGame starts a run with the given ruleset, character and roller. A nil
// ruleset uses the defaults, a nil character the default character, and a
// nil roller a clock-seeded one.
func NewGame(rules *Ruleset, ch *Character, roller *Roller) (*Game, error) {
	if rules == nil {
		rules = DefaultRuleset()
	}
	if err := ValidateRuleset(rules); err != nil {
		return nil, fmt.Errorf("invalid ruleset: %w", err)
	}
	if ch == nil {
		ch = DefaultCharacter()
	}
	if roller == nil {
		roller = NewRoller()
	}
	g := &Game{rules: rules, character: ch, roller: roller}
	g.world = NewWorld(rules, ch, roller)
	return g, nil
}

// NewSeededGame starts a reproducible run: the same seed and the same
// command sequence replay the same world trajectory.
func NewSeededGame(rules *Ruleset, ch *Character, seed int64) (*Game, error) {
	g, err := NewGame(rules, ch, NewSeededRoller(seed))
	if err != nil {
		return nil, err
	}
	g.seed = seed
	g.seeded = true
	return g, nil
}

// World returns the current world snapshot.
func (g *Game) World() World {
	return g.world
}

// Rules returns the ruleset the run plays under.
func (g *Game) Rules() *Ruleset {
	return g.rules
}

// Character returns the character's current form.
func (g *Game) Character() *Character {
	return g.character
}

// Seed returns the roller seed and whether one was set explicitly.
func (g *Game) Seed() (int64, bool) {
	return g.seed, g.seeded
}

// IsOver reports whether the run has ended.
func (g *Game) IsOver() bool {
	return g.world.GameOver
}

// Score returns the score of the current world.
func (g *Game) Score() int {
	return Score(g.world, g.rules)
}

// Brief returns the canonical textual projection of the current world.
func (g *Game) Brief() string {
	return g.world.Brief()
}

// Apply resolves a hero or treasure action and records the outcome.
func (g *Game) Apply(actor string, targets ...string) (World, error) {
	next, err := Apply(g.world, g.roller, g.rules, g.character, actor, targets...)
	if err != nil {
		return g.world, err
	}
	g.world = next
	return next, nil
}

// Descend steps one depth deeper.
func (g *Game) Descend() (World, error) {
	next, err := Descend(g.world, g.roller, g.rules)
	if err != nil {
		return g.world, err
	}
	g.world = next
	return next, nil
}

// UseAbility consumes the once-per-delve ability.
func (g *Game) UseAbility(target string) (World, error) {
	next, err := UseAbility(g.world, g.roller, g.character, target)
	if err != nil {
		return g.world, err
	}
	g.world = next
	return next, nil
}

// Retire banks the delve and advances the character when the new experience
// total reaches the promotion threshold.
func (g *Game) Retire() (World, error) {
	next, err := Retire(g.world, g.roller, g.rules, g.character)
	if err != nil {
		return g.world, err
	}
	g.world = next
	g.character = g.character.Advance(next.Experience, g.rules)
	return next, nil
}

// Retreat abandons the delve. The character may still advance on experience
// banked earlier in the run.
func (g *Game) Retreat() (World, error) {
	next, err := Retreat(g.world, g.roller, g.rules, g.character)
	if err != nil {
		return g.world, err
	}
	g.world = next
	g.character = g.character.Advance(next.Experience, g.rules)
	return next, nil
}

// Command executes one command from the external driver surface: a
// lifecycle verb (descend, retire, retreat, ability) or a hero/treasure
// actor followed by its targets.
func (g *Game) Command(name string, args ...string) (World, error) {
	switch name {
	case CmdDescend:
		if len(args) != 0 {
			return g.world, fmt.Errorf("%w: %s takes no arguments", ErrInvalidAction, CmdDescend)
		}
		return g.Descend()
	case CmdRetire:
		if len(args) != 0 {
			return g.world, fmt.Errorf("%w: %s takes no arguments", ErrInvalidAction, CmdRetire)
		}
		return g.Retire()
	case CmdRetreat:
		if len(args) != 0 {
			return g.world, fmt.Errorf("%w: %s takes no arguments", ErrInvalidAction, CmdRetreat)
		}
		return g.Retreat()
	case CmdAbility:
		if len(args) > 1 {
			return g.world, fmt.Errorf("%w: %s takes at most one target", ErrInvalidAction, CmdAbility)
		}
		target := ""
		if len(args) == 1 {
			target = args[0]
		}
		return g.UseAbility(target)
	default:
		return g.Apply(name, args...)
	}
}

// LegalCommands returns the lifecycle commands that would currently
// succeed. Drivers use it for prompting and completion; it never mutates
// state.
func (g *Game) LegalCommands() []string {
	w := g.world
	if w.GameOver {
		return nil
	}
	var legal []string
	if w.Ability {
		legal = append(legal, CmdAbility)
	}
	if w.Depth == 0 || w.Dungeon.Monsters() == 0 {
		legal = append(legal, CmdDescend)
	}
	if w.Depth > 0 && (w.Dungeon.Monsters() == 0 || w.Treasure.Portal > 0) {
		legal = append(legal, CmdRetire)
	}
	if w.Depth > 0 && w.Dungeon.Monsters() > 0 {
		legal = append(legal, CmdRetreat)
	}
	return legal
}
