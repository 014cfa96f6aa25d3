// Package engine implements the dungeon dice rules: worlds, dice, actions,
// the delve lifecycle, and scoring.
//
// The engine package provides the game mechanics including:
//   - Closed face enumerations and count-multiset state (World)
//   - Seedable, deterministic dice rolling and treasure draws (Roller)
//   - Action resolution with exact matching rules (Apply)
//   - Delve lifecycle: descend, ability, retire, retreat
//   - Character variants with once-per-delve abilities and promotion
//   - Scoring of a finished run
//
// Core Types:
//
// World is a value-semantic snapshot: every transition takes a World and
// returns a new one, and on failure the input is returned unchanged with a
// sentinel-wrapped error (ErrUnknownActor, ErrUnknownTarget,
// ErrCountMismatch, ErrInvalidAction, ErrIllegalPhase). Game bundles a
// World with its Ruleset, Character, and private Roller for drivers that
// want a stateful handle.
//
// Usage:
//
//	game, err := engine.NewSeededGame(engine.DefaultRuleset(), nil, 42)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	world, err := game.Descend()
//	world, err = game.Apply("fighter", "goblin")
//	fmt.Println(world.Brief())
//
// Game Rules:
//
// A run is three delves. Each delve descends through depths that roll ever
// more dungeon dice; party dice are spent one-for-one against matching
// monsters, the dragon demands exactly three dice at once, thieves open
// chests, potions revive heroes, and scrolls reroll the table. Retiring
// banks experience and regenerates the party from the experience tier
// table; retreating banks nothing. After the third delve the run is scored:
// experience plus held treasure at catalogue value.
package engine
