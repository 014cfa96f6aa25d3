package engine

import "fmt"

// Apply resolves a single hero or treasure action against the world and
// returns the resulting world. The actor names a party die face or a held
// treasure kind; targets name dungeon faces (plus a hero face to gain when
// reviving). On any rule failure the input world is returned unchanged
// together with a sentinel-wrapped error.
func Apply(w World, roller *Roller, rules *Ruleset, ch *Character, actor string, targets ...string) (World, error) {
	if w.GameOver {
		return w, fmt.Errorf("%w: the run has ended", ErrIllegalPhase)
	}
	if w.Depth == 0 {
		return w, fmt.Errorf("%w: descend before acting", ErrIllegalPhase)
	}

	// A party die takes precedence over a treasure token of the same name
	// ("scroll" names both).
	if face, ok := ParseHeroFace(actor); ok && w.Party.Count(face) > 0 {
		return applyDie(w, roller, rules, ch, face, false, targets)
	}
	if kind, ok := ParseTreasureKind(actor); ok && w.Treasure.Count(kind) > 0 {
		return applyTreasure(w, roller, rules, ch, kind, targets)
	}
	if _, ok := ParseHeroFace(actor); ok {
		return w, fmt.Errorf("%w: no %s in the party", ErrUnknownActor, actor)
	}
	if _, ok := ParseTreasureKind(actor); ok {
		return w, fmt.Errorf("%w: no %s held", ErrUnknownActor, actor)
	}
	return w, fmt.Errorf("%w: %q names no hero or treasure", ErrUnknownActor, actor)
}

// applyDie resolves an action taken with a single die face. virtual marks a
// die conjured by a treasure token: it is never drawn from the party.
func applyDie(w World, roller *Roller, rules *Ruleset, ch *Character, face HeroFace, virtual bool, targets []string) (World, error) {
	if len(targets) == 0 {
		return w, fmt.Errorf("%w: at least one target is required", ErrCountMismatch)
	}
	first, ok := ParseDungeonFace(targets[0])
	if !ok {
		return w, fmt.Errorf("%w: %q is not on any dungeon die", ErrUnknownTarget, targets[0])
	}

	switch {
	case first == Dragon:
		return fightDragon(w, roller, rules, ch, face, virtual, targets[1:])
	case first == Potion:
		if face == Scroll && len(targets) == 1 {
			// Quaffing names a revive. A scroll committed against a bare
			// potion is a reroll request.
			return rerollDungeon(w, roller, virtual, targets)
		}
		return quaffPotion(w, face, virtual, targets)
	case face == Scroll:
		// Scrolls reroll dungeon dice instead of fighting or opening.
		return rerollDungeon(w, roller, virtual, targets)
	case first == Chest:
		return openChests(w, roller, face, virtual, targets)
	default:
		return fightMonsters(w, ch, face, virtual, first, targets)
	}
}

// fightMonsters applies the one-for-one monster match: the committed dice
// must exactly cover the dungeon's count of the named monster face, all
// targets naming that same face. Champions are never spent.
func fightMonsters(w World, ch *Character, face HeroFace, virtual bool, monster DungeonFace, targets []string) (World, error) {
	for _, t := range targets[1:] {
		other, ok := ParseDungeonFace(t)
		if !ok {
			return w, fmt.Errorf("%w: %q is not on any dungeon die", ErrUnknownTarget, t)
		}
		if other != monster {
			return w, fmt.Errorf("%w: one die cannot fight %s and %s together", ErrInvalidAction, monster, other)
		}
	}

	outstanding := w.Dungeon.Count(monster)
	if outstanding == 0 {
		return w, fmt.Errorf("%w: no %s on the table", ErrCountMismatch, monster)
	}

	committed := len(targets)
	if virtual {
		// A token conjures exactly one die and clears exactly one die.
		if committed != 1 {
			return w, fmt.Errorf("%w: a token clears exactly one %s", ErrCountMismatch, monster)
		}
		w.Dungeon = w.Dungeon.With(monster, outstanding-1)
		return w, nil
	}

	if committed != outstanding {
		return w, fmt.Errorf("%w: %d %s dice on the table require exactly %d committed %s dice, got %d",
			ErrCountMismatch, outstanding, monster, outstanding, face, committed)
	}

	available := w.Party.Count(face)
	spend := committed
	if face == Champion {
		// Champions rally for the whole fight and are reusable each turn.
		spend = 0
	}
	if available < spend || available == 0 {
		return w, fmt.Errorf("%w: only %d %s dice available, %d committed", ErrCountMismatch, available, face, committed)
	}
	spend -= ch.refund(face, monster, spend)

	w.Party = w.Party.With(face, available-spend)
	w.Dungeon = w.Dungeon.With(monster, 0)
	return w, nil
}

// fightDragon fells the dragon with an exact-size party drawn from any
// combination of hero faces. The actor die is the first committed die;
// extras name the rest. All dragon dice clear together and the victory banks
// one experience and one treasure draw.
func fightDragon(w World, roller *Roller, rules *Ruleset, ch *Character, face HeroFace, virtual bool, extras []string) (World, error) {
	if face == Scroll {
		return w, fmt.Errorf("%w: a scroll cannot fight the dragon", ErrInvalidAction)
	}
	if w.Dungeon.Dragon < rules.DragonMinimum {
		return w, fmt.Errorf("%w: the dragon only emerges at %d dice, %d in the lair",
			ErrInvalidAction, rules.DragonMinimum, w.Dungeon.Dragon)
	}
	if w.Dungeon.Monsters() > 0 {
		return w, fmt.Errorf("%w: the dragon fights only after every other monster has fallen", ErrIllegalPhase)
	}

	committed := len(extras) + 1
	if committed != ch.DragonDice {
		return w, fmt.Errorf("%w: the dragon demands exactly %d party dice, got %d",
			ErrCountMismatch, ch.DragonDice, committed)
	}

	// Tally the committed dice per face, the actor first.
	var needed Party
	if !virtual {
		needed = needed.With(face, 1)
	}
	for _, extra := range extras {
		hero, ok := ParseHeroFace(extra)
		if !ok {
			return w, fmt.Errorf("%w: %q is not a party die", ErrUnknownTarget, extra)
		}
		if hero == Scroll {
			return w, fmt.Errorf("%w: a scroll cannot fight the dragon", ErrInvalidAction)
		}
		needed = needed.With(hero, needed.Count(hero)+1)
	}

	party := w.Party
	for _, hero := range HeroFaces {
		n := needed.Count(hero)
		if n == 0 {
			continue
		}
		available := party.Count(hero)
		if available < n {
			return w, fmt.Errorf("%w: only %d %s dice available, %d committed", ErrCountMismatch, available, hero, n)
		}
		if hero == Champion {
			continue
		}
		party = party.With(hero, available-n)
	}

	w.Party = party
	w.Dungeon.Dragon = 0
	w.Experience++
	return DrawTreasure(w, roller), nil
}

// openChests has a thief (or conjured thief) open every chest on the table,
// drawing one treasure per chest. Monsters must already be defeated.
func openChests(w World, roller *Roller, face HeroFace, virtual bool, targets []string) (World, error) {
	if face != Thief {
		return w, fmt.Errorf("%w: only a thief can open chests", ErrInvalidAction)
	}
	if len(targets) != 1 {
		return w, fmt.Errorf("%w: name %s once to open every chest", ErrCountMismatch, Chest)
	}
	if w.Dungeon.Monsters() > 0 {
		return w, fmt.Errorf("%w: monsters must be defeated before opening chests", ErrIllegalPhase)
	}
	chests := w.Dungeon.Chest
	if chests == 0 {
		return w, fmt.Errorf("%w: no %s on the table", ErrCountMismatch, Chest)
	}

	if !virtual {
		w.Party = w.Party.With(face, w.Party.Count(face)-1)
	}
	w.Dungeon.Chest = 0
	for i := 0; i < chests; i++ {
		w = DrawTreasure(w, roller)
	}
	return w, nil
}

// quaffPotion consumes exactly one potion die and revives exactly one named
// hero into the party. The quaffing die is committed like any other, with
// the champion exemption.
func quaffPotion(w World, face HeroFace, virtual bool, targets []string) (World, error) {
	if w.Dungeon.Monsters() > 0 {
		return w, fmt.Errorf("%w: monsters must be defeated before quaffing", ErrIllegalPhase)
	}
	if w.Dungeon.Potion == 0 {
		return w, fmt.Errorf("%w: no %s on the table", ErrCountMismatch, Potion)
	}
	if len(targets) != 2 {
		return w, fmt.Errorf("%w: quaffing takes exactly one hero to revive, got %d", ErrCountMismatch, len(targets)-1)
	}
	revive, ok := ParseHeroFace(targets[1])
	if !ok {
		return w, fmt.Errorf("%w: %q is not a party die", ErrUnknownTarget, targets[1])
	}

	if !virtual && face != Champion {
		w.Party = w.Party.With(face, w.Party.Count(face)-1)
	}
	w.Dungeon.Potion--
	w.Party = w.Party.With(revive, w.Party.Count(revive)+1)
	return w, nil
}

// rerollDungeon consumes one scroll and rerolls the named dungeon dice in
// place. Potions and dragons sit outside fate's reach.
func rerollDungeon(w World, roller *Roller, virtual bool, targets []string) (World, error) {
	reduced := w.Dungeon
	for _, t := range targets {
		face, ok := ParseDungeonFace(t)
		if !ok {
			return w, fmt.Errorf("%w: %q is not on any dungeon die", ErrUnknownTarget, t)
		}
		if face == Potion || face == Dragon {
			return w, fmt.Errorf("%w: %s cannot be rerolled", ErrInvalidAction, face)
		}
		n := reduced.Count(face)
		if n == 0 {
			return w, fmt.Errorf("%w: no %s left to reroll", ErrCountMismatch, face)
		}
		reduced = reduced.With(face, n-1)
	}

	if !virtual {
		w.Party = w.Party.With(Scroll, w.Party.Count(Scroll)-1)
	}
	rolled := roller.RollDungeon(len(targets))
	for _, face := range DungeonFaces {
		reduced = reduced.With(face, reduced.Count(face)+rolled.Count(face))
	}
	w.Dungeon = reduced
	return w, nil
}

// applyTreasure resolves an action taken with a held treasure token. The
// token is consumed (returned to the reserve) only when its effect succeeds.
func applyTreasure(w World, roller *Roller, rules *Ruleset, ch *Character, kind TreasureKind, targets []string) (World, error) {
	if face, ok := HeroEquivalent(kind); ok {
		consumed, err := ReplaceTreasure(w, kind)
		if err != nil {
			return w, err
		}
		next, err := applyDie(consumed, roller, rules, ch, face, true, targets)
		if err != nil {
			return w, err
		}
		return next, nil
	}

	switch kind {
	case Bait:
		if len(targets) > 1 {
			return w, fmt.Errorf("%w: %s takes at most one target", ErrCountMismatch, Bait)
		}
		target := ""
		if len(targets) == 1 {
			target = targets[0]
		}
		consumed, err := ReplaceTreasure(w, kind)
		if err != nil {
			return w, err
		}
		next, err := monstersToDragons(consumed, roller, target)
		if err != nil {
			return w, err
		}
		return next, nil

	case Ring:
		if len(targets) > 1 || (len(targets) == 1 && targets[0] != string(Dragon)) {
			return w, fmt.Errorf("%w: %s only banishes the %s", ErrInvalidAction, Ring, Dragon)
		}
		if w.Dungeon.Dragon == 0 {
			return w, fmt.Errorf("%w: no dragon dice to banish", ErrInvalidAction)
		}
		consumed, err := ReplaceTreasure(w, kind)
		if err != nil {
			return w, err
		}
		consumed.Dungeon.Dragon = 0
		return consumed, nil

	case Elixir:
		if len(targets) != 1 {
			return w, fmt.Errorf("%w: %s adds exactly one hero, got %d targets", ErrCountMismatch, Elixir, len(targets))
		}
		hero, ok := ParseHeroFace(targets[0])
		if !ok {
			return w, fmt.Errorf("%w: %q is not a party die", ErrUnknownTarget, targets[0])
		}
		consumed, err := ReplaceTreasure(w, kind)
		if err != nil {
			return w, err
		}
		consumed.Party = consumed.Party.With(hero, consumed.Party.Count(hero)+1)
		return consumed, nil

	case Portal:
		return w, fmt.Errorf("%w: the %s opens only when retiring", ErrInvalidAction, Portal)

	case Scale:
		return w, fmt.Errorf("%w: %s tokens are spoils, not tools", ErrInvalidAction, Scale)
	}

	return w, fmt.Errorf("%w: %q names no hero or treasure", ErrUnknownActor, kind)
}
