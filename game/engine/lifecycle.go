package engine

import "fmt"

// NewWorld creates the starting world for a run: first delve, nothing
// rolled, ability ready, tier party, full treasure reserve.
func NewWorld(rules *Ruleset, ch *Character, roller *Roller) World {
	return World{
		Delve:   1,
		Ability: true,
		Party:   ch.newParty(rules, 0, roller),
		Reserve: rules.InitialReserve(),
	}
}

// Descend steps one depth deeper and rolls the new dungeon. Descending is
// legal at the very start of a delve and whenever the outstanding monsters
// have been cleared. Chest and potion leftovers are discarded; dragon dice
// stay in the lair and accumulate.
func Descend(w World, roller *Roller, rules *Ruleset) (World, error) {
	if w.GameOver {
		return w, fmt.Errorf("%w: the run has ended", ErrIllegalPhase)
	}
	if w.Depth > 0 && w.Dungeon.Monsters() > 0 {
		return w, fmt.Errorf("%w: %d monsters outstanding, clear them before descending",
			ErrIllegalPhase, w.Dungeon.Monsters())
	}

	w.Depth++
	dungeon := roller.RollDungeon(rules.DungeonDice(w.Depth))
	dungeon.Dragon += w.Dungeon.Dragon
	w.Dungeon = dungeon
	return w, nil
}

// UseAbility consumes the once-per-delve character ability and applies its
// transformation. The optional target narrows the effect for characters
// that accept one.
func UseAbility(w World, roller *Roller, ch *Character, target string) (World, error) {
	if w.GameOver {
		return w, fmt.Errorf("%w: the run has ended", ErrIllegalPhase)
	}
	if !w.Ability {
		return w, fmt.Errorf("%w: ability already used this delve", ErrIllegalPhase)
	}
	next, err := ch.ability(w, roller, target)
	if err != nil {
		return w, err
	}
	next.Ability = false
	return next, nil
}

// Retire ends the delve voluntarily, banking experience for the depth
// reached plus the surviving heroes (scrolls are consumables and bank
// nothing). Retiring demands a cleared table; a held portal token is
// consumed to retire past outstanding monsters. The next delve starts
// automatically, or the run ends after the last one.
func Retire(w World, roller *Roller, rules *Ruleset, ch *Character) (World, error) {
	if w.GameOver {
		return w, fmt.Errorf("%w: the run has ended", ErrIllegalPhase)
	}
	if w.Depth == 0 {
		return w, fmt.Errorf("%w: descend before retiring", ErrIllegalPhase)
	}
	if w.Dungeon.Monsters() > 0 {
		consumed, err := ReplaceTreasure(w, Portal)
		if err != nil {
			return w, fmt.Errorf("%w: monsters remain and no portal is held; retreat instead",
				ErrIllegalPhase)
		}
		w = consumed
	}

	w.Experience += w.Depth + w.Party.Heroes()
	return endDelve(w, roller, rules, ch), nil
}

// Retreat abandons the delve with nothing banked. It is the forced exit:
// whenever the table is cleared and a retire would be legal, retreat is
// rejected with guidance to retire instead.
func Retreat(w World, roller *Roller, rules *Ruleset, ch *Character) (World, error) {
	if w.GameOver {
		return w, fmt.Errorf("%w: the run has ended", ErrIllegalPhase)
	}
	if w.Depth == 0 {
		return w, fmt.Errorf("%w: descend before retreating", ErrIllegalPhase)
	}
	if w.Dungeon.Monsters() == 0 {
		return w, fmt.Errorf("%w: the table is clear, retire instead to bank experience",
			ErrIllegalPhase)
	}
	return endDelve(w, roller, rules, ch), nil
}

// endDelve starts the next delve or ends the run after the last one. The
// party regenerates from the banked experience total; treasure and the
// reserve carry over untouched.
func endDelve(w World, roller *Roller, rules *Ruleset, ch *Character) World {
	w.Dungeon = Dungeon{}
	if w.Delve >= rules.Delves {
		w.GameOver = true
		return w
	}
	w.Delve++
	w.Depth = 0
	w.Ability = true
	w.Party = ch.newParty(rules, w.Experience, roller)
	return w
}
