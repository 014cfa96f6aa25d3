package engine

import "fmt"

// heroEquivalents maps the treasure kinds that mimic a party die to the face
// they stand in for. These kinds resolve through the same matching rules as
// the die itself, except the committed die comes from the satchel rather
// than the party.
var heroEquivalents = map[TreasureKind]HeroFace{
	Sword:       Fighter,
	Talisman:    Cleric,
	Sceptre:     Mage,
	Tools:       Thief,
	ScrollToken: Scroll,
}

// HeroEquivalent returns the party die face a treasure kind mimics, if any.
func HeroEquivalent(kind TreasureKind) (HeroFace, bool) {
	face, ok := heroEquivalents[kind]
	return face, ok
}

// DrawTreasure moves one uniformly drawn token from the face-down reserve to
// the held treasure. An exhausted reserve draws nothing.
func DrawTreasure(w World, roller *Roller) World {
	remaining := w.Reserve.Total()
	if remaining == 0 {
		return w
	}
	pick := roller.pick(remaining)
	for _, kind := range TreasureKinds {
		n := w.Reserve.Count(kind)
		if pick < n {
			w.Reserve = w.Reserve.With(kind, n-1)
			w.Treasure = w.Treasure.With(kind, w.Treasure.Count(kind)+1)
			return w
		}
		pick -= n
	}
	// Unreachable: pick is always below the reserve total.
	return w
}

// ReplaceTreasure consumes one held token of the given kind, returning it to
// the reserve so later draws may produce it again.
func ReplaceTreasure(w World, kind TreasureKind) (World, error) {
	held := w.Treasure.Count(kind)
	if held == 0 {
		return w, fmt.Errorf("%w: no %s held", ErrUnknownActor, kind)
	}
	w.Treasure = w.Treasure.With(kind, held-1)
	w.Reserve = w.Reserve.With(kind, w.Reserve.Count(kind)+1)
	return w, nil
}

// Score computes the final score of a world: banked experience plus each
// held treasure token at its catalogue value. Score is a pure function and
// may be called on any world, though it is only meaningful once the run has
// ended.
func Score(w World, rules *Ruleset) int {
	total := w.Experience
	for _, kind := range TreasureKinds {
		total += w.Treasure.Count(kind) * rules.TreasureValue(kind)
	}
	return total
}
