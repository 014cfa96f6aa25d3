package engine

import (
	"errors"
	"testing"
)

func TestDragonExactlyThreeDice(t *testing.T) {
	w := testWorld(Dungeon{Dragon: 3}, Party{Fighter: 2, Cleric: 2, Mage: 2})

	next := testApply(t, w, "fighter", "dragon", "cleric", "mage")
	if next.Dungeon.Dragon != 0 {
		t.Errorf("expected the lair cleared, got %d dragons", next.Dungeon.Dragon)
	}
	if next.Party.Fighter != 1 || next.Party.Cleric != 1 || next.Party.Mage != 1 {
		t.Errorf("expected one die of each spent, got %s", next.Party.Brief())
	}
	if next.Experience != 1 {
		t.Errorf("expected 1 experience for the kill, got %d", next.Experience)
	}
	if next.Treasure.Total() != 1 {
		t.Errorf("expected one treasure draw for the kill, got %d", next.Treasure.Total())
	}
}

func TestDragonCompositionFree(t *testing.T) {
	// Three dice of a single face suffice; distinctness is not required.
	w := testWorld(Dungeon{Dragon: 4}, Party{Fighter: 3})
	next := testApply(t, w, "fighter", "dragon", "fighter", "fighter")
	if next.Dungeon.Dragon != 0 || next.Party.Fighter != 0 {
		t.Errorf("expected all dragons and all fighters gone, got %s", next.Brief())
	}
}

func TestDragonWrongPartySize(t *testing.T) {
	w := testWorld(Dungeon{Dragon: 3}, Party{Fighter: 2, Cleric: 2, Mage: 2, Thief: 2})

	// Two committed dice.
	wantApplyError(t, ErrCountMismatch, w, "fighter", "dragon", "cleric")

	// Four committed dice.
	wantApplyError(t, ErrCountMismatch, w, "fighter", "dragon", "cleric", "mage", "thief")
}

func TestDragonNeedsFullLair(t *testing.T) {
	// Below the minimum the dragon does not emerge.
	w := testWorld(Dungeon{Dragon: 2}, Party{Fighter: 1, Cleric: 1, Mage: 1})
	wantApplyError(t, ErrInvalidAction, w, "fighter", "dragon", "cleric", "mage")
}

func TestDragonAfterOtherMonsters(t *testing.T) {
	w := testWorld(Dungeon{Goblin: 1, Dragon: 3}, Party{Fighter: 1, Cleric: 1, Mage: 1})
	wantApplyError(t, ErrIllegalPhase, w, "fighter", "dragon", "cleric", "mage")
}

func TestDragonRejectsScrolls(t *testing.T) {
	w := testWorld(Dungeon{Dragon: 3}, Party{Fighter: 1, Cleric: 1, Scroll: 1})
	wantApplyError(t, ErrInvalidAction, w, "scroll", "dragon", "fighter", "cleric")
	wantApplyError(t, ErrInvalidAction, w, "fighter", "dragon", "cleric", "scroll")
}

func TestDragonChampionNotSpent(t *testing.T) {
	w := testWorld(Dungeon{Dragon: 3}, Party{Fighter: 1, Cleric: 1, Champion: 1})
	next := testApply(t, w, "champion", "dragon", "fighter", "cleric")
	if next.Party.Champion != 1 {
		t.Errorf("champion must survive the dragon fight, got %d", next.Party.Champion)
	}
	if next.Party.Fighter != 0 || next.Party.Cleric != 0 {
		t.Errorf("expected fighter and cleric spent, got %s", next.Party.Brief())
	}
}

func TestDragonInsufficientDice(t *testing.T) {
	w := testWorld(Dungeon{Dragon: 3}, Party{Fighter: 1})
	_, err := Apply(w, NewSeededRoller(4), DefaultRuleset(), DefaultCharacter(),
		"fighter", "dragon", "fighter", "fighter")
	if !errors.Is(err, ErrCountMismatch) {
		t.Fatalf("expected count mismatch for overdrawn fighters, got %v", err)
	}
}

func TestDragonSlayerNeedsOnlyTwo(t *testing.T) {
	w := testWorld(Dungeon{Dragon: 3}, Party{Fighter: 1, Mage: 1})
	slayer := knight.Advance(DefaultRuleset().PromotionThreshold, DefaultRuleset())
	if slayer.Name != "dragonslayer" {
		t.Fatalf("expected knight to advance to dragonslayer, got %s", slayer.Name)
	}

	next, err := Apply(w, NewSeededRoller(4), DefaultRuleset(), slayer, "fighter", "dragon", "mage")
	if err != nil {
		t.Fatalf("dragonslayer two-die fight failed: %v", err)
	}
	if next.Dungeon.Dragon != 0 || next.Experience != 1 {
		t.Errorf("expected dragon felled for experience, got %s", next.Brief())
	}

	// Three dice is now the wrong count.
	w = testWorld(Dungeon{Dragon: 3}, Party{Fighter: 2, Mage: 1})
	_, err = Apply(w, NewSeededRoller(4), DefaultRuleset(), slayer, "fighter", "dragon", "fighter", "mage")
	if !errors.Is(err, ErrCountMismatch) {
		t.Fatalf("expected count mismatch for three dice, got %v", err)
	}
}
