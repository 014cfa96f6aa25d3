package engine

import (
	"errors"
	"testing"
)

// testWorld returns a world mid-delve with a hand-built table and party.
func testWorld(d Dungeon, p Party) World {
	return World{
		Delve:   1,
		Depth:   1,
		Ability: true,
		Dungeon: d,
		Party:   p,
		Reserve: DefaultRuleset().InitialReserve(),
	}
}

func testApply(t *testing.T, w World, actor string, targets ...string) World {
	t.Helper()
	next, err := Apply(w, NewSeededRoller(4), DefaultRuleset(), DefaultCharacter(), actor, targets...)
	if err != nil {
		t.Fatalf("Apply(%s %v) failed: %v", actor, targets, err)
	}
	return next
}

func wantApplyError(t *testing.T, want error, w World, actor string, targets ...string) {
	t.Helper()
	next, err := Apply(w, NewSeededRoller(4), DefaultRuleset(), DefaultCharacter(), actor, targets...)
	if !errors.Is(err, want) {
		t.Fatalf("Apply(%s %v) error = %v, want %v", actor, targets, err, want)
	}
	if next != w {
		t.Errorf("failed apply changed the world: %v -> %v", w, next)
	}
}

func TestApplyMonsterOneForOne(t *testing.T) {
	w := testWorld(Dungeon{Goblin: 1}, Party{Fighter: 1, Cleric: 1, Mage: 1, Thief: 1, Scroll: 3})

	next := testApply(t, w, "fighter", "goblin")
	if next.Dungeon.Goblin != 0 {
		t.Errorf("expected goblin cleared, got %d", next.Dungeon.Goblin)
	}
	if next.Party.Fighter != 0 {
		t.Errorf("expected fighter spent, got %d", next.Party.Fighter)
	}
}

func TestApplyAnyHeroFightsAnyMonster(t *testing.T) {
	tests := []struct {
		hero    string
		monster string
	}{
		{"fighter", "skeleton"},
		{"cleric", "goblin"},
		{"mage", "ooze"},
		{"thief", "skeleton"},
	}

	for _, tt := range tests {
		w := testWorld(Dungeon{Goblin: 1, Skeleton: 1, Ooze: 1}, Party{Fighter: 1, Cleric: 1, Mage: 1, Thief: 1})
		next := testApply(t, w, tt.hero, tt.monster)
		face, _ := ParseDungeonFace(tt.monster)
		if next.Dungeon.Count(face) != 0 {
			t.Errorf("%s vs %s: expected monster cleared", tt.hero, tt.monster)
		}
		hero, _ := ParseHeroFace(tt.hero)
		if next.Party.Count(hero) != 0 {
			t.Errorf("%s vs %s: expected hero spent", tt.hero, tt.monster)
		}
	}
}

func TestApplyCountMismatch(t *testing.T) {
	// One committed die against two skeletons must fail and leave the
	// world untouched.
	w := testWorld(Dungeon{Skeleton: 2}, Party{Cleric: 2})
	wantApplyError(t, ErrCountMismatch, w, "cleric", "skeleton")

	// Committing more dice than monsters fails the same way.
	wantApplyError(t, ErrCountMismatch, w, "cleric", "skeleton", "skeleton", "skeleton")

	// Exactly matching the table count succeeds.
	next := testApply(t, w, "cleric", "skeleton", "skeleton")
	if next.Dungeon.Skeleton != 0 || next.Party.Cleric != 0 {
		t.Errorf("expected both skeletons and both clerics gone, got %s", next.Brief())
	}
}

func TestApplyInsufficientDice(t *testing.T) {
	w := testWorld(Dungeon{Goblin: 2}, Party{Fighter: 1})
	wantApplyError(t, ErrCountMismatch, w, "fighter", "goblin", "goblin")
}

func TestApplyMixedMonsterTargets(t *testing.T) {
	w := testWorld(Dungeon{Goblin: 1, Ooze: 1}, Party{Fighter: 2})
	wantApplyError(t, ErrInvalidAction, w, "fighter", "goblin", "ooze")
}

func TestApplyChampionNeverSpent(t *testing.T) {
	w := testWorld(Dungeon{Ooze: 3}, Party{Champion: 1})

	next := testApply(t, w, "champion", "ooze", "ooze", "ooze")
	if next.Dungeon.Ooze != 0 {
		t.Errorf("expected oozes cleared, got %d", next.Dungeon.Ooze)
	}
	if next.Party.Champion != 1 {
		t.Errorf("champion must not be spent, got %d", next.Party.Champion)
	}
}

func TestApplyUnknownActor(t *testing.T) {
	w := testWorld(Dungeon{Goblin: 1}, Party{Cleric: 1})
	wantApplyError(t, ErrUnknownActor, w, "fighter", "goblin")
	wantApplyError(t, ErrUnknownActor, w, "paladin", "goblin")
	wantApplyError(t, ErrUnknownActor, w, "elixir", "fighter")
}

func TestApplyUnknownTarget(t *testing.T) {
	w := testWorld(Dungeon{Goblin: 1}, Party{Fighter: 1})
	wantApplyError(t, ErrUnknownTarget, w, "fighter", "wyvern")
}

func TestApplyBeforeDescend(t *testing.T) {
	w := testWorld(Dungeon{}, Party{Fighter: 1})
	w.Depth = 0
	wantApplyError(t, ErrIllegalPhase, w, "fighter", "goblin")
}

func TestApplyChestThiefOnly(t *testing.T) {
	w := testWorld(Dungeon{Chest: 2}, Party{Fighter: 1, Thief: 1})

	// Heroes other than the thief have no rule for chests.
	wantApplyError(t, ErrInvalidAction, w, "fighter", "chest")

	// One thief opens every chest, drawing one treasure per chest.
	next := testApply(t, w, "thief", "chest")
	if next.Dungeon.Chest != 0 {
		t.Errorf("expected chests opened, got %d", next.Dungeon.Chest)
	}
	if next.Party.Thief != 0 {
		t.Errorf("expected thief spent, got %d", next.Party.Thief)
	}
	if got := next.Treasure.Total(); got != 2 {
		t.Errorf("expected 2 treasure draws, got %d", got)
	}
	if got := next.Reserve.Total(); got != w.Reserve.Total()-2 {
		t.Errorf("expected reserve down by 2, got %d", got)
	}
}

func TestApplyChestBlockedByMonsters(t *testing.T) {
	w := testWorld(Dungeon{Goblin: 1, Chest: 1}, Party{Thief: 1})
	wantApplyError(t, ErrIllegalPhase, w, "thief", "chest")
}

func TestApplyQuaffPotion(t *testing.T) {
	w := testWorld(Dungeon{Potion: 2}, Party{Cleric: 1, Scroll: 1})

	// Exactly one revive per potion.
	next := testApply(t, w, "cleric", "potion", "champion")
	if next.Dungeon.Potion != 1 {
		t.Errorf("expected one potion left, got %d", next.Dungeon.Potion)
	}
	if next.Party.Cleric != 0 {
		t.Errorf("expected quaffing cleric spent, got %d", next.Party.Cleric)
	}
	if next.Party.Champion != 1 {
		t.Errorf("expected champion revived, got %d", next.Party.Champion)
	}

	// Scrolls may quaff too.
	next = testApply(t, next, "scroll", "potion", "fighter")
	if next.Party.Fighter != 1 || next.Party.Scroll != 0 {
		t.Errorf("expected scroll spent for fighter, got %s", next.Party.Brief())
	}
}

func TestApplyQuaffCountMismatch(t *testing.T) {
	w := testWorld(Dungeon{Potion: 2}, Party{Cleric: 2})

	// Zero revives.
	wantApplyError(t, ErrCountMismatch, w, "cleric", "potion")

	// Two revives in one quaff.
	wantApplyError(t, ErrCountMismatch, w, "cleric", "potion", "fighter", "mage")
}

func TestApplyQuaffUnknownRevive(t *testing.T) {
	w := testWorld(Dungeon{Potion: 1}, Party{Cleric: 1})
	wantApplyError(t, ErrUnknownTarget, w, "cleric", "potion", "goblin")
}

func TestApplyScrollReroll(t *testing.T) {
	w := testWorld(Dungeon{Goblin: 2, Skeleton: 1, Potion: 1}, Party{Scroll: 1})

	next := testApply(t, w, "scroll", "goblin", "skeleton")
	if next.Party.Scroll != 0 {
		t.Errorf("expected scroll spent, got %d", next.Party.Scroll)
	}
	// Two dice rerolled in place: the table size is unchanged.
	if got, want := next.Dungeon.Total(), w.Dungeon.Total(); got != want {
		t.Errorf("expected %d dice on the table after reroll, got %d", want, got)
	}
	if next.Dungeon.Goblin < 1 {
		t.Errorf("only one goblin was rerolled, got %d left", next.Dungeon.Goblin)
	}
	if next.Dungeon.Potion < 1 {
		t.Errorf("potion must survive a reroll of other dice, got %d", next.Dungeon.Potion)
	}
}

func TestApplyScrollRerollRestrictions(t *testing.T) {
	w := testWorld(Dungeon{Goblin: 1, Potion: 1, Dragon: 1}, Party{Scroll: 1})

	wantApplyError(t, ErrInvalidAction, w, "scroll", "potion")
	wantApplyError(t, ErrInvalidAction, w, "scroll", "dragon", "x", "y")
	wantApplyError(t, ErrCountMismatch, w, "scroll", "goblin", "goblin")
}

func TestApplyScrollQuaffsWithRevive(t *testing.T) {
	w := testWorld(Dungeon{Potion: 1}, Party{Scroll: 1})

	next := testApply(t, w, "scroll", "potion", "fighter")
	if next.Party.Scroll != 0 {
		t.Errorf("expected quaffing scroll spent, got %d", next.Party.Scroll)
	}
	if next.Party.Fighter != 1 {
		t.Errorf("expected a revived fighter, got %d", next.Party.Fighter)
	}
	if next.Dungeon.Potion != 0 {
		t.Errorf("expected potion consumed, got %d", next.Dungeon.Potion)
	}
}

func TestApplyFailureLeavesWorldUnchanged(t *testing.T) {
	w := testWorld(Dungeon{Goblin: 2, Chest: 1}, Party{Fighter: 1, Thief: 1, Scroll: 1})

	cases := [][]string{
		{"fighter", "goblin"},
		{"thief", "chest"},
		{"mage", "ooze"},
		{"scroll", "dragon"},
		{"champion", "goblin", "goblin"},
	}
	for _, args := range cases {
		next, err := Apply(w, NewSeededRoller(4), DefaultRuleset(), DefaultCharacter(), args[0], args[1:]...)
		if err == nil {
			t.Fatalf("Apply(%v) unexpectedly succeeded", args)
		}
		if next != w {
			t.Errorf("Apply(%v) changed the world on failure", args)
		}
	}
}
