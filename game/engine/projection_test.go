package engine

import "testing"

func TestBriefStartingWorld(t *testing.T) {
	w := NewWorld(DefaultRuleset(), DefaultCharacter(), NewSeededRoller(4))
	want := "(delve=1, ability=true, dungeon=(), party=(fighter=1, cleric=1, mage=1, thief=1, scroll=3), treasure=())"
	if got := w.Brief(); got != want {
		t.Errorf("Brief() = %s, want %s", got, want)
	}
}

func TestBriefMidDelve(t *testing.T) {
	w := World{
		Delve:      2,
		Depth:      3,
		Experience: 5,
		Dungeon:    Dungeon{Goblin: 2, Dragon: 1},
		Party:      Party{Fighter: 1, Champion: 1},
		Treasure:   Treasure{Sword: 1, Scale: 2},
	}
	want := "(delve=2, depth=3, experience=5, ability=false, dungeon=(goblin=2, dragon=1), party=(fighter=1, champion=1), treasure=(sword=1, scale=2))"
	if got := w.Brief(); got != want {
		t.Errorf("Brief() = %s, want %s", got, want)
	}
}

func TestBriefGameOver(t *testing.T) {
	w := World{Delve: 3, Experience: 14, GameOver: true}
	want := "(delve=3, experience=14, ability=false, dungeon=(), party=(), treasure=(), game_over=true)"
	if got := w.Brief(); got != want {
		t.Errorf("Brief() = %s, want %s", got, want)
	}
}

func TestBriefCanonicalOrder(t *testing.T) {
	d := Dungeon{Goblin: 1, Skeleton: 1, Ooze: 1, Chest: 1, Potion: 1, Dragon: 1}
	if got, want := d.Brief(), "(goblin=1, skeleton=1, ooze=1, chest=1, potion=1, dragon=1)"; got != want {
		t.Errorf("Dungeon.Brief() = %s, want %s", got, want)
	}
	p := Party{Fighter: 1, Cleric: 1, Mage: 1, Thief: 1, Champion: 1, Scroll: 1}
	if got, want := p.Brief(), "(fighter=1, cleric=1, mage=1, thief=1, champion=1, scroll=1)"; got != want {
		t.Errorf("Party.Brief() = %s, want %s", got, want)
	}
}
