package engine

import "testing"

func TestSeededRollerIsDeterministic(t *testing.T) {
	for _, seed := range []int64{0, 1, 4, 42, -7} {
		a := NewSeededRoller(seed)
		b := NewSeededRoller(seed)
		for i := 0; i < 20; i++ {
			if da, db := a.RollDungeon(7), b.RollDungeon(7); da != db {
				t.Fatalf("seed %d roll %d diverged: %s vs %s", seed, i, da.Brief(), db.Brief())
			}
			if pa, pb := a.RollParty(7), b.RollParty(7); pa != pb {
				t.Fatalf("seed %d party roll %d diverged: %s vs %s", seed, i, pa.Brief(), pb.Brief())
			}
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := NewSeededRoller(1)
	b := NewSeededRoller(2)
	for i := 0; i < 10; i++ {
		if a.RollDungeon(7) != b.RollDungeon(7) {
			return
		}
	}
	t.Error("seeds 1 and 2 produced 10 identical rolls")
}

func TestRollCounts(t *testing.T) {
	roller := NewSeededRoller(4)
	for n := 0; n <= 10; n++ {
		if got := roller.RollDungeon(n).Total(); got != n {
			t.Errorf("RollDungeon(%d) produced %d dice", n, got)
		}
		if got := roller.RollParty(n).Total(); got != n {
			t.Errorf("RollParty(%d) produced %d dice", n, got)
		}
	}
}

func TestRollCoversAllFaces(t *testing.T) {
	// With 600 dice every face of a fair die shows up.
	roller := NewSeededRoller(4)
	d := roller.RollDungeon(600)
	for _, face := range DungeonFaces {
		if d.Count(face) == 0 {
			t.Errorf("face %s never rolled", face)
		}
	}
	p := roller.RollParty(600)
	for _, face := range HeroFaces {
		if p.Count(face) == 0 {
			t.Errorf("face %s never rolled", face)
		}
	}
}
