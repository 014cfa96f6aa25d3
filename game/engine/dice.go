package engine

import (
	"math/rand"
	"time"
)

// Face distribution tables. Index i holds the face shown when a die lands on
// side i. Both dice are six-sided; repeating a face in a table weights it.
var (
	dungeonDieTable = [6]DungeonFace{Goblin, Skeleton, Ooze, Chest, Potion, Dragon}
	partyDieTable   = [6]HeroFace{Fighter, Cleric, Mage, Thief, Champion, Scroll}
)

// Roller produces die faces and treasure draws from a private random source.
// A Roller is owned by exactly one game session and must not be shared:
// determinism depends on the session advancing the cursor alone.
type Roller struct {
	rng *rand.Rand
}

// NewRoller returns a Roller seeded from the wall clock. Sequences are not
// reproducible; use NewSeededRoller for deterministic play.
func NewRoller() *Roller {
	return NewSeededRoller(time.Now().UnixNano())
}

// NewSeededRoller returns a Roller producing a reproducible sequence.
// The same seed and the same call order yield bit-identical outcomes.
func NewSeededRoller(seed int64) *Roller {
	return &Roller{rng: rand.New(rand.NewSource(seed))}
}

// RollDungeon rolls n dungeon dice and returns the resulting multiset.
func (r *Roller) RollDungeon(n int) Dungeon {
	var d Dungeon
	for i := 0; i < n; i++ {
		face := dungeonDieTable[r.rng.Intn(len(dungeonDieTable))]
		d = d.With(face, d.Count(face)+1)
	}
	return d
}

// RollParty rolls n party dice and returns the resulting multiset.
func (r *Roller) RollParty(n int) Party {
	var p Party
	for i := 0; i < n; i++ {
		face := partyDieTable[r.rng.Intn(len(partyDieTable))]
		p = p.With(face, p.Count(face)+1)
	}
	return p
}

// pick returns a uniform index in [0, n). Used for treasure draws so that
// all randomness in a session flows through the one cursor.
func (r *Roller) pick(n int) int {
	return r.rng.Intn(n)
}
