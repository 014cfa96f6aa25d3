package engine

// DungeonFace identifies one face of a dungeon die.
type DungeonFace string

const (
	Goblin   DungeonFace = "goblin"
	Skeleton DungeonFace = "skeleton"
	Ooze     DungeonFace = "ooze"
	Chest    DungeonFace = "chest"
	Potion   DungeonFace = "potion"
	Dragon   DungeonFace = "dragon"
)

// DungeonFaces lists every dungeon die face in canonical order. The order is
// part of the projection contract and must not change.
var DungeonFaces = [6]DungeonFace{Goblin, Skeleton, Ooze, Chest, Potion, Dragon}

// HeroFace identifies one face of a party die. Scroll is a hero-like
// consumable rather than a true hero.
type HeroFace string

const (
	Fighter  HeroFace = "fighter"
	Cleric   HeroFace = "cleric"
	Mage     HeroFace = "mage"
	Thief    HeroFace = "thief"
	Champion HeroFace = "champion"
	Scroll   HeroFace = "scroll"
)

// HeroFaces lists every party die face in canonical order.
var HeroFaces = [6]HeroFace{Fighter, Cleric, Mage, Thief, Champion, Scroll}

// TreasureKind identifies one kind of treasure token.
type TreasureKind string

const (
	Sword       TreasureKind = "sword"
	Talisman    TreasureKind = "talisman"
	Sceptre     TreasureKind = "sceptre"
	Tools       TreasureKind = "tools"
	ScrollToken TreasureKind = "scroll"
	Portal      TreasureKind = "portal"
	Bait        TreasureKind = "bait"
	Elixir      TreasureKind = "elixir"
	Scale       TreasureKind = "scale"
	Ring        TreasureKind = "ring"
)

// TreasureKinds lists every treasure kind in canonical order.
var TreasureKinds = [10]TreasureKind{
	Sword, Talisman, Sceptre, Tools, ScrollToken,
	Portal, Bait, Elixir, Scale, Ring,
}

// Dungeon is the multiset of dungeon dice currently on the table. A zero
// count means the face is absent. Fixed fields keep face handling exhaustive
// at compile time.
type Dungeon struct {
	Goblin   int `json:"goblin,omitempty"`
	Skeleton int `json:"skeleton,omitempty"`
	Ooze     int `json:"ooze,omitempty"`
	Chest    int `json:"chest,omitempty"`
	Potion   int `json:"potion,omitempty"`
	Dragon   int `json:"dragon,omitempty"`
}

// Count returns the number of dice showing the given face.
func (d Dungeon) Count(face DungeonFace) int {
	switch face {
	case Goblin:
		return d.Goblin
	case Skeleton:
		return d.Skeleton
	case Ooze:
		return d.Ooze
	case Chest:
		return d.Chest
	case Potion:
		return d.Potion
	case Dragon:
		return d.Dragon
	}
	return 0
}

// With returns a copy of the multiset with the given face set to n.
func (d Dungeon) With(face DungeonFace, n int) Dungeon {
	switch face {
	case Goblin:
		d.Goblin = n
	case Skeleton:
		d.Skeleton = n
	case Ooze:
		d.Ooze = n
	case Chest:
		d.Chest = n
	case Potion:
		d.Potion = n
	case Dragon:
		d.Dragon = n
	}
	return d
}

// Total returns the number of dice on the table.
func (d Dungeon) Total() int {
	return d.Goblin + d.Skeleton + d.Ooze + d.Chest + d.Potion + d.Dragon
}

// Monsters returns the count of outstanding monsters that block descending
// and retiring. Dragon dice sit in the lair and are not counted here.
func (d Dungeon) Monsters() int {
	return d.Goblin + d.Skeleton + d.Ooze
}

// Party is the multiset of party dice available to spend.
type Party struct {
	Fighter  int `json:"fighter,omitempty"`
	Cleric   int `json:"cleric,omitempty"`
	Mage     int `json:"mage,omitempty"`
	Thief    int `json:"thief,omitempty"`
	Champion int `json:"champion,omitempty"`
	Scroll   int `json:"scroll,omitempty"`
}

// Count returns the number of dice showing the given face.
func (p Party) Count(face HeroFace) int {
	switch face {
	case Fighter:
		return p.Fighter
	case Cleric:
		return p.Cleric
	case Mage:
		return p.Mage
	case Thief:
		return p.Thief
	case Champion:
		return p.Champion
	case Scroll:
		return p.Scroll
	}
	return 0
}

// With returns a copy of the multiset with the given face set to n.
func (p Party) With(face HeroFace, n int) Party {
	switch face {
	case Fighter:
		p.Fighter = n
	case Cleric:
		p.Cleric = n
	case Mage:
		p.Mage = n
	case Thief:
		p.Thief = n
	case Champion:
		p.Champion = n
	case Scroll:
		p.Scroll = n
	}
	return p
}

// Total returns the number of dice in the party.
func (p Party) Total() int {
	return p.Fighter + p.Cleric + p.Mage + p.Thief + p.Champion + p.Scroll
}

// Heroes returns the number of party dice counting scroll as zero. Retire
// experience policies use this to count scrolls differently from heroes.
func (p Party) Heroes() int {
	return p.Fighter + p.Cleric + p.Mage + p.Thief + p.Champion
}

// Treasure is a multiset of treasure tokens, keyed by kind.
type Treasure struct {
	Sword    int `json:"sword,omitempty"`
	Talisman int `json:"talisman,omitempty"`
	Sceptre  int `json:"sceptre,omitempty"`
	Tools    int `json:"tools,omitempty"`
	Scroll   int `json:"scroll,omitempty"`
	Portal   int `json:"portal,omitempty"`
	Bait     int `json:"bait,omitempty"`
	Elixir   int `json:"elixir,omitempty"`
	Scale    int `json:"scale,omitempty"`
	Ring     int `json:"ring,omitempty"`
}

// Count returns the number of tokens of the given kind.
func (t Treasure) Count(kind TreasureKind) int {
	switch kind {
	case Sword:
		return t.Sword
	case Talisman:
		return t.Talisman
	case Sceptre:
		return t.Sceptre
	case Tools:
		return t.Tools
	case ScrollToken:
		return t.Scroll
	case Portal:
		return t.Portal
	case Bait:
		return t.Bait
	case Elixir:
		return t.Elixir
	case Scale:
		return t.Scale
	case Ring:
		return t.Ring
	}
	return 0
}

// With returns a copy of the multiset with the given kind set to n.
func (t Treasure) With(kind TreasureKind, n int) Treasure {
	switch kind {
	case Sword:
		t.Sword = n
	case Talisman:
		t.Talisman = n
	case Sceptre:
		t.Sceptre = n
	case Tools:
		t.Tools = n
	case ScrollToken:
		t.Scroll = n
	case Portal:
		t.Portal = n
	case Bait:
		t.Bait = n
	case Elixir:
		t.Elixir = n
	case Scale:
		t.Scale = n
	case Ring:
		t.Ring = n
	}
	return t
}

// Total returns the number of tokens held.
func (t Treasure) Total() int {
	return t.Sword + t.Talisman + t.Sceptre + t.Tools + t.Scroll +
		t.Portal + t.Bait + t.Elixir + t.Scale + t.Ring
}

// World is the authoritative snapshot of a game. It has value semantics:
// transitions consume a World and return a new one, and on error the input
// World is returned unchanged. No transition mutates a World in place.
type World struct {
	Delve      int      `json:"delve"`
	Depth      int      `json:"depth"`
	Experience int      `json:"experience"`
	Ability    bool     `json:"ability"`
	Dungeon    Dungeon  `json:"dungeon"`
	Party      Party    `json:"party"`
	Treasure   Treasure `json:"treasure"`

	// Reserve is the face-down pool treasure is drawn from. Draws are
	// without replacement; consumed tokens return to the pool.
	Reserve Treasure `json:"reserve"`

	// GameOver is set once the third delve has been retired or abandoned.
	GameOver bool `json:"game_over,omitempty"`
}

// ParseHeroFace reports whether name is a party die face.
func ParseHeroFace(name string) (HeroFace, bool) {
	for _, face := range HeroFaces {
		if name == string(face) {
			return face, true
		}
	}
	return "", false
}

// ParseDungeonFace reports whether name is a dungeon die face.
func ParseDungeonFace(name string) (DungeonFace, bool) {
	for _, face := range DungeonFaces {
		if name == string(face) {
			return face, true
		}
	}
	return "", false
}

// ParseTreasureKind reports whether name is a treasure kind. Note that
// "scroll" names a party die face as well; actor resolution prefers the die.
func ParseTreasureKind(name string) (TreasureKind, bool) {
	for _, kind := range TreasureKinds {
		if name == string(kind) {
			return kind, true
		}
	}
	return "", false
}
