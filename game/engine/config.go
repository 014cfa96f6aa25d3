package engine

import (
	"fmt"
	"sort"
)

// Validation bounds for rulesets.
const (
	MaxDungeonDiceCap = 10
	MaxDelves         = 10
	MaxTierPartySize  = 20
)

// TreasureSpec describes one treasure kind in a ruleset: how many tokens the
// reserve holds at game start and how many points an unspent token scores.
type TreasureSpec struct {
	Pool  int `json:"pool"`
	Value int `json:"value"`
}

// ExperienceTier maps an experience bracket to the party a freshly started
// delve begins with. A tier applies from MinExperience up to the next tier.
type ExperienceTier struct {
	MinExperience int   `json:"min_experience"`
	Party         Party `json:"party"`
}

// Ruleset gathers every numeric table the engine consumes. The tables are
// deliberately configuration rather than code so variants can be pinned down
// from observed play without rebuilding.
type Ruleset struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Delves is the number of delves in a run.
	Delves int `json:"delves"`

	// DungeonDiceCap caps how many dungeon dice a depth can roll.
	DungeonDiceCap int `json:"dungeon_dice_cap"`

	// PartyDice is how many party dice a rolling character throws when a
	// delve starts. Characters with fixed tier parties ignore it.
	PartyDice int `json:"party_dice"`

	// DragonMinimum is how many dragon dice must be in the lair before the
	// dragon can be fought.
	DragonMinimum int `json:"dragon_minimum"`

	// PromotionThreshold is the banked experience at which a character
	// advances to its promoted form.
	PromotionThreshold int `json:"promotion_threshold"`

	// Tiers is the experience table parties regenerate from, ascending by
	// MinExperience with the first entry at 0.
	Tiers []ExperienceTier `json:"experience_tiers"`

	// Treasures describes the pool and point value of each treasure kind.
	Treasures map[TreasureKind]TreasureSpec `json:"treasures"`
}

// DefaultRuleset returns the standard tables: a three-delve run, depth N
// rolling min(N, 7) dungeon dice, a 36-token treasure reserve, and the
// documented base party growing a champion at 5 experience.
func DefaultRuleset() *Ruleset {
	return &Ruleset{
		Name:               "standard",
		Description:        "Standard three-delve dungeon dice rules",
		Delves:             3,
		DungeonDiceCap:     7,
		PartyDice:          7,
		DragonMinimum:      3,
		PromotionThreshold: 5,
		Tiers: []ExperienceTier{
			{MinExperience: 0, Party: Party{Fighter: 1, Cleric: 1, Mage: 1, Thief: 1, Scroll: 3}},
			{MinExperience: 5, Party: Party{Fighter: 1, Cleric: 1, Mage: 1, Thief: 1, Champion: 1, Scroll: 2}},
			{MinExperience: 10, Party: Party{Fighter: 2, Cleric: 1, Mage: 1, Thief: 1, Champion: 1, Scroll: 2}},
			{MinExperience: 15, Party: Party{Fighter: 2, Cleric: 2, Mage: 1, Thief: 1, Champion: 1, Scroll: 2}},
			{MinExperience: 20, Party: Party{Fighter: 2, Cleric: 2, Mage: 2, Thief: 1, Champion: 1, Scroll: 2}},
		},
		Treasures: map[TreasureKind]TreasureSpec{
			Sword:       {Pool: 3, Value: 1},
			Talisman:    {Pool: 3, Value: 1},
			Sceptre:     {Pool: 3, Value: 1},
			Tools:       {Pool: 3, Value: 1},
			ScrollToken: {Pool: 3, Value: 1},
			Elixir:      {Pool: 3, Value: 1},
			Portal:      {Pool: 4, Value: 2},
			Bait:        {Pool: 4, Value: 1},
			Ring:        {Pool: 4, Value: 1},
			Scale:       {Pool: 6, Value: 2},
		},
	}
}

// ValidateRuleset checks a ruleset for structural problems. It returns nil
// when the ruleset is playable.
func ValidateRuleset(rs *Ruleset) error {
	if rs == nil {
		return fmt.Errorf("ruleset cannot be nil")
	}
	if rs.Name == "" {
		return fmt.Errorf("ruleset name is required")
	}
	if rs.Delves < 1 || rs.Delves > MaxDelves {
		return fmt.Errorf("delves must be between 1 and %d, got %d", MaxDelves, rs.Delves)
	}
	if rs.DungeonDiceCap < 1 || rs.DungeonDiceCap > MaxDungeonDiceCap {
		return fmt.Errorf("dungeon_dice_cap must be between 1 and %d, got %d", MaxDungeonDiceCap, rs.DungeonDiceCap)
	}
	if rs.PartyDice < 1 {
		return fmt.Errorf("party_dice must be positive, got %d", rs.PartyDice)
	}
	if rs.DragonMinimum < 1 {
		return fmt.Errorf("dragon_minimum must be positive, got %d", rs.DragonMinimum)
	}
	if rs.PromotionThreshold < 0 {
		return fmt.Errorf("promotion_threshold cannot be negative, got %d", rs.PromotionThreshold)
	}
	if len(rs.Tiers) == 0 {
		return fmt.Errorf("at least one experience tier is required")
	}
	if !sort.SliceIsSorted(rs.Tiers, func(i, j int) bool {
		return rs.Tiers[i].MinExperience < rs.Tiers[j].MinExperience
	}) {
		return fmt.Errorf("experience tiers must ascend by min_experience")
	}
	if rs.Tiers[0].MinExperience != 0 {
		return fmt.Errorf("first experience tier must start at 0, got %d", rs.Tiers[0].MinExperience)
	}
	for i, tier := range rs.Tiers {
		total := tier.Party.Total()
		if total < 1 || total > MaxTierPartySize {
			return fmt.Errorf("tier %d party size must be between 1 and %d, got %d", i, MaxTierPartySize, total)
		}
		for _, face := range HeroFaces {
			if tier.Party.Count(face) < 0 {
				return fmt.Errorf("tier %d has a negative %s count", i, face)
			}
		}
	}
	if len(rs.Treasures) == 0 {
		return fmt.Errorf("treasure catalogue cannot be empty")
	}
	pool := 0
	for kind, spec := range rs.Treasures {
		if _, ok := ParseTreasureKind(string(kind)); !ok {
			return fmt.Errorf("unknown treasure kind %q", kind)
		}
		if spec.Pool < 0 {
			return fmt.Errorf("treasure %s has a negative pool", kind)
		}
		if spec.Value < 0 {
			return fmt.Errorf("treasure %s has a negative value", kind)
		}
		pool += spec.Pool
	}
	if pool == 0 {
		return fmt.Errorf("treasure reserve cannot be empty")
	}
	return nil
}

// DungeonDice returns how many dungeon dice a given depth rolls.
func (rs *Ruleset) DungeonDice(depth int) int {
	if depth > rs.DungeonDiceCap {
		return rs.DungeonDiceCap
	}
	return depth
}

// PartyFor returns the tier party for the given banked experience.
func (rs *Ruleset) PartyFor(experience int) Party {
	party := rs.Tiers[0].Party
	for _, tier := range rs.Tiers {
		if experience < tier.MinExperience {
			break
		}
		party = tier.Party
	}
	return party
}

// TreasureValue returns the point value of one token of the given kind.
// Kinds missing from the catalogue are worth nothing.
func (rs *Ruleset) TreasureValue(kind TreasureKind) int {
	return rs.Treasures[kind].Value
}

// InitialReserve builds the face-down treasure pool a new game starts with.
func (rs *Ruleset) InitialReserve() Treasure {
	var reserve Treasure
	for kind, spec := range rs.Treasures {
		reserve = reserve.With(kind, spec.Pool)
	}
	return reserve
}
