package engine

import (
	"fmt"
	"sort"
)

// Character bundles the rule hooks that vary per playable character: the
// once-per-delve ability, how the party regenerates between delves, how many
// dice the dragon demands, and refunds on kills. Characters form a small
// closed set dispatched by name; a session selects one at construction and
// it may advance to a promoted form as experience accumulates.
type Character struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// DragonDice is the number of party dice a single apply must commit to
	// fell the dragon.
	DragonDice int `json:"dragon_dice"`

	// ability applies the character transformation. The caller has already
	// verified the ability is available and will mark it consumed.
	ability func(w World, roller *Roller, target string) (World, error)

	// newParty regenerates the party when a delve starts.
	newParty func(rs *Ruleset, experience int, roller *Roller) Party

	// refund reports how many of the dice committed against face return to
	// the party after the kill. Zero for every character but the Bard.
	refund func(hero HeroFace, face DungeonFace, committed int) int

	// promotion is the form this character advances into, nil when the
	// character cannot advance further.
	promotion *Character
}

// Advance returns the form the character takes at the given experience.
// Characters advance once their banked experience reaches the ruleset's
// promotion threshold.
func (c *Character) Advance(experience int, rs *Ruleset) *Character {
	if c.promotion != nil && experience >= rs.PromotionThreshold {
		return c.promotion
	}
	return c
}

// tierParty regenerates the party from the ruleset experience table.
func tierParty(rs *Ruleset, experience int, _ *Roller) Party {
	return rs.PartyFor(experience)
}

// rolledParty regenerates the party by rolling fresh party dice, turning
// every scroll into a champion (the knight trains no scribes).
func rolledParty(rs *Ruleset, _ int, roller *Roller) Party {
	p := roller.RollParty(rs.PartyDice)
	p.Champion += p.Scroll
	p.Scroll = 0
	return p
}

// monstersToDragons converts every monster on the table into dragon dice.
func monstersToDragons(w World, _ *Roller, target string) (World, error) {
	if target != "" && target != string(Dragon) {
		return w, fmt.Errorf("%w: ability can only produce %s, not %s", ErrUnknownTarget, Dragon, target)
	}
	converted := w.Dungeon.Monsters()
	if converted == 0 {
		return w, fmt.Errorf("%w: no monsters on the table to convert", ErrInvalidAction)
	}
	w.Dungeon = Dungeon{
		Chest:  w.Dungeon.Chest,
		Potion: w.Dungeon.Potion,
		Dragon: w.Dungeon.Dragon + converted,
	}
	return w, nil
}

// discardDragons clears the dragon's lair without a fight.
func discardDragons(w World, _ *Roller, target string) (World, error) {
	if target != "" && target != string(Dragon) {
		return w, fmt.Errorf("%w: ability can only discard %s, not %s", ErrUnknownTarget, Dragon, target)
	}
	if w.Dungeon.Dragon == 0 {
		return w, fmt.Errorf("%w: no dragon dice to discard", ErrInvalidAction)
	}
	w.Dungeon.Dragon = 0
	return w, nil
}

// noRefund is the default kill policy: committed dice stay spent.
func noRefund(HeroFace, DungeonFace, int) int { return 0 }

// bardRefund returns one fighter die per goblin kill. Bards sing fighters
// back into the fray.
func bardRefund(hero HeroFace, face DungeonFace, committed int) int {
	if hero == Fighter && face == Goblin && committed > 0 {
		return 1
	}
	return 0
}

// The closed character set. Promoted forms are reachable only through
// Advance and are not listed for selection.
var (
	adventurer = &Character{
		Name:        "adventurer",
		Description: "Baits every monster on the table into the dragon's lair",
		DragonDice:  3,
		ability:     monstersToDragons,
		newParty:    tierParty,
		refund:      noRefund,
	}

	dragonslayer = &Character{
		Name:        "dragonslayer",
		Description: "A promoted knight; fells the dragon with only two dice",
		DragonDice:  2,
		ability:     monstersToDragons,
		newParty:    rolledParty,
		refund:      noRefund,
	}

	knight = &Character{
		Name:        "knight",
		Description: "Rolls its party fresh each delve, training scrolls into champions",
		DragonDice:  3,
		ability:     monstersToDragons,
		newParty:    rolledParty,
		refund:      noRefund,
		promotion:   dragonslayer,
	}

	bard = &Character{
		Name:        "bard",
		Description: "A promoted minstrel; fighters return from goblin kills",
		DragonDice:  3,
		ability:     discardDragons,
		newParty:    tierParty,
		refund:      bardRefund,
	}

	minstrel = &Character{
		Name:        "minstrel",
		Description: "Charms the dragon's lair empty once per delve",
		DragonDice:  3,
		ability:     discardDragons,
		newParty:    tierParty,
		refund:      noRefund,
		promotion:   bard,
	}
)

var characters = map[string]*Character{
	adventurer.Name: adventurer,
	knight.Name:     knight,
	minstrel.Name:   minstrel,
}

// DefaultCharacter returns the character used when none is requested.
func DefaultCharacter() *Character {
	return adventurer
}

// CharacterByName looks up a selectable character.
func CharacterByName(name string) (*Character, error) {
	if name == "" {
		return DefaultCharacter(), nil
	}
	c, ok := characters[name]
	if !ok {
		return nil, fmt.Errorf("unknown character %q", name)
	}
	return c, nil
}

// CharacterNames returns the selectable character names, sorted.
func CharacterNames() []string {
	names := make([]string, 0, len(characters))
	for name := range characters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
