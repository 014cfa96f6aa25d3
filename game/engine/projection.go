package engine

import (
	"fmt"
	"strings"
)

// Brief renders the canonical textual projection of a world, e.g.
//
//	(delve=2, depth=1, experience=5, ability=true, dungeon=(ooze=1), party=(fighter=1, scroll=2), treasure=())
//
// Fields appear in a fixed order; depth is omitted before the first descend,
// experience while zero, and zero counts everywhere. External tooling parses
// this format, so it must stay stable.
func (w World) Brief() string {
	parts := []string{fmt.Sprintf("delve=%d", w.Delve)}
	if w.Depth > 0 {
		parts = append(parts, fmt.Sprintf("depth=%d", w.Depth))
	}
	if w.Experience > 0 {
		parts = append(parts, fmt.Sprintf("experience=%d", w.Experience))
	}
	parts = append(parts, fmt.Sprintf("ability=%t", w.Ability))
	parts = append(parts, "dungeon="+w.Dungeon.Brief())
	parts = append(parts, "party="+w.Party.Brief())
	parts = append(parts, "treasure="+w.Treasure.Brief())
	if w.GameOver {
		parts = append(parts, "game_over=true")
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Brief renders the dungeon as face=count pairs in canonical face order,
// omitting zero counts.
func (d Dungeon) Brief() string {
	var pairs []string
	for _, face := range DungeonFaces {
		if n := d.Count(face); n > 0 {
			pairs = append(pairs, fmt.Sprintf("%s=%d", face, n))
		}
	}
	return "(" + strings.Join(pairs, ", ") + ")"
}

// Brief renders the party as face=count pairs in canonical face order,
// omitting zero counts.
func (p Party) Brief() string {
	var pairs []string
	for _, face := range HeroFaces {
		if n := p.Count(face); n > 0 {
			pairs = append(pairs, fmt.Sprintf("%s=%d", face, n))
		}
	}
	return "(" + strings.Join(pairs, ", ") + ")"
}

// Brief renders held treasure as kind=count pairs in canonical kind order,
// omitting zero counts.
func (t Treasure) Brief() string {
	var pairs []string
	for _, kind := range TreasureKinds {
		if n := t.Count(kind); n > 0 {
			pairs = append(pairs, fmt.Sprintf("%s=%d", kind, n))
		}
	}
	return "(" + strings.Join(pairs, ", ") + ")"
}
