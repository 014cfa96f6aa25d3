// Package config provides ruleset management for the dungeon dice game.
//
// The config package handles:
//   - Loading rulesets from JSON files
//   - Ruleset validation and caching
//   - Default ruleset resolution
//   - Ruleset discovery and listing
//
// Ruleset Format:
//
// Rulesets are stored as JSON files in the configs directory. Each ruleset
// defines:
//   - The number of delves in a run and the dungeon dice cap per depth
//   - The dragon minimum and the promotion threshold
//   - The experience tier table parties regenerate from
//   - The treasure catalogue: pool sizes and point values per kind
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load a specific ruleset
//	rules, err := manager.LoadRuleset("standard")
//
//	// Get the default ruleset
//	rules = manager.GetDefault()
//
//	// List available rulesets
//	infos, err := manager.ListRulesets()
//
// Validation:
//
// Every loaded ruleset passes engine.ValidateRuleset before it is cached:
// tier tables must ascend from zero, the treasure reserve must be non-empty,
// and every numeric bound must be playable. Invalid files are skipped when
// listing and rejected when loaded directly.
package config
