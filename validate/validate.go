// Command validate provides a small CLI that validates ruleset JSON files in
// the ../configs directory. It checks:
//   - JSON structure and required fields
//   - The structural rules the engine enforces (delve counts, dice caps,
//     experience tiers, treasure catalogue)
//   - A few playability heuristics: a dragon minimum the dice cap can reach,
//     a reserve large enough for a full run, and tiers that shrink the party
//     as experience grows
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/dicedelve/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateRulesetFile loads and validates a single ruleset JSON file. It runs
// the engine's structural validation first, then the playability heuristics.
func validateRulesetFile(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var rules engine.Ruleset
	if err := json.Unmarshal(data, &rules); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateRuleset(&rules); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Structural validation failed: %v", err))
		return result
	}

	// Playability heuristics. These do not fail validation on their own
	// unless the ruleset is unwinnable outright.

	if rules.DragonMinimum > rules.DungeonDiceCap {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(
			"dragon_minimum (%d) exceeds dungeon_dice_cap (%d): the dragon can never be fought",
			rules.DragonMinimum, rules.DungeonDiceCap))
	}

	reserve := rules.InitialReserve()
	if reserve.Total() < rules.Delves {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(
			"treasure reserve holds %d tokens for %d delves: not enough to draw once per delve",
			reserve.Total(), rules.Delves))
	}

	for i := 1; i < len(rules.Tiers); i++ {
		prev, cur := rules.Tiers[i-1].Party.Total(), rules.Tiers[i].Party.Total()
		if cur < prev {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"note: tier %d rolls fewer dice (%d) than tier %d (%d); experience usually grows the party",
				i, cur, i-1, prev))
		}
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", rules.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Delves: %d", rules.Delves))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Dungeon dice cap: %d", rules.DungeonDiceCap))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Dragon minimum: %d", rules.DragonMinimum))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Treasure reserve: %d tokens", reserve.Total()))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Experience tiers: %d", len(rules.Tiers)))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding ruleset files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateRulesetFile(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All rulesets are valid!")
	} else {
		fmt.Println("❌ Some rulesets have errors")
		os.Exit(1)
	}
}
