package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wricardo/mcp-training/dicedelve/game/engine"
)

func writeRuleset(t *testing.T, dir, name string, rules *engine.Ruleset) {
	t.Helper()
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal ruleset: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		t.Fatalf("Failed to write ruleset file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	dir := t.TempDir()
	writeRuleset(t, dir, "standard.json", engine.DefaultRuleset())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	def := manager.GetDefault()
	if def == nil || def.Name != "standard" {
		t.Errorf("Expected standard default, got %+v", def)
	}
}

func TestNewManagerMissingDir(t *testing.T) {
	if _, err := NewManager("/nonexistent/path"); err == nil {
		t.Fatal("Expected an error for a missing directory")
	}
}

func TestNewManagerEmptyDirUsesBuiltin(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	def := manager.GetDefault()
	if def == nil || def.Name != "standard" {
		t.Errorf("Expected the built-in standard tables, got %+v", def)
	}
}

func TestLoadRuleset(t *testing.T) {
	dir := t.TempDir()
	variant := engine.DefaultRuleset()
	variant.Name = "short"
	variant.Description = "A one-delve sprint"
	variant.Delves = 1
	writeRuleset(t, dir, "short.json", variant)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	rules, err := manager.LoadRuleset("short")
	if err != nil {
		t.Fatalf("LoadRuleset failed: %v", err)
	}
	if rules.Name != "short" || rules.Delves != 1 {
		t.Errorf("Loaded ruleset = %+v", rules)
	}

	// The round trip preserves the treasure catalogue.
	if got := rules.InitialReserve().Total(); got != 36 {
		t.Errorf("Round-tripped reserve holds %d tokens, want 36", got)
	}

	// The cache serves the same pointer.
	again, err := manager.LoadRuleset("short")
	if err != nil {
		t.Fatalf("Cached load failed: %v", err)
	}
	if again != rules {
		t.Error("Expected the cached ruleset")
	}
}

func TestLoadRulesetNotFound(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if _, err := manager.LoadRuleset("missing"); !errors.Is(err, ErrRulesetNotFound) {
		t.Errorf("LoadRuleset(missing) = %v, want ErrRulesetNotFound", err)
	}
}

func TestLoadRulesetInvalid(t *testing.T) {
	dir := t.TempDir()
	bad := engine.DefaultRuleset()
	bad.Delves = 0
	writeRuleset(t, dir, "bad.json", bad)
	if err := os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if _, err := manager.LoadRuleset("bad"); !errors.Is(err, ErrInvalidRuleset) {
		t.Errorf("LoadRuleset(bad) = %v, want ErrInvalidRuleset", err)
	}
	if _, err := manager.LoadRuleset("garbage"); err == nil {
		t.Error("Expected a parse error for malformed JSON")
	}
}

func TestListRulesets(t *testing.T) {
	dir := t.TempDir()
	writeRuleset(t, dir, "standard.json", engine.DefaultRuleset())

	variant := engine.DefaultRuleset()
	variant.Name = "marathon"
	variant.Delves = 5
	writeRuleset(t, dir, "marathon.json", variant)

	bad := engine.DefaultRuleset()
	bad.Delves = 0
	writeRuleset(t, dir, "broken.json", bad)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	infos, err := manager.ListRulesets()
	if err != nil {
		t.Fatalf("ListRulesets failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Expected 2 valid rulesets, got %d", len(infos))
	}
	byID := map[string]bool{}
	for _, info := range infos {
		byID[info.RulesetID] = true
		if info.Delves == 0 {
			t.Errorf("Info %q missing delves", info.RulesetID)
		}
	}
	if !byID["standard"] || !byID["marathon"] {
		t.Errorf("Unexpected ruleset IDs: %v", byID)
	}
}

func TestSetDefault(t *testing.T) {
	dir := t.TempDir()
	writeRuleset(t, dir, "standard.json", engine.DefaultRuleset())

	variant := engine.DefaultRuleset()
	variant.Name = "marathon"
	variant.Delves = 5
	writeRuleset(t, dir, "marathon.json", variant)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if err := manager.SetDefault("marathon"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if got := manager.GetDefault(); got.Name != "marathon" {
		t.Errorf("Default = %q, want marathon", got.Name)
	}

	if err := manager.SetDefault("missing"); !errors.Is(err, ErrRulesetNotFound) {
		t.Errorf("SetDefault(missing) = %v, want ErrRulesetNotFound", err)
	}
}

func TestSaveRuleset(t *testing.T) {
	dir := t.TempDir()
	writeRuleset(t, dir, "standard.json", engine.DefaultRuleset())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	variant := engine.DefaultRuleset()
	variant.Name = "custom"
	if err := manager.SaveRuleset("custom", variant); err != nil {
		t.Fatalf("SaveRuleset failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "custom.json")); err != nil {
		t.Errorf("Saved file missing: %v", err)
	}

	loaded, err := manager.LoadRuleset("custom")
	if err != nil {
		t.Fatalf("LoadRuleset after save failed: %v", err)
	}
	if loaded.Name != "custom" {
		t.Errorf("Loaded %q, want custom", loaded.Name)
	}

	bad := engine.DefaultRuleset()
	bad.Delves = 0
	if err := manager.SaveRuleset("bad", bad); !errors.Is(err, ErrInvalidRuleset) {
		t.Errorf("SaveRuleset(bad) = %v, want ErrInvalidRuleset", err)
	}
}

func TestRefreshCache(t *testing.T) {
	dir := t.TempDir()
	writeRuleset(t, dir, "standard.json", engine.DefaultRuleset())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	first, err := manager.LoadRuleset("standard")
	if err != nil {
		t.Fatalf("LoadRuleset failed: %v", err)
	}

	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("RefreshCache failed: %v", err)
	}

	second, err := manager.LoadRuleset("standard")
	if err != nil {
		t.Fatalf("LoadRuleset after refresh failed: %v", err)
	}
	if first == second {
		t.Error("Expected a fresh ruleset after refresh")
	}
}

func TestBuiltinManager(t *testing.T) {
	manager := NewBuiltinManager()

	if got := manager.GetDefault(); got == nil || got.Name != "standard" {
		t.Errorf("Default = %+v, want the built-in standard", got)
	}

	infos, err := manager.ListRulesets()
	if err != nil {
		t.Fatalf("ListRulesets failed: %v", err)
	}
	if len(infos) != 1 || infos[0].RulesetID != "standard" {
		t.Errorf("Infos = %+v, want only standard", infos)
	}

	if _, err := manager.LoadRuleset("standard"); err != nil {
		t.Errorf("LoadRuleset(standard) failed: %v", err)
	}
	if _, err := manager.LoadRuleset("missing"); !errors.Is(err, ErrRulesetNotFound) {
		t.Errorf("LoadRuleset(missing) = %v, want ErrRulesetNotFound", err)
	}
	if err := manager.SaveRuleset("x", engine.DefaultRuleset()); err == nil {
		t.Error("Expected save to fail without a config directory")
	}
}
