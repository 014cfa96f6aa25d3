package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/wricardo/mcp-training/dicedelve/game/engine"
)

func writeRuleset(t *testing.T, dir, name string, rules *engine.Ruleset) string {
	t.Helper()
	data, err := json.Marshal(rules)
	if err != nil {
		t.Fatalf("Failed to marshal ruleset: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write ruleset: %v", err)
	}
	return path
}

func TestLoadRuleset(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleset(t, dir, "standard.json", engine.DefaultRuleset())

	rules, err := loadRuleset(path)
	if err != nil {
		t.Fatalf("loadRuleset failed: %v", err)
	}
	if rules.Name != "standard" {
		t.Errorf("Name = %q, want standard", rules.Name)
	}
	if rules.InitialReserve().Total() != 36 {
		t.Errorf("Reserve = %d tokens, want 36", rules.InitialReserve().Total())
	}
}

func TestLoadRuleset_MissingFile(t *testing.T) {
	if _, err := loadRuleset("/non/existent/ruleset.json"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadRuleset_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte(`{"name": "test", invalid json}`), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := loadRuleset(path); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestLoadRuleset_InvalidRuleset(t *testing.T) {
	dir := t.TempDir()
	rules := engine.DefaultRuleset()
	rules.Delves = 0
	path := writeRuleset(t, dir, "bad.json", rules)

	if _, err := loadRuleset(path); err == nil {
		t.Error("Expected validation error for zero delves")
	}
}

func TestRunPlayouts(t *testing.T) {
	stats, err := runPlayouts(engine.DefaultRuleset(), 20, 1)
	if err != nil {
		t.Fatalf("runPlayouts failed: %v", err)
	}

	if stats.min < 0 {
		t.Errorf("Negative minimum score %d", stats.min)
	}
	if stats.max < stats.min {
		t.Errorf("max %d below min %d", stats.max, stats.min)
	}
	if stats.avg < float64(stats.min) || stats.avg > float64(stats.max) {
		t.Errorf("avg %.1f outside [%d, %d]", stats.avg, stats.min, stats.max)
	}
	if stats.retreatRate < 0 || stats.retreatRate > 1 {
		t.Errorf("retreat rate %.2f outside [0, 1]", stats.retreatRate)
	}
}

func TestPlayOutTerminates(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		g, err := engine.NewSeededGame(nil, nil, seed)
		if err != nil {
			t.Fatalf("NewSeededGame failed: %v", err)
		}
		playOut(g)
		if !g.IsOver() {
			t.Errorf("Seed %d: playout did not finish the run", seed)
		}
	}
}

func TestAnalyzeRuleset_NoPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeRuleset panicked: %v", r)
		}
	}()

	analyzeRuleset("standard", engine.DefaultRuleset())
}
