package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/dicedelve/game/engine"
	"github.com/wricardo/mcp-training/dicedelve/game/service"
)

var (
	ErrRulesetNotFound = errors.New("ruleset not found")
	ErrInvalidRuleset  = errors.New("invalid ruleset")
)

// Manager handles ruleset loading and caching
type Manager struct {
	configDir      string
	defaultRuleset *engine.Ruleset
	rulesets       map[string]*engine.Ruleset
	mu             sync.RWMutex
}

// NewManager creates a new ruleset manager reading from configDir
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		rulesets:  make(map[string]*engine.Ruleset),
	}

	if err := m.loadDefaultRuleset(); err != nil {
		return nil, fmt.Errorf("failed to load default ruleset: %w", err)
	}

	return m, nil
}

// NewBuiltinManager creates a manager that serves only the built-in
// standard ruleset, for callers without a config directory.
func NewBuiltinManager() *Manager {
	return &Manager{
		defaultRuleset: engine.DefaultRuleset(),
		rulesets:       make(map[string]*engine.Ruleset),
	}
}

// LoadRuleset loads a ruleset by name
func (m *Manager) LoadRuleset(name string) (*engine.Ruleset, error) {
	m.mu.RLock()
	if rules, exists := m.rulesets[name]; exists {
		m.mu.RUnlock()
		return rules, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring the write lock
	if rules, exists := m.rulesets[name]; exists {
		return rules, nil
	}

	if m.configDir == "" {
		if m.defaultRuleset != nil && name == m.defaultRuleset.Name {
			return m.defaultRuleset, nil
		}
		return nil, ErrRulesetNotFound
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}
	configPath := filepath.Join(m.configDir, filename)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRulesetNotFound
		}
		return nil, fmt.Errorf("failed to read ruleset file: %w", err)
	}

	var rules engine.Ruleset
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse ruleset: %w", err)
	}

	if err := engine.ValidateRuleset(&rules); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRuleset, err)
	}

	m.rulesets[name] = &rules
	return &rules, nil
}

// ListRulesets returns information about all available rulesets
func (m *Manager) ListRulesets() ([]*service.RulesetInfo, error) {
	if m.configDir == "" {
		rules := m.GetDefault()
		return []*service.RulesetInfo{{
			RulesetID:      rules.Name,
			Name:           rules.Name,
			Description:    rules.Description,
			Delves:         rules.Delves,
			DungeonDiceCap: rules.DungeonDiceCap,
		}}, nil
	}

	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var infos []*service.RulesetInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		rules, err := m.LoadRuleset(name)
		if err != nil {
			// Skip invalid rulesets
			continue
		}

		infos = append(infos, &service.RulesetInfo{
			Filename:       entry.Name(),
			RulesetID:      name, // This is the identifier to use for session creation
			Name:           rules.Name,
			Description:    rules.Description,
			Delves:         rules.Delves,
			DungeonDiceCap: rules.DungeonDiceCap,
		})
	}

	return infos, nil
}

// GetDefault returns the default ruleset
func (m *Manager) GetDefault() *engine.Ruleset {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultRuleset
}

// SetDefault sets the default ruleset by name
func (m *Manager) SetDefault(name string) error {
	rules, err := m.LoadRuleset(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultRuleset = rules
	return nil
}

// RefreshCache reloads all cached rulesets from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.rulesets = make(map[string]*engine.Ruleset)
	m.mu.Unlock()

	return m.loadDefaultRuleset()
}

// SaveRuleset saves a ruleset to disk
func (m *Manager) SaveRuleset(name string, rules *engine.Ruleset) error {
	if m.configDir == "" {
		return fmt.Errorf("no config directory configured")
	}
	if err := engine.ValidateRuleset(rules); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRuleset, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}
	configPath := filepath.Join(m.configDir, filename)

	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ruleset: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write ruleset file: %w", err)
	}

	m.mu.Lock()
	m.rulesets[name] = rules
	m.mu.Unlock()

	return nil
}

// loadDefaultRuleset picks the default: standard.json when present, else the
// first valid ruleset on disk, else the built-in standard tables.
func (m *Manager) loadDefaultRuleset() error {
	rules, err := m.LoadRuleset("standard")
	if err != nil {
		infos, listErr := m.ListRulesets()
		if listErr != nil || len(infos) == 0 {
			m.mu.Lock()
			m.defaultRuleset = engine.DefaultRuleset()
			m.mu.Unlock()
			return nil
		}

		rules, err = m.LoadRuleset(infos[0].RulesetID)
		if err != nil {
			m.mu.Lock()
			m.defaultRuleset = engine.DefaultRuleset()
			m.mu.Unlock()
			return nil
		}
	}

	m.mu.Lock()
	m.defaultRuleset = rules
	m.mu.Unlock()
	return nil
}
