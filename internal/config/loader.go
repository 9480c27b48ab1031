package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// LoadRules loads the gameplay rules.
// Search order: customPath -> ~/.tactics/configs/rules.yaml -> ./configs/rules.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides
// the keys it names.
func LoadRules(customPath string) (Rules, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Rules{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseRules(data)
		if err != nil {
			return Rules{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("rules.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseRules(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/rules.yaml"); err == nil {
		if cfg, err := ParseRules(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseRules(defaultRulesYAML)
	if err != nil {
		return DefaultRules(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseRules decodes YAML over the default rules and validates the result.
func ParseRules(data []byte) (Rules, error) {
	cfg := DefaultRules()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Rules{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Rules{}, err
	}
	return cfg, nil
}

// Validate rejects rules the engine cannot run with.
func (r Rules) Validate() error {
	c := r.Combat
	switch {
	case c.MaxEnergy <= 0:
		return fmt.Errorf("combat.max_energy must be positive, got %d", c.MaxEnergy)
	case c.AttackMultiplier < 0 || c.SkillMultiplier < 0 || c.UltimateMultiplier < 0:
		return fmt.Errorf("combat multipliers must not be negative")
	case c.SkillCost < 0 || c.UltimateCost < 0 || c.AttackEnergyGain < 0:
		return fmt.Errorf("combat energy values must not be negative")
	case c.UltimateCost > c.MaxEnergy:
		return fmt.Errorf("combat.ultimate_cost %d exceeds max_energy %d", c.UltimateCost, c.MaxEnergy)
	case r.Turn.EnergyRegen < 0:
		return fmt.Errorf("turn.energy_regen must not be negative, got %d", r.Turn.EnergyRegen)
	case r.Turn.WaitDelayMS < 0:
		return fmt.Errorf("turn.wait_delay_ms must not be negative, got %d", r.Turn.WaitDelayMS)
	}
	return nil
}

// LoadEnv reads TACTICS_* environment overrides.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tactics", "configs", filename)
}
