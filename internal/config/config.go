// Package config provides YAML-based rules loading and environment
// overrides for the tactics engine.
package config

// Rules contains every tunable gameplay constant.
type Rules struct {
	Combat   CombatRules   `yaml:"combat"`
	Turn     TurnRules     `yaml:"turn"`
	Blessing BlessingRules `yaml:"blessing"`
}

// CombatRules defines damage multipliers and energy economy.
type CombatRules struct {
	AttackMultiplier   float64 `yaml:"attack_multiplier"`
	SkillMultiplier    float64 `yaml:"skill_multiplier"`
	UltimateMultiplier float64 `yaml:"ultimate_multiplier"`
	AttackEnergyGain   int     `yaml:"attack_energy_gain"` // Energy gained by a normal attack
	SkillCost          int     `yaml:"skill_cost"`
	UltimateCost       int     `yaml:"ultimate_cost"`
	MaxEnergy          int     `yaml:"max_energy"`
}

// TurnRules defines turn boundary bookkeeping.
type TurnRules struct {
	EnergyRegen int `yaml:"energy_regen"`  // Energy restored at the end of every turn
	WaitDelayMS int `yaml:"wait_delay_ms"` // Pacing delay for wait actions

	// PhaseGating restricts initiative to the faction of the current phase.
	PhaseGating bool `yaml:"phase_gating"`
}

// BlessingRules defines blessing trigger defaults.
type BlessingRules struct {
	ResurrectThreshold int `yaml:"resurrect_threshold"` // Minimum energy for on-fatal-damage blessings
}

// Env holds environment overrides.
type Env struct {
	ConfigPath string `env:"TACTICS_CONFIG"`
	DBPath     string `env:"TACTICS_DB"`
	LogLevel   string `env:"TACTICS_LOG_LEVEL" envDefault:"info"`
}
