package config

import (
	_ "embed"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

// DefaultRules returns the built-in rules.
func DefaultRules() Rules {
	return Rules{
		Combat: CombatRules{
			AttackMultiplier:   1.0,
			SkillMultiplier:    1.5,
			UltimateMultiplier: 2.5,
			AttackEnergyGain:   20,
			SkillCost:          30,
			UltimateCost:       120,
			MaxEnergy:          120,
		},
		Turn: TurnRules{
			EnergyRegen: 10,
			WaitDelayMS: 400,
		},
		Blessing: BlessingRules{
			ResurrectThreshold: 50,
		},
	}
}
