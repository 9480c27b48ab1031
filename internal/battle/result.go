package battle

import "github.com/vovakirdan/hex-tactics/internal/event"

// ResultSaver archives finished battles.
// This allows the battle to be saved without depending on the storage package.
type ResultSaver interface {
	SaveBattleResult(result ResultData) error
}

// ResultData contains a battle summary for persistence.
type ResultData struct {
	BattleID   string
	ScenarioID string
	Outcome    string
	Turns      int
	Steps      int
	Events     event.Log
}
