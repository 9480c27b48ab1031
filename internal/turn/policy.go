package turn

import "github.com/vovakirdan/hex-tactics/internal/unit"

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -destination=./mocks/policy_mock.go -package=mocks . Policy

// Policy chooses targets for default actions. It belongs to the AI or UI
// layer; the manager only executes what it returns. Units are snapshots.
type Policy interface {
	SelectTarget(actor unit.Unit, units []unit.Unit) (string, bool)
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(actor unit.Unit, units []unit.Unit) (string, bool)

// SelectTarget calls f.
func (f PolicyFunc) SelectTarget(actor unit.Unit, units []unit.Unit) (string, bool) {
	return f(actor, units)
}

// noTargets is used when no policy is supplied; every default action waits.
type noTargets struct{}

func (noTargets) SelectTarget(unit.Unit, []unit.Unit) (string, bool) {
	return "", false
}
