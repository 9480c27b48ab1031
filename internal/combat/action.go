// Package combat resolves actions between units and applies blessing
// effects triggered by them.
package combat

// ActionKind is the type of action a unit performs on its turn.
type ActionKind int

const (
	Wait ActionKind = iota
	Attack
	Skill
	Ultimate
)

// ActionKinds lists every action kind in declaration order.
var ActionKinds = []ActionKind{Wait, Attack, Skill, Ultimate}

func (k ActionKind) String() string {
	switch k {
	case Wait:
		return "wait"
	case Attack:
		return "attack"
	case Skill:
		return "skill"
	case Ultimate:
		return "ultimate"
	default:
		return "unknown"
	}
}

// ParseActionKind converts a tag into an ActionKind.
func ParseActionKind(s string) (ActionKind, bool) {
	for _, k := range ActionKinds {
		if k.String() == s {
			return k, true
		}
	}
	return Wait, false
}

// Action is a chosen action. Target is a unit ID and is ignored by Wait.
type Action struct {
	Kind   ActionKind
	Target string
}

// WaitAction returns an action that does nothing.
func WaitAction() Action {
	return Action{Kind: Wait}
}

func (a Action) String() string {
	if a.Kind == Wait || a.Target == "" {
		return a.Kind.String()
	}
	return a.Kind.String() + " -> " + a.Target
}
