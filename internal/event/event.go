// Package event defines the ordered log a battle emits for the
// presentation layer.
package event

import (
	"fmt"

	"github.com/vovakirdan/hex-tactics/internal/unit"
)

// Kind tags an event.
type Kind int

const (
	TurnStart Kind = iota
	TurnEnd
	Action
	Effect
	Death
)

// Kinds lists every event kind in declaration order.
var Kinds = []Kind{TurnStart, TurnEnd, Action, Effect, Death}

func (k Kind) String() string {
	switch k {
	case TurnStart:
		return "turn-start"
	case TurnEnd:
		return "turn-end"
	case Action:
		return "action"
	case Effect:
		return "effect"
	case Death:
		return "death"
	default:
		return "unknown"
	}
}

// ParseKind converts a tag back into a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Event is one entry in a turn's log.
type Event struct {
	Kind        Kind
	Unit        unit.Unit // Snapshot taken when the event was recorded
	Description string
}

// New records an event with a deep snapshot of u.
func New(kind Kind, u *unit.Unit, format string, args ...any) Event {
	e := Event{
		Kind:        kind,
		Description: fmt.Sprintf(format, args...),
	}
	if u != nil {
		e.Unit = *u.Clone()
	}
	return e
}

func (e Event) String() string {
	if e.Unit.ID == "" {
		return fmt.Sprintf("[%s] %s", e.Kind, e.Description)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Unit.ID, e.Description)
}

// Log is an ordered event list.
type Log []Event

// Add appends an event.
func (l *Log) Add(kind Kind, u *unit.Unit, format string, args ...any) {
	*l = append(*l, New(kind, u, format, args...))
}

// Count returns how many events of the given kind were recorded.
func (l Log) Count(kind Kind) int {
	n := 0
	for _, e := range l {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the events of the given kind, in order.
func (l Log) Filter(kind Kind) Log {
	var out Log
	for _, e := range l {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
