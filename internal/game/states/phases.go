package states

import (
	"fmt"
	"slices"
)

// MatchPhase is the lifecycle phase of a single match.
type MatchPhase int

const (
	// PhaseIdle - created or reset, no board in play
	PhaseIdle MatchPhase = iota

	// PhaseInProgress - stones are being placed
	PhaseInProgress

	// PhaseTerminated - a win or a draw has been recorded
	PhaseTerminated
)

func (p MatchPhase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseInProgress:
		return "InProgress"
	case PhaseTerminated:
		return "Terminated"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

func (p MatchPhase) IsTerminal() bool {
	return p == PhaseTerminated
}

// CanReceiveMoves reports whether Step may place a stone in this phase.
func (p MatchPhase) CanReceiveMoves() bool {
	return p == PhaseInProgress
}

// AllowedTransitions returns the phases reachable from p.
func (p MatchPhase) AllowedTransitions() []MatchPhase {
	switch p {
	case PhaseIdle:
		return []MatchPhase{PhaseInProgress}
	case PhaseInProgress:
		return []MatchPhase{PhaseTerminated, PhaseIdle}
	case PhaseTerminated:
		return []MatchPhase{PhaseIdle}
	default:
		return nil
	}
}

func (p MatchPhase) CanTransitionTo(target MatchPhase) bool {
	return slices.Contains(p.AllowedTransitions(), target)
}

// ParsePhase converts a phase name back into a MatchPhase.
func ParsePhase(s string) (MatchPhase, error) {
	for _, p := range []MatchPhase{PhaseIdle, PhaseInProgress, PhaseTerminated} {
		if p.String() == s {
			return p, nil
		}
	}
	return PhaseIdle, fmt.Errorf("unknown match phase %q", s)
}
