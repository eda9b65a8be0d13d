package agent

import (
	"fmt"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
)

// Settings describes one agent to build.
type Settings struct {
	Kind      Kind
	Name      string
	WinStreak int
}

// New builds the agent described by s.
func New(s Settings, opts ...Option) (Agent, error) {
	kind, err := ParseKind(string(s.Kind))
	if err != nil {
		return nil, err
	}
	name := s.Name
	if name == "" {
		name = string(kind)
	}
	if kind != KindRandom && s.WinStreak <= 0 {
		return nil, fmt.Errorf("%s agent %q needs a positive win streak, got %d: %w",
			kind, name, s.WinStreak, core.ErrInvalidConfiguration)
	}

	switch kind {
	case KindRandom:
		return NewRandom(name, opts...), nil
	case KindGreedy:
		return NewGreedy(name, s.WinStreak, opts...), nil
	default:
		return NewSmart(name, s.WinStreak, opts...), nil
	}
}
