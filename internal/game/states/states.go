package states

import (
	"fmt"
	"time"
)

// IdleState is the phase before the first move and after a reset.
type IdleState struct{}

func NewIdleState() State {
	return &IdleState{}
}

func (s *IdleState) Phase() MatchPhase {
	return PhaseIdle
}

func (s *IdleState) Enter(ctx *MatchContext) error {
	ctx.clear()
	ctx.Logger.Debug().Msg("Match idle")
	return nil
}

func (s *IdleState) Exit(ctx *MatchContext) error {
	return nil
}

func (s *IdleState) Validate(ctx *MatchContext) error {
	return nil
}

// InProgressState is the phase in which moves are accepted.
type InProgressState struct{}

func NewInProgressState() State {
	return &InProgressState{}
}

func (s *InProgressState) Phase() MatchPhase {
	return PhaseInProgress
}

func (s *InProgressState) Enter(ctx *MatchContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().Msg("Match started")
	return nil
}

func (s *InProgressState) Exit(ctx *MatchContext) error {
	ctx.Logger.Debug().
		Int("moves", ctx.MoveCount).
		Msg("Leaving play")
	return nil
}

func (s *InProgressState) Validate(ctx *MatchContext) error {
	if ctx.MatchID == "" {
		return fmt.Errorf("match has no id")
	}
	return nil
}

// TerminatedState holds a finished match until it is reset.
type TerminatedState struct{}

func NewTerminatedState() State {
	return &TerminatedState{}
}

func (s *TerminatedState) Phase() MatchPhase {
	return PhaseTerminated
}

func (s *TerminatedState) Enter(ctx *MatchContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Str("outcome", ctx.Outcome.String()).
		Int("moves", ctx.MoveCount).
		Dur("duration", ctx.Elapsed()).
		Msg("Match ended")
	return nil
}

func (s *TerminatedState) Exit(ctx *MatchContext) error {
	return nil
}

func (s *TerminatedState) Validate(ctx *MatchContext) error {
	if !ctx.Outcome.IsTerminal() {
		return fmt.Errorf("cannot terminate with outcome %s", ctx.Outcome)
	}
	return nil
}
