package states

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
	"github.com/mitchelldurbincs/GomokuArena/internal/game/events"
)

func TestMatchPhase_String(t *testing.T) {
	tests := []struct {
		phase    MatchPhase
		expected string
	}{
		{PhaseIdle, "Idle"},
		{PhaseInProgress, "InProgress"},
		{PhaseTerminated, "Terminated"},
		{MatchPhase(42), "Unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
		})
	}
}

func TestParsePhase(t *testing.T) {
	for _, p := range []MatchPhase{PhaseIdle, PhaseInProgress, PhaseTerminated} {
		got, err := ParsePhase(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePhase("Paused")
	assert.Error(t, err)
}

func TestMatchPhase_Transitions(t *testing.T) {
	all := []MatchPhase{PhaseIdle, PhaseInProgress, PhaseTerminated}
	tests := []struct {
		from    MatchPhase
		allowed []MatchPhase
	}{
		{PhaseIdle, []MatchPhase{PhaseInProgress}},
		{PhaseInProgress, []MatchPhase{PhaseTerminated, PhaseIdle}},
		{PhaseTerminated, []MatchPhase{PhaseIdle}},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.AllowedTransitions())
			for _, target := range all {
				assert.Equal(t, contains(tt.allowed, target), tt.from.CanTransitionTo(target),
					"%s -> %s", tt.from, target)
			}
		})
	}

	assert.True(t, PhaseTerminated.IsTerminal())
	assert.False(t, PhaseInProgress.IsTerminal())
	assert.True(t, PhaseInProgress.CanReceiveMoves())
	assert.False(t, PhaseIdle.CanReceiveMoves())
	assert.False(t, PhaseTerminated.CanReceiveMoves())
}

func contains(phases []MatchPhase, p MatchPhase) bool {
	for _, q := range phases {
		if q == p {
			return true
		}
	}
	return false
}

func setupMachine(t *testing.T) (*StateMachine, *MatchContext, *[]events.Event) {
	t.Helper()
	ctx := NewMatchContext("match-1", zerolog.Nop())
	bus := events.NewEventBus(zerolog.Nop())
	var published []events.Event
	bus.SubscribeFunc(events.TypeStateTransition, func(e events.Event) {
		published = append(published, e)
	})
	return NewStateMachine(ctx, bus), ctx, &published
}

func TestStateMachine_Lifecycle(t *testing.T) {
	sm, ctx, published := setupMachine(t)
	assert.Equal(t, PhaseIdle, sm.CurrentPhase())
	assert.Len(t, sm.states, 3)

	require.NoError(t, sm.TransitionTo(PhaseInProgress, "reset"))
	assert.Equal(t, PhaseInProgress, sm.CurrentPhase())
	assert.False(t, ctx.StartTime.IsZero())

	t.Run("terminating without an outcome fails", func(t *testing.T) {
		err := sm.TransitionTo(PhaseTerminated, "no outcome")
		assert.Error(t, err)
		assert.Equal(t, PhaseInProgress, sm.CurrentPhase())
	})

	ctx.Outcome = core.OutcomeBlackWins
	ctx.MoveCount = 9
	require.NoError(t, sm.TransitionTo(PhaseTerminated, "five in a row"))
	assert.Equal(t, PhaseTerminated, sm.CurrentPhase())
	assert.False(t, ctx.EndTime.IsZero())
	assert.GreaterOrEqual(t, ctx.Elapsed(), ctx.EndTime.Sub(ctx.StartTime))

	err := sm.TransitionTo(PhaseInProgress, "illegal")
	assert.Error(t, err)
	assert.False(t, sm.CanTransitionTo(PhaseInProgress))

	history := sm.History()
	require.Len(t, history, 2)
	assert.Equal(t, PhaseIdle, history[0].From)
	assert.Equal(t, PhaseInProgress, history[0].To)
	assert.Equal(t, "five in a row", history[1].Reason)

	require.Len(t, *published, 2)
	last := (*published)[1].(*events.StateTransitionEvent)
	assert.Equal(t, "InProgress", last.FromPhase)
	assert.Equal(t, "Terminated", last.ToPhase)
	assert.Equal(t, "match-1", last.MatchID())
}

func TestStateMachine_Reset(t *testing.T) {
	sm, ctx, _ := setupMachine(t)

	t.Run("from idle is a no-op", func(t *testing.T) {
		require.NoError(t, sm.Reset("again"))
		assert.Equal(t, PhaseIdle, sm.CurrentPhase())
		assert.Empty(t, sm.History())
	})

	t.Run("from terminated clears the context", func(t *testing.T) {
		require.NoError(t, sm.TransitionTo(PhaseInProgress, "start"))
		ctx.Outcome = core.OutcomeDraw
		ctx.MoveCount = 81
		require.NoError(t, sm.TransitionTo(PhaseTerminated, "board full"))

		require.NoError(t, sm.Reset("new match"))
		assert.Equal(t, PhaseIdle, sm.CurrentPhase())
		assert.Equal(t, core.OutcomeNone, ctx.Outcome)
		assert.Zero(t, ctx.MoveCount)
		assert.True(t, ctx.StartTime.IsZero())
		assert.Zero(t, ctx.Elapsed())

		history := sm.History()
		require.Len(t, history, 1)
		assert.Equal(t, PhaseTerminated, history[0].From)
	})

	t.Run("from in progress", func(t *testing.T) {
		require.NoError(t, sm.TransitionTo(PhaseInProgress, "start"))
		ctx.MoveCount = 3
		require.NoError(t, sm.Reset("abandon"))
		assert.Equal(t, PhaseIdle, sm.CurrentPhase())
		assert.Zero(t, ctx.MoveCount)
	})
}

type failingState struct {
	phase MatchPhase
}

func (s failingState) Phase() MatchPhase            { return s.phase }
func (s failingState) Enter(*MatchContext) error    { return errors.New("enter failed") }
func (s failingState) Exit(*MatchContext) error     { return errors.New("exit failed") }
func (s failingState) Validate(*MatchContext) error { return nil }

func TestStateMachine_EnterFailureRollsBack(t *testing.T) {
	sm, _, published := setupMachine(t)
	sm.RegisterState(failingState{phase: PhaseInProgress})

	err := sm.TransitionTo(PhaseInProgress, "start")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enter failed")
	assert.Equal(t, PhaseIdle, sm.CurrentPhase())
	assert.Empty(t, sm.History())
	assert.Empty(t, *published)
}

func TestStateMachine_NilPublisher(t *testing.T) {
	sm := NewStateMachine(NewMatchContext("quiet", zerolog.Nop()), nil)
	assert.NoError(t, sm.TransitionTo(PhaseInProgress, "start"))
	assert.Equal(t, "quiet", sm.Context().MatchID)
}
