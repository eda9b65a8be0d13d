package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/events"
)

// State is one phase of the match lifecycle.
type State interface {
	Phase() MatchPhase
	// Enter is called after the phase has become current.
	Enter(ctx *MatchContext) error
	// Exit is called before leaving the phase. Errors are logged, not fatal.
	Exit(ctx *MatchContext) error
	// Validate must pass before the phase can be entered.
	Validate(ctx *MatchContext) error
}

// Transition is one entry in the machine's history.
type Transition struct {
	From      MatchPhase
	To        MatchPhase
	Timestamp time.Time
	Reason    string
}

// StateMachine tracks the phase of one match and publishes every transition.
type StateMachine struct {
	mu             sync.RWMutex
	currentPhase   MatchPhase
	states         map[MatchPhase]State
	context        *MatchContext
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
}

// NewStateMachine starts in PhaseIdle. publisher may be nil.
func NewStateMachine(ctx *MatchContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase:   PhaseIdle,
		states:         make(map[MatchPhase]State),
		context:        ctx,
		maxHistorySize: 256,
		publisher:      publisher,
	}
	sm.RegisterState(NewIdleState())
	sm.RegisterState(NewInProgressState())
	sm.RegisterState(NewTerminatedState())
	return sm
}

// RegisterState replaces the implementation for state.Phase().
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[state.Phase()] = state
}

func (sm *StateMachine) CurrentPhase() MatchPhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo moves to targetPhase if the current phase allows it.
func (sm *StateMachine) TransitionTo(targetPhase MatchPhase, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return fmt.Errorf("invalid transition from %s to %s", sm.currentPhase, targetPhase)
	}
	return sm.transitionLocked(targetPhase, reason)
}

// Reset forces the machine back to PhaseIdle from any phase and clears the history.
func (sm *StateMachine) Reset(reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.history = sm.history[:0]
	if sm.currentPhase == PhaseIdle {
		sm.context.clear()
		return nil
	}
	return sm.transitionLocked(PhaseIdle, reason)
}

func (sm *StateMachine) transitionLocked(targetPhase MatchPhase, reason string) error {
	currentState, hasCurrentState := sm.states[sm.currentPhase]
	targetState, hasTargetState := sm.states[targetPhase]
	if !hasTargetState {
		return fmt.Errorf("no state implementation for phase %s", targetPhase)
	}

	if err := targetState.Validate(sm.context); err != nil {
		return fmt.Errorf("cannot enter %s: %w", targetPhase, err)
	}

	if hasCurrentState {
		if err := currentState.Exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
		}
	}

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase

	if err := targetState.Enter(sm.context); err != nil {
		sm.currentPhase = previousPhase
		return fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	sm.addToHistory(Transition{
		From:      previousPhase,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	if sm.publisher != nil {
		sm.publisher.Publish(events.NewStateTransitionEvent(
			sm.context.MatchID,
			previousPhase.String(),
			targetPhase.String(),
			reason,
		))
	}

	sm.context.Logger.Debug().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}

func (sm *StateMachine) addToHistory(transition Transition) {
	sm.history = append(sm.history, transition)
	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

// History returns a copy of the transitions since the last Reset.
func (sm *StateMachine) History() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

func (sm *StateMachine) Context() *MatchContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.context
}

func (sm *StateMachine) CanTransitionTo(targetPhase MatchPhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase.CanTransitionTo(targetPhase)
}
