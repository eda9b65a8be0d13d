package events

import (
	"time"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
)

const (
	TypeMatchStarted    = "match.started"
	TypeMatchEnded      = "match.ended"
	TypeMoveApplied     = "move.applied"
	TypeMoveRejected    = "move.rejected"
	TypeStateTransition = "state.transition"
)

// MatchStartedEvent is published once the board is reset and Black is to move.
type MatchStartedEvent struct {
	BaseEvent
	BoardSize int    `json:"board_size"`
	WinStreak int    `json:"win_streak"`
	Black     string `json:"black"`
	White     string `json:"white"`
}

func NewMatchStartedEvent(matchID string, boardSize, winStreak int, black, white string) *MatchStartedEvent {
	return &MatchStartedEvent{
		BaseEvent: newBase(TypeMatchStarted, matchID),
		BoardSize: boardSize,
		WinStreak: winStreak,
		Black:     black,
		White:     white,
	}
}

// MoveAppliedEvent is published after a stone is placed.
type MoveAppliedEvent struct {
	BaseEvent
	Player     core.Player `json:"player"`
	Agent      string      `json:"agent"`
	Move       int         `json:"move"`
	Row        int         `json:"row"`
	Col        int         `json:"col"`
	MoveNumber int         `json:"move_number"`
}

func NewMoveAppliedEvent(matchID string, player core.Player, agent string, move, row, col, moveNumber int) *MoveAppliedEvent {
	return &MoveAppliedEvent{
		BaseEvent:  newBase(TypeMoveApplied, matchID),
		Player:     player,
		Agent:      agent,
		Move:       move,
		Row:        row,
		Col:        col,
		MoveNumber: moveNumber,
	}
}

// MoveRejectedEvent is published when an agent returns a move the rules refuse.
type MoveRejectedEvent struct {
	BaseEvent
	Player core.Player `json:"player"`
	Agent  string      `json:"agent"`
	Move   int         `json:"move"`
	Reason string      `json:"reason"`
}

func NewMoveRejectedEvent(matchID string, player core.Player, agent string, move int, reason string) *MoveRejectedEvent {
	return &MoveRejectedEvent{
		BaseEvent: newBase(TypeMoveRejected, matchID),
		Player:    player,
		Agent:     agent,
		Move:      move,
		Reason:    reason,
	}
}

// MatchEndedEvent is published when a match reaches a terminal outcome.
type MatchEndedEvent struct {
	BaseEvent
	Outcome  core.Outcome  `json:"outcome"`
	Winner   string        `json:"winner,omitempty"`
	Moves    int           `json:"moves"`
	Duration time.Duration `json:"duration"`
}

func NewMatchEndedEvent(matchID string, outcome core.Outcome, winner string, moves int, duration time.Duration) *MatchEndedEvent {
	return &MatchEndedEvent{
		BaseEvent: newBase(TypeMatchEnded, matchID),
		Outcome:   outcome,
		Winner:    winner,
		Moves:     moves,
		Duration:  duration,
	}
}

// StateTransitionEvent is published when the match state machine changes phase.
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string `json:"from_phase"`
	ToPhase   string `json:"to_phase"`
	Reason    string `json:"reason"`
}

func NewStateTransitionEvent(matchID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, matchID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
