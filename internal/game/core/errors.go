package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrOutOfBounds          = errors.New("index out of bounds")
	ErrInvalidCell          = errors.New("invalid cell state")
	ErrIllegalMove          = errors.New("illegal move")
	ErrEmptyMoveSet         = errors.New("no legal moves available")
	ErrMatchOver            = errors.New("match is over")
	ErrMoveLimit            = errors.New("move limit reached")
	ErrBoardMutated         = errors.New("agent left the board modified")
	ErrInvalidPlayer        = errors.New("invalid player")
)

// WrapMoveError adds the acting player and move to err.
func WrapMoveError(player Player, move int, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s move %d: %w", player, move, err)
}

// WrapAgentError adds the agent name to err.
func WrapAgentError(name string, err error) error {
	if err == nil {
		return nil
	}
	if name == "" {
		name = "unnamed"
	}
	return fmt.Errorf("agent %q: %w", name, err)
}
