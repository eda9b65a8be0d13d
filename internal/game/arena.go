package game

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GomokuArena/internal/agent"
	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
	"github.com/mitchelldurbincs/GomokuArena/internal/game/events"
)

// ArenaConfig configures matches played by an Arena.
type ArenaConfig struct {
	BoardSize int
	WinStreak int
	// MaxMoves stops a match with core.ErrMoveLimit. Zero means BoardSize².
	MaxMoves int
	// MoveDelay pauses after each move for watchers. It does not affect play.
	MoveDelay time.Duration
	Logger    zerolog.Logger
	EventBus  events.Publisher
	// OnMove is called after every applied move with a copy of the board.
	OnMove func(MoveRecord, *core.Board)
}

// MatchResult summarizes one finished (or aborted) match.
type MatchResult struct {
	ID       string        `json:"id"`
	Black    string        `json:"black"`
	White    string        `json:"white"`
	Outcome  core.Outcome  `json:"outcome"`
	Winner   string        `json:"winner,omitempty"`
	Moves    []MoveRecord  `json:"moves"`
	Duration time.Duration `json:"duration"`
	Board    *core.Board   `json:"-"`
}

// Arena plays two agents against each other. The first agent plays Black.
type Arena struct {
	black  agent.Agent
	white  agent.Agent
	config ArenaConfig
	logger zerolog.Logger
}

func NewArena(black, white agent.Agent, cfg ArenaConfig) (*Arena, error) {
	if black == nil || white == nil {
		return nil, fmt.Errorf("arena needs two agents: %w", core.ErrInvalidConfiguration)
	}
	if cfg.MaxMoves < 0 {
		return nil, fmt.Errorf("max moves must not be negative, got %d: %w", cfg.MaxMoves, core.ErrInvalidConfiguration)
	}
	if cfg.MaxMoves == 0 {
		cfg.MaxMoves = cfg.BoardSize * cfg.BoardSize
	}
	return &Arena{
		black:  black,
		white:  white,
		config: cfg,
		logger: cfg.Logger.With().Str("component", "Arena").Logger(),
	}, nil
}

// Play runs one match to a terminal state. Each agent sees a copy of the
// board; a returned move outside the legal list, an empty move set or a
// modified copy aborts the match with an error naming the agent. The partial
// result is returned alongside any error.
func (a *Arena) Play(ctx context.Context) (MatchResult, error) {
	match, err := NewMatch(MatchConfig{
		BoardSize: a.config.BoardSize,
		WinStreak: a.config.WinStreak,
		BlackName: a.black.Name(),
		WhiteName: a.white.Name(),
		Logger:    a.config.Logger,
		EventBus:  a.config.EventBus,
	})
	if err != nil {
		return MatchResult{}, err
	}

	logger := a.logger.With().Str("match_id", match.ID()).Logger()
	logger.Info().
		Str("black", a.black.Name()).
		Str("white", a.white.Name()).
		Int("board_size", a.config.BoardSize).
		Int("win_streak", a.config.WinStreak).
		Msg("Match starting")

	for !match.IsTerminal() {
		if err := ctx.Err(); err != nil {
			logger.Warn().Err(err).Int("moves", len(match.moves)).Msg("Match cancelled")
			return a.result(match), err
		}
		if len(match.moves) >= a.config.MaxMoves {
			return a.result(match), fmt.Errorf("match %s after %d moves: %w", match.ID(), len(match.moves), core.ErrMoveLimit)
		}

		mover := a.agentFor(match.CurrentPlayer())
		if err := a.turn(match, mover); err != nil {
			logger.Error().Err(err).Str("agent", mover.Name()).Msg("Match aborted")
			return a.result(match), err
		}

		if a.config.MoveDelay > 0 && !match.IsTerminal() {
			select {
			case <-ctx.Done():
			case <-time.After(a.config.MoveDelay):
			}
		}
	}

	res := a.result(match)
	logger.Info().
		Str("outcome", res.Outcome.String()).
		Str("winner", res.Winner).
		Int("moves", len(res.Moves)).
		Dur("duration", res.Duration).
		Msg("Match finished")
	return res, nil
}

func (a *Arena) turn(match *Match, mover agent.Agent) error {
	legal := match.LegalMoves()
	view := match.Board()

	move := mover.ChooseAction(view, legal)

	if !match.sameBoard(view) {
		return core.WrapAgentError(mover.Name(), core.ErrBoardMutated)
	}
	if move == core.NoMove {
		return core.WrapAgentError(mover.Name(), core.ErrEmptyMoveSet)
	}
	res, err := match.Step(move)
	if err != nil {
		return core.WrapAgentError(mover.Name(), err)
	}
	if a.config.OnMove != nil {
		moves := match.moves
		a.config.OnMove(moves[len(moves)-1], res.Board)
	}
	return nil
}

func (a *Arena) agentFor(p core.Player) agent.Agent {
	if p == core.PlayerWhite {
		return a.white
	}
	return a.black
}

func (a *Arena) result(match *Match) MatchResult {
	return MatchResult{
		ID:       match.ID(),
		Black:    a.black.Name(),
		White:    a.white.Name(),
		Outcome:  match.Outcome(),
		Winner:   match.WinnerName(),
		Moves:    match.Moves(),
		Duration: match.Elapsed(),
		Board:    match.Board(),
	}
}
