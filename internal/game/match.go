package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
	"github.com/mitchelldurbincs/GomokuArena/internal/game/events"
	"github.com/mitchelldurbincs/GomokuArena/internal/game/rules"
	"github.com/mitchelldurbincs/GomokuArena/internal/game/states"
)

// MatchConfig holds the parameters of a single match.
type MatchConfig struct {
	BoardSize int
	WinStreak int
	// BlackName and WhiteName label events and results.
	BlackName string
	WhiteName string
	Logger    zerolog.Logger
	// EventBus may be nil.
	EventBus events.Publisher
}

// MoveRecord is one placed stone.
type MoveRecord struct {
	Number int         `json:"number"`
	Player core.Player `json:"player"`
	Agent  string      `json:"agent,omitempty"`
	Move   int         `json:"move"`
	Row    int         `json:"row"`
	Col    int         `json:"col"`
}

// StepResult is what Step reports back to the caller.
type StepResult struct {
	Board    *core.Board
	Terminal bool
	Outcome  core.Outcome
}

// Match owns the board for one game and enforces turn order. It is not safe
// for concurrent use.
type Match struct {
	config  MatchConfig
	board   *core.Board
	current core.Player
	outcome core.Outcome
	moves   []MoveRecord

	checker  *rules.WinConditionChecker
	machine  *states.StateMachine
	matchCtx *states.MatchContext
	logger   zerolog.Logger
}

// NewMatch validates cfg and returns a match that is already reset: empty
// board, Black to move.
func NewMatch(cfg MatchConfig) (*Match, error) {
	if err := rules.ValidateConfig(cfg.BoardSize, cfg.WinStreak); err != nil {
		return nil, err
	}
	if cfg.BlackName == "" {
		cfg.BlackName = core.PlayerBlack.String()
	}
	if cfg.WhiteName == "" {
		cfg.WhiteName = core.PlayerWhite.String()
	}

	logger := cfg.Logger.With().Str("component", "Match").Logger()
	matchCtx := states.NewMatchContext(uuid.NewString(), logger)

	m := &Match{
		config:   cfg,
		checker:  rules.NewWinConditionChecker(logger, cfg.WinStreak),
		matchCtx: matchCtx,
		machine:  states.NewStateMachine(matchCtx, cfg.EventBus),
		logger:   logger,
	}
	if _, err := m.start(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reset discards the current game and starts a new one under a fresh ID.
// It returns a copy of the empty board.
func (m *Match) Reset() (*core.Board, error) {
	if err := m.machine.Reset("reset requested"); err != nil {
		return nil, fmt.Errorf("reset match %s: %w", m.matchCtx.MatchID, err)
	}
	m.matchCtx.Rebind(uuid.NewString(), m.logger)
	return m.start()
}

func (m *Match) start() (*core.Board, error) {
	board, err := core.NewBoard(m.config.BoardSize)
	if err != nil {
		return nil, err
	}
	m.board = board
	m.current = core.PlayerBlack
	m.outcome = core.OutcomeNone
	m.moves = m.moves[:0]

	if err := m.machine.TransitionTo(states.PhaseInProgress, "new match"); err != nil {
		return nil, fmt.Errorf("start match %s: %w", m.matchCtx.MatchID, err)
	}
	m.publish(events.NewMatchStartedEvent(m.ID(), m.config.BoardSize, m.config.WinStreak,
		m.config.BlackName, m.config.WhiteName))

	return m.board.Clone(), nil
}

// Step places a stone for the current player. An illegal move leaves the
// match untouched and returns an error wrapping core.ErrIllegalMove.
func (m *Match) Step(move int) (StepResult, error) {
	if !m.machine.CurrentPhase().CanReceiveMoves() {
		return StepResult{Board: m.board.Clone(), Terminal: true, Outcome: m.outcome},
			core.WrapMoveError(m.current, move, core.ErrMatchOver)
	}

	player := m.current
	if err := rules.ApplyMove(m.board, move, player); err != nil {
		m.matchCtx.Logger.Warn().
			Err(err).
			Str("player", player.String()).
			Int("move", move).
			Msg("Move rejected")
		m.publish(events.NewMoveRejectedEvent(m.ID(), player, m.nameOf(player), move, err.Error()))
		return StepResult{Board: m.board.Clone(), Outcome: m.outcome}, core.WrapMoveError(player, move, err)
	}

	row, col := m.board.RowCol(move)
	record := MoveRecord{
		Number: len(m.moves) + 1,
		Player: player,
		Agent:  m.nameOf(player),
		Move:   move,
		Row:    row,
		Col:    col,
	}
	m.moves = append(m.moves, record)
	m.matchCtx.MoveCount = len(m.moves)

	over, outcome := m.checker.CheckGameOver(m.board, move)
	if over {
		if err := m.terminate(outcome); err != nil {
			m.undo(record)
			return StepResult{Board: m.board.Clone(), Outcome: m.outcome}, core.WrapMoveError(player, move, err)
		}
	}

	// The move is announced only once it is committed.
	m.publish(events.NewMoveAppliedEvent(m.ID(), player, record.Agent, move, row, col, record.Number))
	if over {
		m.publish(events.NewMatchEndedEvent(m.ID(), outcome, m.WinnerName(), len(m.moves), m.matchCtx.Elapsed()))
		return StepResult{Board: m.board.Clone(), Terminal: true, Outcome: outcome}, nil
	}

	m.current = player.Opponent()
	return StepResult{Board: m.board.Clone(), Outcome: core.OutcomeNone}, nil
}

// terminate moves the match to PhaseTerminated. On failure the outcome is
// cleared again and the match stays in progress.
func (m *Match) terminate(outcome core.Outcome) error {
	m.outcome = outcome
	m.matchCtx.Outcome = outcome
	if err := m.machine.TransitionTo(states.PhaseTerminated, outcome.String()); err != nil {
		m.outcome = core.OutcomeNone
		m.matchCtx.Outcome = core.OutcomeNone
		return fmt.Errorf("terminate match %s: %w", m.ID(), err)
	}
	return nil
}

// undo takes back the last recorded move.
func (m *Match) undo(record MoveRecord) {
	_ = m.board.Set(record.Row, record.Col, core.CellEmpty)
	m.moves = m.moves[:len(m.moves)-1]
	m.matchCtx.MoveCount = len(m.moves)
	m.matchCtx.Logger.Error().
		Str("player", record.Player.String()).
		Int("move", record.Move).
		Msg("Move taken back after failed termination")
}

// LegalMoves lists the empty cells in row-major order, or nothing once the
// match is over.
func (m *Match) LegalMoves() []int {
	if m.IsTerminal() {
		return []int{}
	}
	return rules.LegalMoves(m.board)
}

// CurrentPlayer is the side to move. After the match ends it stays on the
// player who moved last.
func (m *Match) CurrentPlayer() core.Player { return m.current }

func (m *Match) Outcome() core.Outcome { return m.outcome }

func (m *Match) IsTerminal() bool { return m.machine.CurrentPhase().IsTerminal() }

func (m *Match) Phase() states.MatchPhase { return m.machine.CurrentPhase() }

func (m *Match) ID() string { return m.matchCtx.MatchID }

// Board returns a copy of the board.
func (m *Match) Board() *core.Board { return m.board.Clone() }

func (m *Match) WinStreak() int { return m.config.WinStreak }

// Moves returns a copy of the move history.
func (m *Match) Moves() []MoveRecord {
	out := make([]MoveRecord, len(m.moves))
	copy(out, m.moves)
	return out
}

// WinnerName is the name of the winning side, or "" for a draw or a running match.
func (m *Match) WinnerName() string {
	if p, ok := m.outcome.Winner(); ok {
		return m.nameOf(p)
	}
	return ""
}

func (m *Match) nameOf(p core.Player) string {
	if p == core.PlayerWhite {
		return m.config.WhiteName
	}
	return m.config.BlackName
}

// sameBoard reports whether b matches the live board cell for cell.
func (m *Match) sameBoard(b *core.Board) bool { return m.board.Equal(b) }

// Elapsed is the wall time since the first move was allowed, frozen at the end.
func (m *Match) Elapsed() time.Duration { return m.matchCtx.Elapsed() }

func (m *Match) publish(e events.Event) {
	if m.config.EventBus != nil {
		m.config.EventBus.Publish(e)
	}
}
