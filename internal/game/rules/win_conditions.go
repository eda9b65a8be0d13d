package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
	"github.com/rs/zerolog"
)

// ValidateConfig checks board size and win streak.
func ValidateConfig(size, winStreak int) error {
	if size <= 0 {
		return fmt.Errorf("board size must be positive, got %d: %w", size, core.ErrInvalidConfiguration)
	}
	if winStreak <= 0 || winStreak > size {
		return fmt.Errorf("win streak must be in [1,%d], got %d: %w", size, winStreak, core.ErrInvalidConfiguration)
	}
	return nil
}

// RunLength counts the unbroken run of the stone at (row, col) along d,
// both forwards and backwards, including the anchor. It stops counting once
// limit is reached; limit <= 0 means no limit. An empty anchor has length 0.
func RunLength(board *core.Board, row, col int, d core.Direction, limit int) int {
	stone, ok := board.Peek(row, col)
	if !ok || stone == core.CellEmpty {
		return 0
	}
	v := d.Vector()
	count := 1
	for _, sign := range [2]int{1, -1} {
		for i := 1; limit <= 0 || count < limit; i++ {
			c, ok := board.Peek(row+sign*v.Row*i, col+sign*v.Col*i)
			if !ok || c != stone {
				break
			}
			count++
		}
	}
	return count
}

// CheckWin reports whether the stone on the last played cell (row, col) is part
// of a run of at least winStreak stones in any direction. Only the anchor's
// lines are inspected.
func CheckWin(board *core.Board, row, col, winStreak int) bool {
	for _, d := range core.LineDirections {
		if RunLength(board, row, col, d, winStreak) >= winStreak {
			return true
		}
	}
	return false
}

// CheckDraw reports whether lastMove filled the board without completing a
// line of winStreak. A filling move that wins is not a draw.
func CheckDraw(board *core.Board, lastMove, winStreak int) bool {
	if !board.IsFull() {
		return false
	}
	if !board.ValidIndex(lastMove) {
		return true
	}
	row, col := board.RowCol(lastMove)
	return !CheckWin(board, row, col, winStreak)
}

// WinConditionChecker handles terminal-state detection after a move
type WinConditionChecker struct {
	logger    zerolog.Logger
	winStreak int
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger, winStreak int) *WinConditionChecker {
	return &WinConditionChecker{
		logger:    logger.With().Str("component", "WinConditionChecker").Logger(),
		winStreak: winStreak,
	}
}

func (wc *WinConditionChecker) WinStreak() int { return wc.winStreak }

// CheckGameOver evaluates the position right after move was played.
// Returns (isGameOver, outcome)
func (wc *WinConditionChecker) CheckGameOver(board *core.Board, move int) (bool, core.Outcome) {
	row, col := board.RowCol(move)
	c, err := board.At(move)
	if err != nil {
		wc.logger.Warn().Err(err).Int("move", move).Msg("Game over check on invalid move")
		return false, core.OutcomeNone
	}
	player, ok := c.Owner()
	if !ok {
		wc.logger.Warn().Int("move", move).Msg("Game over check on empty cell")
		return false, core.OutcomeNone
	}

	if CheckWin(board, row, col, wc.winStreak) {
		outcome := core.WinFor(player)
		wc.logger.Info().
			Str("winner", player.String()).
			Int("row", row).
			Int("col", col).
			Msg("Winner determined")
		return true, outcome
	}
	if CheckDraw(board, move, wc.winStreak) {
		wc.logger.Info().Msg("Board full without a winning line, draw")
		return true, core.OutcomeDraw
	}

	wc.logger.Debug().Int("move", move).Msg("Game over check complete, match continues")
	return false, core.OutcomeNone
}
