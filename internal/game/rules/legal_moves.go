package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
)

// LegalMoves returns the indices of every empty cell in row-major order.
func LegalMoves(board *core.Board) []int {
	moves := make([]int, 0, board.Count(core.CellEmpty))
	for idx := 0; idx < board.NumCells(); idx++ {
		if c, _ := board.At(idx); c == core.CellEmpty {
			moves = append(moves, idx)
		}
	}
	return moves
}

// LegalMoveMask returns a flattened boolean mask indicating which cells are legal.
// Index = row*size + col; true = empty cell.
func LegalMoveMask(board *core.Board) []bool {
	mask := make([]bool, board.NumCells())
	for idx := range mask {
		c, _ := board.At(idx)
		mask[idx] = c == core.CellEmpty
	}
	return mask
}

// IsLegal reports whether move targets an empty cell on the board.
func IsLegal(board *core.Board, move int) bool {
	c, err := board.At(move)
	return err == nil && c == core.CellEmpty
}

// ApplyMove places player's stone on move. The board is only mutated when
// the move is legal.
func ApplyMove(board *core.Board, move int, player core.Player) error {
	if !player.IsValid() {
		return fmt.Errorf("%v: %w", player, core.ErrInvalidPlayer)
	}
	c, err := board.At(move)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrIllegalMove, err)
	}
	if c != core.CellEmpty {
		row, col := board.RowCol(move)
		return fmt.Errorf("%w: cell (%d,%d) is %v", core.ErrIllegalMove, row, col, c)
	}
	row, col := board.RowCol(move)
	return board.Set(row, col, player.Cell())
}
