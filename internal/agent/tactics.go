package agent

import (
	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
	"github.com/mitchelldurbincs/GomokuArena/internal/game/rules"
)

// FindWinningMove returns the first move in legal that would complete a run
// of winStreak stones for p, or core.NoMove. Every hypothesis is undone.
func FindWinningMove(board *core.Board, legal []int, p core.Player, winStreak int) int {
	for _, move := range legal {
		row, col := board.RowCol(move)
		won := false
		err := board.Simulate(move, p.Cell(), func() {
			won = rules.CheckWin(board, row, col, winStreak)
		})
		if err == nil && won {
			return move
		}
	}
	return core.NoMove
}

// FindTacticalMove looks for an immediate win for me, then for a cell that
// blocks an immediate win for the opponent. Own wins always come first.
func FindTacticalMove(board *core.Board, legal []int, me core.Player, winStreak int) (move int, blocking bool, ok bool) {
	if m := FindWinningMove(board, legal, me, winStreak); m != core.NoMove {
		return m, false, true
	}
	if m := FindWinningMove(board, legal, me.Opponent(), winStreak); m != core.NoMove {
		return m, true, true
	}
	return core.NoMove, false, false
}
