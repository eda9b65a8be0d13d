package agent

import "github.com/mitchelldurbincs/GomokuArena/internal/game/core"

// InferPlayer derives the side to move from the stones on the board: Black
// moves first, so White is to move exactly when Black has more stones.
func InferPlayer(board *core.Board) core.Player {
	if board.Count(core.CellBlack) > board.Count(core.CellWhite) {
		return core.PlayerWhite
	}
	return core.PlayerBlack
}
