package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
)

// CreateTestBoard creates an empty square test board
func CreateTestBoard(t testing.TB, size int) *core.Board {
	t.Helper()
	board, err := core.NewBoard(size)
	require.NoError(t, err)
	return board
}

// BoardFromRows builds a square board from one string per row.
// '.' is empty, 'X' is black and 'O' is white.
func BoardFromRows(t testing.TB, rows ...string) *core.Board {
	t.Helper()
	board := CreateTestBoard(t, len(rows))
	for r, line := range rows {
		require.Len(t, line, len(rows), "row %d must have %d cells", r, len(rows))
		for c, ch := range line {
			var cell core.Cell
			switch ch {
			case '.':
				cell = core.CellEmpty
			case 'X':
				cell = core.CellBlack
			case 'O':
				cell = core.CellWhite
			default:
				require.Failf(t, "bad fixture", "unknown cell %q at (%d,%d)", ch, r, c)
			}
			require.NoError(t, board.Set(r, c, cell))
		}
	}
	return board
}

// PlaceStones puts p's stones on the given (row, col) pairs.
func PlaceStones(t testing.TB, board *core.Board, p core.Player, coords ...core.Coordinate) {
	t.Helper()
	for _, c := range coords {
		require.NoError(t, board.Set(c.Row, c.Col, p.Cell()))
	}
}
