package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
)

const (
	BlackSymbol = "●"
	WhiteSymbol = "○"
	EmptySymbol = "·"
)

// RenderBoard draws board as a grid with column numbers across the top and
// row numbers down the left.
func RenderBoard(board *core.Board) string {
	return renderBoard(board, core.NoMove)
}

// RenderBoardWithLast is RenderBoard with the cell at last bracketed.
func RenderBoardWithLast(board *core.Board, last int) string {
	return renderBoard(board, last)
}

func renderBoard(board *core.Board, last int) string {
	size := board.Size()
	var sb strings.Builder
	sb.Grow((size*3 + 4) * (size + 1))

	sb.WriteString("   ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(&sb, "%3d", col)
	}
	sb.WriteString("\n")

	for row := 0; row < size; row++ {
		fmt.Fprintf(&sb, "%3d", row)
		for col := 0; col < size; col++ {
			c, _ := board.Get(row, col)
			if board.Idx(row, col) == last {
				sb.WriteString("[" + cellSymbol(c) + "]")
			} else {
				sb.WriteString(" " + cellSymbol(c) + " ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func cellSymbol(c core.Cell) string {
	switch c {
	case core.CellBlack:
		return BlackSymbol
	case core.CellWhite:
		return WhiteSymbol
	default:
		return EmptySymbol
	}
}

// RenderResult is a one-line summary of a match result.
func RenderResult(r MatchResult) string {
	switch r.Outcome {
	case core.OutcomeDraw:
		return fmt.Sprintf("%s vs %s: draw after %d moves", r.Black, r.White, len(r.Moves))
	case core.OutcomeBlackWins, core.OutcomeWhiteWins:
		return fmt.Sprintf("%s vs %s: %s wins (%s) after %d moves", r.Black, r.White, r.Winner, r.Outcome, len(r.Moves))
	default:
		return fmt.Sprintf("%s vs %s: unfinished after %d moves", r.Black, r.White, len(r.Moves))
	}
}
