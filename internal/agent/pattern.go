package agent

import (
	"fmt"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
)

// PatternWeights are the per-window scores used by Smart, keyed by how many
// stones a live window still lacks: Five lacks none, Four lacks one and so on.
// One covers every live window further away than Two.
type PatternWeights struct {
	Five  float64
	Four  float64
	Three float64
	Two   float64
	One   float64
}

func DefaultPatternWeights() PatternWeights {
	return PatternWeights{
		Five:  100000,
		Four:  10000,
		Three: 1000,
		Two:   100,
		One:   10,
	}
}

// Validate requires Five > Four > Three > Two > One > 0.
func (w PatternWeights) Validate() error {
	if !(w.Five > w.Four && w.Four > w.Three && w.Three > w.Two && w.Two > w.One && w.One > 0) {
		return fmt.Errorf("pattern weights must satisfy five > four > three > two > one > 0, got %+v: %w",
			w, core.ErrInvalidConfiguration)
	}
	return nil
}

// WindowScore scores one window of winStreak cells holding mine of the
// scoring player's stones, theirs of the opponent's and empty free cells.
func (w PatternWeights) WindowScore(mine, theirs, empty, winStreak int) float64 {
	if mine == 0 || theirs > 0 {
		return 0
	}
	if mine+empty < winStreak {
		return 0
	}
	switch missing := winStreak - mine; {
	case missing <= 0:
		return w.Five
	case missing == 1:
		return w.Four
	case missing == 2:
		return w.Three
	case missing == 3:
		return w.Two
	default:
		return w.One
	}
}

// PatternScorer sums window scores over a board.
type PatternScorer struct {
	weights   PatternWeights
	winStreak int
}

func NewPatternScorer(weights PatternWeights, winStreak int) PatternScorer {
	return PatternScorer{weights: weights, winStreak: winStreak}
}

func (s PatternScorer) Weights() PatternWeights { return s.weights }

// AnchorScore scores every window of winStreak cells along d that contains
// (row, col). Windows reaching past the board edge score 0.
func (s PatternScorer) AnchorScore(board *core.Board, row, col int, d core.Direction, p core.Player) float64 {
	anchor := core.NewCoordinate(row, col)
	mineCell, theirCell := p.Cell(), p.Opponent().Cell()

	total := 0.0
	for offset := 0; offset < s.winStreak; offset++ {
		start := anchor.Step(d, -offset)
		mine, theirs, empty := 0, 0, 0
		valid := true
		for i := 0; i < s.winStreak; i++ {
			pos := start.Step(d, i)
			c, ok := board.Peek(pos.Row, pos.Col)
			if !ok {
				valid = false
				break
			}
			switch c {
			case mineCell:
				mine++
			case theirCell:
				theirs++
			default:
				empty++
			}
		}
		if valid {
			total += s.weights.WindowScore(mine, theirs, empty, s.winStreak)
		}
	}
	return total
}

// Evaluate sums AnchorScore over every stone of p in all four directions.
func (s PatternScorer) Evaluate(board *core.Board, p core.Player) float64 {
	own := p.Cell()
	total := 0.0
	for idx := 0; idx < board.NumCells(); idx++ {
		if c, _ := board.At(idx); c != own {
			continue
		}
		row, col := board.RowCol(idx)
		for _, d := range core.LineDirections {
			total += s.AnchorScore(board, row, col, d, p)
		}
	}
	return total
}
