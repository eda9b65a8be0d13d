package core

import (
	"fmt"
	"strings"
)

// Cell is the state of a single intersection on the board.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

func (c Cell) IsValid() bool { return c <= CellWhite }
func (c Cell) IsEmpty() bool { return c == CellEmpty }

// Owner returns the player whose stone occupies the cell.
// The second result is false for empty or invalid cells.
func (c Cell) Owner() (Player, bool) {
	switch c {
	case CellBlack:
		return PlayerBlack, true
	case CellWhite:
		return PlayerWhite, true
	default:
		return PlayerNone, false
	}
}

func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellBlack:
		return "black"
	case CellWhite:
		return "white"
	default:
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
}

// NoMove is returned by agents when there is nothing left to choose from.
const NoMove = -1

// Board is a square grid of cells stored row-major.
type Board struct {
	size  int
	cells []Cell // length = size*size
}

// NewBoard returns an all-empty board of the given size.
func NewBoard(size int) (*Board, error) {
	if size <= 0 {
		return nil, fmt.Errorf("board size %d: %w", size, ErrInvalidConfiguration)
	}
	return &Board{size: size, cells: make([]Cell, size*size)}, nil
}

func (b *Board) Size() int { return b.size }
func (b *Board) NumCells() int { return len(b.cells) }
func (b *Board) Idx(row, col int) int { return row*b.size + col }
func (b *Board) RowCol(idx int) (int, int) { return idx / b.size, idx % b.size }

// InBounds checks if coordinates are within board boundaries
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// ValidIndex reports whether idx addresses a cell of this board.
func (b *Board) ValidIndex(idx int) bool {
	return idx >= 0 && idx < len(b.cells)
}

// Get returns the cell at (row, col).
func (b *Board) Get(row, col int) (Cell, error) {
	if !b.InBounds(row, col) {
		return CellEmpty, fmt.Errorf("get (%d,%d) on %dx%d board: %w", row, col, b.size, b.size, ErrOutOfBounds)
	}
	return b.cells[b.Idx(row, col)], nil
}

// Set overwrites the cell at (row, col). It does not enforce game rules;
// use rules.ApplyMove for that.
func (b *Board) Set(row, col int, c Cell) error {
	if !b.InBounds(row, col) {
		return fmt.Errorf("set (%d,%d) on %dx%d board: %w", row, col, b.size, b.size, ErrOutOfBounds)
	}
	if !c.IsValid() {
		return fmt.Errorf("set (%d,%d) to %v: %w", row, col, c, ErrInvalidCell)
	}
	b.cells[b.Idx(row, col)] = c
	return nil
}

// Peek is the non-failing form of Get used by scanners: ok is false when
// (row, col) lies outside the board.
func (b *Board) Peek(row, col int) (Cell, bool) {
	if !b.InBounds(row, col) {
		return CellEmpty, false
	}
	return b.cells[b.Idx(row, col)], true
}

// At returns the cell at a row-major index.
func (b *Board) At(idx int) (Cell, error) {
	if !b.ValidIndex(idx) {
		return CellEmpty, fmt.Errorf("index %d on %dx%d board: %w", idx, b.size, b.size, ErrOutOfBounds)
	}
	return b.cells[idx], nil
}

// IsFull reports whether no empty cell remains.
func (b *Board) IsFull() bool {
	for _, c := range b.cells {
		if c == CellEmpty {
			return false
		}
	}
	return true
}

// Count returns how many cells hold c.
func (b *Board) Count(c Cell) int {
	n := 0
	for _, cell := range b.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Simulate places c on the empty cell idx, runs fn, and restores the cell
// to empty on every exit path, including a panic inside fn.
func (b *Board) Simulate(idx int, c Cell, fn func()) error {
	if !b.ValidIndex(idx) {
		return fmt.Errorf("simulate at %d: %w", idx, ErrOutOfBounds)
	}
	if b.cells[idx] != CellEmpty {
		return fmt.Errorf("simulate at %d: cell is %v: %w", idx, b.cells[idx], ErrIllegalMove)
	}
	b.cells[idx] = c
	defer func() { b.cells[idx] = CellEmpty }()
	fn()
	return nil
}

// Cells returns a copy of the row-major cell slice.
func (b *Board) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

func (b *Board) Clone() *Board {
	return &Board{size: b.size, cells: b.Cells()}
}

// Equal reports whether both boards have the same size and contents.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i, c := range b.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// String renders the board with one character per cell: '.', 'X' (black), 'O' (white).
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			switch b.cells[b.Idx(row, col)] {
			case CellBlack:
				sb.WriteByte('X')
			case CellWhite:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
