package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"minimum board", 1},
		{"small board", 3},
		{"default board", 9},
		{"standard board", 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoard(tt.size)
			require.NoError(t, err)

			assert.Equal(t, tt.size, board.Size())
			assert.Equal(t, tt.size*tt.size, board.NumCells())
			assert.Equal(t, tt.size*tt.size, board.Count(CellEmpty))
			assert.False(t, board.IsFull())
		})
	}
}

func TestNewBoard_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -15} {
		board, err := NewBoard(size)
		assert.Nil(t, board)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, "size %d", size)
	}
}

func TestBoard_IdxRowCol(t *testing.T) {
	board, err := NewBoard(5)
	require.NoError(t, err)

	tests := []struct {
		row, col int
		idx      int
	}{
		{0, 0, 0},
		{0, 4, 4},
		{1, 0, 5},
		{2, 2, 12},
		{4, 4, 24},
	}

	for _, tt := range tests {
		t.Run(NewCoordinate(tt.row, tt.col).String(), func(t *testing.T) {
			assert.Equal(t, tt.idx, board.Idx(tt.row, tt.col))
			row, col := board.RowCol(tt.idx)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.col, col)
		})
	}
}

func TestBoard_GetSet(t *testing.T) {
	board, err := NewBoard(3)
	require.NoError(t, err)

	require.NoError(t, board.Set(1, 2, CellBlack))
	require.NoError(t, board.Set(2, 0, CellWhite))

	c, err := board.Get(1, 2)
	require.NoError(t, err)
	assert.Equal(t, CellBlack, c)

	c, err = board.Get(2, 0)
	require.NoError(t, err)
	assert.Equal(t, CellWhite, c)

	c, err = board.At(board.Idx(2, 0))
	require.NoError(t, err)
	assert.Equal(t, CellWhite, c)

	require.NoError(t, board.Set(1, 2, CellEmpty))
	c, _ = board.Get(1, 2)
	assert.Equal(t, CellEmpty, c)
}

func TestBoard_OutOfBounds(t *testing.T) {
	board, err := NewBoard(3)
	require.NoError(t, err)
	before := board.Clone()

	tests := []struct {
		name     string
		row, col int
	}{
		{"negative row", -1, 0},
		{"negative col", 0, -1},
		{"row past edge", 3, 0},
		{"col past edge", 0, 3},
		{"both past edge", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := board.Get(tt.row, tt.col)
			assert.ErrorIs(t, err, ErrOutOfBounds)

			err = board.Set(tt.row, tt.col, CellBlack)
			assert.ErrorIs(t, err, ErrOutOfBounds)

			_, ok := board.Peek(tt.row, tt.col)
			assert.False(t, ok)
		})
	}

	_, err = board.At(9)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = board.At(-1)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	assert.True(t, before.Equal(board), "failed accesses must not change the board")
}

func TestBoard_SetInvalidCell(t *testing.T) {
	board, err := NewBoard(3)
	require.NoError(t, err)

	err = board.Set(0, 0, Cell(7))
	assert.ErrorIs(t, err, ErrInvalidCell)
	c, _ := board.Get(0, 0)
	assert.Equal(t, CellEmpty, c)
}

func TestBoard_IsFull(t *testing.T) {
	board, err := NewBoard(2)
	require.NoError(t, err)

	cells := []Cell{CellBlack, CellWhite, CellWhite}
	for i, c := range cells {
		row, col := board.RowCol(i)
		require.NoError(t, board.Set(row, col, c))
		assert.False(t, board.IsFull(), "board should not be full after %d stones", i+1)
	}
	require.NoError(t, board.Set(1, 1, CellBlack))
	assert.True(t, board.IsFull())
	assert.Equal(t, 2, board.Count(CellBlack))
	assert.Equal(t, 2, board.Count(CellWhite))
}

func TestBoard_Simulate(t *testing.T) {
	board, err := NewBoard(3)
	require.NoError(t, err)
	require.NoError(t, board.Set(0, 0, CellWhite))

	t.Run("restores after fn", func(t *testing.T) {
		var seen Cell
		err := board.Simulate(4, CellBlack, func() {
			seen, _ = board.At(4)
		})
		require.NoError(t, err)
		assert.Equal(t, CellBlack, seen)
		c, _ := board.At(4)
		assert.Equal(t, CellEmpty, c)
	})

	t.Run("restores after panic", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = board.Simulate(5, CellBlack, func() { panic("boom") })
		})
		c, _ := board.At(5)
		assert.Equal(t, CellEmpty, c)
	})

	t.Run("rejects occupied cell", func(t *testing.T) {
		called := false
		err := board.Simulate(0, CellBlack, func() { called = true })
		assert.ErrorIs(t, err, ErrIllegalMove)
		assert.False(t, called)
		c, _ := board.At(0)
		assert.Equal(t, CellWhite, c)
	})

	t.Run("rejects out of range", func(t *testing.T) {
		err := board.Simulate(9, CellBlack, func() {})
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestBoard_CloneAndEqual(t *testing.T) {
	board, err := NewBoard(3)
	require.NoError(t, err)
	require.NoError(t, board.Set(1, 1, CellBlack))

	clone := board.Clone()
	assert.True(t, board.Equal(clone))

	require.NoError(t, clone.Set(0, 0, CellWhite))
	assert.False(t, board.Equal(clone), "clone must not share cells")
	c, _ := board.Get(0, 0)
	assert.Equal(t, CellEmpty, c)

	other, err := NewBoard(4)
	require.NoError(t, err)
	assert.False(t, board.Equal(other))
	assert.False(t, board.Equal(nil))
}

func TestBoard_String(t *testing.T) {
	board, err := NewBoard(3)
	require.NoError(t, err)
	require.NoError(t, board.Set(0, 0, CellBlack))
	require.NoError(t, board.Set(1, 1, CellWhite))

	assert.Equal(t, "X..\n.O.\n...\n", board.String())
}
