package core

import "fmt"

// Coordinate represents a position on the game board
type Coordinate struct {
	Row, Col int
}

// NewCoordinate creates a new coordinate with the given row and column
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// FromIndex creates a coordinate from a board array index using row-major ordering
func FromIndex(idx, size int) Coordinate {
	return Coordinate{
		Row: idx / size,
		Col: idx % size,
	}
}

// IsValid checks if the coordinate is within a size x size board
func (c Coordinate) IsValid(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

// ToIndex converts the coordinate to a board array index using row-major ordering
func (c Coordinate) ToIndex(size int) int {
	return c.Row*size + c.Col
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{
		Row: c.Row + other.Row,
		Col: c.Col + other.Col,
	}
}

// Step returns the coordinate n cells away along d. Negative n walks backwards.
func (c Coordinate) Step(d Direction, n int) Coordinate {
	v := d.Vector()
	return Coordinate{Row: c.Row + v.Row*n, Col: c.Col + v.Col*n}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Direction is one of the four line orientations a five can be made along.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
	DiagonalDown // ↘
	DiagonalUp   // ↙
)

// LineDirections lists every direction checked for runs and patterns.
var LineDirections = [4]Direction{Horizontal, Vertical, DiagonalDown, DiagonalUp}

var directionVectors = [4]Coordinate{
	Horizontal:   {Row: 0, Col: 1},
	Vertical:     {Row: 1, Col: 0},
	DiagonalDown: {Row: 1, Col: 1},
	DiagonalUp:   {Row: 1, Col: -1},
}

// Vector returns the unit offset for d.
func (d Direction) Vector() Coordinate {
	if d < 0 || int(d) >= len(directionVectors) {
		return Coordinate{}
	}
	return directionVectors[d]
}

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case DiagonalDown:
		return "diagonal_down"
	case DiagonalUp:
		return "diagonal_up"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}
