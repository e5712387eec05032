package game

import "fmt"

// Transformation is one of the eight symmetries of the square board.
type Transformation int

const (
	Identity Transformation = iota
	Rotate90CW
	Rotate180
	Rotate90CCW
	FlipHorizontal
	FlipVertical
	FlipDiagonalSWNE
	FlipDiagonalNWSE
)

// Transformations is the canonical lookup order.
var Transformations = [...]Transformation{
	Identity, Rotate90CW, Rotate180, Rotate90CCW,
	FlipHorizontal, FlipVertical, FlipDiagonalSWNE, FlipDiagonalNWSE,
}

var transformationNames = [...]string{
	Identity:         "Identity",
	Rotate90CW:       "Rotate90CW",
	Rotate180:        "Rotate180",
	Rotate90CCW:      "Rotate90CCW",
	FlipHorizontal:   "FlipHorizontal",
	FlipVertical:     "FlipVertical",
	FlipDiagonalSWNE: "FlipDiagonalSWNE",
	FlipDiagonalNWSE: "FlipDiagonalNWSE",
}

func (t Transformation) String() string {
	if t < Identity || t > FlipDiagonalNWSE {
		return fmt.Sprintf("Transformation(%d)", int(t))
	}
	return transformationNames[t]
}

// Field where each compass position lands, indexed by the source position.
//
//	NW N NE
//	W  C E
//	SW S SE
var forwardTable = [...][Size * Size]Compass{
	Identity: {
		NorthWest, North, NorthEast,
		West, Center, East,
		SouthWest, South, SouthEast,
	},
	// (x, y) -> (2-y, x)
	Rotate90CW: {
		NorthEast, East, SouthEast,
		North, Center, South,
		NorthWest, West, SouthWest,
	},
	// (x, y) -> (2-x, 2-y)
	Rotate180: {
		SouthEast, South, SouthWest,
		East, Center, West,
		NorthEast, North, NorthWest,
	},
	// (x, y) -> (y, 2-x)
	Rotate90CCW: {
		SouthWest, West, NorthWest,
		South, Center, North,
		SouthEast, East, NorthEast,
	},
	// (x, y) -> (2-x, y)
	FlipHorizontal: {
		NorthEast, North, NorthWest,
		East, Center, West,
		SouthEast, South, SouthWest,
	},
	// (x, y) -> (x, 2-y)
	FlipVertical: {
		SouthWest, South, SouthEast,
		West, Center, East,
		NorthWest, North, NorthEast,
	},
	// (x, y) -> (2-y, 2-x)
	FlipDiagonalSWNE: {
		SouthEast, East, NorthEast,
		South, Center, North,
		SouthWest, West, NorthWest,
	},
	// (x, y) -> (y, x)
	FlipDiagonalNWSE: {
		NorthWest, West, SouthWest,
		North, Center, South,
		NorthEast, East, SouthEast,
	},
}

var inverseOf = [...]Transformation{
	Identity:         Identity,
	Rotate90CW:       Rotate90CCW,
	Rotate180:        Rotate180,
	Rotate90CCW:      Rotate90CW,
	FlipHorizontal:   FlipHorizontal,
	FlipVertical:     FlipVertical,
	FlipDiagonalSWNE: FlipDiagonalSWNE,
	FlipDiagonalNWSE: FlipDiagonalNWSE,
}

func (t Transformation) check() {
	if t < Identity || t > FlipDiagonalNWSE {
		panic(fmt.Sprintf("unknown transformation %d", int(t)))
	}
}

// Inverse returns the transformation undoing t.
func (t Transformation) Inverse() Transformation {
	t.check()
	return inverseOf[t]
}

// Forward maps a coordinate of the source board to where its field lands on
// the transformed board.
func (t Transformation) Forward(c Coordinate) Coordinate {
	t.check()
	return forwardTable[t][c.Compass()].Coordinate()
}

// Back maps a coordinate of the transformed board to the source board.
func (t Transformation) Back(c Coordinate) Coordinate {
	return t.Inverse().Forward(c)
}

// Transform returns the board with t applied to every field.
func (b Board) Transform(t Transformation) Board {
	t.check()
	var out Board
	for y, row := range b {
		for x, field := range row {
			to := forwardTable[t][y*Size+x].Coordinate()
			out[to.Y][to.X] = field
		}
	}
	return out
}

func (b Board) Rotate90CW() Board {
	var out Board
	for y, row := range b {
		for x, field := range row {
			out[x][2-y] = field
		}
	}
	return out
}

// FlipHorizontal swaps the outer columns.
func (b Board) FlipHorizontal() Board {
	out := b
	for y := range out {
		out[y][0], out[y][2] = out[y][2], out[y][0]
	}
	return out
}

// FlipVertical swaps the outer rows.
func (b Board) FlipVertical() Board {
	out := b
	out[0], out[2] = out[2], out[0]
	return out
}

// FlipDiagonalSWNE mirrors the board across the anti-diagonal.
func (b Board) FlipDiagonalSWNE() Board {
	var out Board
	for y, row := range b {
		for x, field := range row {
			out[2-x][2-y] = field
		}
	}
	return out
}

// FlipDiagonalNWSE mirrors the board across the main diagonal.
func (b Board) FlipDiagonalNWSE() Board {
	var out Board
	for y, row := range b {
		for x, field := range row {
			out[x][y] = field
		}
	}
	return out
}
