package game

import (
	"fmt"
	"strings"
)

// Board is a 3x3 grid indexed as board[y][x]. It is a comparable value and
// is hashed by exact content, so it can key a map directly.
type Board [Size][Size]Cell

// EmptyBoard is the position every episode starts from.
var EmptyBoard = Board{}

// At returns the field at the given coordinate.
func (b Board) At(c Coordinate) Cell {
	return b[c.Y][c.X]
}

// Count returns the number of fields holding the given state.
func (b Board) Count(state Cell) int {
	count := 0
	for _, row := range b {
		for _, field := range row {
			if field == state {
				count++
			}
		}
	}
	return count
}

// EmptyCoordinates lists the empty fields row by row. Action lists are built
// from this order, so it must never change.
func (b Board) EmptyCoordinates() []Coordinate {
	empty := make([]Coordinate, 0, Size*Size)
	for y, row := range b {
		for x, field := range row {
			if field == Empty {
				empty = append(empty, Coordinate{X: x, Y: y})
			}
		}
	}
	return empty
}

func (b Board) IsFull() bool {
	return b.Count(Empty) == 0
}

// Turn returns the mark placed by the next move: X when both sides have the
// same number of marks, O otherwise.
func (b Board) Turn() Cell {
	if b.Count(X) == b.Count(O) {
		return X
	}
	return O
}

// Play places the mark of the side to move at c. Playing on an occupied field
// is a bug in the caller.
func (b *Board) Play(c Coordinate) {
	if !c.IsValid() {
		panic(fmt.Sprintf("cannot play at %v: off the board", c))
	}
	if b[c.Y][c.X] != Empty {
		panic(fmt.Sprintf("cannot play at %v: field holds %s", c, b[c.Y][c.X]))
	}
	b[c.Y][c.X] = b.Turn()
}

// Winner scans rows, then columns, then the main and anti diagonal, and
// returns the first complete line's mark. Empty means no line is complete.
func (b Board) Winner() Cell {
	same := func(a, c, d Cell) bool {
		return a != Empty && a == c && a == d
	}
	for y := 0; y < Size; y++ {
		if same(b[y][0], b[y][1], b[y][2]) {
			return b[y][0]
		}
	}
	for x := 0; x < Size; x++ {
		if same(b[0][x], b[1][x], b[2][x]) {
			return b[0][x]
		}
	}
	if same(b[0][0], b[1][1], b[2][2]) {
		return b[1][1]
	}
	if same(b[2][0], b[1][1], b[0][2]) {
		return b[1][1]
	}
	return Empty
}

// IsValid reports whether the mark counts are reachable through legal play.
func (b Board) IsValid() bool {
	diff := b.Count(X) - b.Count(O)
	return diff == 0 || diff == 1
}

func (b Board) String() string {
	var sb strings.Builder
	for y, row := range b {
		if y > 0 {
			sb.WriteString("-----------\n")
		}
		fmt.Fprintf(&sb, " %s | %s | %s\n", row[0], row[1], row[2])
	}
	return sb.String()
}

// Compact renders the board on a single line, rows separated by '/'.
func (b Board) Compact() string {
	var sb strings.Builder
	for y, row := range b {
		if y > 0 {
			sb.WriteByte('/')
		}
		for _, field := range row {
			if field == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteString(field.String())
			}
		}
	}
	return sb.String()
}

// ParseBoard reads nine fields in row-major order. 'X' and 'O' are marks,
// '.', '-' and '_' are empty fields; whitespace, '/' and '|' are ignored.
func ParseBoard(s string) (Board, error) {
	var b Board
	n := 0
	for _, r := range s {
		var field Cell
		switch r {
		case ' ', '\t', '\n', '/', '|':
			continue
		case 'X', 'x':
			field = X
		case 'O', 'o':
			field = O
		case '.', '-', '_':
			field = Empty
		default:
			return Board{}, fmt.Errorf("unexpected field %q in board %q", r, s)
		}
		if n == Size*Size {
			return Board{}, fmt.Errorf("board %q has more than %d fields", s, Size*Size)
		}
		b[n/Size][n%Size] = field
		n++
	}
	if n != Size*Size {
		return Board{}, fmt.Errorf("board %q has %d fields, want %d", s, n, Size*Size)
	}
	return b, nil
}

// MustParseBoard is ParseBoard for literals known to be well formed.
func MustParseBoard(s string) Board {
	b, err := ParseBoard(s)
	if err != nil {
		panic(err)
	}
	return b
}
