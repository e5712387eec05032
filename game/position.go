package game

import "fmt"

const Size = 3

// Coordinate addresses a board field, X is the column and Y the row.
type Coordinate struct {
	X int
	Y int
}

func (c Coordinate) IsValid() bool {
	return c.X >= 0 && c.X < Size && c.Y >= 0 && c.Y < Size
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Compass is the named alias of a coordinate, used for presentation only.
type Compass int

const (
	NorthWest Compass = iota
	North
	NorthEast
	West
	Center
	East
	SouthWest
	South
	SouthEast
)

var compassNames = [...]string{
	NorthWest: "NorthWest",
	North:     "North",
	NorthEast: "NorthEast",
	West:      "West",
	Center:    "Center",
	East:      "East",
	SouthWest: "SouthWest",
	South:     "South",
	SouthEast: "SouthEast",
}

// Compasses lists all labels in row-major order.
var Compasses = [...]Compass{NorthWest, North, NorthEast, West, Center, East, SouthWest, South, SouthEast}

func (c Compass) String() string {
	if c < NorthWest || c > SouthEast {
		return fmt.Sprintf("Compass(%d)", int(c))
	}
	return compassNames[c]
}

// Coordinate converts the label to its (x, y) pair.
func (c Compass) Coordinate() Coordinate {
	if c < NorthWest || c > SouthEast {
		panic(fmt.Sprintf("invalid compass label %d", int(c)))
	}
	return Coordinate{X: int(c) % Size, Y: int(c) / Size}
}

// Compass converts the coordinate to its named label.
func (c Coordinate) Compass() Compass {
	if !c.IsValid() {
		panic(fmt.Sprintf("coordinate %v is off the board", c))
	}
	return Compass(c.Y*Size + c.X)
}

// ParseCompass resolves a label name such as "NorthWest".
func ParseCompass(name string) (Compass, error) {
	for i, n := range compassNames {
		if n == name {
			return Compass(i), nil
		}
	}
	return 0, fmt.Errorf("unknown compass label %q", name)
}
