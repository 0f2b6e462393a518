package xlwrap

import (
	"fmt"
	"strings"
)

// Direction is a direction of travel within a worksheet.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Shift returns the row and column deltas of one step in d.
// Up is (-1, 0), Right is (0, 1).
func (d Direction) Shift() (dRow, dCol int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	default:
		return 0, 0
	}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts "up", "down", "left" or "right" in any case.
func ParseDirection(s string) (Direction, error) {
	for _, d := range []Direction{Up, Down, Left, Right} {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}
