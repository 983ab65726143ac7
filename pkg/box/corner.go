package box

import "strings"

// Corner names the resize handle being dragged: one of the four edges or a
// combination of a vertical and a horizontal edge.
type Corner uint8

const (
	North Corner = 1 << iota
	South
	East
	West

	NorthEast = North | East
	NorthWest = North | West
	SouthEast = South | East
	SouthWest = South | West
)

var cornerNames = map[string]Corner{
	"n":  North,
	"s":  South,
	"e":  East,
	"w":  West,
	"ne": NorthEast,
	"nw": NorthWest,
	"se": SouthEast,
	"sw": SouthWest,
}

// ParseCorner reads a handle name such as "se" or "w".
func ParseCorner(s string) (Corner, bool) {
	c, ok := cornerNames[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// String returns the handle name.
func (c Corner) String() string {
	var b strings.Builder
	if c&North != 0 {
		b.WriteByte('n')
	}
	if c&South != 0 {
		b.WriteByte('s')
	}
	if c&East != 0 {
		b.WriteByte('e')
	}
	if c&West != 0 {
		b.WriteByte('w')
	}
	return b.String()
}

// Opposite returns the handle diagonally across the box.
func (c Corner) Opposite() Corner {
	var o Corner
	if c&North != 0 {
		o |= South
	}
	if c&South != 0 {
		o |= North
	}
	if c&East != 0 {
		o |= West
	}
	if c&West != 0 {
		o |= East
	}
	return o
}

// signs returns the direction each axis grows when the handle is dragged
// right or down: +1 for east/south, -1 for west/north, 0 if untouched.
func (c Corner) signs() (sx, sy float64) {
	switch {
	case c&East != 0:
		sx = 1
	case c&West != 0:
		sx = -1
	}
	switch {
	case c&South != 0:
		sy = 1
	case c&North != 0:
		sy = -1
	}
	return sx, sy
}
