package levels

import (
	"errors"
	"fmt"
)

// Cell codes used in a level grid.
const (
	CellBall  = -1
	CellEmpty = 0
	CellWall  = 1
)

var (
	ErrInvalidLevelShape = errors.New("levels: invalid level shape")
	ErrMissingBallStart  = errors.New("levels: missing ball start")
	ErrInvalidCell       = errors.New("levels: invalid cell code")
)

// Level is a maze grid indexed [row][column].
type Level [][]int

// NewLevel returns an empty width x height grid.
func NewLevel(width, height int) Level {
	if width <= 0 || height <= 0 {
		return nil
	}
	lvl := make(Level, height)
	for y := range lvl {
		lvl[y] = make([]int, width)
	}
	return lvl
}

// Size returns the grid width and height. Width is taken from the first row.
func (l Level) Size() (width, height int) {
	if len(l) == 0 {
		return 0, 0
	}
	return len(l[0]), len(l)
}

// Validate checks that the grid is rectangular and non-empty, that every
// cell holds a known code, and that at least one ball start exists.
func (l Level) Validate() error {
	if err := l.validateShape(); err != nil {
		return err
	}
	if _, _, ok := l.BallStart(); !ok {
		return ErrMissingBallStart
	}
	return nil
}

func (l Level) validateShape() error {
	if len(l) == 0 {
		return fmt.Errorf("%w: no rows", ErrInvalidLevelShape)
	}
	width := len(l[0])
	if width == 0 {
		return fmt.Errorf("%w: no columns", ErrInvalidLevelShape)
	}
	for y, row := range l {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidLevelShape, y, len(row), width)
		}
		for x, cell := range row {
			if cell != CellBall && cell != CellEmpty && cell != CellWall {
				return fmt.Errorf("%w: %d at row %d col %d", ErrInvalidCell, cell, y, x)
			}
		}
	}
	return nil
}

// BallStart returns the ball start cell. When several cells hold a ball,
// the last one in row-major order wins.
func (l Level) BallStart() (x, y int, ok bool) {
	for row := range l {
		for col, cell := range l[row] {
			if cell == CellBall {
				x, y, ok = col, row, true
			}
		}
	}
	return x, y, ok
}

// Walls counts wall cells.
func (l Level) Walls() int {
	n := 0
	for _, row := range l {
		for _, cell := range row {
			if cell == CellWall {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy.
func (l Level) Clone() Level {
	if l == nil {
		return nil
	}
	out := make(Level, len(l))
	for y, row := range l {
		out[y] = append([]int(nil), row...)
	}
	return out
}

// Resize returns a width x height copy keeping the overlapping cells.
func (l Level) Resize(width, height int) Level {
	out := NewLevel(width, height)
	for y := 0; y < height && y < len(l); y++ {
		for x := 0; x < width && x < len(l[y]); x++ {
			out[y][x] = l[y][x]
		}
	}
	return out
}

// Set writes a cell. Placing a ball clears every other ball so a level
// edited this way never holds more than one.
func (l Level) Set(x, y, cell int) bool {
	if y < 0 || y >= len(l) || x < 0 || x >= len(l[y]) {
		return false
	}
	if cell == CellBall {
		for row := range l {
			for col := range l[row] {
				if l[row][col] == CellBall {
					l[row][col] = CellEmpty
				}
			}
		}
	}
	l[y][x] = cell
	return true
}
