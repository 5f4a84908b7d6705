package main

import (
	"errors"
	"fmt"

	"github.com/re-ovo/fall-escape/levels"
)

const (
	minGridSize     = 3
	maxGridSize     = 20
	defaultGridSize = 6
	maxUndo         = 100
)

// Brush is the cell kind the left mouse button paints.
type Brush int

const (
	BrushWall Brush = iota
	BrushEmpty
	BrushBall
)

var brushes = []Brush{BrushWall, BrushEmpty, BrushBall}

func (b Brush) String() string {
	switch b {
	case BrushWall:
		return "Wall"
	case BrushEmpty:
		return "Empty"
	case BrushBall:
		return "Ball"
	default:
		return "Unknown"
	}
}

func (b Brush) Cell() int {
	switch b {
	case BrushWall:
		return levels.CellWall
	case BrushBall:
		return levels.CellBall
	default:
		return levels.CellEmpty
	}
}

func clampGridSize(n int) int {
	if n < minGridSize {
		return minGridSize
	}
	if n > maxGridSize {
		return maxGridSize
	}
	return n
}

// newGrid returns an empty grid with a ball in the top center, so a fresh
// level is saveable as soon as it has walls.
func newGrid(width, height int) levels.Level {
	lvl := levels.NewLevel(clampGridSize(width), clampGridSize(height))
	w, _ := lvl.Size()
	lvl.Set(w/2, 0, levels.CellBall)
	return lvl
}

// resizeGrid keeps the overlapping cells. If the ball was cut off, it is
// put back in the top center.
func resizeGrid(lvl levels.Level, width, height int) levels.Level {
	out := lvl.Resize(clampGridSize(width), clampGridSize(height))
	if _, _, ok := out.BallStart(); !ok {
		if _, _, had := lvl.BallStart(); had {
			w, _ := out.Size()
			out.Set(w/2, 0, levels.CellBall)
		}
	}
	return out
}

// paint writes brush at (x, y) and reports whether the grid changed.
func paint(lvl levels.Level, x, y int, b Brush) bool {
	if y < 0 || y >= len(lvl) || x < 0 || x >= len(lvl[y]) {
		return false
	}
	if lvl[y][x] == b.Cell() {
		return false
	}
	return lvl.Set(x, y, b.Cell())
}

// fillBorder turns every edge cell into wall, except where the ball is.
func fillBorder(lvl levels.Level) {
	w, h := lvl.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x != 0 && y != 0 && x != w-1 && y != h-1 {
				continue
			}
			if lvl[y][x] != levels.CellBall {
				lvl[y][x] = levels.CellWall
			}
		}
	}
}

// parsePasted decodes clipboard text as a level. Grids without a ball are
// accepted as work in progress.
func parsePasted(data []byte) (levels.Level, error) {
	lvl, err := levels.Decode(data)
	if err != nil {
		return nil, err
	}
	if err := lvl.Validate(); err != nil && !errors.Is(err, levels.ErrMissingBallStart) {
		return nil, err
	}
	w, h := lvl.Size()
	if w < minGridSize || h < minGridSize || w > maxGridSize || h > maxGridSize {
		return nil, fmt.Errorf("grid %dx%d outside %d..%d", w, h, minGridSize, maxGridSize)
	}
	return lvl, nil
}

// history is a bounded undo stack of grid snapshots.
type history struct {
	stack []levels.Level
}

func (h *history) push(lvl levels.Level) {
	h.stack = append(h.stack, lvl.Clone())
	if len(h.stack) > maxUndo {
		h.stack = h.stack[1:]
	}
}

func (h *history) pop() (levels.Level, bool) {
	n := len(h.stack)
	if n == 0 {
		return nil, false
	}
	lvl := h.stack[n-1]
	h.stack = h.stack[:n-1]
	return lvl, true
}

func (h *history) Len() int { return len(h.stack) }
