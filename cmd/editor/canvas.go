package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/re-ovo/fall-escape/levels"
)

const (
	canvasMargin = 24
	maxCellSize  = 48
)

var (
	gridLineColor = color.RGBA{60, 60, 70, 255}
	emptyColor    = color.RGBA{24, 24, 30, 255}
	wallColor     = color.RGBA{0x46, 0x82, 0xb4, 255}
	ballColor     = color.RGBA{0xff, 0x63, 0x47, 255}
	hoverColor    = color.RGBA{255, 255, 255, 40}
)

// Canvas places the grid inside the area right of the tool panel and maps
// mouse positions to cells.
type Canvas struct {
	X, Y, W, H float64

	// painting state for the current drag
	Dragging bool
	Brush    Brush
}

// layout returns the top-left corner and cell size for a w x h grid,
// centered in the canvas area.
func (c *Canvas) layout(w, h int) (ox, oy, cell float64) {
	if w <= 0 || h <= 0 {
		return c.X, c.Y, 0
	}
	cell = min((c.W-2*canvasMargin)/float64(w), (c.H-2*canvasMargin)/float64(h), maxCellSize)
	if cell < 1 {
		cell = 1
	}
	ox = c.X + (c.W-cell*float64(w))/2
	oy = c.Y + (c.H-cell*float64(h))/2
	return ox, oy, cell
}

// CellAt returns the grid cell under screen position (mx, my).
func (c *Canvas) CellAt(lvl levels.Level, mx, my int) (x, y int, ok bool) {
	w, h := lvl.Size()
	ox, oy, cell := c.layout(w, h)
	if cell == 0 {
		return 0, 0, false
	}
	fx := (float64(mx) - ox) / cell
	fy := (float64(my) - oy) / cell
	if fx < 0 || fy < 0 {
		return 0, 0, false
	}
	x, y = int(fx), int(fy)
	if x >= w || y >= h {
		return 0, 0, false
	}
	return x, y, true
}

// Update paints with the left button (current brush) or right button
// (empty) while dragging. before is called once per stroke, ahead of the
// first change, so the caller can snapshot for undo.
func (c *Canvas) Update(lvl levels.Level, current Brush, mx, my int, before func()) bool {
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		c.Dragging = false
		return false
	}
	x, y, ok := c.CellAt(lvl, mx, my)
	if !c.Dragging {
		if !ok {
			return false
		}
		c.Dragging = true
		c.Brush = current
		if right {
			c.Brush = BrushEmpty
		}
		if before != nil {
			before()
		}
	}
	if !ok {
		return false
	}
	return paint(lvl, x, y, c.Brush)
}

func (c *Canvas) Draw(screen *ebiten.Image, lvl levels.Level, mx, my int) {
	w, h := lvl.Size()
	ox, oy, cell := c.layout(w, h)
	if cell == 0 {
		return
	}
	vector.FillRect(screen, float32(ox-1), float32(oy-1), float32(cell*float64(w)+2), float32(cell*float64(h)+2), gridLineColor, false)
	for y, row := range lvl {
		for x, v := range row {
			px := float32(ox + float64(x)*cell)
			py := float32(oy + float64(y)*cell)
			s := float32(cell)
			vector.FillRect(screen, px+1, py+1, s-2, s-2, emptyColor, false)
			switch v {
			case levels.CellWall:
				vector.FillRect(screen, px+1, py+1, s-2, s-2, wallColor, false)
			case levels.CellBall:
				vector.FillCircle(screen, px+s/2, py+s/2, s*0.35, ballColor, true)
			}
		}
	}
	if x, y, ok := c.CellAt(lvl, mx, my); ok {
		vector.FillRect(screen, float32(ox+float64(x)*cell), float32(oy+float64(y)*cell), float32(cell), float32(cell), hoverColor, false)
	}
}
