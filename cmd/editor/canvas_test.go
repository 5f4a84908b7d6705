package main

import "testing"

func TestCanvasCellAt(t *testing.T) {
	c := &Canvas{X: 200, W: 400, H: 400}
	lvl := newGrid(4, 4)
	// cell = min(352/4, 352/4, 48) = 48, grid spans 192px centered in the area
	ox, oy, cell := c.layout(4, 4)
	if cell != 48 || ox != 304 || oy != 104 {
		t.Fatalf("unexpected layout (%v, %v, %v)", ox, oy, cell)
	}

	cases := []struct {
		name   string
		mx, my int
		x, y   int
		ok     bool
	}{
		{"top_left", 304, 104, 0, 0, true},
		{"inner", 304 + 48*2 + 5, 104 + 48*3 + 47, 2, 3, true},
		{"left_of_grid", 303, 150, 0, 0, false},
		{"below_grid", 320, 104 + 48*4, 0, 0, false},
		{"panel", 10, 10, 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, y, ok := c.CellAt(lvl, tc.mx, tc.my)
			if ok != tc.ok || (ok && (x != tc.x || y != tc.y)) {
				t.Fatalf("CellAt(%d, %d) = (%d, %d, %v), want (%d, %d, %v)", tc.mx, tc.my, x, y, ok, tc.x, tc.y, tc.ok)
			}
		})
	}
}

func TestCanvasLayoutShrinksLargeGrids(t *testing.T) {
	c := &Canvas{W: 1060, H: 720}
	_, _, cell := c.layout(20, 20)
	if cell != (720-2*canvasMargin)/20.0 {
		t.Fatalf("expected height-bound cell size, got %v", cell)
	}
}
