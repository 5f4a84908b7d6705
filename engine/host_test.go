package engine

import (
	"image/color"
	"sort"
)

type fakeNode struct {
	x, y, rot float64
	w, h, r   float64
}

func (n *fakeNode) SetPosition(x, y float64) { n.x, n.y = x, y }
func (n *fakeNode) SetRotation(r float64)    { n.rot = r }

type fakeContainer struct {
	fakeNode
	pivotX, pivotY float64
	children       []Node
}

func (c *fakeContainer) AddChild(n Node) { c.children = append(c.children, n) }

func (c *fakeContainer) RemoveChild(n Node) {
	for i, child := range c.children {
		if child == n {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

func (c *fakeContainer) SetPivot(x, y float64) { c.pivotX, c.pivotY = x, y }

type fakeTicker struct {
	next int
	fns  map[int]func(dt float64)
}

func (t *fakeTicker) Add(fn func(dt float64)) int {
	if t.fns == nil {
		t.fns = make(map[int]func(dt float64))
	}
	t.next++
	t.fns[t.next] = fn
	return t.next
}

func (t *fakeTicker) Remove(id int) { delete(t.fns, id) }

func (t *fakeTicker) Tick(dt float64) {
	ids := make([]int, 0, len(t.fns))
	for id := range t.fns {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := t.fns[id]; ok {
			fn(dt)
		}
	}
}

type fakeHost struct {
	stage  *fakeContainer
	ticker *fakeTicker
	w, h   float64
}

func newFakeHost() *fakeHost {
	return &fakeHost{stage: &fakeContainer{}, ticker: &fakeTicker{}, w: 1280, h: 720}
}

func (h *fakeHost) Stage() Container                { return h.stage }
func (h *fakeHost) ViewportSize() (float64, float64) { return h.w, h.h }
func (h *fakeHost) NewContainer() Container          { return &fakeContainer{} }
func (h *fakeHost) Ticker() Ticker                   { return h.ticker }

func (h *fakeHost) NewRect(width, height float64, _ color.Color) Node {
	return &fakeNode{w: width, h: height}
}

func (h *fakeHost) NewCircle(r float64, _ color.Color) Node {
	return &fakeNode{r: r}
}

// view returns the maze container the engine attached to the stage.
func (h *fakeHost) view() *fakeContainer {
	if len(h.stage.children) == 0 {
		return nil
	}
	return h.stage.children[0].(*fakeContainer)
}
