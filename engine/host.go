package engine

import "image/color"

// Node is a visual element the engine places in screen space. Position is
// the node center; rotation turns it about that center.
type Node interface {
	SetPosition(x, y float64)
	SetRotation(radians float64)
}

// Container groups nodes under one transform. Rotation is applied around
// the pivot, and the pivot lands on the container position.
type Container interface {
	Node
	AddChild(n Node)
	RemoveChild(n Node)
	SetPivot(x, y float64)
}

// Ticker delivers per-frame callbacks with the elapsed time in seconds.
type Ticker interface {
	Add(fn func(dt float64)) int
	Remove(id int)
}

// Host is the rendering side the engine draws into. The engine attaches
// and detaches nodes but never draws them.
type Host interface {
	Stage() Container
	ViewportSize() (width, height float64)
	NewContainer() Container
	NewRect(width, height float64, c color.Color) Node
	NewCircle(radius float64, c color.Color) Node
	Ticker() Ticker
}
