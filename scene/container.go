// Package scene is the ebiten side of the maze: a small retained node tree
// the engine positions every frame and the game draws.
package scene

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/re-ovo/fall-escape/engine"
)

// drawer is implemented by every node this package creates.
type drawer interface {
	Draw(dst *ebiten.Image, parent ebiten.GeoM)
}

// Container rotates its children about the pivot and places the pivot at
// its position.
type Container struct {
	x, y     float64
	rotation float64
	pivotX   float64
	pivotY   float64
	hidden   bool
	children []engine.Node
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) SetPosition(x, y float64) { c.x, c.y = x, y }
func (c *Container) SetRotation(r float64)    { c.rotation = r }
func (c *Container) SetPivot(x, y float64)    { c.pivotX, c.pivotY = x, y }
func (c *Container) SetHidden(hidden bool)    { c.hidden = hidden }

func (c *Container) Rotation() float64 { return c.rotation }

func (c *Container) AddChild(n engine.Node) {
	if n == nil {
		return
	}
	c.children = append(c.children, n)
}

// RemoveChild detaches n. Unknown nodes are ignored.
func (c *Container) RemoveChild(n engine.Node) {
	for i, child := range c.children {
		if child == n {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

func (c *Container) Children() []engine.Node {
	return append([]engine.Node(nil), c.children...)
}

// GeoM is the local transform: pivot to origin, rotate, then move to the
// container position.
func (c *Container) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-c.pivotX, -c.pivotY)
	g.Rotate(c.rotation)
	g.Translate(c.x, c.y)
	return g
}

func (c *Container) Draw(dst *ebiten.Image, parent ebiten.GeoM) {
	if c == nil || c.hidden || dst == nil {
		return
	}
	g := c.GeoM()
	g.Concat(parent)
	for _, child := range c.children {
		if d, ok := child.(drawer); ok {
			d.Draw(dst, g)
		}
	}
}
