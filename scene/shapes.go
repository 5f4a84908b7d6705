package scene

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Rect is a filled rectangle centered on its position.
type Rect struct {
	x, y     float64
	rotation float64
	width    float64
	height   float64
	clr      color.Color
	img      *ebiten.Image
	// images is set by Host; standalone rects own their image.
	images   *imageCache
}

func NewRect(width, height float64, clr color.Color) *Rect {
	return &Rect{width: width, height: height, clr: clr}
}

func (r *Rect) SetPosition(x, y float64) { r.x, r.y = x, y }
func (r *Rect) SetRotation(rot float64)  { r.rotation = rot }

func (r *Rect) Position() (float64, float64) { return r.x, r.y }

func (r *Rect) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-r.width/2, -r.height/2)
	g.Rotate(r.rotation)
	g.Translate(r.x, r.y)
	return g
}

func (r *Rect) Draw(dst *ebiten.Image, parent ebiten.GeoM) {
	if r.img == nil {
		w := max(1, int(math.Ceil(r.width)))
		h := max(1, int(math.Ceil(r.height)))
		if r.images != nil {
			r.img = r.images.rect(w, h, r.clr)
		} else {
			r.img = filledImage(w, h, r.clr)
		}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = r.GeoM()
	op.GeoM.Concat(parent)
	dst.DrawImage(r.img, op)
}

// Circle is a filled circle centered on its position. The image is drawn
// once and reused.
type Circle struct {
	x, y     float64
	rotation float64
	radius   float64
	clr      color.Color
	img      *ebiten.Image
}

func NewCircle(radius float64, clr color.Color) *Circle {
	return &Circle{radius: radius, clr: clr}
}

func (c *Circle) SetPosition(x, y float64) { c.x, c.y = x, y }
func (c *Circle) SetRotation(rot float64)  { c.rotation = rot }

func (c *Circle) Position() (float64, float64) { return c.x, c.y }

func (c *Circle) size() int {
	return max(2, int(math.Ceil(c.radius*2))+2)
}

func (c *Circle) GeoM() ebiten.GeoM {
	half := float64(c.size()) / 2
	var g ebiten.GeoM
	g.Translate(-half, -half)
	g.Rotate(c.rotation)
	g.Translate(c.x, c.y)
	return g
}

func (c *Circle) Draw(dst *ebiten.Image, parent ebiten.GeoM) {
	if c.img == nil {
		size := c.size()
		c.img = ebiten.NewImage(size, size)
		half := float32(size) / 2
		vector.FillCircle(c.img, half, half, float32(c.radius), c.clr, true)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = c.GeoM()
	op.GeoM.Concat(parent)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(c.img, op)
}
