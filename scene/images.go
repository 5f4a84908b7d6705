package scene

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

type rectKey struct {
	w, h       int
	r, g, b, a uint32
}

// imageCache shares one filled image per rect size and color, so a maze of
// identical walls uploads a single texture.
type imageCache struct {
	rects map[rectKey]*ebiten.Image
	build func(w, h int, clr color.Color) *ebiten.Image
}

func newImageCache() *imageCache {
	return &imageCache{rects: make(map[rectKey]*ebiten.Image), build: filledImage}
}

func (c *imageCache) rect(w, h int, clr color.Color) *ebiten.Image {
	r, g, b, a := clr.RGBA()
	key := rectKey{w: w, h: h, r: r, g: g, b: b, a: a}
	if img, ok := c.rects[key]; ok {
		return img
	}
	img := c.build(w, h, clr)
	c.rects[key] = img
	return img
}

func (c *imageCache) Len() int { return len(c.rects) }

func filledImage(w, h int, clr color.Color) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(clr)
	return img
}
