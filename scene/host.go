package scene

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/re-ovo/fall-escape/engine"
)

var _ engine.Host = (*Host)(nil)

// Host implements engine.Host on top of ebiten. The game calls Tick from
// Update and Draw from Draw.
type Host struct {
	stage  *Container
	ticker *Ticker
	images *imageCache
	width  float64
	height float64
}

func NewHost(width, height float64) *Host {
	return &Host{
		stage:  NewContainer(),
		ticker: NewTicker(),
		images: newImageCache(),
		width:  width,
		height: height,
	}
}

func (h *Host) Stage() engine.Container { return h.stage }

func (h *Host) ViewportSize() (float64, float64) { return h.width, h.height }

func (h *Host) NewContainer() engine.Container { return NewContainer() }

func (h *Host) NewRect(width, height float64, c color.Color) engine.Node {
	r := NewRect(width, height, c)
	r.images = h.images
	return r
}

func (h *Host) NewCircle(radius float64, c color.Color) engine.Node {
	return NewCircle(radius, c)
}

func (h *Host) Ticker() engine.Ticker { return h.ticker }

func (h *Host) Tick(dt float64) {
	h.ticker.Tick(dt)
}

func (h *Host) Draw(screen *ebiten.Image) {
	h.stage.Draw(screen, ebiten.GeoM{})
}
