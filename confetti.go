package main

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/re-ovo/fall-escape/prefabs"
)

type confettiPiece struct {
	x, y   float64
	vx, vy float64
	angle  float64
	spin   float64
	size   float64
	clr    color.Color
}

// Confetti is a one-shot burst. Pieces that leave the bottom of the screen
// are dropped, not respawned, so the effect ends on its own.
type Confetti struct {
	spec   prefabs.ConfettiSpec
	width  float64
	height float64
	rng    *rand.Rand
	pieces []confettiPiece
	img    *ebiten.Image
}

func NewConfetti(spec prefabs.ConfettiSpec, width, height float64, seed uint64) *Confetti {
	if spec.Count <= 0 {
		spec.Count = 200
	}
	if spec.Gravity <= 0 {
		spec.Gravity = 240
	}
	if spec.MaxSpeed <= spec.MinSpeed {
		spec.MinSpeed, spec.MaxSpeed = 120, 420
	}
	if spec.Size <= 0 {
		spec.Size = 6
	}
	return &Confetti{
		spec:   spec,
		width:  width,
		height: height,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Start replaces any running burst with a fresh one across the top edge.
func (c *Confetti) Start() {
	c.pieces = c.pieces[:0]
	for i := 0; i < c.spec.Count; i++ {
		speed := c.spec.MinSpeed + c.rng.Float64()*(c.spec.MaxSpeed-c.spec.MinSpeed)
		dir := math.Pi/2 + (c.rng.Float64()-0.5)*math.Pi/2
		c.pieces = append(c.pieces, confettiPiece{
			x:     c.rng.Float64() * c.width,
			y:     -c.rng.Float64() * c.height * 0.25,
			vx:    math.Cos(dir) * speed,
			vy:    math.Sin(dir) * speed * 0.5,
			angle: c.rng.Float64() * 2 * math.Pi,
			spin:  (c.rng.Float64() - 0.5) * 12,
			size:  c.spec.Size * (0.6 + c.rng.Float64()*0.8),
			clr:   c.color(i),
		})
	}
}

func (c *Confetti) color(i int) color.Color {
	if len(c.spec.Colors) == 0 {
		return color.White
	}
	clr := c.spec.Colors[i%len(c.spec.Colors)].Color
	if clr == nil {
		return color.White
	}
	return clr
}

func (c *Confetti) Active() bool { return len(c.pieces) > 0 }

func (c *Confetti) Len() int { return len(c.pieces) }

func (c *Confetti) Stop() { c.pieces = c.pieces[:0] }

func (c *Confetti) Update(dt float64) {
	alive := c.pieces[:0]
	for _, p := range c.pieces {
		p.vy += c.spec.Gravity * dt
		// flutter
		p.vx *= 1 - 0.8*dt
		p.x += p.vx * dt
		p.y += p.vy * dt
		p.angle += p.spin * dt
		if p.y-p.size > c.height {
			continue
		}
		alive = append(alive, p)
	}
	c.pieces = alive
}

func (c *Confetti) Draw(screen *ebiten.Image) {
	if len(c.pieces) == 0 {
		return
	}
	if c.img == nil {
		c.img = ebiten.NewImage(4, 4)
		vector.FillRect(c.img, 0, 0, 4, 4, color.White, false)
	}
	for _, p := range c.pieces {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-2, -2)
		// squash one axis with the spin so pieces appear to tumble
		op.GeoM.Scale(p.size/4, p.size/4*math.Abs(math.Cos(p.angle*1.7))+0.5)
		op.GeoM.Rotate(p.angle)
		op.GeoM.Translate(p.x, p.y)
		op.ColorScale.ScaleWithColor(p.clr)
		screen.DrawImage(c.img, op)
	}
}
