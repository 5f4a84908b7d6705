package engine

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
)

var ErrInvalidDirection = errors.New("engine: rotate direction must be -1 or +1")

// GravityAt is the gravity vector of magnitude g for a maze rotated by
// angle radians. At angle 0 it points along +y.
func GravityAt(angle, g float64) cp.Vector {
	return cp.Vector{X: math.Sin(angle) * g, Y: math.Cos(-angle) * g}
}

// Rotate applies one rotate event. Each event adds a fixed increment, so
// callers wanting continuous rotation send one event per tick while the
// key is held.
func (e *Engine) Rotate(direction int) error {
	if e == nil || e.disposed {
		return ErrDisposed
	}
	if direction != -1 && direction != 1 {
		return ErrInvalidDirection
	}
	s := e.state
	s.Angle += float64(direction) * e.cfg.RotationStep()
	s.Gravity = GravityAt(s.Angle, e.cfg.Gravity)
	s.Rotations++
	e.world.SetGravity(s.Gravity)
	return nil
}
