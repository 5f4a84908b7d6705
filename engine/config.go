package engine

import "image/color"

// Config holds the tuning of one engine instance. Lengths are simulation
// units, times are seconds.
type Config struct {
	// Gravity is the magnitude G of the gravity vector.
	Gravity float64
	// Scale is the number of screen pixels per simulation unit.
	Scale float64
	// RotationSpeed and TimeUnit give the angle added by one rotate event.
	RotationSpeed float64
	TimeUnit      float64
	// TimeScale multiplies every frame delta before it reaches the solver.
	TimeScale float64
	// Substep is the fixed solver step; MaxSubsteps caps work per frame.
	Substep     float64
	MaxSubsteps int
	Iterations  int
	// ViewSmoothing eases the presentation angle toward the engine angle
	// (1 snaps).
	ViewSmoothing float64

	BlockSize      float64
	WallElasticity float64
	WallFriction   float64
	WallChamfer    float64
	WallColor      color.Color

	BallRadius     float64
	BallMass       float64
	BallElasticity float64
	BallFriction   float64
	BallColor      color.Color

	// BoundaryDistance is where the sensor frame starts, BoundaryThickness
	// how deep it is, both as multiples of the escape radius.
	BoundaryDistance  float64
	BoundaryThickness float64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Gravity:       1000,
		Scale:         3,
		RotationSpeed: 2,
		TimeUnit:      0.01,
		TimeScale:     0.8,
		Substep:       1.0 / 120.0,
		MaxSubsteps:   8,
		Iterations:    20,
		ViewSmoothing: 0.35,

		BlockSize:      20,
		WallElasticity: 0.8,
		WallFriction:   0.1,
		WallChamfer:    0.01,
		WallColor:      color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff},

		BallRadius:     5,
		BallMass:       0.01,
		BallElasticity: 0.2,
		BallFriction:   0,
		BallColor:      color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff},

		BoundaryDistance:  1,
		BoundaryThickness: 1,
	}
}

// WithDefaults fills every unset field from DefaultConfig. Friction and
// chamfer may legitimately be zero and are kept as given.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Gravity <= 0 {
		c.Gravity = d.Gravity
	}
	if c.Scale <= 0 {
		c.Scale = d.Scale
	}
	if c.RotationSpeed <= 0 {
		c.RotationSpeed = d.RotationSpeed
	}
	if c.TimeUnit <= 0 {
		c.TimeUnit = d.TimeUnit
	}
	if c.TimeScale <= 0 {
		c.TimeScale = d.TimeScale
	}
	if c.Substep <= 0 {
		c.Substep = d.Substep
	}
	if c.MaxSubsteps <= 0 {
		c.MaxSubsteps = d.MaxSubsteps
	}
	if c.Iterations <= 0 {
		c.Iterations = d.Iterations
	}
	if c.ViewSmoothing <= 0 || c.ViewSmoothing > 1 {
		c.ViewSmoothing = d.ViewSmoothing
	}
	if c.BlockSize <= 0 {
		c.BlockSize = d.BlockSize
	}
	if c.WallElasticity <= 0 {
		c.WallElasticity = d.WallElasticity
	}
	if c.WallColor == nil {
		c.WallColor = d.WallColor
	}
	if c.BallRadius <= 0 {
		c.BallRadius = d.BallRadius
	}
	if c.BallMass <= 0 {
		c.BallMass = d.BallMass
	}
	if c.BallElasticity <= 0 {
		c.BallElasticity = d.BallElasticity
	}
	if c.BallColor == nil {
		c.BallColor = d.BallColor
	}
	if c.BoundaryDistance <= 0 {
		c.BoundaryDistance = d.BoundaryDistance
	}
	if c.BoundaryThickness <= 0 {
		c.BoundaryThickness = d.BoundaryThickness
	}
	// The outer edge of the frame must lie past the escape radius, or the
	// ball leaves the sensor before it counts as escaped.
	if c.BoundaryDistance+c.BoundaryThickness <= 1 {
		c.BoundaryDistance = d.BoundaryDistance
		c.BoundaryThickness = d.BoundaryThickness
	}
	return c
}

// RotationStep is the angle one rotate event adds.
func (c Config) RotationStep() float64 {
	return c.RotationSpeed * c.TimeUnit
}
