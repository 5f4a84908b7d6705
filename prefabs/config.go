package prefabs

import (
	"github.com/re-ovo/fall-escape/engine"
)

// LoadEngineConfig reads world.yaml, wall.yaml, ball.yaml and
// boundary.yaml on top of engine.DefaultConfig.
func LoadEngineConfig() (engine.Config, error) {
	cfg := engine.DefaultConfig()

	world := WorldSpec{
		Gravity:       cfg.Gravity,
		Scale:         cfg.Scale,
		RotationSpeed: cfg.RotationSpeed,
		TimeUnit:      cfg.TimeUnit,
		TimeScale:     cfg.TimeScale,
		Substep:       cfg.Substep,
		MaxSubsteps:   cfg.MaxSubsteps,
		Iterations:    cfg.Iterations,
		ViewSmoothing: cfg.ViewSmoothing,
	}
	if err := LoadSpecInto("world.yaml", &world); err != nil {
		return cfg, err
	}
	cfg.Gravity = world.Gravity
	cfg.Scale = world.Scale
	cfg.RotationSpeed = world.RotationSpeed
	cfg.TimeUnit = world.TimeUnit
	cfg.TimeScale = world.TimeScale
	cfg.Substep = world.Substep
	cfg.MaxSubsteps = world.MaxSubsteps
	cfg.Iterations = world.Iterations
	cfg.ViewSmoothing = world.ViewSmoothing

	wall := WallSpec{
		BlockSize:  cfg.BlockSize,
		Elasticity: cfg.WallElasticity,
		Friction:   cfg.WallFriction,
		Chamfer:    cfg.WallChamfer,
	}
	if err := LoadSpecInto("wall.yaml", &wall); err != nil {
		return cfg, err
	}
	cfg.BlockSize = wall.BlockSize
	cfg.WallElasticity = wall.Elasticity
	cfg.WallFriction = wall.Friction
	cfg.WallChamfer = wall.Chamfer
	if wall.Color != nil && wall.Color.Color != nil {
		cfg.WallColor = wall.Color.Color
	}

	ball := BallSpec{
		Radius:     cfg.BallRadius,
		Mass:       cfg.BallMass,
		Elasticity: cfg.BallElasticity,
		Friction:   cfg.BallFriction,
	}
	if err := LoadSpecInto("ball.yaml", &ball); err != nil {
		return cfg, err
	}
	cfg.BallRadius = ball.Radius
	cfg.BallMass = ball.Mass
	cfg.BallElasticity = ball.Elasticity
	cfg.BallFriction = ball.Friction
	if ball.Color != nil && ball.Color.Color != nil {
		cfg.BallColor = ball.Color.Color
	}

	boundary := BoundarySpec{
		Distance:  cfg.BoundaryDistance,
		Thickness: cfg.BoundaryThickness,
	}
	if err := LoadSpecInto("boundary.yaml", &boundary); err != nil {
		return cfg, err
	}
	cfg.BoundaryDistance = boundary.Distance
	cfg.BoundaryThickness = boundary.Thickness

	return cfg.WithDefaults(), nil
}
