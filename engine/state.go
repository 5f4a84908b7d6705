package engine

import (
	"github.com/jakecoffman/cp"

	"github.com/re-ovo/fall-escape/levels"
)

// State is everything that lives for one loaded level. It is owned by a
// single Engine and rebuilt on every LoadLevel.
type State struct {
	// Angle is the accumulated maze rotation in radians. It is never
	// wrapped.
	Angle   float64
	Gravity cp.Vector
	// Rotations counts rotate events since the level was loaded.
	Rotations int
	// Elapsed is simulated time in seconds, after time scaling.
	Elapsed float64

	Objects []*GameObject
	Ball    *GameObject

	Boundary       *cp.Body
	boundaryShapes []*cp.Shape

	Level levels.Level
	Win   *WinDetector

	viewAngle   float64
	accumulator float64
}

func newState(cfg Config) *State {
	return &State{Gravity: GravityAt(0, cfg.Gravity)}
}

// LevelComplete is the completion latch.
func (s *State) LevelComplete() bool {
	if s == nil {
		return false
	}
	return s.Win.Complete()
}

// Loaded reports whether a level is currently built.
func (s *State) Loaded() bool {
	return s != nil && s.Ball != nil
}
