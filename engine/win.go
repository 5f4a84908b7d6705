package engine

import "math"

// Phase is the win detector state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseComplete
)

func (p Phase) String() string {
	if p == PhaseComplete {
		return "complete"
	}
	return "playing"
}

// WinDetector decides when the ball has escaped. Touching the boundary
// sensor is necessary but not sufficient: the ball must also be farther
// than the escape radius from the maze center.
type WinDetector struct {
	maxSize float64
	phase   Phase
}

func NewWinDetector(maxSize float64) *WinDetector {
	return &WinDetector{maxSize: maxSize}
}

// EscapeRadius is max(width, height) * blockSize.
func EscapeRadius(width, height int, blockSize float64) float64 {
	return float64(max(width, height)) * blockSize
}

func (w *WinDetector) MaxSize() float64 {
	if w == nil {
		return 0
	}
	return w.maxSize
}

func (w *WinDetector) Phase() Phase {
	if w == nil {
		return PhasePlaying
	}
	return w.phase
}

func (w *WinDetector) Complete() bool {
	return w.Phase() == PhaseComplete
}

// Observe feeds one contact poll. It returns true only on the transition
// to PhaseComplete.
func (w *WinDetector) Observe(touching bool, x, y float64) bool {
	if w == nil || w.phase == PhaseComplete || !touching {
		return false
	}
	if math.Hypot(x, y) <= w.maxSize {
		return false
	}
	w.phase = PhaseComplete
	return true
}
