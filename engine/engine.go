// Package engine runs the rotate-the-maze simulation: it turns a level grid
// into Chipmunk bodies, maps rotate events to gravity, steps the space each
// frame and reports when the ball escapes.
//
// The simulation frame never rotates. Bodies are mapped to screen space by
// a Mapper and the whole maze container is rotated about the viewport
// center for presentation.
//
// An Engine is not safe for concurrent use.
package engine

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/re-ovo/fall-escape/common"
	"github.com/re-ovo/fall-escape/levels"
)

var ErrDisposed = errors.New("engine: disposed")

// Options configures New. Zero values fall back to defaults.
type Options struct {
	Config Config
	Logger *log.Logger
}

type Engine struct {
	host   Host
	cfg    Config
	log    *log.Logger
	mapper Mapper
	view   Container
	world  *physicsWorld
	state  *State

	onComplete func()

	tickID   int
	running  bool
	disposed bool
}

// New creates an engine drawing into host. The maze container is attached
// to the host stage with its pivot on the viewport center.
func New(host Host, opts Options) *Engine {
	cfg := opts.Config.WithDefaults()
	logger := opts.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("engine")
	}

	w, h := host.ViewportSize()
	view := host.NewContainer()
	view.SetPivot(w/2, h/2)
	view.SetPosition(w/2, h/2)
	host.Stage().AddChild(view)

	return &Engine{
		host:   host,
		cfg:    cfg,
		log:    logger,
		mapper: NewMapper(w, h, cfg.Scale),
		view:   view,
		world:  newPhysicsWorld(cfg),
		state:  newState(cfg),
	}
}

// LoadLevel replaces the current level. The grid is validated before
// anything is torn down, so a rejected level leaves the previous one
// running.
func (e *Engine) LoadLevel(level levels.Level) error {
	if e == nil || e.disposed {
		return ErrDisposed
	}
	if err := level.Validate(); err != nil {
		e.log.Warn("level rejected", "error", err)
		return err
	}

	e.teardown()
	s := e.build(level.Clone())
	e.state = s
	e.world.SetGravity(s.Gravity)
	e.view.SetRotation(0)
	e.sync()

	w, h := s.Level.Size()
	bx, by := s.Ball.Position()
	e.log.Debug("level loaded",
		"width", w, "height", h,
		"walls", len(s.Objects)-1,
		"ball", cp.Vector{X: bx, Y: by},
		"maxSize", s.Win.MaxSize())
	return nil
}

// Reconfigure swaps the tuning and rebuilds the current level, if any, on
// a fresh space.
func (e *Engine) Reconfigure(cfg Config) error {
	if e == nil || e.disposed {
		return ErrDisposed
	}
	level := e.state.Level
	e.teardown()
	e.cfg = cfg.WithDefaults()
	w, h := e.host.ViewportSize()
	e.mapper = NewMapper(w, h, e.cfg.Scale)
	e.world = newPhysicsWorld(e.cfg)
	e.state = newState(e.cfg)
	if level == nil {
		return nil
	}
	return e.LoadLevel(level)
}

// Start attaches the step callback to the host ticker. Calling it while
// running does nothing.
func (e *Engine) Start() {
	if e == nil || e.disposed || e.running {
		return
	}
	e.tickID = e.host.Ticker().Add(e.Step)
	e.running = true
}

// Stop detaches the step callback. Calling it while stopped does nothing.
func (e *Engine) Stop() {
	if e == nil || !e.running {
		return
	}
	e.host.Ticker().Remove(e.tickID)
	e.tickID = 0
	e.running = false
}

func (e *Engine) Running() bool {
	return e != nil && e.running
}

// SetOnLevelComplete registers the callback fired once per loaded level
// when the ball escapes. It may call LoadLevel, Stop or Dispose.
func (e *Engine) SetOnLevelComplete(fn func()) {
	if e == nil {
		return
	}
	e.onComplete = fn
}

func (e *Engine) IsLevelComplete() bool {
	if e == nil {
		return false
	}
	return e.state.LevelComplete()
}

// Step advances the simulation by dt seconds of frame time. It is a no-op
// once the level is complete or before any level is loaded. The view
// rotation keeps easing toward the maze angle either way.
func (e *Engine) Step(dt float64) {
	if e == nil || e.disposed {
		return
	}
	s := e.state
	e.easeView(s)
	if !s.Loaded() || s.LevelComplete() || dt <= 0 {
		return
	}

	ballShape := s.Ball.shapes[0]
	substep := e.cfg.Substep
	s.accumulator += dt * e.cfg.TimeScale
	completed := false
	for n := 0; s.accumulator >= substep; n++ {
		if n == e.cfg.MaxSubsteps {
			// Too far behind: drop the backlog instead of spiralling.
			s.accumulator = 0
			break
		}
		e.world.Step(substep)
		s.accumulator -= substep
		s.Elapsed += substep

		x, y := s.Ball.Position()
		if s.Win.Observe(e.world.touching(ballShape, s.Boundary), x, y) {
			completed = true
			break
		}
	}
	e.sync()

	if !completed {
		return
	}
	x, y := s.Ball.Position()
	e.log.Info("level complete",
		"rotations", s.Rotations,
		"seconds", s.Elapsed,
		"ball", cp.Vector{X: x, Y: y})
	if e.onComplete != nil {
		e.onComplete()
	}
}

// Dispose stops the engine, removes every body and node and detaches the
// maze container from the stage. The engine cannot be used afterwards.
func (e *Engine) Dispose() {
	if e == nil || e.disposed {
		return
	}
	e.Stop()
	e.teardown()
	e.host.Stage().RemoveChild(e.view)
	e.state = newState(e.cfg)
	e.onComplete = nil
	e.disposed = true
}

func (e *Engine) Angle() float64 {
	if e == nil {
		return 0
	}
	return e.state.Angle
}

// ViewAngle is the presentation angle currently applied to the container.
func (e *Engine) ViewAngle() float64 {
	if e == nil {
		return 0
	}
	return e.state.viewAngle
}

func (e *Engine) Gravity() cp.Vector {
	if e == nil {
		return cp.Vector{}
	}
	return e.state.Gravity
}

// BallPosition returns the ball center in simulation space.
func (e *Engine) BallPosition() (x, y float64, ok bool) {
	if e == nil || e.state.Ball == nil {
		return 0, 0, false
	}
	x, y = e.state.Ball.Position()
	return x, y, true
}

// Objects returns the tracked walls and ball.
func (e *Engine) Objects() []*GameObject {
	if e == nil {
		return nil
	}
	return append([]*GameObject(nil), e.state.Objects...)
}

func (e *Engine) Rotations() int {
	if e == nil {
		return 0
	}
	return e.state.Rotations
}

// Elapsed is the simulated time spent on the current level.
func (e *Engine) Elapsed() float64 {
	if e == nil {
		return 0
	}
	return e.state.Elapsed
}

func (e *Engine) MaxSize() float64 {
	if e == nil {
		return 0
	}
	return e.state.Win.MaxSize()
}

func (e *Engine) Config() Config {
	if e == nil {
		return DefaultConfig()
	}
	return e.cfg
}

func (e *Engine) Mapper() Mapper {
	if e == nil {
		return Mapper{}
	}
	return e.mapper
}

func (e *Engine) easeView(s *State) {
	s.viewAngle = common.Lerp(s.viewAngle, s.Angle, e.cfg.ViewSmoothing)
	e.view.SetRotation(s.viewAngle)
}

func (e *Engine) sync() {
	for _, o := range e.state.Objects {
		o.Sync(e.mapper)
	}
}
