package engine

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/re-ovo/fall-escape/common"
	"github.com/re-ovo/fall-escape/levels"
)

const frame = 1.0 / 60.0

func newTestEngine(t *testing.T) (*Engine, *fakeHost) {
	t.Helper()
	host := newFakeHost()
	return New(host, Options{}), host
}

func mustLoad(t *testing.T, e *Engine, lvl levels.Level) {
	t.Helper()
	if err := e.LoadLevel(lvl); err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
}

func rotateN(t *testing.T, e *Engine, dir, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := e.Rotate(dir); err != nil {
			t.Fatalf("Rotate(%d): %v", dir, err)
		}
	}
}

func TestNewAttachesView(t *testing.T) {
	e, host := newTestEngine(t)
	view := host.view()
	if view == nil {
		t.Fatalf("expected maze container on the stage")
	}
	if view.pivotX != 640 || view.pivotY != 360 || view.x != 640 || view.y != 360 {
		t.Fatalf("expected pivot and position at viewport center, got pivot (%v,%v) pos (%v,%v)",
			view.pivotX, view.pivotY, view.x, view.y)
	}
	if e.IsLevelComplete() {
		t.Fatalf("fresh engine should not be complete")
	}
	if _, _, ok := e.BallPosition(); ok {
		t.Fatalf("fresh engine should have no ball")
	}
}

func TestLoadLevelIsNotComplete(t *testing.T) {
	set, err := levels.Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	set = append(set, levels.Level{{-1}}, levels.Level{{1, -1, 1}})

	for i, lvl := range set {
		e, _ := newTestEngine(t)
		mustLoad(t, e, lvl)
		if e.IsLevelComplete() {
			t.Fatalf("level %d complete right after load", i)
		}
	}
}

func TestLoadLevelBuildsObjects(t *testing.T) {
	e, host := newTestEngine(t)
	lvl := levels.Level{
		{1, 1, 1},
		{1, -1, 0},
		{1, 0, 1},
	}
	mustLoad(t, e, lvl)

	walls, balls := 0, 0
	for _, o := range e.Objects() {
		switch o.Kind() {
		case KindWall:
			walls++
		case KindBall:
			balls++
		}
	}
	if walls != lvl.Walls() || balls != 1 {
		t.Fatalf("expected %d walls and 1 ball, got %d walls %d balls", lvl.Walls(), walls, balls)
	}
	if got := len(host.view().children); got != walls+balls {
		t.Fatalf("expected %d nodes in the view, got %d", walls+balls, got)
	}
	// walls + ball + four boundary slabs
	if got := e.world.shapeCount(); got != walls+1+4 {
		t.Fatalf("expected %d shapes in the space, got %d", walls+5, got)
	}

	x, y, ok := e.BallPosition()
	if !ok || x != 0 || y != 0 {
		t.Fatalf("expected ball at center, got (%v,%v) ok=%v", x, y, ok)
	}
	if e.MaxSize() != 60 {
		t.Fatalf("expected escape radius 60, got %v", e.MaxSize())
	}
	if g := e.Gravity(); g.X != 0 || g.Y != e.Config().Gravity {
		t.Fatalf("expected unrotated gravity, got %v", g)
	}
}

func TestLoadLevelSyncsNodes(t *testing.T) {
	e, _ := newTestEngine(t)
	mustLoad(t, e, levels.Level{{1, 0}, {0, -1}})

	m := e.Mapper()
	for _, o := range e.Objects() {
		x, y := o.Position()
		sx, sy := m.ToScreen(x, y)
		n := o.Node().(*fakeNode)
		if n.x != sx || n.y != sy {
			t.Fatalf("%v node at (%v,%v), want (%v,%v)", o.Kind(), n.x, n.y, sx, sy)
		}
	}
}

func TestLoadLevelMultipleBallsLastWins(t *testing.T) {
	e, _ := newTestEngine(t)
	mustLoad(t, e, levels.Level{{-1, 0, -1}})

	if n := len(e.Objects()); n != 1 {
		t.Fatalf("expected a single ball object, got %d objects", n)
	}
	x, _, _ := e.BallPosition()
	if x != 20 {
		t.Fatalf("expected the last ball start (x=20), got x=%v", x)
	}
}

func TestLoadLevelRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		lvl  levels.Level
		want error
	}{
		{"empty", levels.Level{}, levels.ErrInvalidLevelShape},
		{"no_columns", levels.Level{{}, {}}, levels.ErrInvalidLevelShape},
		{"ragged", levels.Level{{1, -1}, {1}}, levels.ErrInvalidLevelShape},
		{"no_ball", levels.Level{{1, 1}, {0, 0}}, levels.ErrMissingBallStart},
		{"bad_cell", levels.Level{{-1, 7}}, levels.ErrInvalidCell},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			prev := levels.Level{{1, 1}, {-1, 0}}
			mustLoad(t, e, prev)
			before := e.Objects()
			shapes := e.world.shapeCount()

			err := e.LoadLevel(c.lvl)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			after := e.Objects()
			if len(after) != len(before) {
				t.Fatalf("previous level changed: %d objects, want %d", len(after), len(before))
			}
			for i := range before {
				if before[i] != after[i] {
					t.Fatalf("object %d replaced by a rejected load", i)
				}
			}
			if e.world.shapeCount() != shapes {
				t.Fatalf("space changed by a rejected load")
			}
			if err := e.LoadLevel(levels.Level{{-1}}); err != nil {
				t.Fatalf("engine unusable after rejected load: %v", err)
			}
		})
	}
}

func TestRotateReversal(t *testing.T) {
	for _, n := range []int{1, 7, 50, 400} {
		e, _ := newTestEngine(t)
		mustLoad(t, e, levels.Level{{-1}})
		start := e.Gravity()

		rotateN(t, e, 1, n)
		rotateN(t, e, -1, n)

		g := e.Gravity()
		if !common.ApproxEqual(g.X, start.X, 1e-6) || !common.ApproxEqual(g.Y, start.Y, 1e-6) {
			t.Fatalf("n=%d: gravity %v, want %v", n, g, start)
		}
		if !common.ApproxEqual(e.Angle(), 0, 1e-9) {
			t.Fatalf("n=%d: angle %v, want 0", n, e.Angle())
		}
	}
}

func TestRotateKeepsGravityMagnitude(t *testing.T) {
	e, _ := newTestEngine(t)
	mustLoad(t, e, levels.Level{{-1}})
	G := e.Config().Gravity

	dirs := []int{1, 1, -1, 1, 1, 1, -1, -1, -1, -1, -1, 1}
	for i := 0; i < 500; i++ {
		if err := e.Rotate(dirs[i%len(dirs)]); err != nil {
			t.Fatalf("Rotate: %v", err)
		}
		g := e.Gravity()
		if mag := math.Hypot(g.X, g.Y); !common.ApproxEqual(mag, G, 1e-9) {
			t.Fatalf("after %d events |g| = %v, want %v", i+1, mag, G)
		}
	}
	if got := e.world.Gravity(); got != e.Gravity() {
		t.Fatalf("space gravity %v differs from engine gravity %v", got, e.Gravity())
	}
}

func TestRotateStepAndDirection(t *testing.T) {
	e, _ := newTestEngine(t)
	mustLoad(t, e, levels.Level{{-1}})

	if err := e.Rotate(1); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if want := e.Config().RotationStep(); e.Angle() != want {
		t.Fatalf("expected angle %v, got %v", want, e.Angle())
	}
	for _, dir := range []int{0, 2, -3} {
		if err := e.Rotate(dir); !errors.Is(err, ErrInvalidDirection) {
			t.Fatalf("Rotate(%d): expected ErrInvalidDirection, got %v", dir, err)
		}
	}
	if e.Rotations() != 1 {
		t.Fatalf("expected 1 counted rotation, got %d", e.Rotations())
	}
}

func TestSingleCellEscapesOnce(t *testing.T) {
	// Rotation event counts giving down, diagonal, right, left and up.
	cases := []struct {
		name   string
		dir, n int
	}{
		{"down", 1, 0},
		{"diagonal", 1, 39},
		{"right", 1, 79},
		{"left", -1, 79},
		{"up", 1, 157},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			mustLoad(t, e, levels.Level{{-1}})
			rotateN(t, e, c.dir, c.n)

			calls := 0
			e.SetOnLevelComplete(func() { calls++ })

			completedAt := -1
			for i := 0; i < 600; i++ {
				e.Step(frame)
				if completedAt < 0 && e.IsLevelComplete() {
					completedAt = i
				}
			}
			if completedAt < 0 {
				x, y, _ := e.BallPosition()
				t.Fatalf("ball never escaped, at (%v,%v)", x, y)
			}
			if calls != 1 {
				t.Fatalf("expected exactly one completion callback, got %d", calls)
			}
			x, y, _ := e.BallPosition()
			if d := math.Hypot(x, y); d <= e.MaxSize() {
				t.Fatalf("completed with ball at distance %v inside escape radius %v", d, e.MaxSize())
			}
		})
	}
}

func TestCompleteFreezesSimulation(t *testing.T) {
	e, _ := newTestEngine(t)
	mustLoad(t, e, levels.Level{{-1}})
	for i := 0; i < 600 && !e.IsLevelComplete(); i++ {
		e.Step(frame)
	}
	if !e.IsLevelComplete() {
		t.Fatalf("expected completion")
	}
	x, y, _ := e.BallPosition()
	elapsed := e.Elapsed()
	for i := 0; i < 30; i++ {
		e.Step(frame)
	}
	x2, y2, _ := e.BallPosition()
	if x != x2 || y != y2 || e.Elapsed() != elapsed {
		t.Fatalf("ball moved after completion: (%v,%v) -> (%v,%v)", x, y, x2, y2)
	}
}

func TestDropLevelCompletesWithoutRotation(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("01_drop.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	e, _ := newTestEngine(t)
	mustLoad(t, e, lvl)
	for i := 0; i < 600 && !e.IsLevelComplete(); i++ {
		e.Step(frame)
	}
	if !e.IsLevelComplete() {
		x, y, _ := e.BallPosition()
		t.Fatalf("ball should fall through the gap, stuck at (%v,%v)", x, y)
	}
}

func TestReloadMidSimulation(t *testing.T) {
	big, err := levels.LoadLevelFromFS("05_switchback.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	small := levels.Level{
		{1, 0, 1},
		{0, -1, 0},
		{1, 0, 1},
	}

	e, host := newTestEngine(t)
	mustLoad(t, e, big)
	rotateN(t, e, 1, 20)
	for i := 0; i < 10; i++ {
		e.Step(frame)
	}
	oldBall := e.state.Ball.Body()
	oldBoundary := e.state.Boundary

	mustLoad(t, e, small)

	want := small.Walls() + 1
	if got := len(e.Objects()); got != want {
		t.Fatalf("expected %d tracked objects, got %d", want, got)
	}
	if got := len(host.view().children); got != want {
		t.Fatalf("expected %d nodes, got %d", want, got)
	}
	if got := e.world.shapeCount(); got != want+4 {
		t.Fatalf("expected %d shapes, got %d (leftover bodies)", want+4, got)
	}
	space := e.world.Space()
	if space.ContainsBody(oldBall) || space.ContainsBody(oldBoundary) {
		t.Fatalf("previous ball or boundary still in the space")
	}
	if e.Angle() != 0 || e.Rotations() != 0 || e.IsLevelComplete() {
		t.Fatalf("state not reset: angle=%v rotations=%d", e.Angle(), e.Rotations())
	}
	if e.MaxSize() != 60 {
		t.Fatalf("expected escape radius of the new level, got %v", e.MaxSize())
	}
}

func TestStopFreezesTicks(t *testing.T) {
	e, host := newTestEngine(t)
	mustLoad(t, e, levels.Level{{0, 0, 0}, {0, -1, 0}, {0, 0, 0}, {1, 1, 1}})

	e.Start()
	e.Start()
	if len(host.ticker.fns) != 1 {
		t.Fatalf("Start should attach one callback, got %d", len(host.ticker.fns))
	}
	_, y0, _ := e.BallPosition()
	for i := 0; i < 5; i++ {
		host.ticker.Tick(frame)
	}
	_, y1, _ := e.BallPosition()
	if y1 <= y0 {
		t.Fatalf("ball should fall while running: %v -> %v", y0, y1)
	}

	e.Stop()
	e.Stop()
	if e.Running() || len(host.ticker.fns) != 0 {
		t.Fatalf("Stop should detach the callback")
	}
	x1, y1, _ := e.BallPosition()
	complete := e.IsLevelComplete()
	for i := 0; i < 120; i++ {
		host.ticker.Tick(frame)
	}
	x2, y2, _ := e.BallPosition()
	if x1 != x2 || y1 != y2 || e.IsLevelComplete() != complete {
		t.Fatalf("ticks after Stop changed the simulation")
	}
}

func TestRoundTripPlacement(t *testing.T) {
	orig, err := levels.LoadLevelFromFS("03_spiral.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	data, err := levels.Encode(orig)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := levels.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	place := func(lvl levels.Level) []string {
		e, _ := newTestEngine(t)
		mustLoad(t, e, lvl)
		var out []string
		for _, o := range e.Objects() {
			x, y := o.Position()
			out = append(out, fmt.Sprintf("%v@%.3f,%.3f", o.Kind(), x, y))
		}
		return out
	}

	a, b := place(orig), place(decoded)
	if len(a) != len(b) {
		t.Fatalf("object count differs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("object %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestCompletionCallbackCanReload(t *testing.T) {
	e, host := newTestEngine(t)
	mustLoad(t, e, levels.Level{{-1}})
	next := levels.Level{{1, 1, 1}, {1, -1, 1}, {1, 1, 1}}

	calls := 0
	e.SetOnLevelComplete(func() {
		calls++
		if err := e.LoadLevel(next); err != nil {
			t.Errorf("LoadLevel from callback: %v", err)
		}
	})
	e.Start()
	for i := 0; i < 600; i++ {
		host.ticker.Tick(frame)
	}

	if calls != 1 {
		t.Fatalf("expected one completion, got %d", calls)
	}
	if e.IsLevelComplete() {
		t.Fatalf("boxed-in level should still be playing")
	}
	if got := len(e.Objects()); got != next.Walls()+1 {
		t.Fatalf("expected %d objects after reload, got %d", next.Walls()+1, got)
	}
}

func TestViewEasesTowardAngle(t *testing.T) {
	e, host := newTestEngine(t)
	mustLoad(t, e, levels.Level{{1, 1, 1}, {1, -1, 1}, {1, 1, 1}})
	rotateN(t, e, 1, 50)

	e.Step(frame)
	first := e.ViewAngle()
	if first <= 0 || first >= e.Angle() {
		t.Fatalf("view should move part way toward %v, got %v", e.Angle(), first)
	}
	for i := 0; i < 120; i++ {
		e.Step(frame)
	}
	if !common.ApproxEqual(e.ViewAngle(), e.Angle(), 1e-6) {
		t.Fatalf("view angle %v did not settle on %v", e.ViewAngle(), e.Angle())
	}
	if host.view().rot != e.ViewAngle() {
		t.Fatalf("container rotation %v, want %v", host.view().rot, e.ViewAngle())
	}
}

func TestDispose(t *testing.T) {
	e, host := newTestEngine(t)
	mustLoad(t, e, levels.Level{{1, -1}})
	e.Start()
	e.Dispose()

	if len(host.stage.children) != 0 {
		t.Fatalf("view still attached after Dispose")
	}
	if len(host.ticker.fns) != 0 {
		t.Fatalf("ticker callback still attached after Dispose")
	}
	if e.world.shapeCount() != 0 {
		t.Fatalf("space not empty after Dispose")
	}
	if err := e.LoadLevel(levels.Level{{-1}}); !errors.Is(err, ErrDisposed) {
		t.Fatalf("expected ErrDisposed, got %v", err)
	}
	if err := e.Rotate(1); !errors.Is(err, ErrDisposed) {
		t.Fatalf("expected ErrDisposed from Rotate, got %v", err)
	}
	e.Step(frame)
	e.Dispose()
}

func TestIndependentEngines(t *testing.T) {
	a, _ := newTestEngine(t)
	b, _ := newTestEngine(t)
	mustLoad(t, a, levels.Level{{-1}})
	mustLoad(t, b, levels.Level{{-1}})

	rotateN(t, a, 1, 10)
	if b.Angle() != 0 || b.Gravity() == a.Gravity() {
		t.Fatalf("rotating one engine affected the other")
	}
}

func TestReconfigureRebuildsLevel(t *testing.T) {
	e, _ := newTestEngine(t)
	mustLoad(t, e, levels.Level{{1, -1, 1}})

	cfg := DefaultConfig()
	cfg.BlockSize = 10
	if err := e.Reconfigure(cfg); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}
	if e.MaxSize() != 30 {
		t.Fatalf("expected escape radius 30 after reconfigure, got %v", e.MaxSize())
	}
	if len(e.Objects()) != 3 {
		t.Fatalf("expected level rebuilt with 3 objects, got %d", len(e.Objects()))
	}
}

func TestWithDefaultsBoundaryReachesEscapeRadius(t *testing.T) {
	d := DefaultConfig()
	cases := []struct {
		name                string
		distance, thickness float64
		wantD, wantT        float64
	}{
		{"unset", 0, 0, d.BoundaryDistance, d.BoundaryThickness},
		{"inside_radius", 0.2, 0.2, d.BoundaryDistance, d.BoundaryThickness},
		{"outer_edge_on_radius", 0.5, 0.5, d.BoundaryDistance, d.BoundaryThickness},
		{"straddles_radius", 0.9, 0.3, 0.9, 0.3},
		{"far_out", 2, 0.5, 2, 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Config{BoundaryDistance: c.distance, BoundaryThickness: c.thickness}.WithDefaults()
			if cfg.BoundaryDistance != c.wantD || cfg.BoundaryThickness != c.wantT {
				t.Fatalf("expected boundary (%v, %v), got (%v, %v)",
					c.wantD, c.wantT, cfg.BoundaryDistance, cfg.BoundaryThickness)
			}
		})
	}
}

func TestShallowBoundaryStillCompletes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BoundaryDistance = 0.2
	cfg.BoundaryThickness = 0.2
	e := New(newFakeHost(), Options{Config: cfg})
	mustLoad(t, e, levels.Level{{-1}})
	for i := 0; i < 600 && !e.IsLevelComplete(); i++ {
		e.Step(frame)
	}
	if !e.IsLevelComplete() {
		x, y, _ := e.BallPosition()
		t.Fatalf("ball at (%v,%v) never completed", x, y)
	}
}
