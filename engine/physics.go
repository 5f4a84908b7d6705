package engine

import (
	"github.com/jakecoffman/cp"
)

const (
	collisionTypeWall cp.CollisionType = iota + 1
	collisionTypeBall
	collisionTypeBoundary
)

// physicsWorld owns the Chipmunk space of one engine.
type physicsWorld struct {
	space *cp.Space
	cfg   Config
}

func newPhysicsWorld(cfg Config) *physicsWorld {
	space := cp.NewSpace()
	space.Iterations = uint(cfg.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})
	return &physicsWorld{space: space, cfg: cfg}
}

func (pw *physicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func (pw *physicsWorld) SetGravity(g cp.Vector) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.SetGravity(g)
}

func (pw *physicsWorld) Gravity() cp.Vector {
	if pw == nil || pw.space == nil {
		return cp.Vector{}
	}
	return pw.space.Gravity()
}

// Step advances the simulation by exactly dt.
func (pw *physicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// addWall creates a static box of side BlockSize centered at (x, y).
func (pw *physicsWorld) addWall(x, y float64) (*cp.Body, *cp.Shape) {
	size := pw.cfg.BlockSize
	body := cp.NewStaticBody()
	body.SetPosition(cp.Vector{X: x, Y: y})
	pw.space.AddBody(body)

	// The box radius rounds the corners so the ball does not snag on seams.
	shape := cp.NewBox(body, size, size, pw.cfg.WallChamfer)
	shape.SetElasticity(pw.cfg.WallElasticity)
	shape.SetFriction(pw.cfg.WallFriction)
	shape.SetCollisionType(collisionTypeWall)
	pw.space.AddShape(shape)
	return body, shape
}

// addBall creates the dynamic ball centered at (x, y).
func (pw *physicsWorld) addBall(x, y float64) (*cp.Body, *cp.Shape) {
	mass := pw.cfg.BallMass
	radius := pw.cfg.BallRadius
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(cp.Vector{X: x, Y: y})
	body.SetAngle(0)
	body.SetAngularVelocity(0)
	pw.space.AddBody(body)

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetElasticity(pw.cfg.BallElasticity)
	shape.SetFriction(pw.cfg.BallFriction)
	shape.SetCollisionType(collisionTypeBall)
	pw.space.AddShape(shape)
	return body, shape
}

// addBoundary frames the maze with four sensor slabs on one static body.
// The inner edge sits BoundaryDistance escape radii from the center so the
// ball touches it wherever gravity sends it.
func (pw *physicsWorld) addBoundary(maxSize float64) (*cp.Body, []*cp.Shape) {
	inner := maxSize * pw.cfg.BoundaryDistance
	outer := inner + maxSize*pw.cfg.BoundaryThickness

	body := cp.NewStaticBody()
	pw.space.AddBody(body)

	slabs := []cp.BB{
		{L: -outer, B: -outer, R: outer, T: -inner}, // top
		{L: -outer, B: inner, R: outer, T: outer},   // bottom
		{L: -outer, B: -inner, R: -inner, T: inner}, // left
		{L: inner, B: -inner, R: outer, T: inner},   // right
	}
	shapes := make([]*cp.Shape, 0, len(slabs))
	for _, bb := range slabs {
		shape := cp.NewBox2(body, bb, 0)
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeBoundary)
		pw.space.AddShape(shape)
		shapes = append(shapes, shape)
	}
	return body, shapes
}

func (pw *physicsWorld) removeBody(body *cp.Body, shapes []*cp.Shape) {
	if pw == nil || pw.space == nil {
		return
	}
	for _, shape := range shapes {
		if shape != nil && pw.space.ContainsShape(shape) {
			pw.space.RemoveShape(shape)
		}
	}
	if body != nil && pw.space.ContainsBody(body) {
		pw.space.RemoveBody(body)
	}
}

// touching reports whether shape currently overlaps any shape of target.
// Sensors never produce arbiters on the body, so the space is queried.
func (pw *physicsWorld) touching(shape *cp.Shape, target *cp.Body) bool {
	if pw == nil || pw.space == nil || shape == nil || target == nil {
		return false
	}
	hit := false
	pw.space.ShapeQuery(shape, func(other *cp.Shape, _ *cp.ContactPointSet) {
		if other.Body() == target {
			hit = true
		}
	})
	return hit
}

func (pw *physicsWorld) shapeCount() int {
	if pw == nil || pw.space == nil {
		return 0
	}
	n := 0
	pw.space.EachShape(func(*cp.Shape) { n++ })
	return n
}
