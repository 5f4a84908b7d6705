package engine

import "github.com/jakecoffman/cp"

// ObjectKind tells walls from the ball.
type ObjectKind int

const (
	KindWall ObjectKind = iota + 1
	KindBall
)

func (k ObjectKind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindBall:
		return "ball"
	default:
		return "unknown"
	}
}

// GameObject owns one visual node and at most one physics body with its
// shapes.
type GameObject struct {
	kind   ObjectKind
	node   Node
	body   *cp.Body
	shapes []*cp.Shape
}

func NewGameObject(kind ObjectKind, node Node) *GameObject {
	return &GameObject{kind: kind, node: node}
}

func (o *GameObject) Kind() ObjectKind {
	if o == nil {
		return 0
	}
	return o.kind
}

func (o *GameObject) Node() Node {
	if o == nil {
		return nil
	}
	return o.node
}

// SetBody attaches the body and the shapes that belong to it.
func (o *GameObject) SetBody(body *cp.Body, shapes ...*cp.Shape) {
	if o == nil {
		return
	}
	o.body = body
	o.shapes = append(o.shapes[:0], shapes...)
}

func (o *GameObject) Body() *cp.Body {
	if o == nil {
		return nil
	}
	return o.body
}

// Position returns the body position in simulation space.
func (o *GameObject) Position() (float64, float64) {
	if o == nil || o.body == nil {
		return 0, 0
	}
	p := o.body.Position()
	return p.X, p.Y
}

// Sync copies the body transform onto the node.
func (o *GameObject) Sync(m Mapper) {
	if o == nil || o.body == nil || o.node == nil {
		return
	}
	p := o.body.Position()
	sx, sy := m.ToScreen(p.X, p.Y)
	o.node.SetPosition(sx, sy)
	o.node.SetRotation(o.body.Angle())
}

// destroy removes the body from the space, then detaches the node.
func (o *GameObject) destroy(space *cp.Space, parent Container) {
	if o == nil {
		return
	}
	if space != nil {
		for _, shape := range o.shapes {
			if shape != nil && space.ContainsShape(shape) {
				space.RemoveShape(shape)
			}
		}
		if o.body != nil && space.ContainsBody(o.body) {
			space.RemoveBody(o.body)
		}
	}
	if parent != nil && o.node != nil {
		parent.RemoveChild(o.node)
	}
	o.shapes = nil
	o.body = nil
	o.node = nil
}
