package engine

import "github.com/re-ovo/fall-escape/levels"

// build materializes a validated level into a fresh State.
func (e *Engine) build(level levels.Level) *State {
	s := newState(e.cfg)
	s.Level = level

	width, height := level.Size()
	maxSize := EscapeRadius(width, height, e.cfg.BlockSize)
	s.Win = NewWinDetector(maxSize)

	ballX, ballY, _ := level.BallStart()
	for y, row := range level {
		for x, cell := range row {
			posX, posY := CellCenter(x, y, width, height, e.cfg.BlockSize)
			switch {
			case cell == levels.CellWall:
				s.Objects = append(s.Objects, e.newWall(posX, posY))
			case cell == levels.CellBall && x == ballX && y == ballY:
				s.Ball = e.newBall(posX, posY)
				s.Objects = append(s.Objects, s.Ball)
			}
		}
	}

	s.Boundary, s.boundaryShapes = e.world.addBoundary(maxSize)
	return s
}

func (e *Engine) newWall(x, y float64) *GameObject {
	side := e.cfg.BlockSize * e.cfg.Scale
	node := e.host.NewRect(side, side, e.cfg.WallColor)
	e.view.AddChild(node)

	obj := NewGameObject(KindWall, node)
	body, shape := e.world.addWall(x, y)
	obj.SetBody(body, shape)
	return obj
}

func (e *Engine) newBall(x, y float64) *GameObject {
	node := e.host.NewCircle(e.cfg.BallRadius*e.cfg.Scale, e.cfg.BallColor)
	e.view.AddChild(node)

	obj := NewGameObject(KindBall, node)
	body, shape := e.world.addBall(x, y)
	obj.SetBody(body, shape)
	return obj
}

// teardown removes every body of the current level from the space and
// detaches its nodes. The state is left empty.
func (e *Engine) teardown() {
	s := e.state
	if s == nil {
		return
	}
	space := e.world.Space()
	for _, obj := range s.Objects {
		obj.destroy(space, e.view)
	}
	e.world.removeBody(s.Boundary, s.boundaryShapes)

	s.Objects = nil
	s.Ball = nil
	s.Boundary = nil
	s.boundaryShapes = nil
	s.accumulator = 0
}
