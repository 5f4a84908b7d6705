package engine

// Mapper converts between simulation space and unrotated screen space.
// The view rotation is applied by the container, never here.
type Mapper struct {
	CenterX float64
	CenterY float64
	Scale   float64
}

// NewMapper centers simulation origin on the viewport.
func NewMapper(viewWidth, viewHeight, scale float64) Mapper {
	return Mapper{CenterX: viewWidth / 2, CenterY: viewHeight / 2, Scale: scale}
}

func (m Mapper) ToScreen(simX, simY float64) (float64, float64) {
	return m.CenterX + simX*m.Scale, m.CenterY + simY*m.Scale
}

func (m Mapper) ToSim(screenX, screenY float64) (float64, float64) {
	if m.Scale == 0 {
		return 0, 0
	}
	return (screenX - m.CenterX) / m.Scale, (screenY - m.CenterY) / m.Scale
}

// CellCenter returns the simulation-space center of grid cell (x, y) in a
// width x height level.
func CellCenter(x, y, width, height int, blockSize float64) (float64, float64) {
	posX := (float64(x) + 0.5 - float64(width)/2) * blockSize
	posY := (float64(y) + 0.5 - float64(height)/2) * blockSize
	return posX, posY
}
