package common

// Logical screen size. The window scales to fit.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)
