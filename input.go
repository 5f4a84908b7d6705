package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const stickDeadzone = 0.2

// Actions is one frame of player input.
type Actions struct {
	// Rotate is -1, 0 or +1. It is set on every frame a rotate key is
	// held, so holding a key keeps turning the maze.
	Rotate      int
	Reload      bool
	Back        bool
	ToggleMusic bool
	Quit        bool
}

func ReadActions() Actions {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	a := Actions{
		Reload:      inpututil.IsKeyJustPressed(ebiten.KeyR),
		Back:        inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		ToggleMusic: inpututil.IsKeyJustPressed(ebiten.KeyM),
		Quit:        inpututil.IsKeyJustPressed(ebiten.KeyF12),
	}

	stick := 0.0
	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		stick = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		left = left || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopLeft)
		right = right || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
		a.Reload = a.Reload || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
		a.Back = a.Back || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}
	a.Rotate = rotateDirection(left, right, stick)
	return a
}

// rotateDirection folds keys and the stick into one rotate event. Keys
// pressed together cancel; the stick only counts outside the deadzone.
func rotateDirection(left, right bool, stick float64) int {
	dir := 0
	if left {
		dir--
	}
	if right {
		dir++
	}
	if dir == 0 && math.Abs(stick) > stickDeadzone {
		if stick < 0 {
			return -1
		}
		return 1
	}
	return dir
}
