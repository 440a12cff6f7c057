package main

import "github.com/hajimehoshi/ebiten/v2"

// keyboardAxes reads A/D or the arrow keys for movement and Space, W or Up
// for jump.
type keyboardAxes struct{}

func (keyboardAxes) Axes() (float64, float64) {
	var h, v float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		h--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		h++
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v = 1
	}
	return h, v
}

// gamepadAxes reads the first standard-layout gamepad. Pushing the left
// stick up or pressing the bottom face button counts as jump.
type gamepadAxes struct {
	deadzone float64
}

func (g gamepadAxes) Axes() (float64, float64) {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		h := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if h > -g.deadzone && h < g.deadzone {
			h = 0
		}
		// Stick up is negative.
		v := -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if v < g.deadzone {
			v = 0
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			v = 1
		}
		return h, v
	}
	return 0, 0
}
