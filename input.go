package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/cityrun/ecs/component"
	"github.com/milk9111/cityrun/game"
)

// Input turns raw keys, mouse and gamepad into player intents. Movement is
// edge triggered: an intent goes out only when the held direction changes.
type Input struct {
	move  int
	level game.LevelID
}

func NewInput() *Input {
	return &Input{}
}

// Poll reads this frame's devices and returns the intents they produce.
func (i *Input) Poll() []component.Intent {
	var out []component.Intent

	move := 0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		move--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		move++
	}

	jump := inpututil.IsKeyJustPressed(ebiten.KeyW) ||
		inpututil.IsKeyJustPressed(ebiten.KeyUp) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace)
	shoot := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeyJ)

	// Gamepad: first pad only, left stick or d-pad to move.
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		x := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		switch {
		case x < -0.3 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft):
			move = -1
		case x > 0.3 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight):
			move = 1
		}
		jump = jump || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		shoot = shoot || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
	}

	if in, ok := moveIntent(i.move, move); ok {
		out = append(out, in)
	}
	i.move = move
	if jump {
		out = append(out, component.Jump{})
	}
	if shoot {
		out = append(out, component.Shoot{})
	}
	return out
}

// Reset forgets the held direction, so a key still held after a restart
// starts the new player walking.
func (i *Input) Reset() {
	i.move = 0
	i.level = game.LevelNone
}

// Follow resets the held direction whenever level differs from the last one
// seen. Every level builds a fresh, standing player.
func (i *Input) Follow(level game.LevelID) {
	if level == i.level {
		return
	}
	i.level = level
	i.move = 0
}

func moveIntent(prev, cur int) (component.Intent, bool) {
	switch {
	case prev == cur:
		return nil, false
	case cur < 0:
		return component.StartMove{Dir: component.DirLeft}, true
	case cur > 0:
		return component.StartMove{Dir: component.DirRight}, true
	default:
		return component.StopMove{}, true
	}
}
