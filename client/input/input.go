package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// padKeys maps keyboard keys to pad tokens. Digits select pads by position,
// letters by color.
var padKeys = []struct {
	key   ebiten.Key
	token string
}{
	{ebiten.Key1, "1"},
	{ebiten.Key2, "2"},
	{ebiten.Key3, "3"},
	{ebiten.Key4, "4"},
	{ebiten.KeyNumpad1, "1"},
	{ebiten.KeyNumpad2, "2"},
	{ebiten.KeyNumpad3, "3"},
	{ebiten.KeyNumpad4, "4"},
	{ebiten.KeyR, "red"},
	{ebiten.KeyG, "green"},
	{ebiten.KeyB, "blue"},
	{ebiten.KeyY, "yellow"},
}

// IsPositiveJustPressed returns a boolean value indicating whether the generic positive input is just pressed.
// This is used to handle both keyboard and gamepad inputs.
func IsPositiveJustPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		return true
	}
	gamepadIDs := ebiten.AppendGamepadIDs(nil)
	for _, g := range gamepadIDs {
		if ebiten.IsStandardGamepadLayoutAvailable(g) {
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonCenterRight) {
				return true
			}
		} else if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton9) {
			return true
		}
	}
	return false
}

// IsNegativeJustPressed returns a boolean value indicating whether the generic negative input is just pressed.
func IsNegativeJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

func IsCopyJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyC)
}

// PadKeyJustPressed returns the token of the first pad key just pressed.
func PadKeyJustPressed() (string, bool) {
	for _, k := range padKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			return k.token, true
		}
	}
	return "", false
}

// PointerJustPressed returns the position of a mouse click or touch that just started.
func PointerJustPressed() (int, int, bool) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return x, y, true
	}
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return x, y, true
	}
	return 0, 0, false
}
