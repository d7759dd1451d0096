package game

import (
	"github.com/cbodonnell/simon/client/scenes"
	"github.com/cbodonnell/simon/pkg/game/types"
)

// Driver runs a game behind the board: either locally or in a remote session.
// Every method is called from the ebiten update goroutine.
type Driver interface {
	// Pads returns the pad catalog to draw.
	Pads() []types.Pad
	// Attach binds the board the driver presents to. It is called once,
	// after the board has been created and before the first Update.
	Attach(board *scenes.BoardScene) error
	Start()
	PressPad(color types.Color)
	SetSkillLevel(value string)
	// Update advances the driver by one tick.
	Update() error
	// Status is a short description for the debug overlay.
	Status() string
	Close()
}
