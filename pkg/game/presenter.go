package game

import (
	"time"

	"github.com/cbodonnell/simon/pkg/game/types"
)

// Presenter renders game output. Implementations are called from the
// goroutine that drives the Controller and must not block.
type Presenter interface {
	// ShowText replaces the text of a target.
	ShowText(target types.Target, text string)
	// SetVisibility shows or hides a target.
	SetVisibility(target types.Target, visible bool)
	// SetInteractive enables or disables pad input.
	SetInteractive(enabled bool)
	// PulsePad lights a pad and plays its tone for the given duration.
	PulsePad(color types.Color, duration time.Duration)
	// Notify surfaces a message the player should acknowledge.
	Notify(message string)
}
