package scenes

import "github.com/cbodonnell/simon/client/objects"

type ErrorScene struct {
	*BaseScene
}

var _ Scene = &ErrorScene{}

// NewErrorScene shows msg with a hint on how to leave.
func NewErrorScene(msg string) (Scene, error) {
	return &ErrorScene{
		BaseScene: NewBaseScene(objects.NewTextOverlayObject("overlay-error", msg, "Press Esc to quit")),
	}, nil
}
