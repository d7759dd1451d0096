// Package layout places the pads on the board and maps screen points to pads.
package layout

import (
	"fmt"

	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/solarlune/resolv"
)

const (
	// CellSize is the collision cell size. Pad bounds are multiples of it,
	// so cell level checks are exact.
	CellSize = 16

	PadWidth  = 160
	PadHeight = 128
	PadGap    = 16
	BoardTop  = 112

	// TagPad tags the hit boxes of pads.
	TagPad = "pad"
)

// Rect is an axis aligned rectangle in screen pixels.
type Rect struct {
	X, Y, W, H float64
}

// PadRects lays out n pads in rows of two, centered horizontally on a screen
// of the given width.
func PadRects(n int, screenWidth int) []Rect {
	rects := make([]Rect, n)
	left := float64(screenWidth-2*PadWidth-PadGap) / 2
	left = float64(int(left) / CellSize * CellSize)
	for i := range rects {
		col, row := i%2, i/2
		rects[i] = Rect{
			X: left + float64(col*(PadWidth+PadGap)),
			Y: float64(BoardTop + row*(PadHeight+PadGap)),
			W: PadWidth,
			H: PadHeight,
		}
	}
	return rects
}

// HitTester finds the pad under a screen point.
type HitTester struct {
	space  *resolv.Space
	cursor *resolv.Object
}

func NewHitTester(screenWidth, screenHeight int) *HitTester {
	cursor := resolv.NewObject(0, 0, 1, 1)
	space := resolv.NewSpace(screenWidth, screenHeight, CellSize, CellSize)
	space.Add(cursor)
	return &HitTester{
		space:  space,
		cursor: cursor,
	}
}

// Add registers the hit box of a pad.
func (h *HitTester) Add(color types.Color, r Rect) *resolv.Object {
	obj := NewPadObject(color, r)
	h.AddObject(obj)
	return obj
}

// AddObject registers a hit box created with NewPadObject.
func (h *HitTester) AddObject(obj *resolv.Object) {
	h.space.Add(obj)
}

// NewPadObject returns a pad hit box carrying its color.
func NewPadObject(color types.Color, r Rect) *resolv.Object {
	obj := resolv.NewObject(r.X, r.Y, r.W, r.H, TagPad)
	obj.Data = color
	return obj
}

// PadAt returns the color of the pad containing (x, y).
func (h *HitTester) PadAt(x, y float64) (types.Color, bool) {
	if x < 0 || y < 0 || x >= float64(h.space.Width()*CellSize) || y >= float64(h.space.Height()*CellSize) {
		return "", false
	}
	h.cursor.Position.X = x
	h.cursor.Position.Y = y
	h.cursor.Update()

	collision := h.cursor.Check(0, 0, TagPad)
	if collision == nil {
		return "", false
	}
	for _, obj := range collision.Objects {
		if color, ok := obj.Data.(types.Color); ok {
			return color, true
		}
	}
	return "", false
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.0f,%.0f %.0fx%.0f)", r.X, r.Y, r.W, r.H)
}
