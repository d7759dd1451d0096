package objects

import (
	"image/color"
	"time"

	"github.com/cbodonnell/simon/client/fonts"
	"github.com/cbodonnell/simon/client/layout"
	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/solarlune/resolv"
	"golang.org/x/image/font"
)

// PadObject draws one pad and owns its hit box.
type PadObject struct {
	*BaseObject

	Pad    types.Pad
	Object *resolv.Object

	// lit is the remaining time the pad stays lit.
	lit time.Duration
}

type NewPadObjectOptions struct {
	Pad    types.Pad
	Bounds layout.Rect
}

func NewPadObject(id string, opts NewPadObjectOptions) *PadObject {
	return &PadObject{
		BaseObject: NewBaseObject(id, nil),
		Pad:        opts.Pad,
		Object:     layout.NewPadObject(opts.Pad.Color, opts.Bounds),
	}
}

// Light keeps the pad lit for d. A new pulse restarts the timer.
func (o *PadObject) Light(d time.Duration) {
	o.lit = d
}

func (o *PadObject) IsLit() bool {
	return o.lit > 0
}

// Step advances the lit timer by dt.
func (o *PadObject) Step(dt time.Duration) {
	if o.lit <= 0 {
		return
	}
	o.lit -= dt
	if o.lit < 0 {
		o.lit = 0
	}
}

func (o *PadObject) Update() error {
	o.Step(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (o *PadObject) Draw(screen *ebiten.Image) {
	x, y := float32(o.Object.Position.X), float32(o.Object.Position.Y)
	w, h := float32(o.Object.Size.X), float32(o.Object.Size.Y)

	fill := o.Pad.Dim()
	if o.IsLit() {
		fill = o.Pad.Fill
	}
	vector.DrawFilledRect(screen, x, y, w, h, fill, false)
	vector.StrokeRect(screen, x, y, w, h, 2, color.NRGBA{R: 30, G: 30, B: 30, A: 255}, false)

	label := o.Pad.Key
	f := fonts.TTFSmallFont
	bounds, _ := font.BoundString(f, label)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x+w)-float64(bounds.Max.X>>6)-8, float64(y+h)-8)
	op.ColorScale.ScaleWithColor(color.NRGBA{R: 240, G: 240, B: 240, A: 200})
	text.DrawWithOptions(screen, label, f, op)
}
