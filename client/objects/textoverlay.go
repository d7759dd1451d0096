package objects

import (
	"image/color"

	"github.com/cbodonnell/simon/client/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// TextOverlayObject draws lines of text centered on the screen.
type TextOverlayObject struct {
	*BaseObject

	lines []string
}

func NewTextOverlayObject(id string, lines ...string) GameObject {
	return &TextOverlayObject{
		BaseObject: NewBaseObject(id, nil),
		lines:      lines,
	}
}

func (o *TextOverlayObject) Draw(screen *ebiten.Image) {
	const lineHeight = 40
	top := float64(screen.Bounds().Dy())/2 - float64(len(o.lines)-1)*lineHeight/2
	for i, line := range o.lines {
		f := fonts.TTFNormalFont
		if i == 0 {
			f = fonts.TTFLargeFont
		}
		bounds, _ := font.BoundString(f, line)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(screen.Bounds().Dx())/2-float64(bounds.Max.X>>6)/2, top+float64(i)*lineHeight)
		op.ColorScale.ScaleWithColor(color.White)
		text.DrawWithOptions(screen, line, f, op)
	}
}
