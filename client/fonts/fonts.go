package fonts

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

func init() {
	if err := loadFonts(); err != nil {
		panic(fmt.Sprintf("Failed to load fonts: %v", err))
	}
}

var TTFSmallFont font.Face
var TTFNormalFont font.Face
var TTFLargeFont font.Face

func loadFonts() error {
	const dpi = 72

	ttfFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	TTFSmallFont = truetype.NewFace(ttfFont, &truetype.Options{
		Size:    16,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	TTFNormalFont = truetype.NewFace(ttfFont, &truetype.Options{
		Size:    22,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})

	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse bold font: %v", err)
	}
	TTFLargeFont, err = opentype.NewFace(bold, &opentype.FaceOptions{
		Size:    32,
		DPI:     dpi,
		Hinting: font.HintingVertical,
	})
	if err != nil {
		return fmt.Errorf("failed to create font face: %v", err)
	}

	return nil
}
