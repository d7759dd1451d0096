package types

import (
	"image/color"
	"strings"
)

// Color identifies one of the four pads.
type Color string

const (
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorYellow Color = "yellow"
)

func (c Color) String() string {
	return string(c)
}

// ParseColor maps a raw color token to a Color.
// Tokens are matched case-insensitively after trimming whitespace.
func ParseColor(token string) (Color, bool) {
	switch Color(strings.ToLower(strings.TrimSpace(token))) {
	case ColorRed:
		return ColorRed, true
	case ColorGreen:
		return ColorGreen, true
	case ColorBlue:
		return ColorBlue, true
	case ColorYellow:
		return ColorYellow, true
	}
	return "", false
}

// Pad is a static catalog entry describing how a color looks and sounds.
type Pad struct {
	Color Color `json:"color"`
	// Tone is the frequency of the pad's sound in Hz
	Tone float64 `json:"tone"`
	// Fill is the pad's color when lit
	Fill color.NRGBA `json:"-"`
	// Key is the keyboard shortcut shown on the pad
	Key string `json:"key"`
}

// Dim returns the pad's fill color when it is not lit.
func (p Pad) Dim() color.NRGBA {
	return color.NRGBA{R: p.Fill.R / 3, G: p.Fill.G / 3, B: p.Fill.B / 3, A: 255}
}

// DefaultPads returns the fixed pad catalog in board order.
// The tones are the ones used by the original electronic toy.
func DefaultPads() []Pad {
	return []Pad{
		{Color: ColorRed, Tone: 310.0, Fill: color.NRGBA{R: 235, G: 50, B: 50, A: 255}, Key: "1"},
		{Color: ColorGreen, Tone: 415.3, Fill: color.NRGBA{R: 40, G: 200, B: 70, A: 255}, Key: "2"},
		{Color: ColorBlue, Tone: 209.0, Fill: color.NRGBA{R: 50, G: 110, B: 235, A: 255}, Key: "3"},
		{Color: ColorYellow, Tone: 252.0, Fill: color.NRGBA{R: 240, G: 210, B: 40, A: 255}, Key: "4"},
	}
}

// FindPad returns the pad with the given color.
func FindPad(pads []Pad, c Color) (Pad, bool) {
	for _, pad := range pads {
		if pad.Color == c {
			return pad, true
		}
	}
	return Pad{}, false
}

// Target names an element of the presentation the game writes to.
type Target string

const (
	TargetHeading Target = "heading"
	TargetStatus  Target = "status"
	TargetStart   Target = "start"
)
