package layout

import (
	"testing"

	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadRects(t *testing.T) {
	rects := PadRects(4, 640)
	require.Len(t, rects, 4)
	assert.Equal(t, Rect{X: 144, Y: 112, W: PadWidth, H: PadHeight}, rects[0])
	assert.Equal(t, Rect{X: 320, Y: 112, W: PadWidth, H: PadHeight}, rects[1])
	assert.Equal(t, Rect{X: 144, Y: 256, W: PadWidth, H: PadHeight}, rects[2])
	assert.Equal(t, Rect{X: 320, Y: 256, W: PadWidth, H: PadHeight}, rects[3])
	for _, r := range rects {
		assert.Zero(t, int(r.X)%CellSize, r.String())
		assert.Zero(t, int(r.Y)%CellSize, r.String())
	}
}

func TestHitTester_PadAt(t *testing.T) {
	h := NewHitTester(640, 480)
	pads := types.DefaultPads()
	for i, r := range PadRects(len(pads), 640) {
		h.Add(pads[i].Color, r)
	}

	tests := []struct {
		name   string
		x, y   float64
		want   types.Color
		wantOK bool
	}{
		{name: "red center", x: 224, y: 176, want: types.ColorRed, wantOK: true},
		{name: "green corner", x: 320, y: 112, want: types.ColorGreen, wantOK: true},
		{name: "blue bottom edge", x: 150, y: 383, want: types.ColorBlue, wantOK: true},
		{name: "yellow", x: 479, y: 300, want: types.ColorYellow, wantOK: true},
		{name: "gap between pads", x: 310, y: 176},
		{name: "above board", x: 224, y: 40},
		{name: "off screen", x: -5, y: 900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := h.PadAt(tt.x, tt.y)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
