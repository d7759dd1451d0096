package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		token string
		want  Color
		ok    bool
	}{
		{token: "red", want: ColorRed, ok: true},
		{token: " Green ", want: ColorGreen, ok: true},
		{token: "BLUE", want: ColorBlue, ok: true},
		{token: "yellow", want: ColorYellow, ok: true},
		{token: "purple"},
		{token: ""},
		{token: "1"},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseColor(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultPads(t *testing.T) {
	pads := DefaultPads()
	assert.Len(t, pads, 4)

	pad, ok := FindPad(pads, ColorGreen)
	assert.True(t, ok)
	assert.Equal(t, 415.3, pad.Tone)
	assert.Equal(t, "2", pad.Key)

	_, ok = FindPad(pads, Color("purple"))
	assert.False(t, ok)
}

func TestResult_Summary(t *testing.T) {
	victory := &Result{Outcome: OutcomeVictory, Round: 8, RoundsCompleted: 8, SequenceLength: 8}
	assert.Equal(t, "Simon Says: won all 8 rounds (sequence of 8)", victory.Summary())

	mismatch := &Result{Outcome: OutcomeMismatch, Round: 3, RoundsCompleted: 2, SequenceLength: 3}
	assert.Equal(t, "Simon Says: 2 rounds completed, missed in round 3", mismatch.Summary())

	var none *Result
	assert.Equal(t, "", none.Summary())
}
