package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	toneAttack  = 10 * time.Millisecond
	toneRelease = 60 * time.Millisecond
)

// tone is a sine wave with a linear attack and release, so short pulses
// start and stop without clicks.
type tone struct {
	freq    float64
	rate    beep.SampleRate
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

// NewTone returns a streamer that plays freq for d.
func NewTone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	attack := rate.N(toneAttack)
	release := rate.N(toneRelease)
	if attack+release > total {
		attack = total / 4
		release = total / 2
	}
	return &tone{
		freq:    freq,
		rate:    rate,
		total:   total,
		attack:  attack,
		release: release,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}

		val := math.Sin(2*math.Pi*t.phase) * t.gain()
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) gain() float64 {
	switch {
	case t.attack > 0 && t.pos < t.attack:
		return float64(t.pos) / float64(t.attack)
	case t.release > 0 && t.pos >= t.total-t.release:
		return float64(t.total-t.pos) / float64(t.release)
	}
	return 1
}

func (t *tone) Err() error { return nil }
