package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
)

func TestTone_Stream(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := NewTone(100, 200*time.Millisecond, rate)

	samples := make([][2]float64, 150)
	n, ok := s.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 150, n)
	for i := 0; i < n; i++ {
		assert.LessOrEqual(t, samples[i][0], 1.0)
		assert.GreaterOrEqual(t, samples[i][0], -1.0)
		assert.Equal(t, samples[i][0], samples[i][1])
	}
	// the attack starts from silence
	assert.Equal(t, 0.0, samples[0][0])

	n, ok = s.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 50, n)

	n, ok = s.Stream(samples)
	assert.False(t, ok)
	assert.Equal(t, 0, n)
	assert.NoError(t, s.Err())
}

func TestTone_shortPulseEnvelope(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := NewTone(50, 40*time.Millisecond, rate).(*tone)
	assert.LessOrEqual(t, s.attack+s.release, s.total)
}

func TestSoundManager_mutedIsNoop(t *testing.T) {
	sm := NewSoundManager(NewSoundManagerOptions{Muted: true})
	assert.NoError(t, sm.Initialize())
	sm.PlayTone(440, time.Second)
	assert.Equal(t, 0, sm.mixer.Len())
	sm.Close()
}
