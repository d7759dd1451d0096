package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/simon/pkg/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	// DefaultVolume is the master volume on a base 2 scale, 0 is unchanged
	DefaultVolume = -1.0
)

// SoundManager plays pad tones through a single mixer.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	muted       bool
	initialized bool
}

type NewSoundManagerOptions struct {
	Muted  bool
	Volume float64
}

func NewSoundManager(opts NewSoundManagerOptions) *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer: mixer,
		master: &effects.Volume{
			Streamer: mixer,
			Base:     2,
			Volume:   opts.Volume,
		},
		muted: opts.Muted,
	}
}

// Initialize opens the audio device. A muted manager never opens it.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || sm.muted {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %v", err)
	}
	speaker.Play(sm.master)
	sm.initialized = true
	log.Debug("Audio initialized at %d Hz", sampleRate)
	return nil
}

// PlayTone plays freq for d. It is a no-op until Initialize succeeds.
func (sm *SoundManager) PlayTone(freq float64, d time.Duration) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted || freq <= 0 || d <= 0 {
		return
	}

	speaker.Lock()
	sm.mixer.Add(NewTone(freq, d, sampleRate))
	speaker.Unlock()
}

func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
	if muted && sm.initialized {
		speaker.Lock()
		sm.mixer.Clear()
		speaker.Unlock()
	}
}

// Close stops every playing tone.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	sm.initialized = false
}
