// Package synth plays sound cues on the local speakers.
package synth

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/sshooter/internal/audio"
	"github.com/tomz197/sshooter/internal/audio/tone"
)

// Synth mixes cues into a single speaker stream.
type Synth struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

// Compile-time check that Synth implements audio.Player.
var _ audio.Player = (*Synth)(nil)

// New opens the speaker. volume is a linear gain in [0,1].
func New(volume float64) (*Synth, error) {
	if err := speaker.Init(tone.SampleRate, tone.SampleRate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	s := &Synth{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Play implements audio.Player.
func (s *Synth) Play(c audio.Cue) {
	st := tone.For(c, s.volume)
	if st == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences everything and releases the speaker.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true

	speaker.Clear()
	speaker.Close()
}
