// Package tone synthesizes the sound cues as beep streamers.
package tone

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/tomz197/sshooter/internal/audio"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = beep.SampleRate(44100)

// Cue lengths.
const (
	HitDuration  = 60 * time.Millisecond
	LoseDuration = 700 * time.Millisecond
	RecordNote   = 90 * time.Millisecond
	releaseShare = 0.35 // Share of a note spent fading out
)

// Record arpeggio notes (C major, rising).
var recordNotes = []float64{523.25, 659.25, 783.99, 1046.50}

// For returns a fresh streamer playing c once, or nil for an unknown cue.
func For(c audio.Cue, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case audio.CueHit:
		s = Hit()
	case audio.CueLose:
		s = Lose()
	case audio.CueRecord:
		s = Record()
	default:
		return nil
	}
	return withVolume(s, volume)
}

// Hit is a short bright blip.
func Hit() beep.Streamer {
	return note(1320, HitDuration)
}

// Lose is a tone falling from 440Hz to 110Hz.
func Lose() beep.Streamer {
	return &sweep{
		from:  440,
		to:    110,
		total: SampleRate.N(LoseDuration),
	}
}

// Record is a rising arpeggio.
func Record() beep.Streamer {
	notes := make([]beep.Streamer, len(recordNotes))
	for i, f := range recordNotes {
		notes[i] = note(f, RecordNote)
	}
	return beep.Seq(notes...)
}

// note is a sine tone of the given length with a linear release.
func note(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		return beep.Silence(SampleRate.N(d))
	}
	total := SampleRate.N(d)
	return &release{
		Streamer: beep.Take(total, sine),
		total:    total,
		start:    int(float64(total) * (1 - releaseShare)),
	}
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// release fades the tail of a streamer to silence.
type release struct {
	beep.Streamer
	pos   int
	start int
	total int
}

func (r *release) Stream(samples [][2]float64) (int, bool) {
	n, ok := r.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if r.pos >= r.start {
			gain := float64(r.total-r.pos) / float64(r.total-r.start)
			samples[i][0] *= gain
			samples[i][1] *= gain
		}
		r.pos++
	}
	return n, ok
}

// sweep is a sine whose frequency glides exponentially from one value to
// another while fading out.
type sweep struct {
	from, to float64
	phase    float64
	pos      int
	total    int
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		p := float64(s.pos) / float64(s.total)
		freq := s.from * math.Pow(s.to/s.from, p)
		v := math.Sin(2*math.Pi*s.phase) * (1 - p)

		samples[i][0] = v
		samples[i][1] = v

		s.phase += freq / float64(SampleRate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
