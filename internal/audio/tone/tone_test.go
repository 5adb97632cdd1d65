package tone

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/sshooter/internal/audio"
)

// drain streams s to the end and returns every sample.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for range 1000 {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never ended")
	return nil
}

func TestCueLengths(t *testing.T) {
	tests := []struct {
		cue  audio.Cue
		want int
	}{
		{audio.CueHit, SampleRate.N(HitDuration)},
		{audio.CueLose, SampleRate.N(LoseDuration)},
		{audio.CueRecord, len(recordNotes) * SampleRate.N(RecordNote)},
	}

	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			s := For(tt.cue, 1)
			require.NotNil(t, s)
			assert.Len(t, drain(t, s), tt.want)
		})
	}
}

func TestCueSamplesInRange(t *testing.T) {
	for _, c := range []audio.Cue{audio.CueHit, audio.CueLose, audio.CueRecord} {
		samples := drain(t, For(c, 1))
		peak := 0.0
		for _, s := range samples {
			require.LessOrEqual(t, math.Abs(s[0]), 1.0)
			assert.Equal(t, s[0], s[1], "cues are mono")
			peak = math.Max(peak, math.Abs(s[0]))
		}
		assert.Greater(t, peak, 0.1, "%s is audible", c)
	}
}

func TestCuesEndSilent(t *testing.T) {
	samples := drain(t, Hit())
	last := samples[len(samples)-1]
	assert.InDelta(t, 0, last[0], 0.01)
}

func TestMutedCue(t *testing.T) {
	for _, s := range drain(t, For(audio.CueHit, 0)) {
		require.Zero(t, s[0])
	}
}

func TestUnknownCue(t *testing.T) {
	assert.Nil(t, For(audio.Cue(99), 1))
}
