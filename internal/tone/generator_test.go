package tone

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitSampleCountMatchesScheduledDuration(t *testing.T) {
	var buf bytes.Buffer
	g := NewGenerator(44100, &buf)

	require.NoError(t, g.Emit(1900, 300))
	require.NoError(t, g.Emit(1200, 10))
	require.NoError(t, g.Emit(1900, 300))

	wantSamples := int64(math.Round(0.610 * 44100))
	assert.Equal(t, wantSamples, g.SamplesEmitted())
	assert.Equal(t, int(wantSamples)*2, buf.Len())
}

func TestEmitPhaseContinuity(t *testing.T) {
	var buf bytes.Buffer
	g := NewGenerator(44100, &buf)

	require.NoError(t, g.Emit(1500, 5))
	require.NoError(t, g.Emit(2300, 5))

	samples := decodeInt16(t, buf.Bytes())
	require.True(t, len(samples) > 2)

	// Phase continuity bounds every step, including the one across the
	// frequency change, by the largest per-sample phase increment (2300 Hz)
	// times the amplitude, plus one for rounding.
	maxStep := float64(amplitude)*2*math.Pi*2300/44100 + 1
	for i := 1; i < len(samples); i++ {
		diff := math.Abs(float64(samples[i]) - float64(samples[i-1]))
		assert.LessOrEqual(t, diff, maxStep)
	}
}

func TestEmitClampsToSixteenBitRange(t *testing.T) {
	var buf bytes.Buffer
	g := NewGenerator(8000, &buf)
	require.NoError(t, g.Emit(1900, 50))

	samples := decodeInt16(t, buf.Bytes())
	for _, s := range samples {
		assert.LessOrEqual(t, int(s), amplitude)
		assert.GreaterOrEqual(t, int(s), -amplitude)
	}
}

func decodeInt16(t *testing.T, raw []byte) []int16 {
	t.Helper()
	require.Zero(t, len(raw)%2)
	out := make([]int16, len(raw)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}
	return out
}
