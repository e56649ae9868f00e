package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSampleRate = 44100

func sineWave(freqHz float64, n int, sr int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freqHz * float64(i) / float64(sr))
	}
	return out
}

func TestFFTPeakRecoversKnownFrequency(t *testing.T) {
	a := New(testSampleRate)
	for _, f := range []float64{1200, 1500, 1900, 2300} {
		samples := sineWave(f, BodyN, testSampleRate)
		got, mag := a.FFTPeak(samples)
		assert.InDelta(t, f, got, float64(testSampleRate)/float64(BodyN)+5)
		assert.Greater(t, mag, 0.0)
	}
}

func TestFFTPeakFoldsAliasAboveThreeKHz(t *testing.T) {
	// A tone above the fold threshold should be reported as |f - SR|, never
	// as its raw value, per the normative aliasing rule.
	a := New(testSampleRate)
	const raw = 3400.0
	samples := sineWave(raw, BodyN, testSampleRate)
	got, _ := a.FFTPeak(samples)
	assert.Less(t, got, aliasFoldHz)
	assert.InDelta(t, math.Abs(raw-testSampleRate), got, float64(testSampleRate)/float64(BodyN)+5)
}

func TestGoertzelPeaksAtMatchingFrequency(t *testing.T) {
	a := New(testSampleRate)
	samples := sineWave(1900, HeaderN, testSampleRate)

	pOn := a.Goertzel(samples, 1900)
	pOff := a.Goertzel(samples, 1200)
	assert.Greater(t, pOn, pOff)
}

func TestClassifyTonePicksStrongestCandidate(t *testing.T) {
	a := New(testSampleRate)
	samples := sineWave(1300, HeaderN, testSampleRate)

	freq, power := a.ClassifyTone(samples, []float64{1100, 1300})
	assert.Equal(t, 1300.0, freq)
	assert.Greater(t, power, 0.0)
}

func TestClassifyToneDistinguishesVISBits(t *testing.T) {
	a := New(testSampleRate)
	zero := sineWave(1300, HeaderN, testSampleRate)
	one := sineWave(1100, HeaderN, testSampleRate)

	fz, _ := a.ClassifyTone(zero, []float64{1100, 1300})
	fo, _ := a.ClassifyTone(one, []float64{1100, 1300})

	assert.Equal(t, 1300.0, fz)
	assert.Equal(t, 1100.0, fo)
}
