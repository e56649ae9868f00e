// Package spectrum implements the demodulator's frequency estimators: a
// Hann-windowed FFT for broad peak scans and a Goertzel filter for narrow
// frequency checks, with parabolic interpolation of magnitude peaks. The
// FFT and window primitives come from github.com/mjibson/go-dsp.
package spectrum

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Window sizes and hop lengths for the three analysis granularities: the
// image body, the header/VIS tones, and silence detection.
const (
	BodyN, BodyHop       = 512, 128
	HeaderN, HeaderHop   = 64, 32
	SilenceN, SilenceHop = 32, 16

	aliasFoldHz = 3000.0
)

// Analyzer holds the sample rate against which all frequency estimates are
// scaled; it owns no other state, so one instance may serve concurrent
// windows.
type Analyzer struct {
	SampleRate int
}

func New(sampleRate int) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Frame is one windowed analysis result: the window's start sample index,
// the dominant frequency estimate, and its magnitude.
type Frame struct {
	Index int
	Freq  float64
	Mag   float64
}

// ScanPeaks slides an n-sample window by hop across samples, emitting one
// FFTPeak Frame per position, left to right. A tail shorter than n is
// dropped.
func (a *Analyzer) ScanPeaks(samples []float64, n, hop int) []Frame {
	var out []Frame
	for i := 0; i+n <= len(samples); i += hop {
		f, m := a.FFTPeak(samples[i : i+n])
		out = append(out, Frame{Index: i, Freq: f, Mag: m})
	}
	return out
}

// FFTPeak runs a Hann-windowed FFT over samples (zero-padded by the caller
// if the source ran out), finds the dominant magnitude bin, and refines it
// by parabolic interpolation. Frequencies above 3000 Hz are aliasing
// artifacts and fold back as f <- |f - SR|.
func (a *Analyzer) FFTPeak(samples []float64) (freqHz, mag float64) {
	n := len(samples)
	win := window.Hann(n)
	windowed := make([]float64, n)
	for i := range samples {
		windowed[i] = samples[i] * win[i]
	}

	spectrum := fft.FFTReal(windowed)
	half := n / 2
	magdb := make([]float64, half)
	for i := 0; i < half; i++ {
		m := cabs(spectrum[i])
		magdb[i] = math.Log(m + 1e-12)
	}

	peakBin, peakMag := argmax(magdb)
	if peakBin <= 0 || peakBin >= half-1 {
		f := float64(peakBin) * float64(a.SampleRate) / float64(n)
		return foldAlias(f, a.SampleRate), math.Exp(peakMag)
	}

	p, c, nn := magdb[peakBin-1], magdb[peakBin], magdb[peakBin+1]
	d := 0.0
	if denom := p - 2*c + nn; denom != 0 {
		d = 0.5 * (p - nn) / denom
	}
	f := (float64(peakBin) + d) * float64(a.SampleRate) / float64(n)
	return foldAlias(f, a.SampleRate), math.Exp(c)
}

func foldAlias(f float64, sr int) float64 {
	if f > aliasFoldHz {
		return math.Abs(f - float64(sr))
	}
	return f
}

func cabs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

func argmax(xs []float64) (idx int, val float64) {
	val = math.Inf(-1)
	for i, x := range xs {
		if x > val {
			val = x
			idx = i
		}
	}
	return idx, val
}

// Goertzel evaluates the Goertzel filter at an exact frequency freqHz over
// samples, returning its power. Used to detect first non-silence via strong
// energy at 1900 Hz, and to classify header/VIS bits against the known tone
// set {1100, 1200, 1300, 1500, 1900, 2300}.
func (a *Analyzer) Goertzel(samples []float64, freqHz float64) float64 {
	omega := 2 * math.Pi * freqHz / float64(a.SampleRate)
	coeff := 2 * math.Cos(omega)

	var s0, s1, s2 float64
	for _, x := range samples {
		s0 = x + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}
	real := s1 - s2*math.Cos(omega)
	imagPart := s2 * math.Sin(omega)
	return real*real + imagPart*imagPart
}

// ClassifyTone returns whichever of the known SSTV control tones has the
// strongest Goertzel response in samples.
func (a *Analyzer) ClassifyTone(samples []float64, candidates []float64) (freqHz float64, power float64) {
	best := -1.0
	for _, f := range candidates {
		p := a.Goertzel(samples, f)
		if p > best {
			best = p
			freqHz = f
		}
	}
	return freqHz, best
}
