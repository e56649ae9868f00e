// Package tone implements the phase-continuous sinusoidal synthesizer at the
// bottom of the encode pipeline. Duration drift is prevented by keeping a
// cumulative scheduled-time clock and comparing it against a cumulative
// emitted-sample count, rather than rounding each call's duration
// independently.
package tone

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/tonysln/sstv-go/internal/sstverr"
)

const amplitude = 32767

// Generator is a phase-continuous PCM16 tone synthesizer. It is created at
// the start of a transmission and discarded when the transmission is
// flushed; it owns no resources besides its small internal state.
type Generator struct {
	sampleRate int
	sink       io.Writer

	phase          float64 // radians, kept in [0, 2pi)
	scheduledSecs  float64 // cumulative scheduled duration
	samplesEmitted int64   // cumulative sample count already written

	// buf is reused across Emit calls to avoid per-call allocation in the
	// per-pixel hot loop.
	buf []byte
}

// NewGenerator creates a synthesizer that writes signed 16-bit
// little-endian PCM samples to sink at the given sample rate.
func NewGenerator(sampleRate int, sink io.Writer) *Generator {
	return &Generator{sampleRate: sampleRate, sink: sink}
}

// SamplesEmitted returns the total number of samples written so far.
func (g *Generator) SamplesEmitted() int64 { return g.samplesEmitted }

// Emit appends PCM samples approximating amplitude*sin(phase) for duration
// durMs at frequency freqHz, preserving phase continuity with the previous
// call. The number of samples emitted is chosen so that the cumulative
// emitted duration never drifts from the cumulative scheduled duration by
// more than one sample:
//
//	T += durMs/1000
//	n  = round(T * SR) - samplesEmitted
func (g *Generator) Emit(freqHz, durMs float64) error {
	g.scheduledSecs += durMs / 1000.0
	targetSamples := int64(math.Round(g.scheduledSecs * float64(g.sampleRate)))
	n := targetSamples - g.samplesEmitted
	if n <= 0 {
		return nil
	}

	if cap(g.buf) < int(n)*2 {
		g.buf = make([]byte, n*2)
	}
	buf := g.buf[:n*2]

	phaseInc := 2 * math.Pi * freqHz / float64(g.sampleRate)
	phase := g.phase
	for i := int64(0); i < n; i++ {
		s := math.Round(amplitude * math.Sin(phase))
		if s > amplitude {
			s = amplitude
		} else if s < -amplitude {
			s = -amplitude
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(s)))
		phase = math.Mod(phase+phaseInc, 2*math.Pi)
		if phase < 0 {
			phase += 2 * math.Pi
		}
	}
	g.phase = phase

	if _, err := g.sink.Write(buf); err != nil {
		return sstverr.NewIoError("tone.Emit", err)
	}

	g.samplesEmitted = targetSamples
	return nil
}
