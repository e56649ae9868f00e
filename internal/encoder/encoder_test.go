package encoder_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonysln/sstv-go/internal/encoder"
	"github.com/tonysln/sstv-go/internal/image"
	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/spectrum"
	"github.com/tonysln/sstv-go/internal/tone"
)

const sampleRate = 44100

func solidImage(w, h int, r, g, b byte) *image.Buffer {
	buf := image.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Put(y, x, r, g, b)
		}
	}
	return buf
}

func encode(t *testing.T, img *image.Buffer, mode modes.Descriptor, opts encoder.Options) ([]float64, int64) {
	t.Helper()
	var out bytes.Buffer
	gen := tone.NewGenerator(sampleRate, &out)
	require.NoError(t, encoder.New(gen).Encode(img, mode, opts))

	raw := out.Bytes()
	samples := make([]float64, len(raw)/2)
	for i := range samples {
		samples[i] = float64(int16(binary.LittleEndian.Uint16(raw[i*2:])))
	}
	return samples, gen.SamplesEmitted()
}

// martinLineMs is one Martin scanline: sync, porch, then three planes each
// followed by a porch.
func martinLineMs(d modes.Descriptor) float64 {
	return d.SyncMs + d.PorchMs + 3*(float64(d.Width)*d.PixelDwell+d.PorchMs)
}

func TestMartinM1TransmissionOpensWithLeaderTone(t *testing.T) {
	mode, ok := modes.ByKey(modes.Martin, "M1")
	require.True(t, ok)

	samples, _ := encode(t, solidImage(mode.Width, mode.Height, 0, 0, 0), mode, encoder.Options{})

	// 300 ms of 1900 Hz leader: 13230 samples at 44100 Hz.
	require.Greater(t, len(samples), 13230)
	a := spectrum.New(sampleRate)
	freq, _ := a.FFTPeak(samples[:spectrum.BodyN])
	assert.InDelta(t, 1900.0, freq, 10.0)
	freq, _ = a.FFTPeak(samples[13230-spectrum.BodyN : 13230])
	assert.InDelta(t, 1900.0, freq, 10.0)
}

func TestMartinM1TotalDurationMatchesSchedule(t *testing.T) {
	mode, ok := modes.ByKey(modes.Martin, "M1")
	require.True(t, ok)

	_, emitted := encode(t, solidImage(mode.Width, mode.Height, 0, 0, 0), mode, encoder.Options{})

	headerMs := 300.0 + 10.0 + 300.0
	visMs := 10 * 30.0
	totalMs := headerMs + visMs + float64(mode.Height)*martinLineMs(mode)
	want := math.Round(totalMs / 1000.0 * sampleRate)
	assert.InDelta(t, want, float64(emitted), 2)
}

func TestMartinM1WhiteImagePixelTonesAreFullScale(t *testing.T) {
	mode, ok := modes.ByKey(modes.Martin, "M1")
	require.True(t, ok)

	samples, _ := encode(t, solidImage(mode.Width, mode.Height, 255, 255, 255), mode, encoder.Options{})

	// Sample from the middle of the first line's G plane: past header, VIS,
	// sync, and porch.
	offsetMs := 610.0 + 300.0 + mode.SyncMs + mode.PorchMs + 50.0
	off := int(offsetMs / 1000.0 * sampleRate)
	a := spectrum.New(sampleRate)
	freq, _ := a.FFTPeak(samples[off : off+spectrum.BodyN])
	assert.InDelta(t, 2300.0, freq, 10.0)
}

func TestVOXPreludeExtendsTransmissionByEightTones(t *testing.T) {
	mode, ok := modes.ByKey(modes.Martin, "M4")
	require.True(t, ok)

	img := solidImage(mode.Width, mode.Height, 0, 0, 0)
	_, plain := encode(t, img, mode, encoder.Options{})
	samples, withVOX := encode(t, img, mode, encoder.Options{VOX: true})

	assert.InDelta(t, float64(plain)+0.8*sampleRate, float64(withVOX), 2)

	a := spectrum.New(sampleRate)
	freq, _ := a.FFTPeak(samples[:spectrum.BodyN])
	assert.InDelta(t, 1900.0, freq, 10.0)
}

func TestEncodeRejectsMismatchedImageSize(t *testing.T) {
	mode, ok := modes.ByKey(modes.Martin, "M1")
	require.True(t, ok)

	var out bytes.Buffer
	gen := tone.NewGenerator(sampleRate, &out)
	err := encoder.New(gen).Encode(image.New(100, 100), mode, encoder.Options{})
	require.Error(t, err)
	assert.Zero(t, out.Len())
}
