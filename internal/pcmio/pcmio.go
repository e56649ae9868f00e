// Package pcmio implements the two audio containers the codec speaks: raw
// headerless PCM16LE mono, and WAV built on github.com/go-audio/wav +
// github.com/go-audio/audio. Both directions implement tone.Generator's
// io.Writer sink contract and a matching Source reader, so internal/encoder
// and internal/decoder never know which container they're talking to.
package pcmio

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tonysln/sstv-go/internal/sstverr"
)

const bitDepth = 16

var errInvalidWAV = errors.New("not a valid RIFF/WAVE file")

// RawSink writes headerless signed 16-bit little-endian PCM samples
// straight through to an underlying io.Writer. It satisfies io.Writer so a
// tone.Generator can write to it directly.
type RawSink struct {
	w io.Writer
}

func NewRawSink(w io.Writer) *RawSink { return &RawSink{w: w} }

func (s *RawSink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if err != nil {
		return n, sstverr.NewIoError("pcmio.RawSink.Write", err)
	}
	return n, nil
}

// RawSource reads headerless signed 16-bit little-endian PCM samples from an
// underlying io.Reader, at a caller-declared sample rate (raw PCM carries no
// rate of its own).
type RawSource struct {
	r          io.Reader
	SampleRate int
}

func NewRawSource(r io.Reader, sampleRate int) *RawSource {
	return &RawSource{r: r, SampleRate: sampleRate}
}

// ReadSamples reads up to len(out) int16 samples, returning the count read.
// A short final read is not an error; io.EOF is returned once no samples
// remain.
func (s *RawSource) ReadSamples(out []int16) (int, error) {
	buf := make([]byte, len(out)*2)
	n, err := io.ReadFull(s.r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return 0, sstverr.NewIoError("pcmio.RawSource.ReadSamples", err)
	}
	count := n / 2
	for i := 0; i < count; i++ {
		out[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
	}
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return count, err
}

// WAVSink wraps a go-audio/wav.Encoder so tone.Generator can write PCM16 mono
// straight into a WAV container. Samples are buffered per Write call and
// flushed immediately; Close must be called once encoding is finished to
// patch the RIFF header's size fields (go-audio/wav writes these lazily).
type WAVSink struct {
	enc *wav.Encoder
}

// NewWAVSink creates a mono PCM16 WAV encoder at sampleRate, writing to w.
func NewWAVSink(w io.WriteSeeker, sampleRate int) *WAVSink {
	return &WAVSink{enc: wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)}
}

func (s *WAVSink) Write(p []byte) (int, error) {
	n := len(p) / 2
	ints := make([]int, n)
	for i := 0; i < n; i++ {
		ints[i] = int(int16(binary.LittleEndian.Uint16(p[i*2:])))
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: s.enc.SampleRate},
		Data:           ints,
		SourceBitDepth: bitDepth,
	}
	if err := s.enc.Write(buf); err != nil {
		return 0, sstverr.NewIoError("pcmio.WAVSink.Write", err)
	}
	return len(p), nil
}

// Close finalizes the WAV container's RIFF header.
func (s *WAVSink) Close() error {
	if err := s.enc.Close(); err != nil {
		return sstverr.NewIoError("pcmio.WAVSink.Close", err)
	}
	return nil
}

// WAVSource wraps a go-audio/wav.Decoder. SampleRate reflects the file's own
// declared rate, which becomes the analyzer's rate; RequestedSampleRate (set
// by the caller) is compared against it purely to report an informational
// mismatch, never to reject the file.
type WAVSource struct {
	dec                 *wav.Decoder
	SampleRate          int
	NumChannels         int
	RequestedSampleRate int
}

// NewWAVSource opens a WAV container for reading. The decoder's format chunk
// is parsed eagerly so SampleRate/NumChannels are available before the first
// read.
func NewWAVSource(r io.ReadSeeker, requestedSampleRate int) (*WAVSource, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, sstverr.NewIoError("pcmio.NewWAVSource", errInvalidWAV)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, sstverr.NewIoError("pcmio.NewWAVSource", err)
	}
	return &WAVSource{
		dec:                 dec,
		SampleRate:          int(dec.SampleRate),
		NumChannels:         int(dec.NumChans),
		RequestedSampleRate: requestedSampleRate,
	}, nil
}

// Mismatch reports whether the file's declared sample rate differs from the
// rate the caller requested for decoding. Informational only: the file's
// own rate always wins.
func (s *WAVSource) Mismatch() (mismatched bool, fileSR, requestedSR int) {
	return s.SampleRate != s.RequestedSampleRate, s.SampleRate, s.RequestedSampleRate
}

// ReadSamples reads up to len(out) mono int16 samples (stereo files are
// downmixed by averaging channels), returning the count read and io.EOF once
// the PCM chunk is exhausted.
func (s *WAVSource) ReadSamples(out []int16) (int, error) {
	ch := s.NumChannels
	if ch < 1 {
		ch = 1
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: ch, SampleRate: s.SampleRate},
		Data:           make([]int, len(out)*ch),
		SourceBitDepth: bitDepth,
	}
	n, err := s.dec.PCMBuffer(buf)
	if err != nil && err != io.EOF {
		return 0, sstverr.NewIoError("pcmio.WAVSource.ReadSamples", err)
	}
	frames := n / ch
	for i := 0; i < frames; i++ {
		sum := 0
		for c := 0; c < ch; c++ {
			sum += buf.Data[i*ch+c]
		}
		out[i] = int16(sum / ch)
	}
	if frames == 0 {
		return 0, io.EOF
	}
	return frames, err
}
