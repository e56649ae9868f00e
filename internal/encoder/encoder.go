// Package encoder assembles a full SSTV transmission: the optional VOX
// intro, the calibration header, the VIS block, and all scanlines,
// delegating per-line timing to the mode's scheduler and per-sample
// synthesis to internal/tone.
package encoder

import (
	"github.com/tonysln/sstv-go/internal/colorspace"
	"github.com/tonysln/sstv-go/internal/family/fax"
	"github.com/tonysln/sstv-go/internal/family/pd"
	"github.com/tonysln/sstv-go/internal/image"
	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/scanline"
	"github.com/tonysln/sstv-go/internal/schedule"
	"github.com/tonysln/sstv-go/internal/sstverr"
	"github.com/tonysln/sstv-go/internal/tone"
)

// voxTones is the tone prelude that wakes voice-operated receivers.
var voxTones = []float64{1900, 1500, 1900, 1500, 2300, 1500, 2300, 1500}

const voxToneMs = 100.0

// Options configures one Encode call.
type Options struct {
	VOX bool
}

// Assembler drives a tone.Generator through one full SSTV transmission.
type Assembler struct {
	gen *tone.Generator
}

// New creates an Assembler writing to gen.
func New(gen *tone.Generator) *Assembler {
	return &Assembler{gen: gen}
}

// Encode sequences and emits one full transmission for img under mode.
func (a *Assembler) Encode(img *image.Buffer, mode modes.Descriptor, opts Options) error {
	if img.W != mode.Width || img.H != mode.Height {
		return sstverr.NewConfigError("image %dx%d does not match mode %s (%dx%d)", img.W, img.H, mode.Key, mode.Width, mode.Height)
	}

	if opts.VOX {
		if err := a.emitVOX(); err != nil {
			return err
		}
	}

	if mode.Family == modes.FAX {
		return a.encodeFAX(img, mode)
	}

	if err := a.emitHeader(); err != nil {
		return err
	}
	if err := a.emitVIS(mode.VIS); err != nil {
		return err
	}
	return a.encodeImage(img, mode)
}

func (a *Assembler) emitVOX() error {
	for _, hz := range voxTones {
		if err := a.gen.Emit(hz, voxToneMs); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) emitHeader() error {
	if err := a.gen.Emit(1900, 300); err != nil {
		return err
	}
	if err := a.gen.Emit(1200, 10); err != nil {
		return err
	}
	return a.gen.Emit(1900, 300)
}

// emitVIS emits the 1200 Hz start bit, 7 LSB-first data bits (1100 Hz one,
// 1300 Hz zero), the even-parity bit, and the 1200 Hz stop bit, 30 ms each.
func (a *Assembler) emitVIS(vis uint8) error {
	if err := a.gen.Emit(1200, 30); err != nil { // start bit
		return err
	}
	ones := 0
	for i := 0; i < 7; i++ {
		bit := (vis >> uint(i)) & 1
		hz := 1300.0
		if bit == 1 {
			hz = 1100.0
			ones++
		}
		if err := a.gen.Emit(hz, 30); err != nil {
			return err
		}
	}
	evenParity := ones%2 == 0
	parityHz := 1100.0
	if evenParity {
		parityHz = 1300.0
	}
	if err := a.gen.Emit(parityHz, 30); err != nil {
		return err
	}
	return a.gen.Emit(1200, 30) // stop bit
}

// encodeImage walks all scanlines top to bottom, delegating to the mode's
// family scheduler, with PD's two-row block handled specially.
func (a *Assembler) encodeImage(img *image.Buffer, mode modes.Descriptor) error {
	if mode.Family == modes.PD {
		return a.encodePD(img, mode)
	}

	sched := scanline.New(mode)
	for row := 0; row < mode.Height; row++ {
		events := sched.Line(row, img.Row(row))
		if err := a.play(events, img, mode); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) encodePD(img *image.Buffer, mode modes.Descriptor) error {
	sched := pd.New(mode)
	for row := 0; row < mode.Height; row += 2 {
		rowB := row + 1
		if rowB >= mode.Height {
			rowB = row // degrade gracefully on an odd height
		}
		events := sched.LinePair(row, img.Row(row), img.Row(rowB))
		if err := a.play(events, img, mode); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) encodeFAX(img *image.Buffer, mode modes.Descriptor) error {
	for _, ev := range fax.Header() {
		if err := a.playOne(ev, img, mode); err != nil {
			return err
		}
	}
	sched := fax.New(mode)
	for _, ev := range sched.PhasingInterval() {
		if err := a.playOne(ev, img, mode); err != nil {
			return err
		}
	}
	for row := 0; row < mode.Height; row++ {
		events := sched.Line(row, img.Row(row))
		if err := a.play(events, img, mode); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) play(events []schedule.Event, img *image.Buffer, mode modes.Descriptor) error {
	for _, ev := range events {
		if err := a.playOne(ev, img, mode); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) playOne(ev schedule.Event, img *image.Buffer, mode modes.Descriptor) error {
	switch e := ev.(type) {
	case schedule.Sync:
		return a.gen.Emit(e.FreqHz, e.Ms)
	case schedule.Porch:
		return a.gen.Emit(e.FreqHz, e.Ms)
	case schedule.Separator:
		return a.gen.Emit(e.FreqHz, e.Ms)
	case schedule.Idle:
		return a.gen.Emit(e.FreqHz, e.Ms)
	case schedule.Pixel:
		hz := pixelFreq(img, mode, e)
		return a.gen.Emit(hz, e.Ms)
	default:
		return sstverr.NewConfigError("unknown scan event %T", ev)
	}
}

// pixelFreq resolves one Pixel event's instantaneous frequency from the
// source image, per the mode's channel ordering and colorspace.
func pixelFreq(img *image.Buffer, mode modes.Descriptor, e schedule.Pixel) float64 {
	if mode.Family == modes.PD && (e.Plane == modes.PlaneRY || e.Plane == modes.PlaneBY) {
		rowA, rowB := img.Row(e.Row), img.Row(e.Row+1)
		if rowB == nil {
			rowB = rowA
		}
		if e.Plane == modes.PlaneRY {
			return colorspace.LumaFloatToHz(pd.AveragedRY(rowA, rowB, e.Col))
		}
		return colorspace.LumaFloatToHz(pd.AveragedBY(rowA, rowB, e.Col))
	}

	r, g, b := img.Get(e.Row, e.Col)
	switch e.Plane {
	case modes.PlaneR:
		return colorspace.LumaByteToHz(r)
	case modes.PlaneG:
		return colorspace.LumaByteToHz(g)
	case modes.PlaneB:
		return colorspace.LumaByteToHz(b)
	case modes.PlaneY:
		return colorspace.LumaFloatToHz(colorspace.RGBToY(r, g, b))
	case modes.PlaneRY:
		return colorspace.LumaFloatToHz(colorspace.RGBToRY(r, g, b))
	case modes.PlaneBY:
		return colorspace.LumaFloatToHz(colorspace.RGBToBY(r, g, b))
	case modes.PlaneMono:
		mono := 0.3*float64(r) + 0.59*float64(g) + 0.11*float64(b)
		return colorspace.LumaFloatToHz(mono)
	default:
		return colorspace.LumaByteToHz(0)
	}
}
