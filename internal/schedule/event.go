// Package schedule defines the scan-sequence element types that each
// per-family scheduler in internal/family/* produces and the tone generator
// consumes.
package schedule

import "github.com/tonysln/sstv-go/internal/modes"

// Event is the tagged variant {SyncPulse, Porch, PixelTone, SeparatorTone,
// Idle} that a scanline scheduler emits, one line at a time.
type Event interface {
	isEvent()
}

// Sync is a sync pulse at a fixed frequency and duration.
type Sync struct {
	FreqHz float64
	Ms     float64
}

// Porch is a short fixed-frequency tone separating sync from pixel data.
type Porch struct {
	FreqHz float64
	Ms     float64
}

// Pixel carries one pixel's instantaneous frequency, tagged with its row,
// column, and plane so the scheduler need not pre-resolve frequencies that
// the caller (internal/encoder) computes from the source image.
type Pixel struct {
	Row, Col int
	Plane    modes.Plane
	Ms       float64
}

// Separator is the Robot-family odd/even line separator tone.
type Separator struct {
	FreqHz float64
	Ms     float64
	Odd    bool
}

// Idle is a tone at FreqHz held for a fixed duration with no associated
// pixel: FAX's header alternations and its phasing-interval white tones.
type Idle struct {
	FreqHz float64
	Ms     float64
}

func (Sync) isEvent()      {}
func (Porch) isEvent()     {}
func (Pixel) isEvent()     {}
func (Separator) isEvent() {}
func (Idle) isEvent()      {}
