// Package fax implements the FAX480 scheduler. FAX has no VIS block; its
// header is 1220 alternations of (2300 Hz, 2.05 ms)/(1500 Hz, 2.05 ms), and a
// phasing interval of 20 repetitions (sync(1200 Hz, 5.12 ms) + W white tones
// at the pixel dwell each). Each line emits sync then W monochrome pixel
// tones whose luminance is 0.3R+0.59G+0.11B.
package fax

import (
	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/schedule"
)

const (
	HeaderHighHz, HeaderLowHz = 2300.0, 1500.0
	HeaderToneMs              = 2.05
	HeaderRepeats             = 1220

	PhasingRepeats = 20
	whiteHz        = 2300.0
)

type Scheduler struct {
	Mode modes.Descriptor
}

func New(d modes.Descriptor) *Scheduler { return &Scheduler{Mode: d} }

// Header produces the 1220-alternation calibration header unique to FAX.
func Header() []schedule.Event {
	ev := make([]schedule.Event, 0, HeaderRepeats*2)
	for i := 0; i < HeaderRepeats; i++ {
		ev = append(ev, schedule.Idle{FreqHz: HeaderHighHz, Ms: HeaderToneMs})
		ev = append(ev, schedule.Idle{FreqHz: HeaderLowHz, Ms: HeaderToneMs})
	}
	return ev
}

// PhasingInterval produces the 20-repetition phasing interval: sync then W
// white pixel tones.
func (s *Scheduler) PhasingInterval() []schedule.Event {
	d := s.Mode
	ev := make([]schedule.Event, 0, PhasingRepeats*(1+d.Width))
	for i := 0; i < PhasingRepeats; i++ {
		ev = append(ev, schedule.Sync{FreqHz: d.SyncHz, Ms: d.SyncMs})
		for col := 0; col < d.Width; col++ {
			ev = append(ev, schedule.Idle{FreqHz: whiteHz, Ms: d.PixelDwell})
		}
	}
	return ev
}

func (s *Scheduler) Line(row int, _ []byte) []schedule.Event {
	d := s.Mode
	ev := make([]schedule.Event, 0, 1+d.Width)
	ev = append(ev, schedule.Sync{FreqHz: d.SyncHz, Ms: d.SyncMs})
	for col := 0; col < d.Width; col++ {
		ev = append(ev, schedule.Pixel{Row: row, Col: col, Plane: modes.PlaneMono, Ms: d.PixelDwell})
	}
	return ev
}
