// Package robot implements the Robot family scanline scheduler. Mode 36
// alternates between (Y + even-separator(1500 Hz) + porch(1900 Hz) + R-Y
// half-line) and (Y + odd-separator(2300 Hz) + porch(1900 Hz) + B-Y
// half-line) on successive lines. Mode 72 emits, in each line: sync, porch,
// full Y, even-sep + porch + R-Y, odd-sep + porch + B-Y. "Half-line" chroma
// iterates the full pixel width at roughly half the Y plane's dwell time.
package robot

import (
	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/schedule"
)

const (
	t2Hz, t2Ms = 1900.0, 1.5 // porch following the even separator, and mode 36's odd separator
	t3Hz, t3Ms = 1500.0, 1.5 // porch following the odd separator (mode 72 only)
)

type Scheduler struct {
	Mode    modes.Descriptor
	oddLine bool
}

func New(d modes.Descriptor) *Scheduler { return &Scheduler{Mode: d} }

func (s *Scheduler) Line(row int, _ []byte) []schedule.Event {
	d := s.Mode
	w := d.Width
	ev := make([]schedule.Event, 0, 4+2*w)

	ev = append(ev, schedule.Sync{FreqHz: d.SyncHz, Ms: d.SyncMs})
	ev = append(ev, schedule.Porch{FreqHz: d.PorchHz, Ms: d.PorchMs})
	for col := 0; col < w; col++ {
		ev = append(ev, schedule.Pixel{Row: row, Col: col, Plane: modes.PlaneY, Ms: d.YScanMs})
	}

	switch d.Key {
	case "36":
		if s.oddLine {
			ev = append(ev, schedule.Separator{FreqHz: d.OddSepHz, Ms: d.SepMs, Odd: true})
			ev = append(ev, schedule.Porch{FreqHz: t2Hz, Ms: t2Ms})
			for col := 0; col < w; col++ {
				ev = append(ev, schedule.Pixel{Row: row, Col: col, Plane: modes.PlaneBY, Ms: d.BYScanMs})
			}
		} else {
			ev = append(ev, schedule.Separator{FreqHz: d.SepHz, Ms: d.SepMs, Odd: false})
			ev = append(ev, schedule.Porch{FreqHz: t2Hz, Ms: t2Ms})
			for col := 0; col < w; col++ {
				ev = append(ev, schedule.Pixel{Row: row, Col: col, Plane: modes.PlaneRY, Ms: d.RYScanMs})
			}
		}
		s.oddLine = !s.oddLine

	case "72":
		ev = append(ev, schedule.Separator{FreqHz: d.SepHz, Ms: d.SepMs, Odd: false})
		ev = append(ev, schedule.Porch{FreqHz: t2Hz, Ms: t2Ms})
		for col := 0; col < w; col++ {
			ev = append(ev, schedule.Pixel{Row: row, Col: col, Plane: modes.PlaneRY, Ms: d.RYScanMs})
		}

		ev = append(ev, schedule.Separator{FreqHz: d.OddSepHz, Ms: d.SepMs, Odd: true})
		ev = append(ev, schedule.Porch{FreqHz: t3Hz, Ms: t3Ms})
		for col := 0; col < w; col++ {
			ev = append(ev, schedule.Pixel{Row: row, Col: col, Plane: modes.PlaneBY, Ms: d.BYScanMs})
		}
	}

	return ev
}
