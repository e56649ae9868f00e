// Package scottie implements the Scottie family scanline scheduler: a
// one-shot leading sync pulse on the first line, then per line porch, G, B
// (with a sync pulse after B), R — the R plane terminates the line with no
// trailing porch.
package scottie

import (
	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/schedule"
)

type Scheduler struct {
	Mode          modes.Descriptor
	firstLineDone bool
}

func New(d modes.Descriptor) *Scheduler { return &Scheduler{Mode: d} }

func (s *Scheduler) Line(row int, _ []byte) []schedule.Event {
	d := s.Mode
	ev := make([]schedule.Event, 0, 2+len(d.ChannelOrder)*(d.Width+1))

	if !s.firstLineDone {
		ev = append(ev, schedule.Sync{FreqHz: d.SyncHz, Ms: d.SyncMs})
		s.firstLineDone = true
	}

	ev = append(ev, schedule.Porch{FreqHz: d.PorchHz, Ms: d.PorchMs})

	for j, plane := range d.ChannelOrder {
		for col := 0; col < d.Width; col++ {
			ev = append(ev, schedule.Pixel{Row: row, Col: col, Plane: plane, Ms: d.PixelDwell})
		}
		isB := j == 1 // ChannelOrder is [G,B,R]; B is index 1
		isR := j == 2
		if isB {
			ev = append(ev, schedule.Sync{FreqHz: d.SyncHz, Ms: d.SyncMs})
		}
		if !isR {
			ev = append(ev, schedule.Porch{FreqHz: d.PorchHz, Ms: d.PorchMs})
		}
	}
	return ev
}
