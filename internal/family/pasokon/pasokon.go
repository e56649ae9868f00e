// Package pasokon implements the Pasokon family scanline scheduler: sync,
// porch, then R,G,B planes each followed by a porch.
package pasokon

import (
	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/schedule"
)

type Scheduler struct {
	Mode modes.Descriptor
}

func New(d modes.Descriptor) *Scheduler { return &Scheduler{Mode: d} }

func (s *Scheduler) Line(row int, _ []byte) []schedule.Event {
	d := s.Mode
	ev := make([]schedule.Event, 0, 2+len(d.ChannelOrder)*(d.Width+1))
	ev = append(ev, schedule.Sync{FreqHz: d.SyncHz, Ms: d.SyncMs})
	ev = append(ev, schedule.Porch{FreqHz: d.PorchHz, Ms: d.PorchMs})

	for _, plane := range d.ChannelOrder {
		for col := 0; col < d.Width; col++ {
			ev = append(ev, schedule.Pixel{Row: row, Col: col, Plane: plane, Ms: d.PixelDwell})
		}
		ev = append(ev, schedule.Porch{FreqHz: d.PorchHz, Ms: d.PorchMs})
	}
	return ev
}
