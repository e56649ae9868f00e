// Package wrasse implements the Wrasse SC2 family scanline scheduler:
// sync(1200 Hz, 5.5225 ms), porch(1500 Hz, 0.5 ms), then R,G,B planes each W
// pixel tones back-to-back with no inter-plane porch.
package wrasse

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
	ev := make([]schedule.Event, 0, 2+len(d.ChannelOrder)*d.Width)
	ev = append(ev, schedule.Sync{FreqHz: d.SyncHz, Ms: d.SyncMs})
	ev = append(ev, schedule.Porch{FreqHz: d.PorchHz, Ms: d.PorchMs})

	for _, plane := range d.ChannelOrder {
		for col := 0; col < d.Width; col++ {
			ev = append(ev, schedule.Pixel{Row: row, Col: col, Plane: plane, Ms: d.PixelDwell})
		}
	}
	return ev
}
