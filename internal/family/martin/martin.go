// Package martin implements the Martin family scanline scheduler:
// sync(1200 Hz), porch(1500 Hz, 0.572 ms), then G,B,R planes each W pixel
// tones, each plane followed by a porch.
package martin

import (
	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/schedule"
)

// Scheduler has no per-line state: every Martin line is identical in shape.
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
