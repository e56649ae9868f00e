// Package pd implements the PD family scanline scheduler. Two consecutive
// image rows are encoded as one line-pair: sync(1200 Hz, 20 ms),
// porch(1500 Hz, 2.080 ms), Y of the first row, R-Y and B-Y averaged across
// the pair, then Y of the second row.
//
// Chroma is averaged across both rows of the pair; internal/decoder's PD
// path applies the single recovered chroma sequence to both rows, matching.
package pd

import (
	"github.com/tonysln/sstv-go/internal/colorspace"
	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/schedule"
)

type Scheduler struct {
	Mode modes.Descriptor
}

func New(d modes.Descriptor) *Scheduler { return &Scheduler{Mode: d} }

// LinePair produces the scan sequence for one PD line-pair: rowA is the
// first (even) image row, rowB the second (odd). pairIndex is rowA's row
// number (always even).
func (s *Scheduler) LinePair(pairIndex int, rowA, rowB []byte) []schedule.Event {
	d := s.Mode
	w := d.Width
	ev := make([]schedule.Event, 0, 2+3*w)

	ev = append(ev, schedule.Sync{FreqHz: d.SyncHz, Ms: d.SyncMs})
	ev = append(ev, schedule.Porch{FreqHz: d.PorchHz, Ms: d.PorchMs})

	for col := 0; col < w; col++ {
		ev = append(ev, schedule.Pixel{Row: pairIndex, Col: col, Plane: modes.PlaneY, Ms: d.YScanMs})
	}
	for col := 0; col < w; col++ {
		ev = append(ev, schedule.Pixel{Row: pairIndex, Col: col, Plane: modes.PlaneRY, Ms: d.YScanMs})
	}
	for col := 0; col < w; col++ {
		ev = append(ev, schedule.Pixel{Row: pairIndex, Col: col, Plane: modes.PlaneBY, Ms: d.YScanMs})
	}
	for col := 0; col < w; col++ {
		ev = append(ev, schedule.Pixel{Row: pairIndex + 1, Col: col, Plane: modes.PlaneY, Ms: d.YScanMs})
	}
	return ev
}

// AveragedRY and AveragedBY compute the pair-averaged chroma value for
// column col, given both rows' RGB bytes.
func AveragedRY(rowA, rowB []byte, col int) float64 {
	ra, ga, ba := rowA[col*3], rowA[col*3+1], rowA[col*3+2]
	rb, gb, bb := rowB[col*3], rowB[col*3+1], rowB[col*3+2]
	return (colorspace.RGBToRY(ra, ga, ba) + colorspace.RGBToRY(rb, gb, bb)) / 2.0
}

func AveragedBY(rowA, rowB []byte, col int) float64 {
	ra, ga, ba := rowA[col*3], rowA[col*3+1], rowA[col*3+2]
	rb, gb, bb := rowB[col*3], rowB[col*3+1], rowB[col*3+2]
	return (colorspace.RGBToBY(ra, ga, ba) + colorspace.RGBToBY(rb, gb, bb)) / 2.0
}
