package pd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonysln/sstv-go/internal/colorspace"
	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/schedule"
)

func TestLinePairSequenceIsSyncPorchYRYBYY(t *testing.T) {
	mode, ok := modes.ByKey(modes.PD, "PD50")
	require.True(t, ok)

	s := New(mode)
	ev := s.LinePair(4, nil, nil)

	require.IsType(t, schedule.Sync{}, ev[0])
	require.IsType(t, schedule.Porch{}, ev[1])

	w := mode.Width
	assert.Equal(t, 2+4*w, len(ev))

	checkPlane := func(start int, plane modes.Plane, row int) {
		for col := 0; col < w; col++ {
			px := ev[start+col].(schedule.Pixel)
			assert.Equal(t, plane, px.Plane)
			assert.Equal(t, row, px.Row)
			assert.Equal(t, col, px.Col)
		}
	}
	checkPlane(2, modes.PlaneY, 4)
	checkPlane(2+w, modes.PlaneRY, 4)
	checkPlane(2+2*w, modes.PlaneBY, 4)
	checkPlane(2+3*w, modes.PlaneY, 5)
}

func TestAveragedChromaIsMeanOfBothRows(t *testing.T) {
	rowA := []byte{255, 0, 0} // pure red
	rowB := []byte{0, 0, 255} // pure blue

	wantRY := (colorspace.RGBToRY(255, 0, 0) + colorspace.RGBToRY(0, 0, 255)) / 2.0
	wantBY := (colorspace.RGBToBY(255, 0, 0) + colorspace.RGBToBY(0, 0, 255)) / 2.0

	assert.InDelta(t, wantRY, AveragedRY(rowA, rowB, 0), 1e-9)
	assert.InDelta(t, wantBY, AveragedBY(rowA, rowB, 0), 1e-9)
}
