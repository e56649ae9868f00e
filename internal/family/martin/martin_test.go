package martin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/schedule"
)

func TestLineShapeSyncPorchPerPlane(t *testing.T) {
	mode, ok := modes.ByKey(modes.Martin, "M1")
	require.True(t, ok)

	s := New(mode)
	ev := s.Line(0, nil)

	require.IsType(t, schedule.Sync{}, ev[0])
	require.IsType(t, schedule.Porch{}, ev[1])

	wantLen := 2 + len(mode.ChannelOrder)*(mode.Width+1)
	assert.Equal(t, wantLen, len(ev))

	// Every plane's pixel run is followed by a porch.
	i := 2
	for _, plane := range mode.ChannelOrder {
		for col := 0; col < mode.Width; col++ {
			px, ok := ev[i].(schedule.Pixel)
			require.True(t, ok, "expected Pixel at %d", i)
			assert.Equal(t, plane, px.Plane)
			assert.Equal(t, col, px.Col)
			i++
		}
		require.IsType(t, schedule.Porch{}, ev[i])
		i++
	}
}

func TestLineRepeatsIdenticallyEveryRow(t *testing.T) {
	mode, ok := modes.ByKey(modes.Martin, "M1")
	require.True(t, ok)

	s := New(mode)
	a := s.Line(0, nil)
	b := s.Line(1, nil)
	assert.Equal(t, len(a), len(b))
}
