package wrasse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/schedule"
)

func TestLineHasNoInterPlanePorch(t *testing.T) {
	mode, ok := modes.ByKey(modes.Wrasse, "SC2-30")
	require.True(t, ok)

	s := New(mode)
	ev := s.Line(0, nil)

	require.IsType(t, schedule.Sync{}, ev[0])
	require.IsType(t, schedule.Porch{}, ev[1])
	assert.Equal(t, 2+len(mode.ChannelOrder)*mode.Width, len(ev))

	for _, e := range ev[2:] {
		_, isPorch := e.(schedule.Porch)
		assert.False(t, isPorch, "wrasse planes run back-to-back with no porch")
	}
}

func TestPlaneOrderIsRGB(t *testing.T) {
	mode, ok := modes.ByKey(modes.Wrasse, "SC2-30")
	require.True(t, ok)

	s := New(mode)
	ev := s.Line(0, nil)

	first := ev[2].(schedule.Pixel)
	lastOfR := ev[2+mode.Width-1].(schedule.Pixel)
	assert.Equal(t, modes.PlaneR, first.Plane)
	assert.Equal(t, modes.PlaneR, lastOfR.Plane)

	firstOfG := ev[2+mode.Width].(schedule.Pixel)
	assert.Equal(t, modes.PlaneG, firstOfG.Plane)
}
