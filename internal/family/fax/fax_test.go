package fax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/schedule"
)

func TestHeaderAlternatesHighLow(t *testing.T) {
	ev := Header()
	require.Len(t, ev, HeaderRepeats*2)
	for i := 0; i < len(ev); i += 2 {
		high := ev[i].(schedule.Idle)
		low := ev[i+1].(schedule.Idle)
		assert.Equal(t, HeaderHighHz, high.FreqHz)
		assert.Equal(t, HeaderLowHz, low.FreqHz)
	}
}

func TestHeaderDurationIsJustOverFiveSeconds(t *testing.T) {
	var totalMs float64
	for _, e := range Header() {
		totalMs += e.(schedule.Idle).Ms
	}
	assert.InDelta(t, 5002.0, totalMs, 1e-9) // 1220 pairs of 2.05 ms tones
}

func TestPhasingIntervalRepeatsSyncAndWhiteRow(t *testing.T) {
	mode, ok := modes.ByKey(modes.FAX, "FAX480")
	require.True(t, ok)

	s := New(mode)
	ev := s.PhasingInterval()
	require.Len(t, ev, PhasingRepeats*(1+mode.Width))

	require.IsType(t, schedule.Sync{}, ev[0])
	for col := 0; col < mode.Width; col++ {
		idle := ev[1+col].(schedule.Idle)
		assert.Equal(t, whiteHz, idle.FreqHz)
	}
}

func TestLineIsSyncThenMonoPixels(t *testing.T) {
	mode, ok := modes.ByKey(modes.FAX, "FAX480")
	require.True(t, ok)

	s := New(mode)
	ev := s.Line(10, nil)
	require.Len(t, ev, 1+mode.Width)
	require.IsType(t, schedule.Sync{}, ev[0])

	for col := 0; col < mode.Width; col++ {
		px := ev[1+col].(schedule.Pixel)
		assert.Equal(t, modes.PlaneMono, px.Plane)
		assert.Equal(t, 10, px.Row)
		assert.Equal(t, col, px.Col)
	}
}
