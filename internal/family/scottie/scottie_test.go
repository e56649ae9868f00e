package scottie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/schedule"
)

func TestOnlyFirstLineCarriesLeadingSync(t *testing.T) {
	mode, ok := modes.ByKey(modes.Scottie, "S1")
	require.True(t, ok)

	s := New(mode)
	first := s.Line(0, nil)
	second := s.Line(1, nil)

	require.IsType(t, schedule.Sync{}, first[0])
	require.IsType(t, schedule.Porch{}, second[0])
	assert.Equal(t, len(first), len(second)+1)
}

func TestRPlaneHasNoTrailingPorch(t *testing.T) {
	mode, ok := modes.ByKey(modes.Scottie, "S1")
	require.True(t, ok)

	s := New(mode)
	ev := s.Line(0, nil)
	last, ok := ev[len(ev)-1].(schedule.Pixel)
	require.True(t, ok)
	assert.Equal(t, modes.PlaneR, last.Plane)
	assert.Equal(t, mode.Width-1, last.Col)
}

func TestSyncPulseFollowsBPlane(t *testing.T) {
	mode, ok := modes.ByKey(modes.Scottie, "S1")
	require.True(t, ok)

	s := New(mode)
	ev := s.Line(0, nil)

	foundSyncAfterB := false
	for i, e := range ev {
		if px, ok := e.(schedule.Pixel); ok && px.Plane == modes.PlaneB && px.Col == mode.Width-1 {
			_, isSync := ev[i+1].(schedule.Sync)
			foundSyncAfterB = isSync
		}
	}
	assert.True(t, foundSyncAfterB)
}
