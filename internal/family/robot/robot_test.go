package robot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/schedule"
)

func planesOf(ev []schedule.Event) []modes.Plane {
	var out []modes.Plane
	seen := map[modes.Plane]bool{}
	for _, e := range ev {
		if px, ok := e.(schedule.Pixel); ok && !seen[px.Plane] {
			seen[px.Plane] = true
			out = append(out, px.Plane)
		}
	}
	return out
}

func TestMode36AlternatesRYAndBYAcrossLines(t *testing.T) {
	mode, ok := modes.ByKey(modes.Robot, "36")
	require.True(t, ok)

	s := New(mode)
	even := planesOf(s.Line(0, nil))
	odd := planesOf(s.Line(1, nil))

	assert.Equal(t, []modes.Plane{modes.PlaneY, modes.PlaneRY}, even)
	assert.Equal(t, []modes.Plane{modes.PlaneY, modes.PlaneBY}, odd)

	// A third line flips back to R-Y.
	third := planesOf(s.Line(2, nil))
	assert.Equal(t, even, third)
}

func TestMode72EmitsBothChromaPlanesEveryLine(t *testing.T) {
	mode, ok := modes.ByKey(modes.Robot, "72")
	require.True(t, ok)

	s := New(mode)
	planes := planesOf(s.Line(0, nil))
	assert.Equal(t, []modes.Plane{modes.PlaneY, modes.PlaneRY, modes.PlaneBY}, planes)

	// Both separator tones appear: even (non-odd) then odd.
	var seps []schedule.Separator
	for _, e := range s.Line(1, nil) {
		if sep, ok := e.(schedule.Separator); ok {
			seps = append(seps, sep)
		}
	}
	require.Len(t, seps, 2)
	assert.False(t, seps[0].Odd)
	assert.True(t, seps[1].Odd)
}
