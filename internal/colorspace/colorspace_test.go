package colorspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBToYRYBYRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		r, g, b byte
	}{
		{"black", 0, 0, 0},
		{"white", 255, 255, 255},
		{"red", 255, 0, 0},
		{"green", 0, 255, 0},
		{"blue", 0, 0, 255},
		{"mid-gray", 128, 128, 128},
		{"arbitrary", 37, 201, 89},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			y := RGBToY(c.r, c.g, c.b)
			ry := RGBToRY(c.r, c.g, c.b)
			by := RGBToBY(c.r, c.g, c.b)

			r2, g2, b2 := YRYBYToRGB(y, ry, by)

			assert.InDelta(t, int(c.r), int(r2), 2)
			assert.InDelta(t, int(c.g), int(g2), 2)
			assert.InDelta(t, int(c.b), int(b2), 2)
		})
	}
}

func TestLumaByteToHzRange(t *testing.T) {
	assert.InDelta(t, 1500.0, LumaByteToHz(0), 0.001)
	assert.InDelta(t, 2300.0, LumaByteToHz(255), 0.001)
}

func TestHzToLumaByteInverts(t *testing.T) {
	for v := 0; v < 256; v++ {
		hz := LumaByteToHz(byte(v))
		assert.Equal(t, byte(v), HzToLumaByte(hz))
	}
}

func TestHzToLumaByteClamps(t *testing.T) {
	assert.Equal(t, byte(0), HzToLumaByte(1000))
	assert.Equal(t, byte(255), HzToLumaByte(3000))
}

func TestHzToLumaFloatInvertsLumaFloatToHz(t *testing.T) {
	for _, v := range []float64{-5, 0, 63.5, 128, 200.25, 255} {
		hz := LumaFloatToHz(v)
		assert.InDelta(t, v, HzToLumaFloat(hz), 1e-9)
	}
}
