package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByVISCoversAllTableEntries(t *testing.T) {
	for _, d := range All() {
		found, ok := ByVIS(d.VIS)
		require.True(t, ok, "VIS %d should resolve", d.VIS)
		assert.Equal(t, d.Key, found.Key)
	}
}

func TestByKeyCoversAllTableEntries(t *testing.T) {
	for _, d := range All() {
		found, ok := ByKey(d.Family, d.Key)
		require.True(t, ok, "family %s key %s should resolve", d.Family, d.Key)
		assert.Equal(t, d.VIS, found.VIS)
	}
}

func TestByVISUnknownCodeMisses(t *testing.T) {
	_, ok := ByVIS(255)
	assert.False(t, ok)
}

func TestByKeyUnknownMisses(t *testing.T) {
	_, ok := ByKey(Martin, "not-a-real-mode")
	assert.False(t, ok)
}

func TestTableHasAllRegisteredModes(t *testing.T) {
	// Martin(4) + Scottie(5) + Wrasse(4) + Pasokon(3) + PD(7) + Robot(2) +
	// FAX(1): 26 total, one row per mode key.
	assert.Len(t, All(), 26)
}

func TestFamilyStringNeverUnknownForTableEntries(t *testing.T) {
	for _, d := range All() {
		assert.NotEqual(t, "Unknown", d.Family.String())
	}
}
