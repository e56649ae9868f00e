// Package modes is the declarative table of SSTV mode parameters: timings,
// geometry, VIS code, and channel ordering. The table is a compile-time slice
// literal; both lookup directions (VIS code -> descriptor, family+key ->
// descriptor) are derived from it once at init.
package modes

import "fmt"

// Family tags the seven SSTV mode families.
type Family int

const (
	Martin Family = iota
	Scottie
	Wrasse
	Pasokon
	Robot
	PD
	FAX
)

func (f Family) String() string {
	switch f {
	case Martin:
		return "Martin"
	case Scottie:
		return "Scottie"
	case Wrasse:
		return "Wrasse"
	case Pasokon:
		return "Pasokon"
	case Robot:
		return "Robot"
	case PD:
		return "PD"
	case FAX:
		return "FAX"
	default:
		return "Unknown"
	}
}

// Plane identifies a color or luma/chroma plane sampled by a scanline.
type Plane int

const (
	PlaneR Plane = iota
	PlaneG
	PlaneB
	PlaneY
	PlaneRY
	PlaneBY
	PlaneMono // FAX's 0.3R+0.59G+0.11B monochrome luma, distinct from ITU-601 Y
)

// Descriptor is the immutable record describing one SSTV mode. One
// descriptor exists per recognized VIS code; the VIS->Descriptor map is
// injective (asserted at init, see assertInjective below).
type Descriptor struct {
	Family Family
	Key    string // e.g. "M1", "S1", "SC2-180", "PD120", "36", "FAX480"
	Width  int
	Height int

	// PixelDwell is the per-pixel tone duration in milliseconds. PD and
	// Robot modes, which sample luma and chroma at different rates, leave it
	// zero; their dwell times are YScanMs/RYScanMs/BYScanMs below.
	PixelDwell float64

	SyncHz  float64
	SyncMs  float64
	PorchHz float64
	PorchMs float64

	// ChannelOrder is the ordered sequence of planes a scanline walks.
	ChannelOrder []Plane

	VIS uint8

	// Per-family extra timing fields, populated only where relevant; zero
	// otherwise.
	YScanMs  float64
	RYScanMs float64
	BYScanMs float64
	SepHz    float64
	OddSepHz float64
	SepMs    float64
}

var table []Descriptor
var byVIS map[uint8]Descriptor
var byKey map[Family]map[string]Descriptor

func init() {
	table = buildTable()
	byVIS = make(map[uint8]Descriptor, len(table))
	byKey = make(map[Family]map[string]Descriptor, 7)
	for _, d := range table {
		assertInjective(d)
		byVIS[d.VIS] = d
		if byKey[d.Family] == nil {
			byKey[d.Family] = make(map[string]Descriptor)
		}
		byKey[d.Family][d.Key] = d
	}
}

func assertInjective(d Descriptor) {
	if existing, ok := byVIS[d.VIS]; ok {
		panic(fmt.Sprintf("modes: VIS code %d is not injective: %s and %s both claim it", d.VIS, existing.Key, d.Key))
	}
}

// ByVIS looks up a mode descriptor by its 7-bit VIS code.
func ByVIS(vis uint8) (Descriptor, bool) {
	d, ok := byVIS[vis]
	return d, ok
}

// ByKey looks up a mode descriptor by family and mode key (e.g. Martin, "M1").
func ByKey(f Family, key string) (Descriptor, bool) {
	m, ok := byKey[f]
	if !ok {
		return Descriptor{}, false
	}
	d, ok := m[key]
	return d, ok
}

// All returns every registered mode descriptor, in table order.
func All() []Descriptor {
	out := make([]Descriptor, len(table))
	copy(out, table)
	return out
}

func buildTable() []Descriptor {
	gbr := []Plane{PlaneG, PlaneB, PlaneR}
	rgb := []Plane{PlaneR, PlaneG, PlaneB}
	yryby := []Plane{PlaneY, PlaneRY, PlaneBY}

	return []Descriptor{
		// --- Martin family: sync(1200, t_sync), porch(1500, 0.572ms), GBR ---
		{Family: Martin, Key: "M1", Width: 320, Height: 256, PixelDwell: 0.4576, SyncHz: 1200, SyncMs: 4.862, PorchHz: 1500, PorchMs: 0.572, ChannelOrder: gbr, VIS: 44},
		{Family: Martin, Key: "M2", Width: 320, Height: 256, PixelDwell: 0.2288, SyncHz: 1200, SyncMs: 4.862, PorchHz: 1500, PorchMs: 0.572, ChannelOrder: gbr, VIS: 40},
		{Family: Martin, Key: "M3", Width: 320, Height: 128, PixelDwell: 0.4576, SyncHz: 1200, SyncMs: 4.862, PorchHz: 1500, PorchMs: 0.572, ChannelOrder: gbr, VIS: 36},
		{Family: Martin, Key: "M4", Width: 320, Height: 128, PixelDwell: 0.2288, SyncHz: 1200, SyncMs: 4.862, PorchHz: 1500, PorchMs: 0.572, ChannelOrder: gbr, VIS: 32},

		// --- Scottie family: leading one-shot sync, porch, GBR, sync after B ---
		{Family: Scottie, Key: "S1", Width: 320, Height: 256, PixelDwell: 0.4320, SyncHz: 1200, SyncMs: 9, PorchHz: 1500, PorchMs: 1.5, ChannelOrder: gbr, VIS: 60},
		{Family: Scottie, Key: "S2", Width: 320, Height: 256, PixelDwell: 0.2752, SyncHz: 1200, SyncMs: 9, PorchHz: 1500, PorchMs: 1.5, ChannelOrder: gbr, VIS: 56},
		{Family: Scottie, Key: "S3", Width: 320, Height: 128, PixelDwell: 0.4320, SyncHz: 1200, SyncMs: 9, PorchHz: 1500, PorchMs: 1.5, ChannelOrder: gbr, VIS: 52},
		{Family: Scottie, Key: "S4", Width: 320, Height: 128, PixelDwell: 0.2752, SyncHz: 1200, SyncMs: 9, PorchHz: 1500, PorchMs: 1.5, ChannelOrder: gbr, VIS: 48},
		{Family: Scottie, Key: "DX", Width: 320, Height: 256, PixelDwell: 1.0800, SyncHz: 1200, SyncMs: 9, PorchHz: 1500, PorchMs: 1.5, ChannelOrder: gbr, VIS: 76},

		// --- Wrasse family: sync(1200, 5.5225ms), porch(1500, 0.5ms), RGB back-to-back ---
		{Family: Wrasse, Key: "SC2-30", Width: 320, Height: 128, PixelDwell: 0.18125, SyncHz: 1200, SyncMs: 5.5225, PorchHz: 1500, PorchMs: 0.5, ChannelOrder: rgb, VIS: 51},
		{Family: Wrasse, Key: "SC2-60", Width: 320, Height: 256, PixelDwell: 0.18125, SyncHz: 1200, SyncMs: 5.5225, PorchHz: 1500, PorchMs: 0.5, ChannelOrder: rgb, VIS: 59},
		{Family: Wrasse, Key: "SC2-120", Width: 320, Height: 256, PixelDwell: 0.365625, SyncHz: 1200, SyncMs: 5.5225, PorchHz: 1500, PorchMs: 0.5, ChannelOrder: rgb, VIS: 63},
		{Family: Wrasse, Key: "SC2-180", Width: 320, Height: 256, PixelDwell: 0.734375, SyncHz: 1200, SyncMs: 5.5225, PorchHz: 1500, PorchMs: 0.5, ChannelOrder: rgb, VIS: 55},

		// --- Pasokon family: sync, porch, RGB each followed by porch ---
		{Family: Pasokon, Key: "P3", Width: 640, Height: 496, PixelDwell: 0.2083, SyncHz: 1200, SyncMs: 5.208, PorchHz: 1500, PorchMs: 1.042, ChannelOrder: rgb, VIS: 113},
		{Family: Pasokon, Key: "P5", Width: 640, Height: 496, PixelDwell: 0.3125, SyncHz: 1200, SyncMs: 7.813, PorchHz: 1500, PorchMs: 1.563, ChannelOrder: rgb, VIS: 114},
		{Family: Pasokon, Key: "P7", Width: 640, Height: 496, PixelDwell: 0.4167, SyncHz: 1200, SyncMs: 10.417, PorchHz: 1500, PorchMs: 2.083, ChannelOrder: rgb, VIS: 115},

		// --- PD family: two-row block, sync(1200,20ms), porch(1500,2.080ms), Y/R-Y/B-Y ---
		{Family: PD, Key: "PD50", Width: 320, Height: 256, SyncHz: 1200, SyncMs: 20, PorchHz: 1500, PorchMs: 2.080, ChannelOrder: yryby, VIS: 93, YScanMs: 0.286},
		{Family: PD, Key: "PD90", Width: 320, Height: 256, SyncHz: 1200, SyncMs: 20, PorchHz: 1500, PorchMs: 2.080, ChannelOrder: yryby, VIS: 99, YScanMs: 0.532},
		{Family: PD, Key: "PD120", Width: 640, Height: 496, SyncHz: 1200, SyncMs: 20, PorchHz: 1500, PorchMs: 2.080, ChannelOrder: yryby, VIS: 95, YScanMs: 0.19},
		{Family: PD, Key: "PD160", Width: 512, Height: 400, SyncHz: 1200, SyncMs: 20, PorchHz: 1500, PorchMs: 2.080, ChannelOrder: yryby, VIS: 98, YScanMs: 0.382},
		{Family: PD, Key: "PD180", Width: 640, Height: 496, SyncHz: 1200, SyncMs: 20, PorchHz: 1500, PorchMs: 2.080, ChannelOrder: yryby, VIS: 96, YScanMs: 0.286},
		{Family: PD, Key: "PD240", Width: 640, Height: 496, SyncHz: 1200, SyncMs: 20, PorchHz: 1500, PorchMs: 2.080, ChannelOrder: yryby, VIS: 97, YScanMs: 0.382},
		{Family: PD, Key: "PD290", Width: 800, Height: 616, SyncHz: 1200, SyncMs: 20, PorchHz: 1500, PorchMs: 2.080, ChannelOrder: yryby, VIS: 94, YScanMs: 0.286},

		// --- Robot family: sync+porch, Y, separator+porch, half/full R-Y & B-Y ---
		{Family: Robot, Key: "36", Width: 320, Height: 240, SyncHz: 1200, SyncMs: 9, PorchHz: 1500, PorchMs: 3, ChannelOrder: yryby, VIS: 8,
			YScanMs: 0.275, RYScanMs: 0.1375, BYScanMs: 0.1375, SepHz: 1500, OddSepHz: 2300, SepMs: 4.5},
		{Family: Robot, Key: "72", Width: 320, Height: 240, SyncHz: 1200, SyncMs: 9, PorchHz: 1500, PorchMs: 3, ChannelOrder: yryby, VIS: 12,
			YScanMs: 0.43125, RYScanMs: 0.215625, BYScanMs: 0.215625, SepHz: 1500, OddSepHz: 2300, SepMs: 4.5},

		// --- FAX family: no VIS parity/start/stop bits; own header. Monochrome. ---
		{Family: FAX, Key: "FAX480", Width: 512, Height: 480, PixelDwell: 0.512, SyncHz: 1200, SyncMs: 5.12, VIS: 85},
	}
}
