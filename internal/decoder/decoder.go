// Package decoder recovers an image.Buffer from a PCM stream via the
// idle -> nonsilence -> leader -> vis -> image(mode) -> done state machine.
// It reuses internal/scanline's family dispatch so the exact per-row event
// timing the encoder used to synthesize a line is also what the decoder
// uses to place its analysis windows.
package decoder

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/tonysln/sstv-go/internal/colorspace"
	"github.com/tonysln/sstv-go/internal/family/fax"
	"github.com/tonysln/sstv-go/internal/family/pd"
	"github.com/tonysln/sstv-go/internal/family/robot"
	"github.com/tonysln/sstv-go/internal/image"
	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/scanline"
	"github.com/tonysln/sstv-go/internal/schedule"
	"github.com/tonysln/sstv-go/internal/spectrum"
	"github.com/tonysln/sstv-go/internal/sstverr"
	"github.com/tonysln/sstv-go/internal/sstvlog"
)

const (
	visBitMs     = 30.0
	headerLeadMs = 300.0
	headerMidMs  = 10.0
	headerToneHz = 1900.0

	voxToneMs    = 100.0
	voxToneCount = 8

	// nonSilenceThreshold is an RMS amplitude floor (of a signed 16-bit
	// full scale of 32767) below which a window is line noise regardless of
	// its spectral shape.
	nonSilenceThreshold = 600.0

	// goertzelDetectRatio is the fraction of a window's total energy that
	// must land in the 1900 Hz Goertzel bin for the window to count as the
	// calibration header. A pure on-bin tone concentrates about half its
	// energy there; broadband noise spreads it across all bins.
	goertzelDetectRatio = 0.25

	noSyncBudgetSecs = 2.0
)

// controlTones is the known header/VIS tone set.
var controlTones = []float64{1100, 1200, 1300, 1500, 1900, 2300}

// Source is the minimal audio input contract the parser needs. Both
// pcmio.RawSource and pcmio.WAVSource satisfy it.
type Source interface {
	ReadSamples(out []int16) (int, error)
}

// Options configures one Decode/DecodeParallel call.
type Options struct {
	// ForceMode overrides VIS autodetection. Required for FAX, which
	// carries no VIS code at all and so cannot be autodetected the way the
	// VIS-bearing modes are; for any other family the leader and VIS block
	// are still consumed (the signal carries them regardless) but the
	// decoded code is ignored.
	ForceMode *modes.Descriptor
}

// Result is one completed decode. SampleRateMismatch is left false by
// Parser itself (it only knows the rate it was told to decode at, not a
// file's own declared rate) -- cmd/sstv populates it from
// pcmio.WAVSource.Mismatch after a successful decode.
type Result struct {
	Image              *image.Buffer
	Mode               modes.Descriptor
	ParityOK           bool
	SampleRateMismatch bool
}

// Parser advances through the header/VIS/image state machine against one
// audio source.
type Parser struct {
	src        Source
	sampleRate int
	analyzer   *spectrum.Analyzer
	log        sstvlog.Logger

	pending         []int16
	scheduledSecs   float64
	samplesConsumed int64
}

// NewParser creates a parser reading from src at sampleRate. log may be nil.
func NewParser(src Source, sampleRate int, log sstvlog.Logger) *Parser {
	if log == nil {
		log = sstvlog.Nop{}
	}
	return &Parser{src: src, sampleRate: sampleRate, analyzer: spectrum.New(sampleRate), log: log}
}

// fill grows the pending queue to at least n samples, stopping early once
// the source is exhausted.
func (p *Parser) fill(n int) {
	for len(p.pending) < n {
		chunk := make([]int16, 4096)
		rn, err := p.src.ReadSamples(chunk)
		if rn > 0 {
			p.pending = append(p.pending, chunk[:rn]...)
		}
		if err != nil {
			break
		}
	}
}

// read pulls exactly n samples, padding with silence once the source is
// exhausted -- a transmission's tail commonly trails into nothing right
// after the last scanline ends, and that is not itself an error.
func (p *Parser) read(n int) []float64 {
	p.fill(n)
	out := make([]float64, n)
	avail := len(p.pending)
	if avail > n {
		avail = n
	}
	for i := 0; i < avail; i++ {
		out[i] = float64(p.pending[i])
	}
	p.pending = p.pending[avail:]
	return out
}

// peek returns up to n upcoming samples without consuming them, the one
// window of lookahead the parser ever needs. A short return means the source
// has run dry.
func (p *Parser) peek(n int) []float64 {
	p.fill(n)
	avail := len(p.pending)
	if avail > n {
		avail = n
	}
	out := make([]float64, avail)
	for i := 0; i < avail; i++ {
		out[i] = float64(p.pending[i])
	}
	return out
}

// advance extends the drift-free scheduled clock by durMs and returns how
// many samples must be consumed to stay in lockstep with it -- the
// read-side mirror of tone.Generator.Emit's
// T += durMs/1000; n = round(T*SR) - emitted.
func (p *Parser) advance(durMs float64) int {
	p.scheduledSecs += durMs / 1000.0
	target := int64(math.Round(p.scheduledSecs * float64(p.sampleRate)))
	n := int(target - p.samplesConsumed)
	if n < 0 {
		n = 0
	}
	p.samplesConsumed = target
	return n
}

func (p *Parser) consume(durMs float64) {
	if n := p.advance(durMs); n > 0 {
		p.read(n)
	}
}

func (p *Parser) consumeEvent(ev schedule.Event) {
	if s, ok := ev.(schedule.Sync); ok {
		p.consumeSync(s.Ms)
		return
	}
	p.consume(eventMs(ev))
}

// resyncConsume consumes n unscheduled samples, advancing both halves of the
// drift-free clock together so later scheduled reads stay anchored to the
// detected signal rather than the nominal script.
func (p *Parser) resyncConsume(n int) {
	p.read(n)
	p.samplesConsumed += int64(n)
	p.scheduledSecs += float64(n) / float64(p.sampleRate)
}

// consumeSync consumes a sync pulse's scheduled window, then tracks any
// late-running sync past its nominal end: as long as 1200 Hz still dominates
// the lookahead window, the column cursor is re-anchored forward to the
// detected sync release. The lookahead window spans a few pixel dwells, so
// an on-time sync (whose release is followed immediately by porch or pixel
// tones) never triggers it.
func (p *Parser) consumeSync(ms float64) {
	p.consume(ms)
	maxLate := int(math.Round(ms / 1000.0 * float64(p.sampleRate)))
	for late := 0; late < maxLate; late += spectrum.HeaderHop {
		win := p.peek(spectrum.HeaderN)
		if len(win) < spectrum.HeaderN {
			return
		}
		f, _ := p.analyzer.ClassifyTone(win, controlTones)
		if f != 1200 {
			return
		}
		p.resyncConsume(spectrum.HeaderHop)
	}
}

// estimatePixel consumes one pixel tone's window and returns its luma byte
// via a Hann-windowed FFT peak.
func (p *Parser) estimatePixel(durMs float64) byte {
	n := p.advance(durMs)
	if n <= 0 {
		return 0
	}
	freq, _ := p.analyzer.FFTPeak(p.read(n))
	return colorspace.HzToLumaByte(freq)
}

// estimatePixelFloat is estimatePixel without the final byte quantization,
// for the PD/Robot chroma path whose values feed colorspace.YRYBYToRGB
// directly.
func (p *Parser) estimatePixelFloat(durMs float64) float64 {
	n := p.advance(durMs)
	if n <= 0 {
		return 128.0
	}
	freq, _ := p.analyzer.FFTPeak(p.read(n))
	return colorspace.HzToLumaFloat(freq)
}

func (p *Parser) classifyTone(durMs float64, candidates []float64) float64 {
	n := p.advance(durMs)
	if n <= 0 {
		return 0
	}
	freq, _ := p.analyzer.ClassifyTone(p.read(n), candidates)
	return freq
}

// waitForNonSilence reads fixed silence-detection windows until a
// transmission begins, or the 2-second scan budget elapses with nothing
// found. The primary detector is Goertzel energy at 1900 Hz -- the
// calibration header's defining tone -- gated behind an RMS floor so noise
// with incidental 1900 Hz content never trips it. FAX carries no 1900 Hz
// header, so its forced-mode path sets goertzel1900=false and accepts the
// energy gate alone. The sample at which non-silence is found becomes the
// epoch for the drift-free clock used by every subsequent
// consume/estimatePixel call.
func (p *Parser) waitForNonSilence(goertzel1900 bool) error {
	budget := int(noSyncBudgetSecs * float64(p.sampleRate))
	for seen := 0; seen < budget; seen += spectrum.SilenceN {
		samples := p.peek(spectrum.SilenceN)
		var energy float64
		for _, s := range samples {
			energy += s * s
		}
		if energy >= nonSilenceThreshold*nonSilenceThreshold*float64(spectrum.SilenceN) {
			if !goertzel1900 || p.analyzer.Goertzel(samples, headerToneHz) > goertzelDetectRatio*energy*float64(len(samples)) {
				// The triggering window stays unconsumed so the clock epoch
				// lands on the signal onset, not one window past it.
				p.log.Debug("non-silence detected", "samples_scanned", seen)
				return nil
			}
		}
		p.read(spectrum.SilenceN)
	}
	return sstverr.ErrNoSync
}

func (p *Parser) consumeHeader() {
	p.consume(headerLeadMs)
	p.consume(headerMidMs)
	p.consume(headerLeadMs)
}

// consumeLeaderOrVOX disambiguates the optional VOX prelude from the leader
// proper. Both open with 1900 Hz, so the second 100 ms window decides:
// 1500 Hz means a VOX intro (eight 100 ms tones precede the calibration
// header), anything else means the signal opened directly with the 300 ms
// leader tone and two of its three 100 ms thirds are already consumed.
func (p *Parser) consumeLeaderOrVOX() {
	p.consume(voxToneMs)
	second := p.classifyTone(voxToneMs, controlTones)
	if second == 1500 {
		p.log.Debug("VOX prelude detected")
		for i := 2; i < voxToneCount; i++ {
			p.consume(voxToneMs)
		}
		p.consumeHeader()
		return
	}
	p.consume(headerLeadMs - 2*voxToneMs)
	p.consume(headerMidMs)
	p.consume(headerLeadMs)
}

// visBitFreq classifies one 30 ms VIS bit as the modal windowed-FFT
// frequency across the bit, rounded to the nearest 100 Hz. The modal vote
// makes edge windows straddling the previous or next bit harmless: they are
// always outnumbered by the windows fully inside the bit.
func (p *Parser) visBitFreq() float64 {
	n := p.advance(visBitMs)
	if n <= 0 {
		return 0
	}
	win := p.read(n)
	if n < spectrum.HeaderN {
		f, _ := p.analyzer.FFTPeak(win)
		return roundTo100(f)
	}
	counts := make(map[float64]int)
	var modal float64
	for _, fr := range p.analyzer.ScanPeaks(win, spectrum.HeaderN, spectrum.HeaderHop) {
		r := roundTo100(fr.Freq)
		counts[r]++
		if counts[r] > counts[modal] {
			modal = r
		}
	}
	return modal
}

func roundTo100(f float64) float64 {
	return math.Round(f/100.0) * 100.0
}

// readVIS decodes the start bit, 7 LSB-first data bits, the parity bit, and
// the stop bit, mirroring encoder.emitVIS exactly in reverse: 1100 Hz reads
// as a one, 1300 Hz as a zero.
func (p *Parser) readVIS() (uint8, bool) {
	p.consume(visBitMs) // start bit: always 1200 Hz, carries no data

	var vis uint8
	ones := 0
	for i := 0; i < 7; i++ {
		freq := p.visBitFreq()
		if math.Abs(freq-1100) < math.Abs(freq-1300) {
			vis |= 1 << uint(i)
			ones++
		}
	}

	parityFreq := p.visBitFreq()
	parityIsOne := math.Abs(parityFreq-1100) < math.Abs(parityFreq-1300)
	expectedEven := ones%2 == 0
	parityOK := parityIsOne != expectedEven // 1300 Hz (not-one) signals even parity, per emitVIS

	p.consume(visBitMs) // stop bit

	return vis, parityOK
}

// Decode runs the full state machine once: idle -> nonsilence -> leader ->
// vis -> image(mode) -> done, returning the recovered image and detected
// mode.
func (p *Parser) Decode(ctx context.Context, opts Options) (*Result, error) {
	mode, parityOK, err := p.resolveMode(ctx, opts)
	if err != nil {
		return nil, err
	}

	buf := image.New(mode.Width, mode.Height)

	switch mode.Family {
	case modes.PD:
		err = p.decodePD(ctx, mode, buf)
	case modes.FAX:
		err = p.decodeFAX(ctx, mode, buf)
	case modes.Robot:
		err = p.decodeRobot(ctx, mode, buf)
	default:
		err = p.decodeGeneric(ctx, mode, buf)
	}
	if err != nil {
		return nil, err
	}

	return &Result{Image: buf, Mode: mode, ParityOK: parityOK}, nil
}

// resolveMode runs nonsilence detection and, unless the caller forced a FAX
// mode (which transmits no leader or VIS block at all), the leader/VIS
// stages, returning the descriptor to decode the image body against. A
// forced non-FAX mode still walks the leader and VIS stages -- the signal
// carries them regardless -- but the decoded code is ignored in favor of the
// caller's choice.
func (p *Parser) resolveMode(ctx context.Context, opts Options) (modes.Descriptor, bool, error) {
	if err := ctx.Err(); err != nil {
		return modes.Descriptor{}, false, err
	}

	if opts.ForceMode != nil && opts.ForceMode.Family == modes.FAX {
		if err := p.waitForNonSilence(false); err != nil {
			return modes.Descriptor{}, false, err
		}
		return *opts.ForceMode, true, nil
	}

	if err := p.waitForNonSilence(true); err != nil {
		return modes.Descriptor{}, false, err
	}

	p.consumeLeaderOrVOX()
	vis, parityOK := p.readVIS()
	if opts.ForceMode != nil {
		return *opts.ForceMode, parityOK, nil
	}
	mode, found := modes.ByVIS(vis)
	if !found {
		return modes.Descriptor{}, false, &sstverr.SignalError{
			Reason:       "no mode registered for decoded VIS code",
			Fatal:        true,
			ParityOK:     parityOK,
			BestGuessVIS: vis,
		}
	}
	if !parityOK {
		p.log.Warn("VIS parity mismatch, proceeding with best guess", "vis", vis, "mode", mode.Key)
	}
	return mode, parityOK, nil
}

// decodeGeneric handles Martin, Scottie, Wrasse, and Pasokon: families whose
// channel order is a straight R/G/B (or G/B/R) walk per scanline with no
// chroma carried across rows.
func (p *Parser) decodeGeneric(ctx context.Context, mode modes.Descriptor, buf *image.Buffer) error {
	sched := scanline.New(mode)
	for row := 0; row < mode.Height; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		vals := newPlaneVals(mode)
		for _, ev := range sched.Line(row, nil) {
			if px, ok := ev.(schedule.Pixel); ok {
				vals[px.Plane][px.Col] = p.estimatePixel(px.Ms)
				continue
			}
			p.consumeEvent(ev)
		}
		for col := 0; col < mode.Width; col++ {
			r, g, b := assembleRGB(mode, vals, col)
			buf.Put(row, col, r, g, b)
		}
	}
	return nil
}

// decodeRobot tracks the most recently decoded R-Y/B-Y column values across
// lines, since Robot 36 only refreshes one of the two chroma planes per
// line.
func (p *Parser) decodeRobot(ctx context.Context, mode modes.Descriptor, buf *image.Buffer) error {
	sched := robot.New(mode)
	w := mode.Width
	lastRY := make([]float64, w)
	lastBY := make([]float64, w)
	for i := range lastRY {
		lastRY[i], lastBY[i] = 128.0, 128.0
	}

	for row := 0; row < mode.Height; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		y := make([]byte, w)
		for _, ev := range sched.Line(row, nil) {
			px, ok := ev.(schedule.Pixel)
			if !ok {
				p.consumeEvent(ev)
				continue
			}
			switch px.Plane {
			case modes.PlaneY:
				y[px.Col] = p.estimatePixel(px.Ms)
			case modes.PlaneRY:
				lastRY[px.Col] = p.estimatePixelFloat(px.Ms)
			case modes.PlaneBY:
				lastBY[px.Col] = p.estimatePixelFloat(px.Ms)
			}
		}
		for col := 0; col < w; col++ {
			r, g, b := colorspace.YRYBYToRGB(float64(y[col]), lastRY[col], lastBY[col])
			buf.Put(row, col, r, g, b)
		}
	}
	return nil
}

// decodePD mirrors pd.Scheduler.LinePair exactly: two Y sequences (one per
// row of the pair) bracket a single shared R-Y/B-Y sequence, which this
// function applies to both rows -- the decode-side match to the encoder's
// pair averaging.
func (p *Parser) decodePD(ctx context.Context, mode modes.Descriptor, buf *image.Buffer) error {
	sched := pd.New(mode)
	w := mode.Width
	for row := 0; row < mode.Height; row += 2 {
		if err := ctx.Err(); err != nil {
			return err
		}
		yA := make([]byte, w)
		yB := make([]byte, w)
		ry := make([]float64, w)
		by := make([]float64, w)

		for _, ev := range sched.LinePair(row, nil, nil) {
			px, ok := ev.(schedule.Pixel)
			if !ok {
				p.consumeEvent(ev)
				continue
			}
			switch px.Plane {
			case modes.PlaneY:
				if px.Row == row {
					yA[px.Col] = p.estimatePixel(px.Ms)
				} else {
					yB[px.Col] = p.estimatePixel(px.Ms)
				}
			case modes.PlaneRY:
				ry[px.Col] = p.estimatePixelFloat(px.Ms)
			case modes.PlaneBY:
				by[px.Col] = p.estimatePixelFloat(px.Ms)
			}
		}

		rowB := row + 1
		for col := 0; col < w; col++ {
			r, g, b := colorspace.YRYBYToRGB(float64(yA[col]), ry[col], by[col])
			buf.Put(row, col, r, g, b)
			if rowB < mode.Height {
				r2, g2, b2 := colorspace.YRYBYToRGB(float64(yB[col]), ry[col], by[col])
				buf.Put(rowB, col, r2, g2, b2)
			}
		}
	}
	return nil
}

// decodeFAX first consumes FAX's own 1220-alternation header and 20-rep
// phasing interval (FAX carries no VIS block, so none of resolveMode's
// header/VIS consumption applies to it), then decodes W-wide monochrome
// lines.
func (p *Parser) decodeFAX(ctx context.Context, mode modes.Descriptor, buf *image.Buffer) error {
	for _, ev := range fax.Header() {
		p.consumeEvent(ev)
	}
	sched := fax.New(mode)
	for _, ev := range sched.PhasingInterval() {
		p.consumeEvent(ev)
	}

	for row := 0; row < mode.Height; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		vals := make([]byte, mode.Width)
		for _, ev := range sched.Line(row, nil) {
			if px, ok := ev.(schedule.Pixel); ok {
				vals[px.Col] = p.estimatePixel(px.Ms)
				continue
			}
			p.consumeEvent(ev)
		}
		for col := 0; col < mode.Width; col++ {
			v := vals[col]
			buf.Put(row, col, v, v, v)
		}
	}
	return nil
}

func newPlaneVals(mode modes.Descriptor) map[modes.Plane][]byte {
	vals := make(map[modes.Plane][]byte, len(mode.ChannelOrder))
	for _, pl := range mode.ChannelOrder {
		vals[pl] = make([]byte, mode.Width)
	}
	return vals
}

func assembleRGB(mode modes.Descriptor, vals map[modes.Plane][]byte, col int) (r, g, b byte) {
	for _, pl := range mode.ChannelOrder {
		v := vals[pl][col]
		switch pl {
		case modes.PlaneR:
			r = v
		case modes.PlaneG:
			g = v
		case modes.PlaneB:
			b = v
		case modes.PlaneMono:
			r, g, b = v, v, v
		}
	}
	return r, g, b
}

func eventMs(ev schedule.Event) float64 {
	switch e := ev.(type) {
	case schedule.Sync:
		return e.Ms
	case schedule.Porch:
		return e.Ms
	case schedule.Pixel:
		return e.Ms
	case schedule.Separator:
		return e.Ms
	case schedule.Idle:
		return e.Ms
	default:
		return 0
	}
}

// rowCursor is a standalone drift-free read cursor over an in-memory sample
// slice, used by DecodeParallel's per-worker row decode so workers need not
// share Parser's sequential pending-sample queue.
type rowCursor struct {
	samples       []float64
	analyzer      *spectrum.Analyzer
	sampleRate    int
	scheduledSecs float64
	consumed      int64
}

func (c *rowCursor) advance(durMs float64) []float64 {
	c.scheduledSecs += durMs / 1000.0
	target := int64(math.Round(c.scheduledSecs * float64(c.sampleRate)))
	n := target - c.consumed
	if n < 0 {
		n = 0
	}
	start := c.consumed
	if start > int64(len(c.samples)) {
		start = int64(len(c.samples))
	}
	end := start + n
	if end > int64(len(c.samples)) {
		end = int64(len(c.samples))
	}
	c.consumed = target
	return c.samples[start:end]
}

func (c *rowCursor) consume(durMs float64) { c.advance(durMs) }

func (c *rowCursor) estimatePixel(durMs float64) byte {
	s := c.advance(durMs)
	if len(s) == 0 {
		return 0
	}
	freq, _ := c.analyzer.FFTPeak(s)
	return colorspace.HzToLumaByte(freq)
}

// rowLengthSamples computes the nominal per-row sample count from a steady-
// state line schedule. The first Line call on a fresh scheduler is discarded
// because it may carry one-shot state (Scottie's leading sync pulse) that
// belongs to no row's fixed length. This is an approximation bounded to
// under one sample of drift per row -- acceptable for DecodeParallel;
// Decode's serial path remains the exact, authoritative implementation.
func (p *Parser) rowLengthSamples(mode modes.Descriptor) int {
	sched := scanline.New(mode)
	sched.Line(0, nil)
	var totalMs float64
	for _, ev := range sched.Line(1, nil) {
		totalMs += eventMs(ev)
	}
	return int(math.Round(totalMs / 1000.0 * float64(p.sampleRate)))
}

// DecodeParallel behaves like Decode but fans the image body out across
// runtime.GOMAXPROCS(0) worker goroutines over fixed row ranges once the
// header/VIS stages resolve the mode, each writing into buf under a mutex.
// Rows are assembled in left-to-right order regardless of which worker
// finishes first. PD, Robot, and FAX carry state across lines (chroma
// subsampling, a VIS-less header) incompatible with independent row
// decoding and fall back to Decode's serial path.
func (p *Parser) DecodeParallel(ctx context.Context, opts Options) (*Result, error) {
	mode, parityOK, err := p.resolveMode(ctx, opts)
	if err != nil {
		return nil, err
	}

	buf := image.New(mode.Width, mode.Height)

	if mode.Family == modes.PD || mode.Family == modes.Robot || mode.Family == modes.FAX {
		switch mode.Family {
		case modes.PD:
			err = p.decodePD(ctx, mode, buf)
		case modes.Robot:
			err = p.decodeRobot(ctx, mode, buf)
		case modes.FAX:
			err = p.decodeFAX(ctx, mode, buf)
		}
		if err != nil {
			return nil, err
		}
		return &Result{Image: buf, Mode: mode, ParityOK: parityOK}, nil
	}

	if mode.Family == modes.Scottie {
		// Scottie's one-shot leading sync precedes row 0 and belongs to no
		// row's fixed-length slice.
		p.consumeSync(mode.SyncMs)
	}

	rowSamples := p.rowLengthSamples(mode)
	all := p.read(rowSamples * mode.Height)

	workers := runtime.GOMAXPROCS(0)
	if workers > mode.Height {
		workers = mode.Height
	}
	if workers < 1 {
		workers = 1
	}
	rowsPerWorker := (mode.Height + workers - 1) / workers

	var mu sync.Mutex
	var wg sync.WaitGroup
	for lo := 0; lo < mode.Height; lo += rowsPerWorker {
		hi := lo + rowsPerWorker
		if hi > mode.Height {
			hi = mode.Height
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			localSched := scanline.New(mode)
			if mode.Family == modes.Scottie {
				// Advance past the one-shot leading-sync state so each
				// worker's first row schedules like every later row.
				localSched.Line(0, nil)
			}
			for row := lo; row < hi; row++ {
				off := row * rowSamples
				end := off + rowSamples
				if end > len(all) {
					end = len(all)
				}
				cur := &rowCursor{samples: all[off:end], analyzer: p.analyzer, sampleRate: p.sampleRate}
				vals := newPlaneVals(mode)
				for _, ev := range localSched.Line(row, nil) {
					if px, ok := ev.(schedule.Pixel); ok {
						vals[px.Plane][px.Col] = cur.estimatePixel(px.Ms)
						continue
					}
					cur.consume(eventMs(ev))
				}
				mu.Lock()
				for col := 0; col < mode.Width; col++ {
					r, g, b := assembleRGB(mode, vals, col)
					buf.Put(row, col, r, g, b)
				}
				mu.Unlock()
			}
		}(lo, hi)
	}
	wg.Wait()

	return &Result{Image: buf, Mode: mode, ParityOK: parityOK}, nil
}
