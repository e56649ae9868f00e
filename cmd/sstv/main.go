// Command sstv converts images to SSTV audio and back: encode and decode
// subcommands over pflag-parsed flags, a charmbracelet/log diagnostic on
// failure, and exit codes 0 (success), 1 (unknown mode or bad arguments),
// and 3 (image size mismatch). PNG/JPEG handling lives at this boundary
// only; the codec core sees raw RGB bytes.
package main

import (
	"context"
	"errors"
	goimage "image"
	_ "image/jpeg"
	"image/png"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/tonysln/sstv-go/cmd/sstv/config"
	"github.com/tonysln/sstv-go/cmd/sstv/tui"
	"github.com/tonysln/sstv-go/internal/decoder"
	"github.com/tonysln/sstv-go/internal/encoder"
	"github.com/tonysln/sstv-go/internal/image"
	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/pcmio"
	"github.com/tonysln/sstv-go/internal/sstverr"
	"github.com/tonysln/sstv-go/internal/tone"
)

const (
	exitOK           = 0
	exitUnknownMode  = 1
	exitSizeMismatch = 3
)

func main() {
	log := charmlog.NewWithOptions(os.Stderr, charmlog.Options{ReportTimestamp: false})

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Error("argument error", "err", err)
		os.Exit(exitUnknownMode)
	}

	switch cfg.Mode {
	case config.ModeEncode:
		os.Exit(runEncode(cfg, log))
	case config.ModeDecode:
		os.Exit(runDecode(cfg, log))
	}
}

// logAdapter satisfies sstvlog.Logger over a *charmlog.Logger, the concrete
// dependency the rest of internal/* never imports directly.
type logAdapter struct{ l *charmlog.Logger }

func (a logAdapter) Debug(msg string, kv ...any) { a.l.Debug(msg, kv...) }
func (a logAdapter) Info(msg string, kv ...any)  { a.l.Info(msg, kv...) }
func (a logAdapter) Warn(msg string, kv ...any)  { a.l.Warn(msg, kv...) }

func runEncode(cfg *config.Config, log *charmlog.Logger) int {
	mode, ok := resolveMode(cfg.ModeKey)
	if !ok {
		log.Error("unknown mode", "mode", cfg.ModeKey)
		return exitUnknownMode
	}

	img, err := loadImage(cfg.In, mode)
	if err != nil {
		log.Error("failed to load image", "err", err)
		return exitCodeFor(err)
	}

	out, err := os.Create(cfg.Out)
	if err != nil {
		log.Error("failed to create output", "err", err)
		return exitCodeFor(err)
	}
	defer out.Close()

	var sink interface {
		Write([]byte) (int, error)
	}
	if cfg.Raw {
		sink = pcmio.NewRawSink(out)
	} else {
		wavSink := pcmio.NewWAVSink(out, cfg.SampleRate)
		defer wavSink.Close()
		sink = wavSink
	}

	gen := tone.NewGenerator(cfg.SampleRate, sink)
	asm := encoder.New(gen)

	var progress *tui.Progress
	if cfg.Progress {
		progress = tui.NewProgress("encode " + mode.Key)
		go progress.Run()
		defer progress.Finish()
	}

	if err := asm.Encode(img, mode, encoder.Options{VOX: cfg.VOX}); err != nil {
		log.Error("encode failed", "err", err)
		return exitCodeFor(err)
	}
	if progress != nil {
		progress.Advance(mode.Height, mode.Height)
	}

	log.Info("encoded", "mode", mode.Key, "samples", gen.SamplesEmitted())
	return exitOK
}

func runDecode(cfg *config.Config, log *charmlog.Logger) int {
	in, err := os.Open(cfg.In)
	if err != nil {
		log.Error("failed to open input", "err", err)
		return exitCodeFor(err)
	}
	defer in.Close()

	sampleRate := cfg.SampleRate
	var src decoder.Source
	var mismatch bool
	var fileSR, requestedSR int

	if cfg.Raw {
		src = pcmio.NewRawSource(in, sampleRate)
	} else {
		wavSrc, err := pcmio.NewWAVSource(in, sampleRate)
		if err != nil {
			log.Error("failed to open WAV", "err", err)
			return exitCodeFor(err)
		}
		mismatch, fileSR, requestedSR = wavSrc.Mismatch()
		sampleRate = wavSrc.SampleRate
		src = wavSrc
	}
	if mismatch {
		log.Warn("sample rate mismatch, using the file's own rate", "file_sr", fileSR, "requested_sr", requestedSR)
	}

	parser := decoder.NewParser(src, sampleRate, logAdapter{log})

	// An explicit --mode on decode overrides VIS autodetection. FAX can
	// only be decoded this way: it transmits no VIS code.
	var opts decoder.Options
	if cfg.ModeKey != "" {
		mode, ok := resolveMode(cfg.ModeKey)
		if !ok {
			log.Error("unknown mode", "mode", cfg.ModeKey)
			return exitUnknownMode
		}
		opts.ForceMode = &mode
	}

	var progress *tui.Progress
	if cfg.Progress {
		progress = tui.NewProgress("decode")
		go progress.Run()
		defer progress.Finish()
	}

	var result *decoder.Result
	if cfg.Parallel {
		result, err = parser.DecodeParallel(context.Background(), opts)
	} else {
		result, err = parser.Decode(context.Background(), opts)
	}
	if err != nil {
		var sigErr *sstverr.SignalError
		if errors.As(err, &sigErr) {
			log.Error("signal error", "reason", sigErr.Reason, "parity_ok", sigErr.ParityOK, "best_guess_vis", sigErr.BestGuessVIS)
		} else {
			log.Error("decode failed", "err", err)
		}
		return exitCodeFor(err)
	}
	result.SampleRateMismatch = mismatch
	if progress != nil {
		progress.Advance(result.Mode.Height, result.Mode.Height)
	}
	if !result.ParityOK {
		log.Warn("VIS parity mismatch, image may be corrupt", "mode", result.Mode.Key)
	}

	if err := saveImage(cfg.Out, result.Image); err != nil {
		log.Error("failed to save image", "err", err)
		return exitCodeFor(err)
	}

	log.Info("decoded", "mode", result.Mode.Key, "width", result.Image.W, "height", result.Image.H)
	return exitOK
}

func resolveMode(key string) (modes.Descriptor, bool) {
	for _, d := range modes.All() {
		if strings.EqualFold(d.Key, key) {
			return d, true
		}
	}
	return modes.Descriptor{}, false
}

func exitCodeFor(err error) int {
	var cfgErr *sstverr.ConfigError
	if errors.As(err, &cfgErr) {
		return exitSizeMismatch
	}
	return exitUnknownMode
}

func loadImage(path string, mode modes.Descriptor) (*image.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, sstverr.NewIoError("loadImage", err)
	}
	defer f.Close()

	src, _, err := goimage.Decode(f)
	if err != nil {
		return nil, sstverr.NewIoError("loadImage", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() != mode.Width || bounds.Dy() != mode.Height {
		return nil, sstverr.NewConfigError("image %dx%d does not match mode %s (%dx%d)",
			bounds.Dx(), bounds.Dy(), mode.Key, mode.Width, mode.Height)
	}

	buf := image.New(mode.Width, mode.Height)
	for y := 0; y < mode.Height; y++ {
		for x := 0; x < mode.Width; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			buf.Put(y, x, byte(r>>8), byte(g>>8), byte(b>>8))
		}
	}
	return buf, nil
}

func saveImage(path string, buf *image.Buffer) error {
	return writePNG(path, buf)
}

func writePNG(path string, buf *image.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return sstverr.NewIoError("writePNG", err)
	}
	defer f.Close()

	img := goimage.NewRGBA(goimage.Rect(0, 0, buf.W, buf.H))
	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			r, g, b := buf.Get(y, x)
			i := img.PixOffset(x, y)
			img.Pix[i] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = 255
		}
	}
	if err := png.Encode(f, img); err != nil {
		return sstverr.NewIoError("writePNG", err)
	}
	return nil
}
