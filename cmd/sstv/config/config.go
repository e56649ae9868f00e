// Package config parses cmd/sstv's command-line surface into a struct,
// built on github.com/spf13/pflag.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// Mode selects which direction cmd/sstv runs.
type Mode string

const (
	ModeEncode Mode = "encode"
	ModeDecode Mode = "decode"
)

// Config holds every flag cmd/sstv accepts.
type Config struct {
	Mode Mode

	ModeKey    string // SSTV mode key, e.g. "M1", "PD120", "FAX480"
	SampleRate int
	Raw        bool // raw PCM16LE instead of WAV container
	VOX        bool // emit the VOX tone prelude before the calibration header
	Progress   bool // drive the bubbletea/lipgloss scanline progress display

	In    string
	Out   string
	Image string // decoded/encoded image file path (PNG or JPEG read on encode; decode writes PNG)

	Parallel bool // use decoder.Parser.DecodeParallel instead of Decode
}

// Parse reads os.Args[1:] into a Config. The first positional argument
// selects the subcommand ("encode" or "decode"); everything after it is
// parsed as flags.
func Parse(args []string) (*Config, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("usage: sstv <encode|decode> [flags]")
	}

	cfg := &Config{}
	switch args[0] {
	case "encode":
		cfg.Mode = ModeEncode
	case "decode":
		cfg.Mode = ModeDecode
	default:
		return nil, fmt.Errorf("unknown subcommand %q: want encode or decode", args[0])
	}

	// Encode needs a mode up front; decode autodetects from the VIS code
	// unless one is forced explicitly.
	defaultMode := ""
	if cfg.Mode == ModeEncode {
		defaultMode = "M1"
	}

	fs := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	fs.StringVar(&cfg.ModeKey, "mode", defaultMode, "SSTV mode key (e.g. M1, S1, PD120, FAX480)")
	fs.IntVar(&cfg.SampleRate, "sr", 44100, "PCM sample rate in Hz")
	fs.BoolVar(&cfg.Raw, "raw", false, "headerless PCM16LE instead of a WAV container")
	fs.BoolVar(&cfg.VOX, "vox", false, "emit the VOX tone prelude before the calibration header")
	fs.BoolVar(&cfg.Progress, "progress", false, "show a live scanline progress display")
	fs.BoolVar(&cfg.Parallel, "parallel", false, "decode the image body across multiple goroutines")
	fs.StringVar(&cfg.In, "in", "", "input file (image for encode, audio for decode)")
	fs.StringVar(&cfg.Out, "out", "", "output file (audio for encode, image for decode)")
	fs.StringVar(&cfg.Image, "image", "", "alias for --in (encode) or --out (decode)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sstv %s [flags]\n", args[0])
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	if cfg.Image != "" {
		if cfg.Mode == ModeEncode && cfg.In == "" {
			cfg.In = cfg.Image
		}
		if cfg.Mode == ModeDecode && cfg.Out == "" {
			cfg.Out = cfg.Image
		}
	}

	return cfg, nil
}
