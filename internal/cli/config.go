package cli

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	lerrors "github.com/matzehuels/lineart/pkg/errors"
	"github.com/matzehuels/lineart/pkg/lineart"
	"github.com/matzehuels/lineart/pkg/sweep"
)

// fileConfig is the layout of a --config TOML file:
//
//	output = "drawings"
//	jobs = 4
//
//	[sweep]
//	method = "gaussian"
//	blur_number = 3
//	target_width = 1024
//	target_height = 768
type fileConfig struct {
	Output string       `toml:"output"`
	Jobs   int          `toml:"jobs"`
	Sweep  sweep.Params `toml:"sweep"`
}

// loadConfig reads a config file. Keys missing from the file keep the values
// in base; unknown keys are an error.
func loadConfig(path string, base sweep.Params) (fileConfig, error) {
	cfg := fileConfig{Sweep: base}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, lerrors.Wrap(lerrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, lerrors.Wrap(lerrors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, lerrors.New(lerrors.ErrCodeInvalidConfig, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// sweepFlags are the sweep parameters shared by generate and grid.
type sweepFlags struct {
	config string

	width, height uint32
	minBlur       int32
	blurStep      int32
	blurCount     uint8
	minDarken     uint8
	darkenStep    uint8
	darkenCount   uint8
	method        string
	denoise       bool
}

func (f *sweepFlags) register(flags *pflag.FlagSet) {
	d := sweep.DefaultParams()
	flags.StringVar(&f.config, "config", "", "TOML config file with a [sweep] table")
	flags.Uint32Var(&f.width, "width", d.TargetWidth, "target width; with --height bounds the pixel area (0: no resize)")
	flags.Uint32Var(&f.height, "height", d.TargetHeight, "target height; with --width bounds the pixel area (0: no resize)")
	flags.Int32Var(&f.minBlur, "min-blur", d.MinBlurRadius, "smallest blur radius")
	flags.Int32Var(&f.blurStep, "blur-step", d.BlurStep, "blur radius increment")
	flags.Uint8Var(&f.blurCount, "blur-count", d.BlurNumber, "number of blur radii")
	flags.Uint8Var(&f.minDarken, "min-darken", d.MinDarkenNumber, "smallest darken level")
	flags.Uint8Var(&f.darkenStep, "darken-step", d.DarkenStep, "darken level increment")
	flags.Uint8Var(&f.darkenCount, "darken-count", d.DarkenNumber, "number of darken levels")
	flags.StringVar(&f.method, "method", d.Method.String(), "drawing method: sobel, gaussian")
	flags.BoolVar(&f.denoise, "denoise", d.Denoise, "smooth drawings before keying out the background")
}

// resolve merges defaults, the config file and explicitly set flags, in
// that order of precedence (later wins).
func (f *sweepFlags) resolve(flags *pflag.FlagSet) (sweep.Params, fileConfig, error) {
	cfg := fileConfig{Sweep: sweep.DefaultParams()}
	if f.config != "" {
		var err error
		if cfg, err = loadConfig(f.config, cfg.Sweep); err != nil {
			return cfg.Sweep, cfg, err
		}
	}

	p := &cfg.Sweep
	if flags.Changed("width") {
		p.TargetWidth = f.width
	}
	if flags.Changed("height") {
		p.TargetHeight = f.height
	}
	if flags.Changed("min-blur") {
		p.MinBlurRadius = f.minBlur
	}
	if flags.Changed("blur-step") {
		p.BlurStep = f.blurStep
	}
	if flags.Changed("blur-count") {
		p.BlurNumber = f.blurCount
	}
	if flags.Changed("min-darken") {
		p.MinDarkenNumber = f.minDarken
	}
	if flags.Changed("darken-step") {
		p.DarkenStep = f.darkenStep
	}
	if flags.Changed("darken-count") {
		p.DarkenNumber = f.darkenCount
	}
	if flags.Changed("method") {
		m, err := lineart.ParseMethod(f.method)
		if err != nil {
			return *p, cfg, err
		}
		p.Method = m
	}
	if flags.Changed("denoise") {
		p.Denoise = f.denoise
	}
	return *p, cfg, p.Validate()
}
