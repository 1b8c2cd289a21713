package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	lerrors "github.com/matzehuels/lineart/pkg/errors"
	"github.com/matzehuels/lineart/pkg/lineart"
	"github.com/matzehuels/lineart/pkg/sweep"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lineart.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
output = "drawings"
jobs = 3

[sweep]
method = "gaussian"
blur_number = 2
target_width = 640
target_height = 480
denoise = true
`)
	cfg, err := loadConfig(path, sweep.DefaultParams())
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Output != "drawings" || cfg.Jobs != 3 {
		t.Errorf("output/jobs = %q/%d, want drawings/3", cfg.Output, cfg.Jobs)
	}
	p := cfg.Sweep
	if p.Method != lineart.Gaussian || p.BlurNumber != 2 || p.TargetWidth != 640 || p.TargetHeight != 480 || !p.Denoise {
		t.Errorf("sweep = %+v", p)
	}
	// Keys absent from the file keep their defaults.
	if p.DarkenNumber != sweep.DefaultDarkenNumber || p.MinBlurRadius != sweep.DefaultMinBlurRadius {
		t.Errorf("defaults lost: %+v", p)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		want lerrors.Code
	}{
		{"missing", filepath.Join(t.TempDir(), "nope.toml"), lerrors.ErrCodeFileNotFound},
		{"syntax", writeConfig(t, "[sweep\n"), lerrors.ErrCodeInvalidConfig},
		{"unknown key", writeConfig(t, "[sweep]\nblur = 3\n"), lerrors.ErrCodeInvalidConfig},
		{"bad method", writeConfig(t, "[sweep]\nmethod = \"canny\"\n"), lerrors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.path, sweep.DefaultParams())
			if !lerrors.Is(err, tt.want) {
				t.Errorf("loadConfig() error = %v, want code %v", err, tt.want)
			}
		})
	}
}

func parseSweepFlags(t *testing.T, args ...string) (*sweepFlags, *pflag.FlagSet) {
	t.Helper()
	var f sweepFlags
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(flags)
	if err := flags.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error: %v", args, err)
	}
	return &f, flags
}

func TestResolveDefaults(t *testing.T) {
	f, flags := parseSweepFlags(t)
	p, _, err := f.resolve(flags)
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}
	if p != sweep.DefaultParams() {
		t.Errorf("resolve() = %+v, want defaults", p)
	}
}

func TestResolveFlagsOverrideConfig(t *testing.T) {
	path := writeConfig(t, "[sweep]\nmethod = \"gaussian\"\nblur_number = 2\ndarken_step = 3\n")
	f, flags := parseSweepFlags(t, "--config", path, "--blur-count", "7", "--width", "100", "--height", "50")

	p, _, err := f.resolve(flags)
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}
	if p.BlurNumber != 7 {
		t.Errorf("BlurNumber = %d, want flag value 7", p.BlurNumber)
	}
	if p.Method != lineart.Gaussian || p.DarkenStep != 3 {
		t.Errorf("config values lost: method %v, darken step %d", p.Method, p.DarkenStep)
	}
	if p.TargetWidth != 100 || p.TargetHeight != 50 {
		t.Errorf("target = %dx%d, want 100x50", p.TargetWidth, p.TargetHeight)
	}
}

func TestResolveRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want lerrors.Code
	}{
		{"method", []string{"--method", "canny"}, lerrors.ErrCodeInvalidMethod},
		{"zero blur count", []string{"--blur-count", "0"}, lerrors.ErrCodeInvalidInput},
		{"zero darken count", []string{"--darken-count", "0"}, lerrors.ErrCodeInvalidInput},
		{"negative radius", []string{"--min-blur", "-1"}, lerrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, flags := parseSweepFlags(t, tt.args...)
			if _, _, err := f.resolve(flags); !lerrors.Is(err, tt.want) {
				t.Errorf("resolve(%v) error = %v, want code %v", tt.args, err, tt.want)
			}
		})
	}
}
