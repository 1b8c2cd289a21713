package sweep

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	lerrors "github.com/matzehuels/lineart/pkg/errors"
	"github.com/matzehuels/lineart/pkg/imageio"
	"github.com/matzehuels/lineart/pkg/lineart"
	"github.com/matzehuels/lineart/pkg/observability"
)

func gray(w, h int, v uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 255
	}
	return img
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if err := p.Validate(); err != nil {
		t.Fatalf("DefaultParams().Validate() error: %v", err)
	}
	if p.Method != lineart.Sobel {
		t.Errorf("Method = %v, want sobel", p.Method)
	}
	if got := len(p.Keys()); got != 20 {
		t.Errorf("len(Keys()) = %d, want 20", got)
	}
}

func TestSequences(t *testing.T) {
	p := Params{
		MinBlurRadius: 2, BlurStep: 3, BlurNumber: 3,
		MinDarkenNumber: 1, DarkenStep: 2, DarkenNumber: 4,
	}
	radii := p.BlurRadii()
	if want := []int{2, 5, 8}; !equalInts(radii, want) {
		t.Errorf("BlurRadii() = %v, want %v", radii, want)
	}
	levels := p.DarkenLevels()
	if want := []int{1, 3, 5, 7}; !equalInts(levels, want) {
		t.Errorf("DarkenLevels() = %v, want %v", levels, want)
	}
}

func TestDarkenLevelsDoNotWrap(t *testing.T) {
	p := Params{MinDarkenNumber: 250, DarkenStep: 10, DarkenNumber: 3}
	if want := []int{250, 260, 270}; !equalInts(p.DarkenLevels(), want) {
		t.Errorf("DarkenLevels() = %v, want %v", p.DarkenLevels(), want)
	}
}

func TestKeysCoverProduct(t *testing.T) {
	p := Params{MinBlurRadius: 0, BlurStep: 2, BlurNumber: 4, MinDarkenNumber: 3, DarkenStep: 1, DarkenNumber: 5}
	keys := p.Keys()
	if len(keys) != 20 {
		t.Fatalf("len(Keys()) = %d, want 20", len(keys))
	}
	names := make(map[string]bool)
	for _, k := range keys {
		names[k.FileName()] = true
	}
	if len(names) != 20 {
		t.Errorf("file names not unique: %d distinct of 20", len(names))
	}
	for _, r := range p.BlurRadii() {
		for _, l := range p.DarkenLevels() {
			if !names[Key{Radius: r, Level: l}.FileName()] {
				t.Errorf("missing key (%d, %d)", r, l)
			}
		}
	}
}

func TestKeyFileName(t *testing.T) {
	if got := (Key{Radius: 3, Level: 0}).FileName(); got != "blur_3_darken_0.png" {
		t.Errorf("FileName() = %q, want blur_3_darken_0.png", got)
	}
	if got := (Key{Radius: -1, Level: 12}).Name(); got != "blur_-1_darken_12" {
		t.Errorf("Name() = %q, want blur_-1_darken_12", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr bool
	}{
		{"defaults", func(*Params) {}, false},
		{"zero blur count", func(p *Params) { p.BlurNumber = 0 }, true},
		{"zero darken count", func(p *Params) { p.DarkenNumber = 0 }, true},
		{"negative min radius", func(p *Params) { p.MinBlurRadius = -1 }, true},
		{"descending into negatives", func(p *Params) { p.MinBlurRadius = 2; p.BlurStep = -1; p.BlurNumber = 4 }, true},
		{"descending stays positive", func(p *Params) { p.MinBlurRadius = 6; p.BlurStep = -2; p.BlurNumber = 4 }, false},
		{"unknown method", func(p *Params) { p.Method = lineart.Method(7) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOutputDir(t *testing.T) {
	dir, err := OutputDir("multiple_images", "sample_images/sacquet.png")
	if err != nil {
		t.Fatalf("OutputDir() error: %v", err)
	}
	if want := filepath.Join("multiple_images", "sacquet"); dir != want {
		t.Errorf("OutputDir() = %q, want %q", dir, want)
	}

	if dir, err := OutputDir("out", "dir/.png"); err != nil || dir != filepath.Join("out", ".png") {
		t.Errorf("OutputDir(dot file) = %q, %v, want %q", dir, err, filepath.Join("out", ".png"))
	}
	if _, err := OutputDir("out", "/"); !lerrors.Is(err, lerrors.ErrCodeInvalidPath) {
		t.Errorf("missing stem code = %v, want %v", lerrors.GetCode(err), lerrors.ErrCodeInvalidPath)
	}
	if _, err := OutputDir("out\xff", "a.png"); !lerrors.Is(err, lerrors.ErrCodeInvalidPath) {
		t.Errorf("non-UTF8 root code = %v, want %v", lerrors.GetCode(err), lerrors.ErrCodeInvalidPath)
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.PNG", "a.jpg", "c.jpeg", "notes.txt", "d.gif"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "nested.png", "inner"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages() error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.PNG"),
		filepath.Join(dir, "c.jpeg"),
	}
	if !equalStrings(got, want) {
		t.Errorf("ListImages() = %v, want %v", got, want)
	}

	if _, err := ListImages(filepath.Join(dir, "missing")); !lerrors.Is(err, lerrors.ErrCodeFileNotFound) {
		t.Errorf("missing dir code = %v, want %v", lerrors.GetCode(err), lerrors.ErrCodeFileNotFound)
	}
}

func TestGenerateWritesEveryVariant(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "photo")
	p := Params{
		MinBlurRadius: 1, BlurStep: 2, BlurNumber: 3,
		MinDarkenNumber: 0, DarkenStep: 1, DarkenNumber: 2,
		Method: lineart.Gaussian,
	}

	written, err := NewPlanner(p, nil).Generate(context.Background(), gray(20, 16, 90), dir)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(written) != 6 {
		t.Fatalf("wrote %d files, want 6", len(written))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	sort.Strings(got)
	want := []string{
		"blur_1_darken_0.png", "blur_1_darken_1.png",
		"blur_3_darken_0.png", "blur_3_darken_1.png",
		"blur_5_darken_0.png", "blur_5_darken_1.png",
	}
	if !equalStrings(got, want) {
		t.Errorf("files = %v, want %v", got, want)
	}
}

func TestGenerateDarkenSequence(t *testing.T) {
	dir := t.TempDir()
	p := Params{
		MinBlurRadius: 4, BlurStep: 1, BlurNumber: 2,
		MinDarkenNumber: 1, DarkenStep: 2, DarkenNumber: 3,
	}

	var calls []int
	planner := NewPlanner(p, nil)
	planner.Synthesize = func(_ context.Context, src *image.NRGBA, radius int) (*image.NRGBA, error) {
		calls = append(calls, radius)
		return gray(src.Rect.Dx(), src.Rect.Dy(), 128), nil
	}

	if _, err := planner.Generate(context.Background(), gray(4, 4, 0), dir); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !equalInts(calls, []int{4, 5}) {
		t.Errorf("synthesized radii = %v, want one call per radius [4 5]", calls)
	}

	// 128 halves (truncated) with every multiply pass: 1 pass -> 64, 3 -> 16, 5 -> 4.
	want := map[int]uint8{1: 64, 3: 16, 5: 4}
	for _, radius := range []int{4, 5} {
		for level, v := range want {
			path := filepath.Join(dir, Key{Radius: radius, Level: level}.FileName())
			img, err := imageio.Open(path)
			if err != nil {
				t.Fatalf("Open(%s) error: %v", path, err)
			}
			if c := img.NRGBAAt(0, 0); c != (color.NRGBA{R: v, G: v, B: v, A: 255}) {
				t.Errorf("%s pixel = %v, want gray %d", filepath.Base(path), c, v)
			}
		}
	}
}

func TestGenerateResizesSource(t *testing.T) {
	p := DefaultParams()
	p.BlurNumber, p.DarkenNumber = 1, 1
	p.TargetWidth, p.TargetHeight = 10, 10

	var size image.Point
	planner := NewPlanner(p, nil)
	planner.Synthesize = func(_ context.Context, src *image.NRGBA, _ int) (*image.NRGBA, error) {
		size = src.Rect.Size()
		return src, nil
	}
	if _, err := planner.Generate(context.Background(), gray(40, 20, 200), t.TempDir()); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if size.X*size.Y > 100 {
		t.Errorf("synthesized %v, area exceeds 100", size)
	}
	if size != (image.Point{X: 14, Y: 7}) {
		t.Errorf("synthesized %v, want 14x7", size)
	}
}

func TestGenerateStopsOnError(t *testing.T) {
	dir := t.TempDir()
	p := DefaultParams()
	boom := lerrors.New(lerrors.ErrCodeInternal, "corrupt gradient")

	planner := NewPlanner(p, nil)
	calls := 0
	planner.Synthesize = func(_ context.Context, src *image.NRGBA, radius int) (*image.NRGBA, error) {
		calls++
		if radius == 2 {
			return nil, boom
		}
		return gray(2, 2, 255), nil
	}

	written, err := planner.Generate(context.Background(), gray(2, 2, 255), dir)
	if err != boom {
		t.Fatalf("Generate() error = %v, want %v", err, boom)
	}
	if calls != 2 {
		t.Errorf("synthesize called %d times, want 2", calls)
	}
	if len(written) != int(p.DarkenNumber) {
		t.Errorf("wrote %d files before failing, want %d", len(written), p.DarkenNumber)
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPlanner(DefaultParams(), nil).Generate(ctx, gray(2, 2, 0), t.TempDir())
	if err != context.Canceled {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
}

func TestGenerateReportsVariants(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	p := DefaultParams()
	p.BlurNumber, p.DarkenNumber = 2, 3
	if _, err := NewPlanner(p, nil).Generate(context.Background(), gray(8, 8, 60), t.TempDir()); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(hooks.saved) != 6 {
		t.Errorf("OnVariantSaved called %d times, want 6", len(hooks.saved))
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu    sync.Mutex
	saved []string
}

func (h *recordingHooks) OnVariantSaved(_ context.Context, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saved = append(h.saved, path)
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
