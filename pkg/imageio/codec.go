package imageio

import (
	"bytes"
	"errors"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	lerrors "github.com/matzehuels/lineart/pkg/errors"
)

// Extensions lists the file extensions (lower case, without dot) that Open understands.
var Extensions = map[string]bool{"png": true, "jpg": true, "jpeg": true}

// IsImage reports whether path has one of the supported image extensions.
// The comparison is case-insensitive.
func IsImage(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return Extensions[ext]
}

// Open decodes the image at path into a normalized buffer.
func Open(path string) (*image.NRGBA, error) {
	img, _, err := Load(path)
	return img, err
}

// Load reads and decodes the image at path. The raw file bytes are returned
// alongside the buffer so callers can hash the source.
func Load(path string) (*image.NRGBA, []byte, error) {
	if err := lerrors.ValidatePath(path); err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, lerrors.Wrap(lerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, nil, lerrors.Wrap(lerrors.ErrCodeIO, err, "open %s", path)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, lerrors.Wrap(lerrors.ErrCodeDecode, err, "decode %s", path)
	}
	return Normalize(img), data, nil
}

// Save encodes img to path. The format is chosen from the extension.
func Save(img image.Image, path string) error {
	if err := lerrors.ValidatePath(path); err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return lerrors.Wrap(lerrors.ErrCodeIO, err, "save %s", path)
	}
	return nil
}

// EnsureDir creates dir and its parents if they do not exist yet.
// Existing directories and their contents are left untouched.
func EnsureDir(dir string) error {
	if err := lerrors.ValidatePath(dir); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return lerrors.Wrap(lerrors.ErrCodeIO, err, "create directory %s", dir)
	}
	return nil
}

// Encode returns img as PNG bytes.
func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, lerrors.Wrap(lerrors.ErrCodeIO, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Decode parses image bytes produced by Encode into a normalized buffer.
func Decode(data []byte) (*image.NRGBA, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, lerrors.Wrap(lerrors.ErrCodeDecode, err, "decode image bytes")
	}
	return Normalize(img), nil
}

// Normalize returns img as an *image.NRGBA with origin (0, 0) and a tight stride.
// Buffers that already have that shape are returned as-is.
func Normalize(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == 4*n.Rect.Dx() {
		return n
	}
	return imaging.Clone(img)
}
