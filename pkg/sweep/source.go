package sweep

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	lerrors "github.com/matzehuels/lineart/pkg/errors"
	"github.com/matzehuels/lineart/pkg/imageio"
)

// ListImages returns the image files directly inside dir, sorted by name.
// Subdirectories are not descended into and files with other extensions
// are skipped.
func ListImages(dir string) ([]string, error) {
	if err := lerrors.ValidatePath(dir); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, lerrors.Wrap(lerrors.ErrCodeFileNotFound, err, "read directory %s", dir)
		}
		return nil, lerrors.Wrap(lerrors.ErrCodeIO, err, "read directory %s", dir)
	}

	// os.ReadDir sorts by file name.
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !imageio.IsImage(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}
