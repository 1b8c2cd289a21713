package errors

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ValidatePath rejects paths that cannot be represented as valid UTF-8.
// The offending path is quoted in the message so it survives logging.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if !utf8.ValidString(path) {
		return New(ErrCodeInvalidPath, "path is not valid UTF-8: %q", path)
	}
	return nil
}

// Stem returns the file name of path without its extension. A dot file
// with no further dot, such as ".png", is its own stem. It fails when the
// path has no usable file name, e.g. "" or "/".
func Stem(path string) (string, error) {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) || base == ".." {
		return "", New(ErrCodeInvalidPath, "path has no file name: %q", path)
	}
	if strings.LastIndexByte(base, '.') == 0 {
		return base, nil
	}
	return strings.TrimSuffix(base, filepath.Ext(base)), nil
}
