package disease

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	ErrMissingExtension = errors.New("file extension missing")
	ErrFileType         = errors.New("file type not allowed")
	ErrEmptyFile        = errors.New("empty file")
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ValidateFileExtension returns the lower-cased extension when it is allowed.
func ValidateFileExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == "" {
		return "", ErrMissingExtension
	}

	if !allowedExt[ext] {
		return "", ErrFileType
	}

	return ext, nil
}
