package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// ObjectStore persists uploaded files and returns where they can be fetched.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// LocalStore writes objects below a directory on disk.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore serves keys as baseURL/key; baseURL may be empty.
func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	clean := filepath.Clean("/" + key)[1:]
	if clean == "" || clean == "." {
		return "", eris.Errorf("invalid object key %q", key)
	}

	path := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", eris.Wrapf(err, "create upload dir for %s", key)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", eris.Wrapf(err, "write %s", path)
	}

	return publicURL(s.baseURL, clean), nil
}

func publicURL(base, key string) string {
	if base == "" {
		return "/" + key
	}
	return base + "/" + key
}
