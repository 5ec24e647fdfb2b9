// Package uploads keeps uploaded church logos on local disk.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// URLPrefix is where saved files are served from.
const URLPrefix = "/uploads/"

var ErrInvalidName = errors.New("invalid upload name")

type Store struct {
	dir string
	now func() time.Time
}

// New returns a Store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

func (s *Store) Dir() string { return s.dir }

// SaveLogo writes r as church-logo-<unix ms><ext> and returns the file name.
// ext is the extension of the detected content type, e.g. ".png".
func (s *Store) SaveLogo(r io.Reader, ext string) (string, error) {
	name := fmt.Sprintf("church-logo-%d%s", s.now().UnixMilli(), strings.ToLower(ext))
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return name, nil
}

// URL is the public path for a saved file name.
func URL(name string) string { return URLPrefix + name }

// Path resolves a served file name inside the upload dir. Names with
// separators or dot segments are rejected.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", ErrInvalidName
	}
	return filepath.Join(s.dir, name), nil
}
