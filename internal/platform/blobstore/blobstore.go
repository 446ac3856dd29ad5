// Package blobstore provides content storage for uploaded images. It
// defines the Store interface, a filesystem implementation backed by a
// flat directory of generated-name files, and the name-generation and
// path-containment rules that keep stored blobs isolated from the rest
// of the filesystem.
package blobstore

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrBlobNotFound = errors.New("blob not found")
	ErrPathEscape   = errors.New("path escapes content store root")
)

// Store defines the contract for content storage backends.
type Store interface {
	Save(name string, content io.Reader) (int64, error)
	Open(name string) (io.ReadCloser, error)
	Remove(name string) error
}

// FileStore is a Store rooted at a single directory. Names handed to it
// are expected to come from GenerateName; anything that resolves outside
// the root is refused.
type FileStore struct {
	root string
}

// NewFileStore creates the root directory if needed and returns a
// ready-to-use FileStore.
func NewFileStore(root string) (*FileStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve content store root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create content store root: %w", err)
	}
	return &FileStore{root: abs}, nil
}

// Root returns the absolute content store root.
func (s *FileStore) Root() string { return s.root }

// resolve maps a stored name to an absolute path. The store is a flat
// directory, so anything that is not a plain basename is refused, and
// the cleaned path must stay under the root.
func (s *FileStore) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", ErrPathEscape
	}
	p := filepath.Clean(filepath.Join(s.root, name))
	if p == s.root || !strings.HasPrefix(p, s.root+string(filepath.Separator)) {
		return "", ErrPathEscape
	}
	return p, nil
}

// Save writes content to a new file under the root and returns the byte
// count. A partially written file is removed on error.
func (s *FileStore) Save(name string, content io.Reader) (int64, error) {
	p, err := s.resolve(name)
	if err != nil {
		return 0, err
	}
	f, err := os.Create(p)
	if err != nil {
		return 0, fmt.Errorf("create blob: %w", err)
	}
	n, err := io.Copy(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(p)
		return 0, fmt.Errorf("write blob: %w", err)
	}
	return n, nil
}

// Open returns a reader over a stored blob. Traversal attempts surface
// as ErrPathEscape before existence is even checked.
func (s *FileStore) Open(name string) (io.ReadCloser, error) {
	p, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return f, nil
}

// Remove deletes a stored blob. An already-absent blob is not an error;
// metadata cleanup must be able to proceed regardless.
func (s *FileStore) Remove(name string) error {
	p, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

// GenerateName produces a collision-resistant storage name for an
// upload: millisecond timestamp, random suffix, then the sanitized
// original filename for operator readability. The result never contains
// path separators or traversal sequences.
func GenerateName(original string) string {
	return fmt.Sprintf("%d-%09d-%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), SanitizeFilename(original))
}

// SanitizeFilename reduces a caller-supplied filename to a safe basename:
// any path components are dropped and characters outside a conservative
// set are replaced.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "file"
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}
