package blobstore

import (
	"io"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s
}

func TestFileStore_SaveAndOpen(t *testing.T) {
	s := newTestStore(t)
	content := "fake png bytes"

	n, err := s.Save("123-000000001-scan.png", strings.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != int64(len(content)) {
		t.Errorf("expected %d bytes written, got %d", len(content), n)
	}

	rc, err := s.Open("123-000000001-scan.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != content {
		t.Errorf("expected %q, got %q", content, string(data))
	}
}

func TestFileStore_OpenNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Open("never-saved.png"); err != ErrBlobNotFound {
		t.Errorf("expected ErrBlobNotFound, got %v", err)
	}
}

func TestFileStore_OpenRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{
		"../../etc/passwd",
		"..",
		"foo/../../etc/passwd",
		"/etc/passwd",
	} {
		if _, err := s.Open(name); err != ErrPathEscape {
			t.Errorf("Open(%q): expected ErrPathEscape, got %v", name, err)
		}
	}
}

func TestFileStore_SaveRejectsTraversal(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Save("../outside.png", strings.NewReader("x")); err != ErrPathEscape {
		t.Errorf("expected ErrPathEscape, got %v", err)
	}
}

func TestFileStore_RemoveTolerant(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Save("a.png", strings.NewReader("x")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Remove("a.png"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// Second removal of the same name must not fail.
	if err := s.Remove("a.png"); err != nil {
		t.Errorf("expected nil for absent blob, got %v", err)
	}
	if _, err := s.Open("a.png"); err != ErrBlobNotFound {
		t.Errorf("expected ErrBlobNotFound after remove, got %v", err)
	}
}

func TestGenerateName(t *testing.T) {
	a := GenerateName("my scan.png")
	b := GenerateName("my scan.png")
	if a == b {
		t.Error("expected distinct generated names for identical inputs")
	}
	if strings.ContainsAny(a, "/\\") {
		t.Errorf("generated name contains path separator: %q", a)
	}
	if !strings.HasSuffix(a, "my_scan.png") {
		t.Errorf("expected sanitized original suffix, got %q", a)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"scan.png":           "scan.png",
		"../../etc/passwd":   "passwd",
		"a b?.png":           "a_b_.png",
		"..":                 "file",
		"":                   "file",
		`C:\temp\evil.png`:   "evil.png",
		"...":                "file",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
