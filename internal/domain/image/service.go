package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/careline/careline/internal/platform/blobstore"
)

var (
	ErrUnsupportedType = errors.New("only image files are allowed (jpeg, jpg, png, gif, webp)")
	ErrTooLarge        = errors.New("file exceeds the upload size limit")
)

// allowedExts and allowedMimetypes form the upload allow-list. Both the
// extension and the declared content type must match.
var allowedExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
}

var allowedMimetypes = map[string]bool{
	"image/jpeg": true, "image/jpg": true, "image/png": true,
	"image/gif": true, "image/webp": true,
}

// Upload describes one incoming file plus its attachment targets.
type Upload struct {
	Filename  string
	Mimetype  string
	Size      int64
	Content   io.Reader
	ConcernID *string
	CallDocID *string
}

type Service struct {
	images   Repository
	blobs    blobstore.Store
	maxBytes int64
}

func NewService(images Repository, blobs blobstore.Store, maxBytes int64) *Service {
	return &Service{images: images, blobs: blobs, maxBytes: maxBytes}
}

// Ingest validates an upload, writes the blob, then registers the
// metadata. If registration fails the blob is removed so the store
// never holds orphaned files.
func (s *Service) Ingest(ctx context.Context, up Upload) (*Image, error) {
	if !allowedExts[strings.ToLower(filepath.Ext(up.Filename))] || !allowedMimetypes[up.Mimetype] {
		return nil, ErrUnsupportedType
	}
	if up.Size > s.maxBytes {
		return nil, ErrTooLarge
	}

	name := blobstore.GenerateName(up.Filename)
	written, err := s.blobs.Save(name, io.LimitReader(up.Content, s.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if written > s.maxBytes {
		if rmErr := s.blobs.Remove(name); rmErr != nil {
			return nil, fmt.Errorf("remove oversize blob %s: %v: %w", name, rmErr, ErrTooLarge)
		}
		return nil, ErrTooLarge
	}

	img := &Image{
		ConcernID: up.ConcernID,
		CallDocID: up.CallDocID,
		Filename:  up.Filename,
		Mimetype:  up.Mimetype,
		Size:      written,
		Path:      name,
	}
	if err := s.images.Create(ctx, img); err != nil {
		if rmErr := s.blobs.Remove(name); rmErr != nil {
			return nil, fmt.Errorf("register image metadata: %w (orphaned blob %s: %v)", err, name, rmErr)
		}
		return nil, err
	}
	return img, nil
}

func (s *Service) ListImages(ctx context.Context, f Filter) ([]*Image, error) {
	return s.images.List(ctx, f)
}

// OpenFile streams a stored blob by its generated name. The returned
// mimetype comes from the metadata record when one exists.
func (s *Service) OpenFile(ctx context.Context, name string) (io.ReadCloser, string, error) {
	rc, err := s.blobs.Open(name)
	if err != nil {
		return nil, "", err
	}

	mimetype := "application/octet-stream"
	if img, err := s.images.GetByPath(ctx, name); err == nil {
		mimetype = img.Mimetype
	}
	return rc, mimetype, nil
}

// Delete removes the blob first, tolerating an already missing file,
// then the metadata record.
func (s *Service) Delete(ctx context.Context, id string) error {
	img, err := s.images.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.blobs.Remove(img.Path); err != nil {
		return err
	}
	return s.images.Delete(ctx, id)
}
