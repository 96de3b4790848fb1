// Package thumbnail derives the small listing images the slider and
// digitals strip use. Failures stay local to the asset: a photo that
// cannot be decoded simply has no thumbnail.
package thumbnail

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"time"

	site "github.com/jrlacey28/ashley-model-site"
	"github.com/nfnt/resize"
	"github.com/rwcarlsen/goexif/exif"
)

const (
	maxWidth  = 400
	maxHeight = 400
	quality   = 80
)

// Meta is what the metadata cache records per asset.
type Meta struct {
	Width   int
	Height  int
	TakenAt time.Time
}

type Service struct {
	rs site.StorageReadSeeker
}

func NewService(rs site.StorageReadSeeker) *Service {
	return &Service{rs: rs}
}

// Generate returns JPEG thumbnail bytes for the photo at path. The
// EXIF-embedded thumbnail is used when present; otherwise the image is
// decoded and scaled down.
func (s *Service) Generate(ctx context.Context, path string) ([]byte, error) {
	f, err := s.rs.NewReadSeeker(ctx, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if x, err := exif.Decode(f); err == nil {
		if thumb, err := x.JpegThumbnail(); err == nil {
			return thumb, nil
		}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return scaleDown(f)
}

// Probe reports the image dimensions and, when EXIF carries one, the
// capture time. A missing capture time is not an error.
func (s *Service) Probe(ctx context.Context, path string) (Meta, error) {
	f, err := s.rs.NewReadSeeker(ctx, path)
	if err != nil {
		return Meta{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Meta{}, err
	}
	m := Meta{Width: cfg.Width, Height: cfg.Height}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return m, nil
	}
	if x, err := exif.Decode(f); err == nil {
		if taken, err := x.DateTime(); err == nil {
			m.TakenAt = taken
		}
	}
	return m, nil
}

func scaleDown(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	small := resize.Thumbnail(maxWidth, maxHeight, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, small, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
