// Package backup mirrors the photo root to the encrypted off-site
// archive. Files already present remotely are skipped, so repeated runs
// only upload what is new.
package backup

import (
	"context"
	"fmt"
	"io"

	"github.com/apex/log"
	site "github.com/jrlacey28/ashley-model-site"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png"}

type Service struct {
	local  site.ReadOnlyStorage
	remote site.Storage
}

func New(local site.ReadOnlyStorage, remote site.Storage) *Service {
	return &Service{local: local, remote: remote}
}

// Run uploads every image under root that the archive does not hold yet.
// A failed upload is logged and skipped; one bad file never stops the
// run. The remote key is the file's path under the root.
func (s *Service) Run(ctx context.Context, logctx log.Interface, root string) error {
	files := s.local.SearchFiles(root, imageExtensions...)
	var uploaded, skipped, failed int
	for _, fi := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.remote.Exists(ctx, fi.FilePath()) {
			skipped++
			continue
		}
		if err := s.upload(ctx, fi.FilePath()); err != nil {
			logctx.WithField("path", fi.FilePath()).Errorf("upload failed: %v", err)
			failed++
			continue
		}
		logctx.WithField("path", fi.FilePath()).Info("uploaded")
		uploaded++
	}
	logctx.WithFields(log.Fields{
		"uploaded": uploaded,
		"skipped":  skipped,
		"failed":   failed,
	}).Info("backup finished")
	return nil
}

func (s *Service) upload(ctx context.Context, path string) error {
	r, err := s.local.NewReader(ctx, path)
	if err != nil {
		return err
	}
	defer r.Close()

	w := s.remote.NewWriter(ctx, path)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		s.remote.Delete(ctx, path)
		return err
	}
	if err := w.Close(); err != nil {
		s.remote.Delete(ctx, path)
		return err
	}
	return nil
}

// Restore streams one archived file back out, decrypted.
func (s *Service) Restore(ctx context.Context, path string, dst io.Writer) error {
	if !s.remote.Exists(ctx, path) {
		return fmt.Errorf("archive does not hold %s", path)
	}
	r, err := s.remote.NewReader(ctx, path)
	if err != nil {
		return err
	}
	defer r.Close()
	_, err = io.Copy(dst, r)
	return err
}
