package library

import (
	"context"
	"io"
	"sync"

	site "github.com/jrlacey28/ashley-model-site"
	"github.com/jrlacey28/ashley-model-site/content"
)

// imageExtensions are the file types the scan picks up.
var imageExtensions = []string{".jpg", ".jpeg", ".png"}

// Service holds the library built from one scan of the photo root.
// The snapshot is read-only; handlers share it until Reload swaps it.
type Service struct {
	src site.ReadOnlyStorage
	cfg Config
	tbl *content.Table

	mu  sync.RWMutex
	lib *site.Library
}

func NewService(src site.ReadOnlyStorage, cfg Config, tbl *content.Table) *Service {
	return &Service{src: src, cfg: cfg, tbl: tbl}
}

// Library returns the current snapshot, building it on first use.
func (s *Service) Library(ctx context.Context) *site.Library {
	s.mu.RLock()
	lib := s.lib
	s.mu.RUnlock()
	if lib != nil {
		return lib
	}
	return s.Reload(ctx)
}

// Reload rescans the photo root and swaps in a fresh snapshot.
func (s *Service) Reload(ctx context.Context) *site.Library {
	lib := Build(s.snapshot(), s.cfg, s.tbl)
	s.mu.Lock()
	s.lib = lib
	s.mu.Unlock()
	return lib
}

func (s *Service) snapshot() map[string]site.Opener {
	assets := make(map[string]site.Opener)
	for _, fi := range s.src.SearchFiles(s.cfg.PhotoRoot, imageExtensions...) {
		path := fi.FilePath()
		assets[path] = func(ctx context.Context) (io.ReadCloser, error) {
			return s.src.NewReader(ctx, path)
		}
	}
	return assets
}
