package remotebackend

import (
	"context"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileSystem backs the archive (and the thumbnail cache) with a plain
// filesystem. Tests use it over an in-memory fs.
type FileSystem struct {
	fs afero.Fs
}

func NewFileSystem(fs afero.Fs) *FileSystem {
	return &FileSystem{fs: fs}
}

func (b *FileSystem) NewReader(ctx context.Context, fileName string) (io.ReadCloser, error) {
	return b.fs.Open(fileName)
}

func (b *FileSystem) NewWriter(ctx context.Context, fileName string) io.WriteCloser {
	if dir := filepath.Dir(fileName); dir != "." {
		b.fs.MkdirAll(dir, 0755)
	}
	f, err := b.fs.Create(fileName)
	if err != nil {
		return &failedWriter{err: err}
	}
	return f
}

func (b *FileSystem) Delete(ctx context.Context, fileName string) error {
	return b.fs.Remove(fileName)
}

func (b *FileSystem) Exists(ctx context.Context, fileName string) bool {
	e, _ := afero.Exists(b.fs, fileName)
	return e
}

// failedWriter defers a Create error to the first Write; NewWriter
// itself never returns an error.
type failedWriter struct {
	err error
}

func (w *failedWriter) Write(p []byte) (int, error) { return 0, w.err }
func (w *failedWriter) Close() error                { return w.err }
