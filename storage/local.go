// Package storage provides the read-only local photo root and the
// encrypted remote archive the site and CLI work against.
package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	site "github.com/jrlacey28/ashley-model-site"
	"github.com/spf13/afero"
)

type fileInfo struct {
	id               string
	filePath         string
	fileExt          string
	readFile         func(string) ([]byte, error)
	generateFileHash func([]byte) string
}

func (fi *fileInfo) FilePath() string {
	return fi.filePath
}

func (fi *fileInfo) FileExt() string {
	return fi.fileExt
}

// ID is the content fingerprint, computed lazily on first use.
func (fi *fileInfo) ID() string {
	if fi.id != "" {
		return fi.id
	}
	b, err := fi.readFile(fi.filePath)
	if err != nil {
		return ""
	}
	fi.id = fi.generateFileHash(b)
	return fi.id
}

// ReadOnlyLocalStorage exposes the photo root: the site never writes to
// it, only scans and serves.
type ReadOnlyLocalStorage struct {
	fs               afero.Fs
	generateFileHash func([]byte) string
}

func NewLocal(fs afero.Fs, generateFileHash func([]byte) string) *ReadOnlyLocalStorage {
	return &ReadOnlyLocalStorage{fs: fs, generateFileHash: generateFileHash}
}

func (repo *ReadOnlyLocalStorage) NewReader(ctx context.Context, path string) (io.ReadCloser, error) {
	return repo.fs.Open(path)
}

func (repo *ReadOnlyLocalStorage) NewReadSeeker(ctx context.Context, path string) (site.ReadCloseSeeker, error) {
	return repo.fs.Open(path)
}

// SearchFiles walks the root and collects every file with one of the
// given extensions. Unreadable entries are logged and skipped; a scan
// never fails the caller.
func (repo *ReadOnlyLocalStorage) SearchFiles(rootPath string, fileExt ...string) []site.FileInfo {
	files := make([]site.FileInfo, 0)
	walkErr := afero.Walk(repo.fs, rootPath, func(pth string, fi os.FileInfo, err error) error {
		if err != nil {
			log.WithField("path", pth).Warnf("skipping unreadable entry: %v", err)
			return nil
		}
		if fi.IsDir() {
			return nil
		}
		name := strings.ToLower(fi.Name())
		for _, ext := range fileExt {
			if strings.HasSuffix(name, ext) {
				files = append(files, &fileInfo{
					filePath:         filepath.ToSlash(pth),
					fileExt:          path.Ext(pth),
					readFile:         repo.readFile,
					generateFileHash: repo.generateFileHash,
				})
				break
			}
		}
		return nil
	})
	if walkErr != nil {
		log.WithField("root", rootPath).Errorf("walking photo root: %v", walkErr)
	}
	return files
}

func (repo *ReadOnlyLocalStorage) readFile(path string) ([]byte, error) {
	return afero.ReadFile(repo.fs, path)
}
