package site

import (
	"context"
	"io"
)

type Storage interface {
	StorageReader
	StorageWriter
	Exists(ctx context.Context, path string) bool
}

type StorageReader interface {
	NewReader(ctx context.Context, path string) (io.ReadCloser, error)
}

type StorageReadSeeker interface {
	NewReadSeeker(ctx context.Context, path string) (ReadCloseSeeker, error)
}

type StorageWriter interface {
	NewWriter(ctx context.Context, path string) io.WriteCloser
	Delete(ctx context.Context, path string) error
}

type ReadOnlyStorage interface {
	StorageReader
	StorageReadSeeker
	SearchFiles(rootPath string, fileExt ...string) []FileInfo
}

type ReadCloseSeeker interface {
	io.ReadCloser
	io.Seeker
}

type FileInfo interface {
	ID() string
	FilePath() string
}

// Opener defers loading an image until a consumer asks for its bytes.
// Open failures surface here, never during library building.
type Opener func(ctx context.Context) (io.ReadCloser, error)

// Asset is a reference to a single image: its path under the photo root
// plus the deferred loader. No two assets share a path.
type Asset struct {
	Path string
	Name string
	Open Opener
}

// Content is the editorial copy attached to a project.
type Content struct {
	Title       string
	Header      string
	Category    string
	Subtext     string
	Description string
}

// Project is one shoot: a dated photo folder with a chosen cover,
// a background image and the remaining gallery. Immutable once built.
type Project struct {
	ID        string
	RouteSlug string
	Content
	Cover      Asset
	Background Asset
	Gallery    []Asset
}

// Library is the derived collection the site serves from: all shoots
// ordered most recent first, plus at most three digitals.
type Library struct {
	Projects []Project
	Digitals []Asset
}
