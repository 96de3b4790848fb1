package storage

import (
	"context"
	"io"

	site "github.com/jrlacey28/ashley-model-site"
	"github.com/jrlacey28/ashley-model-site/crypto"
)

// NewRemote wraps a storage backend so everything written to it is
// sealed chunk by chunk and everything read is opened transparently.
func NewRemote(b site.Storage, c crypto.Service) site.Storage {
	return &remote{backend: b, crpt: c}
}

type remote struct {
	backend site.Storage
	crpt    crypto.Service
}

func (r *remote) NewReader(ctx context.Context, path string) (io.ReadCloser, error) {
	rd, err := r.backend.NewReader(ctx, path)
	if err != nil {
		return nil, err
	}
	return &chunkReader{
		rd:        rd,
		chunkSize: r.crpt.NonceSize() + r.crpt.BlockSize() + r.crpt.Overhead(),
		crpt:      r.crpt,
	}, nil
}

func (r *remote) NewWriter(ctx context.Context, path string) io.WriteCloser {
	return &chunkWriter{wr: r.backend.NewWriter(ctx, path), crpt: r.crpt}
}

func (r *remote) Exists(ctx context.Context, path string) bool {
	return r.backend.Exists(ctx, path)
}

func (r *remote) Delete(ctx context.Context, path string) error {
	return r.backend.Delete(ctx, path)
}

// chunkReader reassembles the plaintext stream, one sealed chunk at a
// time. The final chunk may be shorter than chunkSize.
type chunkReader struct {
	rd        io.ReadCloser
	chunkSize int
	crpt      crypto.Service
	buf       []byte
	off       int
	eof       bool
}

func (c *chunkReader) Read(p []byte) (int, error) {
	for c.off == len(c.buf) {
		if c.eof {
			return 0, io.EOF
		}
		if err := c.fill(); err != nil {
			return 0, err
		}
	}
	n := copy(p, c.buf[c.off:])
	c.off += n
	return n, nil
}

func (c *chunkReader) fill() error {
	chunk := make([]byte, c.chunkSize)
	n, err := io.ReadFull(c.rd, chunk)
	switch err {
	case nil:
	case io.EOF:
		c.eof = true
		c.buf = nil
		c.off = 0
		return nil
	case io.ErrUnexpectedEOF:
		c.eof = true
	default:
		return err
	}
	if n == 0 {
		c.buf = nil
		c.off = 0
		return nil
	}
	opened, err := c.crpt.Open(chunk[:n])
	if err != nil {
		return err
	}
	c.buf = opened
	c.off = 0
	return nil
}

func (c *chunkReader) Close() error {
	return c.rd.Close()
}

// chunkWriter buffers plaintext and seals one full block at a time;
// Close flushes the remainder.
type chunkWriter struct {
	wr   io.WriteCloser
	crpt crypto.Service
	buf  []byte
}

func (c *chunkWriter) Write(p []byte) (int, error) {
	c.buf = append(c.buf, p...)
	for len(c.buf) >= c.crpt.BlockSize() {
		if err := c.seal(c.buf[:c.crpt.BlockSize()]); err != nil {
			return 0, err
		}
		c.buf = c.buf[c.crpt.BlockSize():]
	}
	return len(p), nil
}

func (c *chunkWriter) Close() error {
	if len(c.buf) > 0 {
		if err := c.seal(c.buf); err != nil {
			return err
		}
		c.buf = nil
	}
	return c.wr.Close()
}

func (c *chunkWriter) seal(block []byte) error {
	sealed, err := c.crpt.Seal(block)
	if err != nil {
		return err
	}
	_, err = c.wr.Write(sealed)
	return err
}
