// Package crypto seals the off-site photo archive. Files are encrypted
// chunk by chunk so they can be streamed without holding whole originals
// in memory.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	nonceSize = 24
	blockSize = 64 * 1024
)

type Service interface {
	// Seal encrypts data, chunking it per BlockSize. Each chunk gets a
	// fresh nonce prepended.
	Seal(data []byte) ([]byte, error)
	// Open decrypts exactly one sealed chunk.
	Open(chunk []byte) ([]byte, error)
	NonceSize() int
	BlockSize() int
	Overhead() int
}

type service struct {
	key [32]byte
}

// NewService derives the secret key from a hex-encoded string. A key
// that does not decode to exactly 32 bytes is rejected; sealing with a
// guessable default key must never happen silently.
func NewService(encryptionKey string) (Service, error) {
	b, err := hex.DecodeString(encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("decoding encryption key: %w", err)
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(b))
	}
	var s service
	copy(s.key[:], b)
	return &s, nil
}

func (s *service) NonceSize() int { return nonceSize }
func (s *service) BlockSize() int { return blockSize }
func (s *service) Overhead() int  { return secretbox.Overhead }

func (s *service) Seal(data []byte) ([]byte, error) {
	sealed := make([]byte, 0, len(data)+((len(data)/blockSize)+1)*(nonceSize+secretbox.Overhead))
	for len(data) > 0 {
		n := len(data)
		if n > blockSize {
			n = blockSize
		}
		nonce, err := newNonce()
		if err != nil {
			return nil, err
		}
		sealed = secretbox.Seal(append(sealed, nonce[:]...), data[:n], &nonce, &s.key)
		data = data[n:]
	}
	return sealed, nil
}

func (s *service) Open(chunk []byte) ([]byte, error) {
	if len(chunk) < nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("sealed chunk too short: %d bytes", len(chunk))
	}
	var nonce [24]byte
	copy(nonce[:], chunk[:nonceSize])
	opened, ok := secretbox.Open(nil, chunk[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, errors.New("could not decrypt chunk")
	}
	return opened, nil
}

func newNonce() ([24]byte, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nonce, err
	}
	return nonce, nil
}

// GenerateSha256 fingerprints file contents; the hash doubles as the
// asset's stable ID and its HTTP ETag.
func GenerateSha256(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
