// Package crypto seals small secret blobs, such as saved API keys, with a
// passphrase-derived AES-256-GCM key.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	// MagicBytes prefixes every sealed blob.
	MagicBytes = "PCSK"

	// FormatVersion of the sealed layout.
	FormatVersion = 1

	SaltSize  = 16
	NonceSize = 12 // GCM standard nonce size
	KeyLen    = 32 // AES-256

	// magic(4) + version(1) + time(1) + memory(4) + threads(1) + salt + nonce
	HeaderSize = 4 + 1 + 1 + 4 + 1 + SaltSize + NonceSize
)

var (
	ErrInvalidMagic   = errors.New("invalid format: not a sealed settings blob")
	ErrInvalidVersion = errors.New("unsupported sealed format version")
	ErrDecryptFailed  = errors.New("decryption failed: wrong secret or corrupted data")
	ErrEmptySecret    = errors.New("secret is empty")
)

// Params are the Argon2id cost parameters. They are stored in the header so
// blobs sealed with different costs still open.
type Params struct {
	Time    uint8
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultParams follow the OWASP Argon2id recommendation.
var DefaultParams = Params{Time: 3, Memory: 64 * 1024, Threads: 4}

// Box seals and opens blobs with one passphrase.
type Box struct {
	secret string
	params Params
}

// NewBox creates a Box using DefaultParams.
func NewBox(secret string) (*Box, error) {
	return NewBoxWithParams(secret, DefaultParams)
}

// NewBoxWithParams creates a Box with explicit key derivation costs.
func NewBoxWithParams(secret string, p Params) (*Box, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if p.Time == 0 || p.Memory == 0 || p.Threads == 0 {
		return nil, fmt.Errorf("invalid argon2 params: %+v", p)
	}
	return &Box{secret: secret, params: p}, nil
}

func deriveKey(secret string, salt []byte, p Params) []byte {
	return argon2.IDKey([]byte(secret), salt, uint32(p.Time), p.Memory, p.Threads, KeyLen)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return gcm, nil
}

// Seal encrypts plaintext. Output is header followed by ciphertext.
func (b *Box) Seal(plaintext []byte) ([]byte, error) {
	header := make([]byte, HeaderSize)
	copy(header[0:4], MagicBytes)
	header[4] = FormatVersion
	header[5] = b.params.Time
	binary.LittleEndian.PutUint32(header[6:10], b.params.Memory)
	header[10] = b.params.Threads

	salt := header[11 : 11+SaltSize]
	nonce := header[11+SaltSize : HeaderSize]
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	gcm, err := newGCM(deriveKey(b.secret, salt, b.params))
	if err != nil {
		return nil, err
	}

	// The header is authenticated so cost parameters cannot be swapped.
	ciphertext := gcm.Seal(nil, nonce, plaintext, header)
	return append(header, ciphertext...), nil
}

// Open decrypts data produced by Seal.
func (b *Box) Open(data []byte) ([]byte, error) {
	if !IsSealed(data) || len(data) < HeaderSize {
		return nil, ErrInvalidMagic
	}
	if data[4] != FormatVersion {
		return nil, ErrInvalidVersion
	}

	p := Params{
		Time:    data[5],
		Memory:  binary.LittleEndian.Uint32(data[6:10]),
		Threads: data[10],
	}
	if p.Time == 0 || p.Memory == 0 || p.Threads == 0 {
		return nil, ErrDecryptFailed
	}

	header := data[:HeaderSize]
	salt := header[11 : 11+SaltSize]
	nonce := header[11+SaltSize:]

	gcm, err := newGCM(deriveKey(b.secret, salt, p))
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, data[HeaderSize:], header)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}

// IsSealed reports whether data starts with the sealed blob magic.
func IsSealed(data []byte) bool {
	return len(data) >= len(MagicBytes) && string(data[:len(MagicBytes)]) == MagicBytes
}
