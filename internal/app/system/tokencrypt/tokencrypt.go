// internal/app/system/tokencrypt/tokencrypt.go
//
// Package tokencrypt seals Bugzilla API keys before they are written into
// the session cookie, so a captured cookie does not leak the raw key.
package tokencrypt

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrInvalidToken is returned by Open when the sealed value is malformed
// or was sealed with a different secret.
var ErrInvalidToken = errors.New("tokencrypt: invalid token")

// Box seals and opens short secrets with XChaCha20-Poly1305.
type Box struct {
	key [chacha20poly1305.KeySize]byte
}

// New derives the sealing key from secret. The secret can be any
// non-empty string; it is hashed to the cipher's key size.
func New(secret string) (*Box, error) {
	if secret == "" {
		return nil, errors.New("tokencrypt: empty secret")
	}
	b := &Box{key: sha256.Sum256([]byte(secret))}
	return b, nil
}

// Seal encrypts plaintext and returns a base64 token safe to store in a
// cookie session value.
func (b *Box) Seal(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(b.key[:])
	if err != nil {
		return "", fmt.Errorf("tokencrypt: %w", err)
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("tokencrypt: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decrypts a token produced by Seal.
func (b *Box) Open(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	aead, err := chacha20poly1305.NewX(b.key[:])
	if err != nil {
		return "", fmt.Errorf("tokencrypt: %w", err)
	}
	if len(raw) < aead.NonceSize() {
		return "", ErrInvalidToken
	}
	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrInvalidToken
	}
	return string(plain), nil
}
