// Package secrets decrypts the connection settings that are stored
// encrypted at rest. Consumers treat it as an opaque string-returning
// collaborator; a failed decryption surfaces as missing credentials,
// never as a panic.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

// Decryptor turns a stored ciphertext into a usable setting value.
type Decryptor interface {
	Decrypt(ciphertext string) (string, error)
}

// Plaintext passes values through unchanged, for development setups
// that store credentials unencrypted.
type Plaintext struct{}

func (Plaintext) Decrypt(ciphertext string) (string, error) { return ciphertext, nil }

// AESGCM en/decrypts values with AES-256-GCM under a key derived from a
// passphrase. Ciphertexts are base64(nonce || sealed).
type AESGCM struct {
	aead cipher.AEAD
}

// NewAESGCM derives the key from the passphrase with SHA-256.
func NewAESGCM(passphrase string) (*AESGCM, error) {
	if passphrase == "" {
		return nil, errors.New("empty encryption passphrase")
	}
	key := sha256.Sum256([]byte(passphrase))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}
	return &AESGCM{aead: aead}, nil
}

// Encrypt seals a value for storage. Used by provisioning, not by the
// request path.
func (a *AESGCM) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := a.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (a *AESGCM) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	if len(raw) < a.aead.NonceSize() {
		return "", errors.New("ciphertext too short")
	}
	nonce, sealed := raw[:a.aead.NonceSize()], raw[a.aead.NonceSize():]
	plain, err := a.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("open ciphertext: %w", err)
	}
	return string(plain), nil
}
