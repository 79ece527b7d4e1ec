// Package backupcrypto seals backup payloads with a passphrase. The envelope
// is self-describing: magic prefix, KDF salt and nonce travel with the
// ciphertext, so decryption needs only the passphrase.
package backupcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrInvalidEnvelope marks content that is not a sealed backup envelope.
	ErrInvalidEnvelope = errors.New("conteúdo não é um backup criptografado válido")
	// ErrDecryptFailed marks a wrong passphrase or a tampered envelope. The
	// two cases are indistinguishable by construction.
	ErrDecryptFailed = errors.New("senha incorreta ou backup corrompido")
)

// Cipher seals and opens backup payloads. Encrypt returns a printable
// envelope string; Decrypt accepts only envelopes produced by Encrypt.
type Cipher interface {
	Encrypt(plaintext []byte, passphrase string) (string, error)
	Decrypt(envelope string, passphrase string) ([]byte, error)
}

const (
	magic     = "PB1"
	saltLen   = 16
	nonceLen  = 12
	keyLen    = 32
	argonTime = 3
	argonMem  = 64 * 1024
	argonPar  = 1
)

// AESGCM implements Cipher with an argon2id-derived AES-256-GCM key.
type AESGCM struct{}

func NewAESGCM() *AESGCM { return &AESGCM{} }

var _ Cipher = (*AESGCM)(nil)

func (c *AESGCM) Encrypt(plaintext []byte, passphrase string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("gerar salt: %w", err)
	}
	nonce := make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("gerar nonce: %w", err)
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)

	raw := make([]byte, 0, len(magic)+saltLen+nonceLen+len(sealed))
	raw = append(raw, magic...)
	raw = append(raw, salt...)
	raw = append(raw, nonce...)
	raw = append(raw, sealed...)
	return base64.StdEncoding.EncodeToString(raw), nil
}

func (c *AESGCM) Decrypt(envelope string, passphrase string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if len(raw) < len(magic)+saltLen+nonceLen+1 || string(raw[:len(magic)]) != magic {
		return nil, ErrInvalidEnvelope
	}
	raw = raw[len(magic):]
	salt, raw := raw[:saltLen], raw[saltLen:]
	nonce, sealed := raw[:nonceLen], raw[nonceLen:]

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}

// IsEnvelope reports whether content looks like a sealed envelope, used to
// decide between plain and encrypted import paths before asking for a
// passphrase.
func IsEnvelope(content []byte) bool {
	raw, err := base64.StdEncoding.DecodeString(string(content))
	if err != nil {
		return false
	}
	return len(raw) >= len(magic)+saltLen+nonceLen && string(raw[:len(magic)]) == magic
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(passphrase), salt, argonTime, argonMem, argonPar, keyLen)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("inicializar cifra: %w", err)
	}
	return cipher.NewGCM(block)
}
