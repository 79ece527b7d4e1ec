package backupcrypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAESGCM_RoundTrip(t *testing.T) {
	c := NewAESGCM()
	plaintext := []byte(`{"pericias":[],"exportDate":"2026-08-30T00:00:00Z"}`)

	envelope, err := c.Encrypt(plaintext, "senha-forte")
	require.NoError(t, err)
	assert.True(t, IsEnvelope([]byte(envelope)))

	got, err := c.Decrypt(envelope, "senha-forte")
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestAESGCM_WrongPassphrase(t *testing.T) {
	c := NewAESGCM()

	envelope, err := c.Encrypt([]byte("segredo"), "certa")
	require.NoError(t, err)

	_, err = c.Decrypt(envelope, "errada")
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestAESGCM_EnvelopesDiffer(t *testing.T) {
	c := NewAESGCM()

	first, err := c.Encrypt([]byte("mesmo conteúdo"), "senha")
	require.NoError(t, err)
	second, err := c.Encrypt([]byte("mesmo conteúdo"), "senha")
	require.NoError(t, err)

	// Fresh salt and nonce per call.
	assert.NotEqual(t, first, second)
}

func TestAESGCM_InvalidEnvelope(t *testing.T) {
	c := NewAESGCM()

	tests := []struct {
		name    string
		content string
	}{
		{name: "not base64", content: "isto não é base64!!!"},
		{name: "plain json", content: `{"pericias":[]}`},
		{name: "wrong magic", content: base64.StdEncoding.EncodeToString([]byte("XX9aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))},
		{name: "truncated", content: base64.StdEncoding.EncodeToString([]byte("PB1abc"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decrypt(tt.content, "senha")
			assert.ErrorIs(t, err, ErrInvalidEnvelope)
		})
	}
}

func TestAESGCM_TamperedCiphertext(t *testing.T) {
	c := NewAESGCM()

	envelope, err := c.Encrypt([]byte("segredo"), "senha")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(envelope)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff

	_, err = c.Decrypt(base64.StdEncoding.EncodeToString(raw), "senha")
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestIsEnvelope(t *testing.T) {
	assert.False(t, IsEnvelope([]byte(`{"pericias":[]}`)))
	assert.False(t, IsEnvelope([]byte("")))
}
