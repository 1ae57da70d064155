package service

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAESCBC(t *testing.T) {
	t.Run("valid 256-bit key", func(t *testing.T) {
		key := make([]byte, 32)
		_, err := rand.Read(key)
		require.NoError(t, err)

		c, err := NewAESCBC(key)
		assert.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("invalid key size - AES-128", func(t *testing.T) {
		c, err := NewAESCBC(make([]byte, 16))
		assert.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("invalid key size - too large", func(t *testing.T) {
		c, err := NewAESCBC(make([]byte, 64))
		assert.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestAESCBCCipher_RoundTrip(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	c, err := NewAESCBC(key)
	require.NoError(t, err)

	for _, plaintext := range []string{"", "secret123", "exactly16bytes!!", "a much longer secret spanning several blocks"} {
		ciphertext, iv, err := c.Encrypt([]byte(plaintext))
		require.NoError(t, err)
		assert.Len(t, iv, 16)
		assert.Zero(t, len(ciphertext)%16)
		assert.Greater(t, len(ciphertext), len(plaintext))

		decrypted, err := c.Decrypt(ciphertext, iv)
		require.NoError(t, err)
		assert.Equal(t, plaintext, string(decrypted))
	}
}

func TestAESCBCCipher_Decrypt(t *testing.T) {
	// NIST SP 800-38A F.2.5 CBC-AES256.Encrypt, first block.
	key, _ := hex.DecodeString("603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4")
	iv, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")

	c, err := NewAESCBC(key)
	require.NoError(t, err)

	t.Run("rejects bad iv length", func(t *testing.T) {
		_, err := c.Decrypt(make([]byte, 16), make([]byte, 8))
		assert.Error(t, err)
	})

	t.Run("rejects partial block", func(t *testing.T) {
		_, err := c.Decrypt(make([]byte, 20), iv)
		assert.Error(t, err)
	})

	t.Run("rejects empty ciphertext", func(t *testing.T) {
		_, err := c.Decrypt(nil, iv)
		assert.Error(t, err)
	})

	t.Run("rejects invalid padding", func(t *testing.T) {
		// The known-answer ciphertext decrypts to a block ending in 0x2a, which is not
		// valid PKCS#7 padding.
		ciphertext, _ := hex.DecodeString("f58c4c04d6e5f1ba779eabfb5f7bfbd6")
		_, err := c.Decrypt(ciphertext, iv)
		assert.Error(t, err)
	})
}

func TestPKCS7(t *testing.T) {
	t.Run("pad full block when aligned", func(t *testing.T) {
		padded := pkcs7Pad(make([]byte, 16), 16)
		assert.Len(t, padded, 32)
		assert.Equal(t, byte(16), padded[31])
	})

	t.Run("unpad rejects zero", func(t *testing.T) {
		block := make([]byte, 16)
		_, err := pkcs7Unpad(block, 16)
		assert.Error(t, err)
	})

	t.Run("unpad rejects inconsistent bytes", func(t *testing.T) {
		block := pkcs7Pad([]byte("abc"), 16)
		block[len(block)-2] = 0x01
		_, err := pkcs7Unpad(block, 16)
		assert.Error(t, err)
	})

	t.Run("unpad rejects oversized value", func(t *testing.T) {
		block := make([]byte, 16)
		block[15] = 17
		_, err := pkcs7Unpad(block, 16)
		assert.Error(t, err)
	})
}
