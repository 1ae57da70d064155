package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"

	secretsDomain "github.com/allisson/authcore/internal/secrets/domain"
)

type credentialCipher struct{}

// NewCredentialCipher returns the AES-256-CBC bundle cipher.
func NewCredentialCipher() CredentialCipher {
	return &credentialCipher{}
}

// Decrypt walks environments and secrets in lexical order so that the reported failure is
// stable across runs.
func (c *credentialCipher) Decrypt(
	bundle secretsDomain.Bundle,
) (*secretsDomain.DecryptedSecrets, error) {
	if bundle == nil {
		return nil, fmt.Errorf("%w: nil bundle", secretsDomain.ErrMalformedBundle)
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}

	values := make(map[string]map[string]string, len(bundle))
	for _, env := range bundle.Environments() {
		entries := bundle[env]
		plain := make(map[string]string, len(entries))

		for _, name := range bundle.Keys(env) {
			value, err := decryptEntry(entries[name])
			if err != nil {
				return nil, fmt.Errorf("%w: %s/%s: %v", secretsDomain.ErrCrypto, env, name, err)
			}
			plain[name] = value
		}

		values[env] = plain
	}

	return secretsDomain.NewDecryptedSecrets(values), nil
}

// EncryptEntry generates a fresh 32-byte key for every entry.
func (c *credentialCipher) EncryptEntry(plaintext string) (secretsDomain.Entry, error) {
	key := make([]byte, aes256KeySize)
	if _, err := rand.Read(key); err != nil {
		return secretsDomain.Entry{}, fmt.Errorf("failed to generate key: %w", err)
	}
	defer secretsDomain.Zero(key)

	aesCipher, err := NewAESCBC(key)
	if err != nil {
		return secretsDomain.Entry{}, err
	}

	ciphertext, iv, err := aesCipher.Encrypt([]byte(plaintext))
	if err != nil {
		return secretsDomain.Entry{}, err
	}

	return secretsDomain.Entry{
		Token: hex.EncodeToString(ciphertext),
		IV:    hex.EncodeToString(iv),
		Key:   hex.EncodeToString(key),
	}, nil
}

func decryptEntry(entry secretsDomain.Entry) (string, error) {
	key, err := hex.DecodeString(entry.Key)
	if err != nil {
		return "", fmt.Errorf("invalid key encoding: %w", err)
	}
	defer secretsDomain.Zero(key)

	iv, err := hex.DecodeString(entry.IV)
	if err != nil {
		return "", fmt.Errorf("invalid iv encoding: %w", err)
	}

	ciphertext, err := hex.DecodeString(entry.Token)
	if err != nil {
		return "", fmt.Errorf("invalid token encoding: %w", err)
	}

	aesCipher, err := NewAESCBC(key)
	if err != nil {
		return "", err
	}

	plaintext, err := aesCipher.Decrypt(ciphertext, iv)
	if err != nil {
		return "", err
	}
	defer secretsDomain.Zero(plaintext)

	if !utf8.Valid(plaintext) {
		return "", errors.New("plaintext is not valid utf-8")
	}

	return string(plaintext), nil
}
