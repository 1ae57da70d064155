// Package service provides the cryptographic and storage services behind the encrypted
// secrets bundle.
package service

import (
	"context"

	secretsDomain "github.com/allisson/authcore/internal/secrets/domain"
)

// CredentialCipher decrypts a bundle into plaintext secrets and authors new entries.
type CredentialCipher interface {
	// Decrypt decrypts every entry of bundle. A single failing entry fails the whole call.
	Decrypt(bundle secretsDomain.Bundle) (*secretsDomain.DecryptedSecrets, error)

	// EncryptEntry encrypts plaintext under a freshly generated key and IV.
	EncryptEntry(plaintext string) (secretsDomain.Entry, error)
}

// BundleSource reads the raw encrypted bundle from storage.
type BundleSource interface {
	Read(ctx context.Context) ([]byte, error)
}
