// Package domain defines core domain models and errors for the encrypted secrets bundle.
package domain

import (
	"github.com/allisson/authcore/internal/errors"
)

// Secrets bundle error definitions.
var (
	// ErrMalformedBundle indicates the bundle is not a well-formed environment/secret mapping.
	ErrMalformedBundle = errors.Wrap(errors.ErrInvalidInput, "malformed secrets bundle")

	// ErrCrypto indicates an entry's key, IV or cipher text could not be decoded or decrypted.
	//
	// The process must not start when this is returned; no partially decrypted
	// secrets are ever exposed.
	ErrCrypto = errors.Wrap(errors.ErrInvalidInput, "secrets bundle decryption failed")

	// ErrBundleNotFound indicates the bundle object does not exist in the configured bucket.
	ErrBundleNotFound = errors.Wrap(errors.ErrNotFound, "secrets bundle not found")
)
