// Package service provides key generation, slow hashing and Authorization header encoding
// for sessions and password-reset tokens.
package service

// SecretHasher hashes and verifies secrets with a cost-factored, salted hash.
type SecretHasher interface {
	// Hash returns an Argon2id PHC string for plain.
	Hash(plain string) (string, error)

	// Compare verifies plain against hashed in constant time. Legacy bcrypt hashes are
	// accepted. Any verification error is reported as a mismatch.
	Compare(plain, hashed string) bool

	// CompareDummy burns the same verification cost as Compare and always returns false.
	// It is used when there is no stored hash so that response timing does not reveal it.
	CompareDummy(plain string) bool
}

// KeyService generates the random keys handed out for sessions and reset tokens.
type KeyService interface {
	SecretHasher

	// GenerateKey returns a base64url encoded 32-byte random key and its hash.
	GenerateKey() (plainKey string, keyHash string, err error)
}
