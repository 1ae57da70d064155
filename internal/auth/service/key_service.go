package service

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/allisson/authcore/internal/errors"
)

const keySize = 32

// argon2Hasher implements SecretHasher and KeyService on top of go-pwdhash.
type argon2Hasher struct {
	hasher    *pwdhash.PasswordHasher
	dummyHash string
}

func newArgon2Hasher(hasher *pwdhash.PasswordHasher) *argon2Hasher {
	h := &argon2Hasher{hasher: hasher}

	dummy := make([]byte, keySize)
	if _, err := rand.Read(dummy); err != nil {
		panic(err)
	}

	var err error
	h.dummyHash, err = h.Hash(base64.URLEncoding.EncodeToString(dummy))
	if err != nil {
		panic(err)
	}

	return h
}

// NewKeyService creates the KeyService used for session keys and reset tokens.
// Uses the Moderate policy.
func NewKeyService() KeyService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}
	return newArgon2Hasher(hasher)
}

// NewPasswordHasher creates the SecretHasher for user passwords using the Interactive policy.
func NewPasswordHasher() SecretHasher {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyInteractive),
	)
	if err != nil {
		panic(err)
	}
	return newArgon2Hasher(hasher)
}

func (h *argon2Hasher) GenerateKey() (plainKey string, keyHash string, err error) {
	randomBytes := make([]byte, keySize)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random key")
	}

	plainKey = base64.URLEncoding.EncodeToString(randomBytes)

	keyHash, err = h.Hash(plainKey)
	if err != nil {
		return "", "", err
	}

	return plainKey, keyHash, nil
}

func (h *argon2Hasher) Hash(plain string) (string, error) {
	hashed, err := h.hasher.Hash([]byte(plain))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash secret")
	}
	return hashed, nil
}

func (h *argon2Hasher) Compare(plain, hashed string) bool {
	if isBcryptHash(hashed) {
		return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
	}

	ok, err := h.hasher.Verify([]byte(plain), hashed)
	if err != nil {
		return false
	}
	return ok
}

func (h *argon2Hasher) CompareDummy(plain string) bool {
	_, _ = h.hasher.Verify([]byte(plain), h.dummyHash)
	return false
}

// isBcryptHash detects hashes written by the previous bcrypt-based deployment.
func isBcryptHash(hashed string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(hashed, prefix) {
			return true
		}
	}
	return false
}
