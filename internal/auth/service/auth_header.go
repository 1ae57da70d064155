package service

import (
	"encoding/base64"
	"strings"

	"github.com/google/uuid"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
)

const basicScheme = "Basic "

// BuildAuthHeader returns "Basic base64(sessionID:plainKey)". This is the only place the
// plaintext key travels back to a client; the header must never be logged.
func BuildAuthHeader(session *authDomain.Session, plainKey string) string {
	credentials := session.ID.String() + ":" + plainKey
	return basicScheme + base64.StdEncoding.EncodeToString([]byte(credentials))
}

// ParseAuthHeader is the inverse of BuildAuthHeader. The scheme is matched case-insensitively.
func ParseAuthHeader(header string) (sessionID uuid.UUID, plainKey string, err error) {
	if len(header) < len(basicScheme) || !strings.EqualFold(header[:len(basicScheme)], basicScheme) {
		return uuid.Nil, "", authDomain.ErrInvalidAuthHeader
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(basicScheme):]))
	if err != nil {
		return uuid.Nil, "", authDomain.ErrInvalidAuthHeader
	}

	id, key, ok := strings.Cut(string(decoded), ":")
	if !ok || key == "" {
		return uuid.Nil, "", authDomain.ErrInvalidAuthHeader
	}

	sessionID, err = uuid.Parse(id)
	if err != nil {
		return uuid.Nil, "", authDomain.ErrInvalidAuthHeader
	}

	return sessionID, key, nil
}
