package domain

import (
	"strings"
	"time"
)

// Default lockout thresholds.
const (
	DefaultAttemptsForIP        = 50
	DefaultAttemptsForIPAndUser = 7
)

// AuthAttempt is one failed authentication. Records are append-only.
type AuthAttempt struct {
	IP        string
	Identity  string
	CreatedAt time.Time
}

// NormalizeIdentity lowercases usernames and emails so "A@x.com" and "a@x.com" share a counter.
func NormalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}

// Thresholds are the attempt counts at which a lockout starts.
type Thresholds struct {
	ForIP        int
	ForIPAndUser int
}

// DefaultThresholds returns the thresholds used when none are configured.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ForIP:        DefaultAttemptsForIP,
		ForIPAndUser: DefaultAttemptsForIPAndUser,
	}
}

// AbuseVerdict compares the current attempt counts against the thresholds.
type AbuseVerdict struct {
	IP                        string
	Identity                  string
	IPAttemptCount            int64
	IPAndIdentityAttemptCount int64
	Thresholds                Thresholds
}

// LockedByIP reports whether the per-IP threshold was reached.
func (v AbuseVerdict) LockedByIP() bool {
	return v.IPAttemptCount >= int64(v.Thresholds.ForIP)
}

// LockedByIdentity reports whether the per IP+identity threshold was reached.
func (v AbuseVerdict) LockedByIdentity() bool {
	return v.IPAndIdentityAttemptCount >= int64(v.Thresholds.ForIPAndUser)
}

// Locked is true when either threshold was reached.
func (v AbuseVerdict) Locked() bool {
	return v.LockedByIP() || v.LockedByIdentity()
}
