package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdentity(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeIdentity("A@X.com"))
	assert.Equal(t, "admin", NormalizeIdentity("  Admin "))
}

func TestAbuseVerdict(t *testing.T) {
	thresholds := Thresholds{ForIP: 2, ForIPAndUser: 3}

	tests := []struct {
		name             string
		ipCount          int64
		pairCount        int64
		lockedByIP       bool
		lockedByIdentity bool
	}{
		{name: "clear", ipCount: 0, pairCount: 0},
		{name: "below both thresholds", ipCount: 1, pairCount: 1},
		{name: "ip threshold reached", ipCount: 2, pairCount: 0, lockedByIP: true},
		{name: "pair threshold reached", ipCount: 1, pairCount: 3, lockedByIdentity: true},
		{name: "both reached", ipCount: 5, pairCount: 5, lockedByIP: true, lockedByIdentity: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := AbuseVerdict{
				IPAttemptCount:            tt.ipCount,
				IPAndIdentityAttemptCount: tt.pairCount,
				Thresholds:                thresholds,
			}
			assert.Equal(t, tt.lockedByIP, verdict.LockedByIP())
			assert.Equal(t, tt.lockedByIdentity, verdict.LockedByIdentity())
			assert.Equal(t, tt.lockedByIP || tt.lockedByIdentity, verdict.Locked())
		})
	}
}

func TestDefaultThresholds(t *testing.T) {
	assert.Equal(t, Thresholds{ForIP: 50, ForIPAndUser: 7}, DefaultThresholds())
}
