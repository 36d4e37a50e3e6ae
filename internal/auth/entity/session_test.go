package entity

import (
	"testing"
	"time"
)

func TestSessionState(t *testing.T) {
	tests := []struct {
		name string
		sess Session
		want SessionState
	}{
		{"empty", Session{}, StateAnonymous},
		{"challenge stored", Session{Challenge: "ABC234"}, StateChallengeIssued},
		{"awaiting code", Session{PendingIdentity: "alice"}, StateOtpPending},
		{"authenticated", Session{Identity: "alice"}, StateAuthenticated},
		{"challenge alongside pending", Session{Challenge: "ABC234", PendingIdentity: "alice"}, StateOtpPending},
		{"challenge alongside authenticated", Session{Challenge: "ABC234", Identity: "alice"}, StateAuthenticated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sess.State(); got != tc.want {
				t.Errorf("State() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSessionIsZero(t *testing.T) {
	if !(Session{}).IsZero() {
		t.Error("IsZero() = false for an empty session, want true")
	}
	if (Session{Challenge: "ABC234"}).IsZero() {
		t.Error("IsZero() = true for a session with a challenge, want false")
	}
}

func TestOtpEntryExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entry := OtpEntry{CodeHash: "x", ExpiresAt: now.Add(5 * time.Minute)}

	if entry.Expired(now) {
		t.Error("Expired() = true before the deadline, want false")
	}
	if entry.Expired(entry.ExpiresAt) {
		t.Error("Expired() = true exactly at the deadline, want false")
	}
	if !entry.Expired(entry.ExpiresAt.Add(time.Nanosecond)) {
		t.Error("Expired() = false after the deadline, want true")
	}
}
