package entity

import "time"

// OtpEntry is a stored one-time code. The code itself is kept hashed;
// plaintext only ever travels to the notification channel.
type OtpEntry struct {
	CodeHash  string
	ExpiresAt time.Time
}

// Expired reports whether the entry is past its lifetime at now.
func (e OtpEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
