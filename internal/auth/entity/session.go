package entity

// Session is the per-session login handshake state. At most one of
// PendingIdentity and Identity is set at a time.
type Session struct {
	// Challenge is the expected captcha answer; cleared on first use.
	Challenge string
	// PendingIdentity is the identity awaiting one-time code confirmation.
	PendingIdentity string
	// Identity is the fully authenticated identity.
	Identity string
}

// State derives the handshake state from the stored fields.
func (s Session) State() SessionState {
	switch {
	case s.Identity != "":
		return StateAuthenticated
	case s.PendingIdentity != "":
		return StateOtpPending
	case s.Challenge != "":
		return StateChallengeIssued
	default:
		return StateAnonymous
	}
}

// IsZero reports whether the session carries no handshake state.
func (s Session) IsZero() bool {
	return s == Session{}
}
