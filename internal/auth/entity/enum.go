package entity

// SessionState is the position of a session in the login handshake.
type SessionState int

const (
	// StateAnonymous means no handshake has started.
	StateAnonymous SessionState = 0

	// StateChallengeIssued means a captcha challenge is stored and unanswered.
	StateChallengeIssued SessionState = 1

	// StateOtpPending means credentials passed and a one-time code is awaited.
	StateOtpPending SessionState = 2

	// StateAuthenticated means the handshake completed.
	StateAuthenticated SessionState = 3
)

func (s SessionState) String() string {
	switch s {
	case StateChallengeIssued:
		return "ChallengeIssued"
	case StateOtpPending:
		return "OtpPending"
	case StateAuthenticated:
		return "Authenticated"
	default:
		return "Anonymous"
	}
}
