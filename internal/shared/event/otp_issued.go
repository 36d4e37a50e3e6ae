package event

import "time"

const OtpIssuedDestination string = "gatekeeper.otp.issued"
const OtpIssuedConsumerGroup string = "gatekeeper-notify"

type OtpIssuedMessage struct {
	EventID   string    `json:"event_id"`
	Identity  string    `json:"identity"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}
