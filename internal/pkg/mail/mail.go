package mail

import (
	"context"
	"io"
)

// Message is a provider-agnostic email payload.
type Message struct {
	// From is an optional explicit sender; falls back to the provider default.
	From string
	// To lists the recipients.
	To []string
	// Subject is the subject line.
	Subject string
	// Body is the plain-text body.
	Body string
}

// Mail abstracts an email provider so callers stay independent of the
// concrete delivery mechanism.
type Mail interface {
	io.Closer
	// Send dispatches the given message.
	Send(ctx context.Context, msg Message) error
}
