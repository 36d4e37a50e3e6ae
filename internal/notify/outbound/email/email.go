package email

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"

	"github.com/danukusuma/gatekeeper/internal/notify/usecase"
	"github.com/danukusuma/gatekeeper/internal/pkg/instrument"
	"github.com/danukusuma/gatekeeper/internal/pkg/mail"
)

const maxSendRetries = 3

// Email delivers one-time codes over SMTP. Transient send failures are
// retried with exponential backoff before the event is given up on.
type Email struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func New(client mail.Mail, ins instrument.Instrumentation) *Email {
	return &Email{client: client, ins: ins}
}

func (m *Email) Deliver(ctx context.Context, d usecase.Delivery) error {
	ctx, span := m.ins.Tracer("notify.outbound.email").Start(ctx, "Deliver")
	defer span.End()

	msg := mail.Message{
		To:      []string{d.Identity},
		Subject: "Your one-time login code",
		Body: fmt.Sprintf(
			"Your one-time login code is %s.\r\n\r\nIt expires at %s. If you did not request this code, ignore this message.",
			d.Code, d.ExpiresAt.Format(time.RFC1123)),
	}

	b := retry.WithMaxRetries(maxSendRetries, retry.NewExponential(500*time.Millisecond))

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := m.client.Send(ctx, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
