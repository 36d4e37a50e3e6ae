package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danukusuma/gatekeeper/internal/pkg/idempotency"
)

type ConsumeOtpIssuedInput struct {
	EventID   string `validate:"required"`
	Identity  string `validate:"required"`
	Code      string `validate:"required"`
	ExpiresAt time.Time
}

// ConsumeOtpIssued delivers a freshly issued one-time code. Delivery runs at
// most once per event so broker redelivery never spams the recipient.
func (s *Usecase) ConsumeOtpIssued(ctx context.Context, in ConsumeOtpIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOtpIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	dedupeTTL := s.cfg.GetMinute("modules.notify.dedupe_ttl_minutes")

	err := s.dedupe.Once(ctx, "otp_issued:"+in.EventID, dedupeTTL, func(ctx context.Context) error {
		return s.deliverer.Deliver(ctx, Delivery{
			Identity:  in.Identity,
			Code:      in.Code,
			ExpiresAt: in.ExpiresAt,
		})
	})
	if errors.Is(err, idempotency.ErrAlreadyProcessed) {
		slog.InfoContext(ctx, "one-time code already delivered", "event_id", in.EventID)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to deliver one-time code",
			"event_id", in.EventID, "identity", in.Identity, "error", err)
		return err
	}

	return nil
}
