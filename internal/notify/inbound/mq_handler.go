package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/danukusuma/gatekeeper/internal/notify/usecase"
	"github.com/danukusuma/gatekeeper/internal/pkg/instrument"
	"github.com/danukusuma/gatekeeper/internal/pkg/messaging"
	"github.com/danukusuma/gatekeeper/internal/pkg/uid"
	"github.com/danukusuma/gatekeeper/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, msg messaging.Message) context.Context {
	if cID := msg.Header(keyOfCorrelationID); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) OtpIssuedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("notify.inbound.mq").Start(ctx, "OtpIssuedNotification")
	defer span.End()

	body := msg.Body()

	var payload event.OtpIssuedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of otp issued notification", "msg_body", string(body), "error", err)
		return nil
	}

	slog.InfoContext(ctx, "consume: otp issued notification",
		"event_id", payload.EventID, "identity", payload.Identity)

	if err := h.uc.ConsumeOtpIssued(ctx, usecase.ConsumeOtpIssuedInput{
		EventID:   payload.EventID,
		Identity:  payload.Identity,
		Code:      payload.Code,
		ExpiresAt: payload.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume otp issued", "event_id", payload.EventID, "error", err)
		return err
	}

	return nil
}
