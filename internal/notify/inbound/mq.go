package inbound

import (
	"context"
	"log/slog"

	"github.com/danukusuma/gatekeeper/internal/pkg/goroutine"
	"github.com/danukusuma/gatekeeper/internal/pkg/instrument"
	"github.com/danukusuma/gatekeeper/internal/pkg/messaging"
	"github.com/danukusuma/gatekeeper/internal/pkg/uid"
	"github.com/danukusuma/gatekeeper/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	routine.Go(ctx, func(pCtx context.Context) error {
		slog.InfoContext(pCtx, "Running job for handling consumer", "consumer", event.OtpIssuedConsumerGroup)
		return messenger.Consume(pCtx,
			event.OtpIssuedDestination,
			mqHandler.OtpIssuedNotification,
			messaging.WithQueueGroup(event.OtpIssuedConsumerGroup),
			messaging.WithGroup(event.OtpIssuedConsumerGroup),
			messaging.WithAutoAck(true),
			messaging.WithConcurrency(10),
		)
	})
}
