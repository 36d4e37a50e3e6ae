// Package console delivers one-time codes to the server log. Meant for
// development and single-operator setups with no mail infrastructure.
package console

import (
	"context"
	"log/slog"

	"github.com/danukusuma/gatekeeper/internal/notify/usecase"
	"github.com/danukusuma/gatekeeper/internal/pkg/instrument"
)

type Console struct {
	ins instrument.Instrumentation
}

func New(ins instrument.Instrumentation) *Console {
	return &Console{ins: ins}
}

func (c *Console) Deliver(ctx context.Context, d usecase.Delivery) error {
	ctx, span := c.ins.Tracer("notify.outbound.console").Start(ctx, "Deliver")
	defer span.End()

	slog.InfoContext(ctx, "one-time code issued",
		"identity", d.Identity,
		"code", d.Code,
		"expires_at", d.ExpiresAt,
	)

	return nil
}
