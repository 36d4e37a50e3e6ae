package inbound

import (
	"context"

	"github.com/danukusuma/gatekeeper/internal/notify/usecase"
)

type uc interface {
	ConsumeOtpIssued(ctx context.Context, in usecase.ConsumeOtpIssuedInput) error
}
