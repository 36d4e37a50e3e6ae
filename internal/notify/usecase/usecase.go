package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/danukusuma/gatekeeper/internal/pkg/config"
	"github.com/danukusuma/gatekeeper/internal/pkg/idempotency"
	"github.com/danukusuma/gatekeeper/internal/pkg/instrument"
	"github.com/danukusuma/gatekeeper/internal/pkg/validator"
)

// Delivery is a one-time code on its way to the login's owner.
type Delivery struct {
	Identity  string
	Code      string
	ExpiresAt time.Time
}

type deliverer interface {
	Deliver(ctx context.Context, d Delivery) error
}

type Usecase struct {
	deliverer deliverer
	dedupe    idempotency.Deduper
	validator validator.Validator
	cfg       config.Config
	ins       instrument.Instrumentation
}

type Dependency struct {
	Deliverer   deliverer
	Idempotency idempotency.Deduper
	Validator   validator.Validator
	Config      config.Config
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		deliverer: dep.Deliverer,
		dedupe:    dep.Idempotency,
		validator: dep.Validator,
		cfg:       dep.Config,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notify.usecase").Start(ctx, name)
}
