package notify

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/danukusuma/gatekeeper/internal/notify/inbound"
	"github.com/danukusuma/gatekeeper/internal/notify/outbound/console"
	"github.com/danukusuma/gatekeeper/internal/notify/outbound/email"
	"github.com/danukusuma/gatekeeper/internal/notify/usecase"
	"github.com/danukusuma/gatekeeper/internal/pkg/config"
	"github.com/danukusuma/gatekeeper/internal/pkg/goroutine"
	"github.com/danukusuma/gatekeeper/internal/pkg/idempotency"
	"github.com/danukusuma/gatekeeper/internal/pkg/instrument"
	"github.com/danukusuma/gatekeeper/internal/pkg/mail"
	"github.com/danukusuma/gatekeeper/internal/pkg/messaging"
	"github.com/danukusuma/gatekeeper/internal/pkg/uid"
	"github.com/danukusuma/gatekeeper/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context            `validate:"required"`
	CacheConn  *redis.Client              // enables cross-instance delivery dedupe
	Mail       mail.Mail                  // required for the email driver
	Goroutine  *goroutine.Manager         `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	var deduper idempotency.Deduper = idempotency.NewNoop()
	if dep.CacheConn != nil {
		deduper = idempotency.NewRedis(dep.CacheConn)
	}

	var deliverer interface {
		Deliver(ctx context.Context, d usecase.Delivery) error
	}

	switch driver := dep.Config.GetString("modules.notify.driver"); driver {
	case "email":
		if dep.Mail == nil {
			return fmt.Errorf("notify: email driver requires a mail client")
		}
		deliverer = email.New(dep.Mail, dep.Instrument)
	case "console", "":
		deliverer = console.New(dep.Instrument)
	default:
		return fmt.Errorf("notify: unknown delivery driver %q", driver)
	}

	uc := usecase.New(usecase.Dependency{
		Deliverer:   deliverer,
		Idempotency: deduper,
		Validator:   dep.Validator,
		Config:      dep.Config,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterMQConsumer(dep.Ctx, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)

	return nil
}
