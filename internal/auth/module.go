package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/danukusuma/gatekeeper/internal/auth/inbound"
	"github.com/danukusuma/gatekeeper/internal/auth/outbound/mq"
	"github.com/danukusuma/gatekeeper/internal/auth/outbound/otpledger"
	"github.com/danukusuma/gatekeeper/internal/auth/outbound/sessionstore"
	"github.com/danukusuma/gatekeeper/internal/auth/usecase"
	"github.com/danukusuma/gatekeeper/internal/pkg/captcha"
	"github.com/danukusuma/gatekeeper/internal/pkg/clock"
	"github.com/danukusuma/gatekeeper/internal/pkg/config"
	"github.com/danukusuma/gatekeeper/internal/pkg/goroutine"
	"github.com/danukusuma/gatekeeper/internal/pkg/hash"
	"github.com/danukusuma/gatekeeper/internal/pkg/instrument"
	"github.com/danukusuma/gatekeeper/internal/pkg/messaging"
	"github.com/danukusuma/gatekeeper/internal/pkg/otpcode"
	"github.com/danukusuma/gatekeeper/internal/pkg/router"
	"github.com/danukusuma/gatekeeper/internal/pkg/uid"
	"github.com/danukusuma/gatekeeper/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context            `validate:"required"`
	CacheConn  *redis.Client              // required only for redis drivers
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	EventID    uid.NumberID               `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	sessions, err := sessionstore.NewFromDriver(
		sessionstore.Driver(dep.Config.GetString("modules.auth.session_driver")),
		sessionstore.FactoryOptions{
			RedisClient: dep.CacheConn,
			SessionTTL:  dep.Config.GetHour("app.session.ttl_hours"),
		})
	if err != nil {
		return err
	}

	ledger, err := otpledger.NewFromDriver(
		otpledger.Driver(dep.Config.GetString("modules.auth.otp_driver")),
		otpledger.FactoryOptions{
			Hasher:      dep.HMAC,
			Clock:       dep.Clock,
			RedisClient: dep.CacheConn,
		})
	if err != nil {
		return err
	}

	if mem, ok := ledger.(*otpledger.Memory); ok {
		dep.Goroutine.Go(dep.Ctx, func(ctx context.Context) error {
			return mem.Run(ctx, time.Minute)
		})
	}

	uc := usecase.New(usecase.Dependency{
		Sessions:   sessions,
		Ledger:     ledger,
		Publisher:  mq.NewMessaging(dep.Messaging, dep.Instrument),
		Captcha:    captcha.NewSceneGenerator(),
		Otp:        otpcode.NewCryptoRand(),
		Validator:  dep.Validator,
		Config:     dep.Config,
		Clock:      dep.Clock,
		EventID:    dep.EventID,
		Instrument: dep.Instrument,
		Goroutine:  dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
