package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/danukusuma/gatekeeper/internal/pkg/captcha"
	"github.com/danukusuma/gatekeeper/internal/pkg/clock"
	"github.com/danukusuma/gatekeeper/internal/pkg/config"
	"github.com/danukusuma/gatekeeper/internal/pkg/goroutine"
	"github.com/danukusuma/gatekeeper/internal/pkg/instrument"
	"github.com/danukusuma/gatekeeper/internal/pkg/otpcode"
	"github.com/danukusuma/gatekeeper/internal/pkg/uid"
	"github.com/danukusuma/gatekeeper/internal/pkg/validator"
)

// OtpIssuedEvent is handed to the notification pipeline after credentials
// pass. The code never appears in any HTTP response.
type OtpIssuedEvent struct {
	EventID   string
	Identity  string
	Code      string
	ExpiresAt time.Time
}

type otpPublisher interface {
	PublishOtpIssued(ctx context.Context, msg OtpIssuedEvent) error
}

type sessionStore interface {
	SetChallenge(ctx context.Context, token, answer string) error
	TakeChallenge(ctx context.Context, token string) (string, error)
	SetPendingIdentity(ctx context.Context, token, identity string) error
	TakePendingIdentity(ctx context.Context, token string) (string, error)
	SetAuthenticated(ctx context.Context, token, identity string) error
	Authenticated(ctx context.Context, token string) (string, error)
	Clear(ctx context.Context, token string) error
}

type otpLedger interface {
	Issue(ctx context.Context, identity, code string, ttl time.Duration) (time.Time, error)
	Verify(ctx context.Context, identity, submitted string) error
}

type Usecase struct {
	sessions  sessionStore
	ledger    otpLedger
	publisher otpPublisher
	captcha   captcha.Generator
	otp       otpcode.Generator
	validator validator.Validator
	cfg       config.Config
	clock     clock.Clocker
	eventID   uid.NumberID
	ins       instrument.Instrumentation
	goroutine *goroutine.Manager
}

type Dependency struct {
	Sessions   sessionStore
	Ledger     otpLedger
	Publisher  otpPublisher
	Captcha    captcha.Generator
	Otp        otpcode.Generator
	Validator  validator.Validator
	Config     config.Config
	Clock      clock.Clocker
	EventID    uid.NumberID
	Instrument instrument.Instrumentation
	Goroutine  *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		sessions:  dep.Sessions,
		ledger:    dep.Ledger,
		publisher: dep.Publisher,
		captcha:   dep.Captcha,
		otp:       dep.Otp,
		validator: dep.Validator,
		cfg:       dep.Config,
		clock:     dep.Clock,
		eventID:   dep.EventID,
		ins:       dep.Instrument,
		goroutine: dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

const defaultOtpTTL = 5 * time.Minute

func (s *Usecase) otpTTL() time.Duration {
	ttl := s.cfg.GetMinute("modules.auth.otp_ttl_minutes")
	if ttl <= 0 {
		return defaultOtpTTL
	}

	return ttl
}
