package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/danukusuma/gatekeeper/internal/pkg/goerror"
)

type SubmitCredentialsInput struct {
	SessionToken    string `validate:"required"`
	Identity        string
	Secret          string
	ChallengeAnswer string
}

type SubmitCredentialsOutput struct {
	Identity string
}

// SubmitCredentials is the first login factor: challenge answer plus
// credentials. The stored challenge is consumed before anything else, so it
// can only ever be attempted once regardless of outcome. On success a
// one-time code is issued to the ledger and handed to the notification
// pipeline; it is never part of the response.
func (s *Usecase) SubmitCredentials(ctx context.Context, in SubmitCredentialsInput) (*SubmitCredentialsOutput, error) {
	ctx, span := s.startSpan(ctx, "SubmitCredentials")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	stored, err := s.sessions.TakeChallenge(ctx, in.SessionToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to consume challenge answer", "error", err)
		return nil, goerror.NewServer(err)
	}

	if stored == "" || stored != in.ChallengeAnswer {
		slog.WarnContext(ctx, "challenge answer missing or mismatched")
		return nil, goerror.NewBusiness("Invalid CAPTCHA. Please try again.", goerror.CodeBadRequest)
	}

	identity := strings.TrimSpace(in.Identity)
	if identity == "" || in.Secret == "" {
		slog.WarnContext(ctx, "credentials missing")
		return nil, goerror.NewBusiness("Username and password are required.", goerror.CodeBadRequest)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate one-time code", "error", err)
		return nil, goerror.NewServer(err)
	}

	expiresAt, err := s.ledger.Issue(ctx, identity, code, s.otpTTL())
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue one-time code", "identity", identity, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.sessions.SetPendingIdentity(ctx, in.SessionToken, identity); err != nil {
		slog.ErrorContext(ctx, "failed to mark session pending", "identity", identity, "error", err)
		return nil, goerror.NewServer(err)
	}

	evt := OtpIssuedEvent{
		EventID:   strconv.FormatInt(s.eventID.Generate(), 10),
		Identity:  identity,
		Code:      code,
		ExpiresAt: expiresAt,
	}

	// Fire and forget: delivery trouble never fails the login transition.
	// Detached from the request context so writing the response does not
	// cancel the publish.
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.publisher.PublishOtpIssued(ctx, evt); err != nil {
			slog.ErrorContext(ctx, "failed to publish otp issued event",
				"event_id", evt.EventID, "identity", evt.Identity, "error", err)
		}
		return nil
	})

	return &SubmitCredentialsOutput{Identity: identity}, nil
}
