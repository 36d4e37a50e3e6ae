package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danukusuma/gatekeeper/internal/auth/outbound/otpledger"
	"github.com/danukusuma/gatekeeper/internal/pkg/goerror"
)

type SubmitOtpInput struct {
	SessionToken string `validate:"required"`
	Code         string
}

type SubmitOtpOutput struct {
	Identity string
}

// SubmitOTP is the second login factor. The pending identity is consumed up
// front; only a code mismatch restores it, so expiry and absence send the
// session back to the start of the handshake.
func (s *Usecase) SubmitOTP(ctx context.Context, in SubmitOtpInput) (*SubmitOtpOutput, error) {
	ctx, span := s.startSpan(ctx, "SubmitOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	identity, err := s.sessions.TakePendingIdentity(ctx, in.SessionToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to consume pending identity", "error", err)
		return nil, goerror.NewServer(err)
	}

	if identity == "" {
		slog.WarnContext(ctx, "no login awaiting confirmation")
		return nil, goerror.NewBusiness("Session expired. Please login again.", goerror.CodeBadRequest)
	}

	err = s.ledger.Verify(ctx, identity, strings.TrimSpace(in.Code))
	switch {
	case errors.Is(err, otpledger.ErrMismatch):
		// Retry allowed: put the session back into the pending state.
		if restoreErr := s.sessions.SetPendingIdentity(ctx, in.SessionToken, identity); restoreErr != nil {
			slog.ErrorContext(ctx, "failed to restore pending identity", "identity", identity, "error", restoreErr)
			return nil, goerror.NewServer(restoreErr)
		}
		slog.WarnContext(ctx, "one-time code mismatched", "identity", identity)
		return nil, goerror.NewBusiness("Invalid OTP. Please try again.", goerror.CodeBadRequest)

	case errors.Is(err, otpledger.ErrExpired):
		slog.WarnContext(ctx, "one-time code expired", "identity", identity)
		return nil, goerror.NewBusiness("OTP expired. Please login again.", goerror.CodeBadRequest)

	case errors.Is(err, otpledger.ErrNotFound):
		slog.WarnContext(ctx, "one-time code not found", "identity", identity)
		return nil, goerror.NewBusiness("OTP not found. Please request a new one.", goerror.CodeBadRequest)

	case err != nil:
		slog.ErrorContext(ctx, "failed to verify one-time code", "identity", identity, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.sessions.SetAuthenticated(ctx, in.SessionToken, identity); err != nil {
		slog.ErrorContext(ctx, "failed to mark session authenticated", "identity", identity, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SubmitOtpOutput{Identity: identity}, nil
}
