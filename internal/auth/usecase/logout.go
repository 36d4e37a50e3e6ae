package usecase

import (
	"context"
	"log/slog"

	"github.com/danukusuma/gatekeeper/internal/pkg/goerror"
)

type LogoutInput struct {
	SessionToken string `validate:"required"`
}

// Logout drops all handshake state for the session, whatever state it is
// in. Logging out an already anonymous session succeeds.
func (s *Usecase) Logout(ctx context.Context, in LogoutInput) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.sessions.Clear(ctx, in.SessionToken); err != nil {
		slog.ErrorContext(ctx, "failed to clear session state", "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
