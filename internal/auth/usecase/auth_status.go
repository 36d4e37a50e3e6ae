package usecase

import (
	"context"
	"log/slog"

	"github.com/danukusuma/gatekeeper/internal/pkg/goerror"
)

type CheckStatusInput struct {
	SessionToken string `validate:"required"`
}

type CheckStatusOutput struct {
	Authenticated bool
	Identity      string
}

// CheckStatus reports whether the session completed the handshake. It never
// changes state.
func (s *Usecase) CheckStatus(ctx context.Context, in CheckStatusInput) (*CheckStatusOutput, error) {
	ctx, span := s.startSpan(ctx, "CheckStatus")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	identity, err := s.sessions.Authenticated(ctx, in.SessionToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read session state", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CheckStatusOutput{
		Authenticated: identity != "",
		Identity:      identity,
	}, nil
}
