package usecase

import (
	"context"
	"log/slog"

	"github.com/danukusuma/gatekeeper/internal/pkg/goerror"
)

type RequestChallengeInput struct {
	SessionToken string `validate:"required"`
}

type RequestChallengeOutput struct {
	SVG    string
	Width  int
	Height int
}

// RequestChallenge issues a fresh captcha challenge for the session. A new
// challenge always replaces any earlier unanswered one.
func (s *Usecase) RequestChallenge(ctx context.Context, in RequestChallengeInput) (*RequestChallengeOutput, error) {
	ctx, span := s.startSpan(ctx, "RequestChallenge")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	text, scene := s.captcha.Generate()

	if err := s.sessions.SetChallenge(ctx, in.SessionToken, text); err != nil {
		slog.ErrorContext(ctx, "failed to store challenge answer", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RequestChallengeOutput{
		SVG:    scene.SVG(),
		Width:  scene.Width,
		Height: scene.Height,
	}, nil
}
