package inbound

import (
	"context"

	"github.com/danukusuma/gatekeeper/internal/auth/usecase"
	"github.com/danukusuma/gatekeeper/internal/pkg/router"
)

type uc interface {
	RequestChallenge(ctx context.Context, in usecase.RequestChallengeInput) (*usecase.RequestChallengeOutput, error)
	SubmitCredentials(ctx context.Context, in usecase.SubmitCredentialsInput) (*usecase.SubmitCredentialsOutput, error)
	SubmitOTP(ctx context.Context, in usecase.SubmitOtpInput) (*usecase.SubmitOtpOutput, error)
	CheckStatus(ctx context.Context, in usecase.CheckStatusInput) (*usecase.CheckStatusOutput, error)
	Logout(ctx context.Context, in usecase.LogoutInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/captcha", end.Captcha)
	r.POST("/api/login", end.Login)
	r.POST("/api/verify-otp", end.VerifyOtp)
	r.GET("/api/auth-status", end.AuthStatus)
	r.POST("/api/logout", end.Logout)
}
