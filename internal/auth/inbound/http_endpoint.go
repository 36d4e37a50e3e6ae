package inbound

import (
	"github.com/danukusuma/gatekeeper/internal/auth/usecase"
	"github.com/danukusuma/gatekeeper/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the login handshake.
type HTTPEndpoint struct {
	uc uc
}

// Captcha issues a fresh challenge bound to the caller's session.
// @Summary Request a captcha challenge
// @Description Generates a captcha, stores the expected answer in the session, and returns the rendered SVG.
// @Tags Auth
// @Produce json
// @Success 200 {object} router.successResponse{data=CaptchaResponse} "Rendered challenge"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/captcha [get]
func (h *HTTPEndpoint) Captcha(r *router.Request) (any, error) {
	resp, err := h.uc.RequestChallenge(r.Context(), usecase.RequestChallengeInput{
		SessionToken: r.Session(),
	})
	if err != nil {
		return nil, err
	}

	return CaptchaResponse{Captcha: resp.SVG}, nil
}

// Login submits credentials with a captcha answer and triggers OTP delivery.
// @Summary Submit credentials
// @Description Validates the captcha answer and credentials. On success a one-time code is sent out of band.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Code issued"
// @Failure 400 {object} router.errorResponse "Invalid captcha or missing credentials"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SubmitCredentials(r.Context(), usecase.SubmitCredentialsInput{
		SessionToken:    r.Session(),
		Identity:        req.Username,
		Secret:          req.Password,
		ChallengeAnswer: req.Captcha,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{Success: true, Username: resp.Identity}, nil
}

// VerifyOtp confirms the one-time code and completes the handshake.
// @Summary Verify one-time code
// @Description Checks the submitted code against the pending login and promotes the session on match.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body VerifyOtpRequest true "Code payload"
// @Success 200 {object} router.successResponse{data=VerifyOtpResponse} "Authenticated"
// @Failure 400 {object} router.errorResponse "No pending login, expired, missing, or mismatched code"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/verify-otp [post]
func (h *HTTPEndpoint) VerifyOtp(r *router.Request) (any, error) {
	var req VerifyOtpRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SubmitOTP(r.Context(), usecase.SubmitOtpInput{
		SessionToken: r.Session(),
		Code:         req.Otp,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOtpResponse{Success: true, Username: resp.Identity}, nil
}

// AuthStatus reports the session's authentication state.
// @Summary Check authentication status
// @Description Returns whether the session is authenticated and, when it is, the identity.
// @Tags Auth
// @Produce json
// @Success 200 {object} router.successResponse{data=AuthStatusResponse} "Current status"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/auth-status [get]
func (h *HTTPEndpoint) AuthStatus(r *router.Request) (any, error) {
	resp, err := h.uc.CheckStatus(r.Context(), usecase.CheckStatusInput{
		SessionToken: r.Session(),
	})
	if err != nil {
		return nil, err
	}

	out := AuthStatusResponse{Authenticated: resp.Authenticated}
	if resp.Authenticated {
		out.Username = resp.Identity
	}

	return out, nil
}

// Logout terminates the session.
// @Summary Logout
// @Description Drops all handshake state for the session. Safe to call repeatedly.
// @Tags Auth
// @Produce json
// @Success 200 {object} router.successResponse{data=LogoutResponse} "Logged out"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context(), usecase.LogoutInput{
		SessionToken: r.Session(),
	}); err != nil {
		return nil, err
	}

	return LogoutResponse{Success: true}, nil
}
