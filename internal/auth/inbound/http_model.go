package inbound

type CaptchaResponse struct {
	Captcha string `json:"captcha"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Captcha  string `json:"captcha"`
}

type LoginResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
}

func (LoginResponse) Message() string {
	return "OTP sent successfully. Check your inbox."
}

type VerifyOtpRequest struct {
	Otp string `json:"otp"`
}

type VerifyOtpResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
}

func (VerifyOtpResponse) Message() string {
	return "Login successful!"
}

type AuthStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

type LogoutResponse struct {
	Success bool `json:"success"`
}

func (LogoutResponse) Message() string {
	return "Logged out successfully"
}
