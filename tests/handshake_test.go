package tests

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

type captchaResponse struct {
	Captcha string `json:"captcha"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Captcha  string `json:"captcha"`
}

type verifyOtpRequest struct {
	Otp string `json:"otp"`
}

type authStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
}

func TestCaptcha(t *testing.T) {

	// Arrange
	client := newSessionClient(t)

	// Act
	status, body := doJSON(t, client, http.MethodGet, "/api/captcha", nil)

	// Assert
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var resp captchaResponse
	decodeSuccess(t, body, &resp)
	if !strings.HasPrefix(resp.Captcha, "<svg") {
		t.Fatalf("expected an svg challenge, got %q", resp.Captcha)
	}

	base, _ := url.Parse(realBaseURL)
	if len(client.Jar.Cookies(base)) == 0 {
		t.Fatal("expected a session cookie to be set")
	}
}

func TestLogin(t *testing.T) {

	t.Run("WithoutCaptchaRequested", func(t *testing.T) {

		// Arrange
		client := newSessionClient(t)

		// Act
		status, body := doJSON(t, client, http.MethodPost, "/api/login", loginRequest{
			Username: "alice", Password: "hunter2", Captcha: "ABC234",
		})

		// Assert
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", status, body)
		}
		if msg := decodeError(t, body).Message; msg != "Invalid CAPTCHA. Please try again." {
			t.Fatalf("expected captcha error, got %q", msg)
		}
	})

	t.Run("WrongCaptchaBurnsChallenge", func(t *testing.T) {

		// Arrange
		client := newSessionClient(t)
		if status, body := doJSON(t, client, http.MethodGet, "/api/captcha", nil); status != http.StatusOK {
			t.Fatalf("expected 200 from captcha, got %d: %s", status, body)
		}

		// Act: the answer is drawn from a no-lookalike alphabet, so this
		// guess can never match.
		status, body := doJSON(t, client, http.MethodPost, "/api/login", loginRequest{
			Username: "alice", Password: "hunter2", Captcha: "000000",
		})

		// Assert
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", status, body)
		}

		// A second attempt fails too: the challenge was consumed.
		status, body = doJSON(t, client, http.MethodPost, "/api/login", loginRequest{
			Username: "alice", Password: "hunter2", Captcha: "000000",
		})
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400 on reuse, got %d: %s", status, body)
		}
		if msg := decodeError(t, body).Message; msg != "Invalid CAPTCHA. Please try again." {
			t.Fatalf("expected captcha error, got %q", msg)
		}
	})
}

func TestVerifyOtp(t *testing.T) {

	t.Run("WithoutPendingLogin", func(t *testing.T) {

		// Arrange
		client := newSessionClient(t)

		// Act
		status, body := doJSON(t, client, http.MethodPost, "/api/verify-otp", verifyOtpRequest{Otp: "123456"})

		// Assert
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", status, body)
		}
		if msg := decodeError(t, body).Message; msg != "Session expired. Please login again." {
			t.Fatalf("expected session expired error, got %q", msg)
		}
	})
}

func TestAuthStatus(t *testing.T) {

	t.Run("Anonymous", func(t *testing.T) {

		// Arrange
		client := newSessionClient(t)

		// Act
		status, body := doJSON(t, client, http.MethodGet, "/api/auth-status", nil)

		// Assert
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", status, body)
		}
		var resp authStatusResponse
		decodeSuccess(t, body, &resp)
		if resp.Authenticated || resp.Username != "" {
			t.Fatalf("expected anonymous status, got %+v", resp)
		}
	})
}

func TestLogout(t *testing.T) {

	// Arrange
	client := newSessionClient(t)

	// Act
	status, body := doJSON(t, client, http.MethodPost, "/api/logout", nil)

	// Assert
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if msg := decodeSuccess(t, body, nil).Message; msg != "Logged out successfully" {
		t.Fatalf("expected logout message, got %q", msg)
	}

	// Logging out again still succeeds.
	if status, _ := doJSON(t, client, http.MethodPost, "/api/logout", nil); status != http.StatusOK {
		t.Fatalf("expected 200 on repeat logout, got %d", status)
	}
}
