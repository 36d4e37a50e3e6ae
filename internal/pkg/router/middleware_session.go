package router

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danukusuma/gatekeeper/internal/pkg/config"
	"github.com/danukusuma/gatekeeper/internal/pkg/hash"
	"github.com/danukusuma/gatekeeper/internal/pkg/uid"
)

// DefaultSessionCookie is the cookie name used when none is configured.
const DefaultSessionCookie = "gk_session"

const defaultSessionTTL = 24 * time.Hour

type sessionTokenKey struct{}

// SessionFromContext returns the opaque session token minted by the session
// middleware, or "" when the request skipped it.
func SessionFromContext(ctx context.Context) string {
	token, _ := ctx.Value(sessionTokenKey{}).(string)
	return token
}

// SetSessionToken stores a session token in ctx. Exported for tests that
// drive handlers without the middleware stack.
func SetSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionTokenKey{}, token)
}

// middlewareSession attaches an opaque, server-set session token to every
// request. The cookie value is "<token>.<mac>" so a forged or tampered token
// never reaches a handler; anything invalid is silently replaced with a fresh
// session, the way an expired browser session just starts over.
func middlewareSession(cfg config.Config, generator uid.StringID, signer hash.Hash) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name := cfg.GetString("app.session.cookie_name")
			if name == "" {
				name = DefaultSessionCookie
			}

			ttl := cfg.GetHour("app.session.ttl_hours")
			if ttl <= 0 {
				ttl = defaultSessionTTL
			}

			token := ""
			if cookie, err := r.Cookie(name); err == nil {
				token = verifySessionCookie(cookie.Value, signer)
			}

			if token == "" {
				token = generator.Generate()

				mac, err := signer.Hash(token)
				if err != nil {
					slog.ErrorContext(r.Context(), "failed to sign session cookie", "error", err)
					writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
					return
				}

				http.SetCookie(w, &http.Cookie{
					Name:     name,
					Value:    token + "." + string(mac),
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					Secure:   cfg.GetBool("app.session.secure_cookie"),
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(SetSessionToken(r.Context(), token)))
		})
	}
}

func verifySessionCookie(value string, signer hash.Hash) string {
	token, mac, ok := strings.Cut(value, ".")
	if !ok || token == "" || mac == "" {
		return ""
	}

	if !signer.Verify(mac, token) {
		return ""
	}

	return token
}
