package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danukusuma/gatekeeper/internal/pkg/config"
	"github.com/danukusuma/gatekeeper/internal/pkg/hash"
	"github.com/danukusuma/gatekeeper/internal/pkg/uid"
)

func newSessionHandler(t *testing.T, seen *string) http.Handler {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  session:\n    cookie_name: gk_session\n    ttl_hours: 24\n"))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}

	mw := middlewareSession(cfg, uid.NewUUID(), hash.NewHMACSHA256("session-test"))
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
}

func TestSessionMiddlewareMintsCookie(t *testing.T) {
	var seen string
	h := newSessionHandler(t, &seen)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("handler saw no session token")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies set = %d, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != "gk_session" {
		t.Errorf("cookie name = %q, want %q", c.Name, "gk_session")
	}
	if !c.HttpOnly {
		t.Error("cookie is not HttpOnly")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie SameSite = %v, want Lax", c.SameSite)
	}

	token, _, ok := strings.Cut(c.Value, ".")
	if !ok {
		t.Fatalf("cookie value = %q, want <token>.<mac>", c.Value)
	}
	if token != seen {
		t.Errorf("cookie token = %q, handler saw %q", token, seen)
	}
}

func TestSessionMiddlewareAcceptsSignedCookie(t *testing.T) {
	var seen string
	h := newSessionHandler(t, &seen)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	minted := rec.Result().Cookies()[0]
	first := seen

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(minted)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != first {
		t.Errorf("token on second request = %q, want %q", seen, first)
	}
	if got := rec.Result().Cookies(); len(got) != 0 {
		t.Errorf("cookies re-set for a valid session = %d, want 0", len(got))
	}
}

func TestSessionMiddlewareRejectsTamperedCookie(t *testing.T) {
	var seen string
	h := newSessionHandler(t, &seen)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	minted := rec.Result().Cookies()[0]
	first := seen

	// Swap in another token while keeping the original signature.
	_, mac, _ := strings.Cut(minted.Value, ".")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: minted.Name, Value: "forged-token." + mac})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen == first || seen == "forged-token" {
		t.Errorf("token after tampering = %q, want a fresh session", seen)
	}
	if got := rec.Result().Cookies(); len(got) != 1 {
		t.Errorf("replacement cookies set = %d, want 1", len(got))
	}
}

func TestSessionMiddlewareRejectsMalformedCookie(t *testing.T) {
	var seen string
	h := newSessionHandler(t, &seen)

	for _, value := range []string{"", "no-separator", ".only-mac", "only-token."} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "gk_session", Value: value})
		rec := httptest.NewRecorder()

		seen = ""
		h.ServeHTTP(rec, req)

		if seen == "" {
			t.Errorf("cookie %q: handler saw no session token, want a fresh one", value)
		}
	}
}
