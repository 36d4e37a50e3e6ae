package router

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/danukusuma/gatekeeper/internal/pkg/stacktrace"
)

//nolint:errcheck,gosec // best-effort write of the error body
func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			//nolint:err113,errorlint // sentinel must be compared directly
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			stack := debug.Stack()
			paths := stacktrace.InternalPaths(stack)
			if len(paths) == 0 {
				slog.ErrorContext(r.Context(), "panic while serving request", "because", rvr, "stack", string(stack))
			} else {
				slog.ErrorContext(r.Context(), "panic while serving request", "because", rvr, "stack", paths)
			}

			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(errorResponse{Message: "Internal server error"})
		}()

		next.ServeHTTP(w, r)
	})
}
