// Package admin guards operator endpoints with a shared static token.
package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	dErrors "veriport/pkg/domain-errors"
	"veriport/pkg/platform/httputil"
	"veriport/pkg/requestcontext"
)

// TokenHeader carries the operator token.
const TokenHeader = "X-Ops-Token"

// RequireToken rejects requests whose X-Ops-Token does not match expected.
// An empty expected token disables the guard.
func RequireToken(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if expected == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
				ctx := r.Context()
				logger.WarnContext(ctx, "ops token mismatch",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "ops token required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
