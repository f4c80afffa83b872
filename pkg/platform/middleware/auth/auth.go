// Package auth authenticates bearer tokens and gates routes by role and
// permission.
package auth

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
	"veriport/pkg/platform/httputil"
	"veriport/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT tokens
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator
type JWTClaims struct {
	AccountID   id.AccountID
	Email       string
	Role        id.Role
	Permissions []id.Permission
}

// DenialRecorder is told about authenticated requests refused by RequireRole
// or RequirePermission.
type DenialRecorder interface {
	AccessDenied(r *http.Request, reason string)
}

func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}

			claims, err := validator.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}

			ctx = requestcontext.WithPrincipal(ctx, claims.AccountID, claims.Role, claims.Permissions)
			ctx = requestcontext.WithEmail(ctx, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole admits principals holding one of roles. It must run after
// RequireAuth.
func RequireRole(recorder DenialRecorder, roles ...id.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(roles, requestcontext.Role(r.Context())) {
				deny(w, r, recorder, "role not permitted")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin admits any HR or super admin role.
func RequireAdmin(recorder DenialRecorder) func(http.Handler) http.Handler {
	return RequireRole(recorder, id.RoleHRStaff, id.RoleHRManager, id.RoleSuperAdmin)
}

// RequirePermission admits principals granted p. Super admins pass.
func RequirePermission(recorder DenialRecorder, p id.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !id.Can(requestcontext.Role(ctx), requestcontext.Permissions(ctx), p) {
				deny(w, r, recorder, "missing permission "+string(p))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter, r *http.Request, recorder DenialRecorder, reason string) {
	if requestcontext.AccountID(r.Context()).IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	if recorder != nil {
		recorder.AccessDenied(r, reason)
	}
	httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "access denied"))
}
