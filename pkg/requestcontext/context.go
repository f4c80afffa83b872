// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values set by middleware and read by services.
//
// Usage in services:
//
//	accountID := requestcontext.AccountID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests:
//
//	ctx = requestcontext.WithPrincipal(ctx, accountID, id.RoleVerifier, nil)
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "veriport/pkg/domain"
)

type (
	accountIDKey   struct{}
	roleKey        struct{}
	permissionsKey struct{}
	emailKey       struct{}
	clientIPKey    struct{}
	userAgentKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// -----------------------------------------------------------------------------
// Principal
// -----------------------------------------------------------------------------

// AccountID returns the authenticated account, or the nil ID.
func AccountID(ctx context.Context) id.AccountID {
	if v, ok := ctx.Value(accountIDKey{}).(id.AccountID); ok {
		return v
	}
	return id.AccountID{}
}

// Role returns the authenticated account's role, or "".
func Role(ctx context.Context) id.Role {
	if v, ok := ctx.Value(roleKey{}).(id.Role); ok {
		return v
	}
	return ""
}

// Permissions returns the permissions carried by the access token.
func Permissions(ctx context.Context) []id.Permission {
	if v, ok := ctx.Value(permissionsKey{}).([]id.Permission); ok {
		return v
	}
	return nil
}

// Email returns the authenticated account's email, or "".
func Email(ctx context.Context) string {
	if v, ok := ctx.Value(emailKey{}).(string); ok {
		return v
	}
	return ""
}

// WithPrincipal injects the authenticated identity.
func WithPrincipal(ctx context.Context, accountID id.AccountID, role id.Role, perms []id.Permission) context.Context {
	ctx = context.WithValue(ctx, accountIDKey{}, accountID)
	ctx = context.WithValue(ctx, roleKey{}, role)
	ctx = context.WithValue(ctx, permissionsKey{}, perms)
	return ctx
}

// WithEmail injects the authenticated account's email.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey{}, email)
}

// -----------------------------------------------------------------------------
// Client metadata (IP, User-Agent)
// -----------------------------------------------------------------------------

func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(userAgentKey{}).(string); ok {
		return ua
	}
	return ""
}

// WithClientMetadata injects client IP and User-Agent into a context.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey{}, clientIP)
	ctx = context.WithValue(ctx, userAgentKey{}, userAgent)
	return ctx
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now retrieves the request-scoped time, falling back to time.Now() for
// workers, the CLI and tests that do not set one.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins the request time.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
