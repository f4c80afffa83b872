package testutil

import (
	"net/http"

	id "veriport/pkg/domain"
	"veriport/pkg/requestcontext"
)

// AsPrincipal attaches an authenticated principal to the request context,
// the way the auth middleware does after a token validates. Permissions
// default to the role's defaults.
func AsPrincipal(req *http.Request, accountID id.AccountID, role id.Role, email string) *http.Request {
	ctx := requestcontext.WithPrincipal(req.Context(), accountID, role, id.DefaultPermissions[role])
	if email != "" {
		ctx = requestcontext.WithEmail(ctx, email)
	}
	return req.WithContext(ctx)
}

// Authenticated is middleware that marks every request as coming from the
// given principal.
func Authenticated(accountID id.AccountID, role id.Role, email string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, AsPrincipal(r, accountID, role, email))
		})
	}
}
