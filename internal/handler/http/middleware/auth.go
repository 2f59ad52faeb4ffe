package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/presence-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type identityKey struct{}

// Identity is the verified caller taken from the access token.
type Identity struct {
	EmployeeID string
	Role       jwt.Role
}

// AuthRequired rejects requests without a verified access token carrying an
// employee id and a known role, and stores the caller's Identity.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims[jwt.ClaimType].(string)
		if tokenType != "access" || !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		employeeID, _ := claims[jwt.ClaimEmployeeID].(string)
		if employeeID == "" {
			response.HandleError(w, attendance.ErrMissingIdentity)
			return
		}

		roleStr, _ := claims[jwt.ClaimRole].(string)
		role := jwt.Role(roleStr)
		if !role.Valid() {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		ctx := WithIdentity(r.Context(), Identity{EmployeeID: employeeID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller set by AuthRequired.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.EmployeeID == "" {
		return Identity{}, attendance.ErrMissingIdentity
	}
	return id, nil
}
