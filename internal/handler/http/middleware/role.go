package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/presence-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/jwt"
)

// RequireEmployee admits any authenticated employee, admins included
func RequireEmployee(next http.Handler) http.Handler {
	return RequireRole(auth.ErrEmployeeAccessRequired, jwt.RoleEmployee, jwt.RoleAdmin)(next)
}

// RequireAdmin admits admins only
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(auth.ErrAdminAccessRequired, jwt.RoleAdmin)(next)
}

// RequireRole admits callers whose role is one of roles and answers denied
// otherwise.
func RequireRole(denied error, roles ...jwt.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := IdentityFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			for _, role := range roles {
				if id.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.HandleError(w, denied)
		})
	}
}
