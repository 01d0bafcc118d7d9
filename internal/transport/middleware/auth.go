package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ntotao/baby-tracker/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateTenantToken(token string) (uuid.UUID, int64, error)
}

// RequireTenant rejects requests without a valid tenant bearer token and
// stores the token's tenant and user in the request context.
func RequireTenant(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="baby-tracker"`)
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			tenantID, userID, err := validator.ValidateTenantToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			reportTenant(r.Context(), tenantID.String())
			ctx := ctxutil.WithTenantID(r.Context(), tenantID)
			if userID != 0 {
				ctx = ctxutil.WithUserID(ctx, userID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
