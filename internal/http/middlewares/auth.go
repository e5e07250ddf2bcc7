package middlewares

import (
	"net/http"
	"strings"

	httperrors "github.com/gomart/gomart/internal/http/errors"
	"github.com/gomart/gomart/internal/observability/logger"
	"github.com/gomart/gomart/internal/security/token"
)

// =================================================================================
// AUTH MIDDLEWARES
// =================================================================================

// RequireAuth valida el bearer token del header Authorization y deja
// los claims en el contexto. Sin token o con token inválido: 401.
func RequireAuth(issuer *token.Issuer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				httperrors.WriteError(w, httperrors.ErrUnauthorized.WithDetail("missing bearer token"))
				return
			}

			claims, err := issuer.Verify(raw)
			if err != nil {
				logger.From(r.Context()).Warn("token rejected", logger.Err(err))
				httperrors.WriteError(w, httperrors.ErrUnauthorized.WithCause(err))
				return
			}

			ctx := setClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole exige que el rol del token esté en la lista. Corre después
// de RequireAuth; sin claims en contexto responde 401.
func RequireRole(roles ...string) Middleware {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetClaims(r.Context()) == nil {
				httperrors.WriteError(w, httperrors.ErrUnauthorized)
				return
			}
			role := GetUserRole(r.Context())
			if _, ok := allowed[role]; !ok {
				logger.From(r.Context()).Warn("role rejected", logger.Role(role), logger.Path(r.URL.Path))
				httperrors.WriteError(w, httperrors.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extrae el token del header Authorization ("Bearer xyz").
func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
