package middlewares

import "context"

type ctxKey string

const (
	ctxRequestIDKey ctxKey = "request_id"
	ctxClaimsKey    ctxKey = "auth_claims"
)

func setRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, rid)
}

// GetRequestID devuelve el request id del contexto ("" si no hay).
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxRequestIDKey).(string); ok {
		return v
	}
	return ""
}

func setClaims(ctx context.Context, claims map[string]any) context.Context {
	return context.WithValue(ctx, ctxClaimsKey, claims)
}

// GetClaims devuelve los claims del token validado (nil si el request
// no pasó por RequireAuth).
func GetClaims(ctx context.Context) map[string]any {
	if v, ok := ctx.Value(ctxClaimsKey).(map[string]any); ok {
		return v
	}
	return nil
}

// GetUserRole devuelve el rol del usuario autenticado ("" si no hay).
func GetUserRole(ctx context.Context) string {
	if claims := GetClaims(ctx); claims != nil {
		if role, ok := claims["role"].(string); ok {
			return role
		}
	}
	return ""
}

// GetUserID devuelve el id del usuario autenticado (0 si no hay).
// JWT decodifica números como float64.
func GetUserID(ctx context.Context) int64 {
	claims := GetClaims(ctx)
	if claims == nil {
		return 0
	}
	switch v := claims["id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	}
	return 0
}
