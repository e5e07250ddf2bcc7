// Package token emite y verifica tokens firmados (JWT HS256) con expiración
// fija de 1 día. La clave de firma viene de la configuración del proceso.
package token

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// TTL por defecto de los tokens emitidos.
const DefaultTTL = 24 * time.Hour

// AuthError representa cualquier fallo de autenticación: token ausente,
// malformado, con firma inválida o expirado. El call site debe responder
// con un 401/403 genérico, nunca con el detalle interno.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Err)
	}
	return "auth: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

// IsAuthError reporta si err es (o envuelve) un AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// Issuer firma y verifica tokens con una clave HMAC compartida.
type Issuer struct {
	Secret []byte
	Iss    string
	TTL    time.Duration

	// now es inyectable para tests de expiración.
	now func() time.Time
}

// NewIssuer crea un Issuer con TTL de 1 día.
func NewIssuer(secret, iss string) *Issuer {
	return &Issuer{Secret: []byte(secret), Iss: iss, TTL: DefaultTTL, now: time.Now}
}

// Issue firma un token autocontenido con los claims dados (ej: campos del
// usuario, rol incluido) más iat/exp/iss.
func (i *Issuer) Issue(claims map[string]any) (string, error) {
	if len(i.Secret) == 0 {
		return "", errors.New("token: signing key not configured")
	}
	now := i.clock()
	mc := jwtv5.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(i.ttl()).Unix()
	if i.Iss != "" {
		mc["iss"] = i.Iss
	}

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, mc)
	tk.Header["typ"] = "JWT"
	return tk.SignedString(i.Secret)
}

// Verify valida firma y expiración y devuelve los claims embebidos.
// Cualquier fallo se reporta como *AuthError.
func (i *Issuer) Verify(raw string) (map[string]any, error) {
	if raw == "" {
		return nil, &AuthError{Reason: "missing token"}
	}
	parser := jwtv5.NewParser(
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithTimeFunc(i.clock),
	)
	tk, err := parser.Parse(raw, func(t *jwtv5.Token) (any, error) {
		return i.Secret, nil
	})
	if err != nil {
		reason := "invalid token"
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			reason = "token expired"
		} else if errors.Is(err, jwtv5.ErrTokenMalformed) {
			reason = "malformed token"
		}
		return nil, &AuthError{Reason: reason, Err: err}
	}
	mc, ok := tk.Claims.(jwtv5.MapClaims)
	if !ok || !tk.Valid {
		return nil, &AuthError{Reason: "invalid claims"}
	}
	out := make(map[string]any, len(mc))
	for k, v := range mc {
		out[k] = v
	}
	return out, nil
}

func (i *Issuer) clock() time.Time {
	if i.now != nil {
		return i.now()
	}
	return time.Now()
}

func (i *Issuer) ttl() time.Duration {
	if i.TTL > 0 {
		return i.TTL
	}
	return DefaultTTL
}
