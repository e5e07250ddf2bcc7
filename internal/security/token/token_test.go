package token

import (
	"testing"
	"time"
)

func newTestIssuer() *Issuer {
	return NewIssuer("super-secret-test-key", "gomart")
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer()

	raw, err := iss.Issue(map[string]any{"id": 7, "email": "a@b.com", "role": "seller"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := iss.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims["email"] != "a@b.com" || claims["role"] != "seller" {
		t.Fatalf("claims no preservados: %v", claims)
	}
	// JSON numérico llega como float64
	if id, ok := claims["id"].(float64); !ok || id != 7 {
		t.Fatalf("claim id: %v", claims["id"])
	}
	if claims["iss"] != "gomart" {
		t.Fatalf("iss: %v", claims["iss"])
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer()

	// Emitir con un reloj corrido 25h hacia atrás: ya venció (TTL = 1 día)
	iss.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	raw, err := iss.Issue(map[string]any{"id": 1})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	iss.now = time.Now
	if _, err := iss.Verify(raw); err == nil {
		t.Fatal("esperaba AuthError por expiración")
	} else if !IsAuthError(err) {
		t.Fatalf("esperaba *AuthError, got %T", err)
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer()

	raw, err := iss.Issue(map[string]any{"role": "shopper"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := NewIssuer("otra-clave-distinta", "gomart")
	if _, err := other.Verify(raw); err == nil {
		t.Fatal("esperaba fallo con clave distinta")
	} else if !IsAuthError(err) {
		t.Fatalf("esperaba *AuthError, got %T", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer()
	for _, raw := range []string{"", "no.es.jwt", "garbage"} {
		if _, err := iss.Verify(raw); !IsAuthError(err) {
			t.Fatalf("Verify(%q): esperaba AuthError, got %v", raw, err)
		}
	}
}
