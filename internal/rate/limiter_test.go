package rate

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	l := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := l.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if !res.Allowed {
			t.Fatalf("hit %d: debería estar permitido", i+1)
		}
	}

	res, err := l.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if res.Allowed {
		t.Fatal("cuarto hit: debería estar bloqueado")
	}
	if res.RetryAfter <= 0 {
		t.Fatalf("RetryAfter = %v", res.RetryAfter)
	}

	// Otra IP tiene su propia ventana
	if res, _ := l.Allow(ctx, "10.0.0.2"); !res.Allowed {
		t.Fatal("otra key no debería estar afectada")
	}
}

func TestNew_DisabledReturnsNil(t *testing.T) {
	if l := New(Config{Enabled: false}); l != nil {
		t.Fatal("deshabilitado debe devolver nil")
	}
	if l := New(Config{Enabled: true}); l == nil {
		t.Fatal("habilitado sin redis debe devolver el limiter en memoria")
	}
}
